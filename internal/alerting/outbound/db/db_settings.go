package db

import (
	"context"

	"github.com/PC8-Cloud/GestCert-sub000/internal/alerting/entity"
)

// The settings table holds exactly one row, pinned at id = 1.
const settingsRowID = 1

func (s *DB) GetSettings(ctx context.Context) (_ *entity.Settings, err error) {
	ctx, span := s.startSpan(ctx, "GetSettings")
	defer func() { s.endSpan(span, err) }()

	var settings entity.Settings
	var thresholds []int32
	err = s.conn.QueryRow(ctx,
		`SELECT enabled, threshold_days, notify_workers, notify_operator,
		        COALESCE(operator_email, ''), daily_digest, COALESCE(last_sent_date, '')
		 FROM alerting_settings WHERE id = $1`, settingsRowID).
		Scan(&settings.Enabled, &thresholds, &settings.NotifyWorkers, &settings.NotifyOperator,
			&settings.OperatorEmail, &settings.DailyDigest, &settings.LastSentDate)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	settings.ThresholdDays = make([]int, 0, len(thresholds))
	for _, d := range thresholds {
		settings.ThresholdDays = append(settings.ThresholdDays, int(d))
	}

	return &settings, nil
}

// SaveSettings writes every operator-editable field. last_sent_date is
// deliberately left out so a save cannot revert a racing run's record.
func (s *DB) SaveSettings(ctx context.Context, settings entity.Settings, byID int64) (err error) {
	ctx, span := s.startSpan(ctx, "SaveSettings")
	defer func() { s.endSpan(span, err) }()

	thresholds := make([]int32, 0, len(settings.ThresholdDays))
	for _, d := range settings.ThresholdDays {
		thresholds = append(thresholds, int32(d))
	}

	_, err = s.conn.Exec(ctx,
		`INSERT INTO alerting_settings (id, enabled, threshold_days, notify_workers, notify_operator,
		                                operator_email, daily_digest, updated_by)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		   enabled = EXCLUDED.enabled,
		   threshold_days = EXCLUDED.threshold_days,
		   notify_workers = EXCLUDED.notify_workers,
		   notify_operator = EXCLUDED.notify_operator,
		   operator_email = EXCLUDED.operator_email,
		   daily_digest = EXCLUDED.daily_digest,
		   updated_by = EXCLUDED.updated_by,
		   updated_at = NOW()`,
		settingsRowID, settings.Enabled, thresholds, settings.NotifyWorkers,
		settings.NotifyOperator, settings.OperatorEmail, settings.DailyDigest, byID)

	return s.mapError(err)
}

// UpdateLastSentDate touches only the run record column so it cannot clobber
// a concurrent settings edit.
func (s *DB) UpdateLastSentDate(ctx context.Context, date string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateLastSentDate")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO alerting_settings (id, last_sent_date)
		 VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET last_sent_date = EXCLUDED.last_sent_date`,
		settingsRowID, date)

	return s.mapError(err)
}
