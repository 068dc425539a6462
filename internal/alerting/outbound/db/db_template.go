package db

import (
	"context"

	"github.com/PC8-Cloud/GestCert-sub000/internal/alerting/entity"
)

func (s *DB) GetTemplate(ctx context.Context, key entity.TemplateKey) (_ *entity.Template, err error) {
	ctx, span := s.startSpan(ctx, "GetTemplate")
	defer func() { s.endSpan(span, err) }()

	tpl := entity.Template{Key: key}
	err = s.conn.QueryRow(ctx,
		`SELECT subject, body FROM alerting_templates WHERE key = $1`, key.String()).
		Scan(&tpl.Subject, &tpl.Body)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return &tpl, nil
}

func (s *DB) SaveTemplate(ctx context.Context, tpl entity.Template, byID int64) (err error) {
	ctx, span := s.startSpan(ctx, "SaveTemplate")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO alerting_templates (key, subject, body, updated_by)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (key) DO UPDATE SET
		   subject = EXCLUDED.subject,
		   body = EXCLUDED.body,
		   updated_by = EXCLUDED.updated_by,
		   updated_at = NOW()`,
		tpl.Key.String(), tpl.Subject, tpl.Body, byID)

	return s.mapError(err)
}
