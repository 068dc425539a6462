package db

import (
	"context"

	"github.com/PC8-Cloud/GestCert-sub000/internal/alerting/entity"
)

// GetCandidates loads every non-deleted worker that holds at least one dated
// certificate, together with the certificates themselves. Rows come back
// ordered by worker so the scan can fold them into one candidate each.
func (s *DB) GetCandidates(ctx context.Context) (_ []entity.Candidate, err error) {
	ctx, span := s.startSpan(ctx, "GetCandidates")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx,
		`SELECT w.id, w.first_name, w.last_name, COALESCE(w.email, ''), c.name, c.expiry_date
		 FROM registry_workers w
		 JOIN registry_certificates c ON c.worker_id = w.id
		 WHERE w.deleted_at IS NULL
		 ORDER BY w.id, c.id`)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	defer rows.Close()

	var candidates []entity.Candidate
	for rows.Next() {
		var r entity.Recipient
		var cert entity.CandidateCertificate
		if err = rows.Scan(&r.WorkerID, &r.FirstName, &r.LastName, &r.Email, &cert.Name, &cert.ExpiryDate); err != nil {
			err = s.mapError(err)
			return nil, err
		}

		if n := len(candidates); n > 0 && candidates[n-1].Recipient.WorkerID == r.WorkerID {
			candidates[n-1].Certificates = append(candidates[n-1].Certificates, cert)
			continue
		}
		candidates = append(candidates, entity.Candidate{
			Recipient:    r,
			Certificates: []entity.CandidateCertificate{cert},
		})
	}

	return candidates, rows.Err()
}
