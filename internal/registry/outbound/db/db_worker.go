package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/PC8-Cloud/GestCert-sub000/internal/registry/entity"
)

const workerColumns = `id, first_name, last_name, codice_fiscale, email, phone, birth_date, company_id, status, created_at, updated_at`

func scanWorker(row pgx.Row) (*entity.Worker, error) {
	var (
		w         entity.Worker
		email     *string
		phone     *string
		birthDate *time.Time
		companyID *int64
	)

	err := row.Scan(&w.ID, &w.FirstName, &w.LastName, &w.CodiceFiscale, &email, &phone,
		&birthDate, &companyID, &w.Status, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if email != nil {
		w.Email = *email
	}
	if phone != nil {
		w.Phone = *phone
	}
	if birthDate != nil {
		w.BirthDate = *birthDate
	}
	if companyID != nil {
		w.CompanyID = *companyID
	}

	return &w, nil
}

func (s *DB) GetWorkerList(ctx context.Context, filter entity.WorkerListFilterData) (_ []entity.Worker, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetWorkerList")
	defer func() { s.endSpan(span, err) }()

	conds := []string{"deleted_at IS NULL"}
	args := []any{}

	if filter.IsFilterBySearch {
		args = append(args, "%"+filter.Search+"%")
		p := fmt.Sprintf("$%d", len(args))
		conds = append(conds, fmt.Sprintf("(first_name ILIKE %s OR last_name ILIKE %s OR codice_fiscale ILIKE %s)", p, p, p))
	}
	if filter.IsFilterByStatus {
		args = append(args, filter.Statuses)
		conds = append(conds, fmt.Sprintf("status = ANY($%d)", len(args)))
	}

	where := strings.Join(conds, " AND ")

	var total int64
	if err = s.conn.QueryRow(ctx, `SELECT COUNT(*) FROM registry_workers WHERE `+where, args...).Scan(&total); err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}

	orderBy := "created_at"
	switch filter.OrderBy {
	case "first_name", "last_name", "codice_fiscale", "updated_at":
		orderBy = filter.OrderBy
	}
	direction := "DESC"
	if filter.OrderDirection == "asc" {
		direction = "ASC"
	}

	args = append(args, filter.Size, filter.Page)
	query := fmt.Sprintf(`SELECT %s FROM registry_workers WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		workerColumns, where, orderBy, direction, len(args)-1, len(args))

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}
	defer rows.Close()

	var workers []entity.Worker
	for rows.Next() {
		w, errScan := scanWorker(rows)
		if errScan != nil {
			err = s.mapError(errScan)
			return nil, 0, err
		}
		workers = append(workers, *w)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	if err = s.attachCertificates(ctx, workers); err != nil {
		return nil, 0, err
	}

	return workers, total, nil
}

func (s *DB) attachCertificates(ctx context.Context, workers []entity.Worker) error {
	if len(workers) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(workers))
	index := make(map[int64]int, len(workers))
	for i, w := range workers {
		ids = append(ids, w.ID)
		index[w.ID] = i
	}

	rows, err := s.conn.Query(ctx,
		`SELECT id, worker_id, name, issue_date, expiry_date, COALESCE(file_key, '')
		 FROM registry_certificates WHERE worker_id = ANY($1) ORDER BY expiry_date`, ids)
	if err != nil {
		return s.mapError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c         entity.Certificate
			issueDate *time.Time
		)
		if err := rows.Scan(&c.ID, &c.WorkerID, &c.Name, &issueDate, &c.ExpiryDate, &c.FileKey); err != nil {
			return s.mapError(err)
		}
		if issueDate != nil {
			c.IssueDate = *issueDate
		}

		i := index[c.WorkerID]
		workers[i].Certificates = append(workers[i].Certificates, c)
	}

	return rows.Err()
}

func (s *DB) GetWorkerByID(ctx context.Context, id int64) (_ *entity.Worker, err error) {
	ctx, span := s.startSpan(ctx, "GetWorkerByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx,
		`SELECT `+workerColumns+` FROM registry_workers WHERE id = $1 AND deleted_at IS NULL`, id)

	w, err := scanWorker(row)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	workers := []entity.Worker{*w}
	if err = s.attachCertificates(ctx, workers); err != nil {
		return nil, err
	}

	return &workers[0], nil
}

func (s *DB) GetWorkerIDByCodiceFiscale(ctx context.Context, cf string) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetWorkerIDByCodiceFiscale")
	defer func() { s.endSpan(span, err) }()

	var id int64
	err = s.conn.QueryRow(ctx,
		`SELECT id FROM registry_workers WHERE codice_fiscale = $1 AND deleted_at IS NULL`, cf).Scan(&id)
	if err != nil {
		err = s.mapError(err)
		return 0, err
	}

	return id, nil
}

func (s *DB) CreateWorker(ctx context.Context, worker entity.NewWorker) (err error) {
	ctx, span := s.startSpan(ctx, "CreateWorker")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return s.mapError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO registry_workers
		 (id, first_name, last_name, codice_fiscale, email, phone, birth_date, company_id, status, created_by, updated_by)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, NULLIF($8, 0), $9, $10, $10)`,
		worker.ID, worker.FirstName, worker.LastName, worker.CodiceFiscale, worker.Email,
		worker.Phone, nullTime(worker.BirthDate), worker.CompanyID, worker.Status, worker.CreatedBy)
	if err != nil {
		return s.mapError(err)
	}

	if err = insertCertificates(ctx, tx, worker.ID, worker.Certificates); err != nil {
		return s.mapError(err)
	}

	return s.mapError(tx.Commit(ctx))
}

func (s *DB) UpdateWorker(ctx context.Context, worker entity.PatchWorker) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateWorker")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return s.mapError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`UPDATE registry_workers
		 SET first_name = $2, last_name = $3, email = NULLIF($4, ''), phone = NULLIF($5, ''),
		     birth_date = $6, company_id = NULLIF($7, 0), status = $8, updated_by = $9, updated_at = NOW()
		 WHERE id = $1 AND deleted_at IS NULL`,
		worker.ID, worker.FirstName, worker.LastName, worker.Email, worker.Phone,
		nullTime(worker.BirthDate), worker.CompanyID, worker.Status, worker.UpdatedBy)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	// the certificate set is replaced wholesale on every worker update
	if _, err = tx.Exec(ctx, `DELETE FROM registry_certificates WHERE worker_id = $1`, worker.ID); err != nil {
		return s.mapError(err)
	}

	if err = insertCertificates(ctx, tx, worker.ID, worker.Certificates); err != nil {
		return s.mapError(err)
	}

	return s.mapError(tx.Commit(ctx))
}

func insertCertificates(ctx context.Context, tx pgx.Tx, workerID int64, certs []entity.NewCertificate) error {
	if len(certs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, c := range certs {
		batch.Queue(
			`INSERT INTO registry_certificates (id, worker_id, name, issue_date, expiry_date)
			 VALUES ($1, $2, $3, $4, $5)`,
			c.ID, workerID, c.Name, nullTime(c.IssueDate), c.ExpiryDate)
	}

	br := tx.SendBatch(ctx, batch)
	for range batch.Len() {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return err
		}
	}

	return br.Close()
}

func (s *DB) MarkWorkerDeleted(ctx context.Context, id, byID int64) (err error) {
	ctx, span := s.startSpan(ctx, "MarkWorkerDeleted")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE registry_workers SET deleted_at = NOW(), updated_by = $2, updated_at = NOW()
		 WHERE id = $1 AND deleted_at IS NULL`, id, byID)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return s.mapError(pgx.ErrNoRows)
	}

	return nil
}

func (s *DB) UpsertWorkers(ctx context.Context, workers []entity.UpsertWorker) (created, updated int, err error) {
	ctx, span := s.startSpan(ctx, "UpsertWorkers")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, 0, s.mapError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, w := range workers {
		var inserted bool
		err = tx.QueryRow(ctx,
			`INSERT INTO registry_workers
			 (id, first_name, last_name, codice_fiscale, email, phone, birth_date, status, created_by, updated_by)
			 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $9)
			 ON CONFLICT (codice_fiscale) DO UPDATE
			 SET first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name,
			     email = EXCLUDED.email, phone = EXCLUDED.phone, birth_date = EXCLUDED.birth_date,
			     updated_by = EXCLUDED.updated_by, updated_at = NOW(), deleted_at = NULL
			 RETURNING (xmax = 0)`,
			w.ID, w.FirstName, w.LastName, w.CodiceFiscale, w.Email, w.Phone,
			nullTime(w.BirthDate), w.Status, w.CreatedBy).Scan(&inserted)
		if err != nil {
			return 0, 0, s.mapError(err)
		}

		if inserted {
			created++
		} else {
			updated++
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, 0, s.mapError(err)
	}

	return created, updated, nil
}

func (s *DB) GetCertificateByID(ctx context.Context, id, workerID int64) (_ *entity.Certificate, err error) {
	ctx, span := s.startSpan(ctx, "GetCertificateByID")
	defer func() { s.endSpan(span, err) }()

	var (
		c         entity.Certificate
		issueDate *time.Time
	)
	err = s.conn.QueryRow(ctx,
		`SELECT c.id, c.worker_id, c.name, c.issue_date, c.expiry_date, COALESCE(c.file_key, '')
		 FROM registry_certificates c
		 JOIN registry_workers w ON w.id = c.worker_id AND w.deleted_at IS NULL
		 WHERE c.id = $1 AND c.worker_id = $2`, id, workerID).
		Scan(&c.ID, &c.WorkerID, &c.Name, &issueDate, &c.ExpiryDate, &c.FileKey)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	if issueDate != nil {
		c.IssueDate = *issueDate
	}

	return &c, nil
}

func (s *DB) GetAllCertificateExpiries(ctx context.Context) (_ []entity.Certificate, err error) {
	ctx, span := s.startSpan(ctx, "GetAllCertificateExpiries")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx,
		`SELECT c.id, c.worker_id, c.expiry_date
		 FROM registry_certificates c
		 JOIN registry_workers w ON w.id = c.worker_id AND w.deleted_at IS NULL`)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	defer rows.Close()

	var certs []entity.Certificate
	for rows.Next() {
		var c entity.Certificate
		if err = rows.Scan(&c.ID, &c.WorkerID, &c.ExpiryDate); err != nil {
			err = s.mapError(err)
			return nil, err
		}
		certs = append(certs, c)
	}

	return certs, rows.Err()
}

func (s *DB) UpdateCertificateFileKey(ctx context.Context, id, workerID int64, fileKey string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateCertificateFileKey")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE registry_certificates SET file_key = $3 WHERE id = $1 AND worker_id = $2`,
		id, workerID, fileKey)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return s.mapError(pgx.ErrNoRows)
	}

	return nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
