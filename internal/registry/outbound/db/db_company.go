package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/PC8-Cloud/GestCert-sub000/internal/registry/entity"
)

func (s *DB) GetCompanyList(ctx context.Context, search string, size, page int32) (_ []entity.Company, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetCompanyList")
	defer func() { s.endSpan(span, err) }()

	where := `TRUE`
	args := []any{}
	if search != "" {
		args = append(args, "%"+search+"%")
		where = `(name ILIKE $1 OR vat_number ILIKE $1)`
	}

	var total int64
	if err = s.conn.QueryRow(ctx, `SELECT COUNT(*) FROM registry_companies WHERE `+where, args...).Scan(&total); err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}

	args = append(args, size, page)
	query := `SELECT id, name, vat_number, COALESCE(city, ''), COALESCE(province, ''), created_at, updated_at
	          FROM registry_companies WHERE ` + where + ` ORDER BY name`
	if search != "" {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}
	defer rows.Close()

	var companies []entity.Company
	for rows.Next() {
		var c entity.Company
		if err = rows.Scan(&c.ID, &c.Name, &c.VATNumber, &c.City, &c.Province, &c.CreatedAt, &c.UpdatedAt); err != nil {
			err = s.mapError(err)
			return nil, 0, err
		}
		companies = append(companies, c)
	}

	return companies, total, rows.Err()
}

func (s *DB) GetCompanyByID(ctx context.Context, id int64) (_ *entity.Company, err error) {
	ctx, span := s.startSpan(ctx, "GetCompanyByID")
	defer func() { s.endSpan(span, err) }()

	var c entity.Company
	err = s.conn.QueryRow(ctx,
		`SELECT id, name, vat_number, COALESCE(city, ''), COALESCE(province, ''), created_at, updated_at
		 FROM registry_companies WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.VATNumber, &c.City, &c.Province, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return &c, nil
}

func (s *DB) CreateCompany(ctx context.Context, company entity.NewCompany) (err error) {
	ctx, span := s.startSpan(ctx, "CreateCompany")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO registry_companies (id, name, vat_number, city, province, created_by, updated_by)
		 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $6)`,
		company.ID, company.Name, company.VATNumber, company.City, company.Province, company.CreatedBy)

	return s.mapError(err)
}

func (s *DB) UpdateCompany(ctx context.Context, company entity.PatchCompany) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateCompany")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE registry_companies
		 SET name = $2, city = NULLIF($3, ''), province = NULLIF($4, ''), updated_by = $5, updated_at = NOW()
		 WHERE id = $1`,
		company.ID, company.Name, company.City, company.Province, company.UpdatedBy)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return s.mapError(pgx.ErrNoRows)
	}

	return nil
}

func (s *DB) DeleteCompany(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteCompany")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM registry_companies WHERE id = $1`, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return s.mapError(pgx.ErrNoRows)
	}

	return nil
}
