// Package policystore provides a minimal pgx-backed Casbin adapter.
//
// It persists policy rules in a single table and implements just the base
// persist.Adapter surface; policy reloads happen on process start.
package policystore

import (
	"context"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/persist"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultTable = "casbin_rules"

// Store loads and saves Casbin policy rules from PostgreSQL.
type Store struct {
	pool  *pgxpool.Pool
	table string
}

var _ persist.Adapter = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithTableName overrides the default policy table name.
func WithTableName(name string) Option {
	return func(s *Store) {
		s.table = name
	}
}

// New creates a Store after verifying database connectivity.
func New(ctx context.Context, pool *pgxpool.Pool, opts ...Option) (*Store, error) {
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	s := &Store{pool: pool, table: defaultTable}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// LoadPolicy loads every stored rule into the model.
func (s *Store) LoadPolicy(m model.Model) error {
	ctx := context.Background()

	query := fmt.Sprintf(`SELECT ptype, v0, v1, v2, v3, v4, v5 FROM %s`, s.table)
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ptype string
		vals := make([]*string, 6)
		if err := rows.Scan(&ptype, &vals[0], &vals[1], &vals[2], &vals[3], &vals[4], &vals[5]); err != nil {
			return err
		}

		rule := []string{ptype}
		for _, v := range vals {
			if v == nil || *v == "" {
				break
			}
			rule = append(rule, *v)
		}

		if err := persist.LoadPolicyArray(rule, m); err != nil {
			return err
		}
	}

	return rows.Err()
}

// SavePolicy replaces all stored rules with the model's current rules.
func (s *Store) SavePolicy(m model.Model) error {
	ctx := context.Background()

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, s.table)); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, section := range []string{"p", "g"} {
		for ptype, ast := range m[section] {
			for _, rule := range ast.Policy {
				batch.Queue(s.insertQuery(), s.insertArgs(ptype, rule)...)
			}
		}
	}

	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		for range batch.Len() {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return err
			}
		}
		if err := br.Close(); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// AddPolicy inserts a single rule.
func (s *Store) AddPolicy(_ string, ptype string, rule []string) error {
	_, err := s.pool.Exec(context.Background(), s.insertQuery(), s.insertArgs(ptype, rule)...)
	return err
}

// RemovePolicy deletes a single rule.
func (s *Store) RemovePolicy(_ string, ptype string, rule []string) error {
	conds := []string{"ptype = $1"}
	args := []any{ptype}
	for i, v := range rule {
		conds = append(conds, fmt.Sprintf("v%d = $%d", i, len(args)+1))
		args = append(args, v)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s`, s.table, strings.Join(conds, " AND "))
	_, err := s.pool.Exec(context.Background(), query, args...)
	return err
}

// RemoveFilteredPolicy deletes rules matching the given field values.
func (s *Store) RemoveFilteredPolicy(_ string, ptype string, fieldIndex int, fieldValues ...string) error {
	conds := []string{"ptype = $1"}
	args := []any{ptype}
	for i, v := range fieldValues {
		if v == "" {
			continue
		}
		conds = append(conds, fmt.Sprintf("v%d = $%d", fieldIndex+i, len(args)+1))
		args = append(args, v)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s`, s.table, strings.Join(conds, " AND "))
	_, err := s.pool.Exec(context.Background(), query, args...)
	return err
}

func (s *Store) insertQuery() string {
	return fmt.Sprintf(`INSERT INTO %s (ptype, v0, v1, v2, v3, v4, v5) VALUES ($1, $2, $3, $4, $5, $6, $7)`, s.table)
}

func (s *Store) insertArgs(ptype string, rule []string) []any {
	args := []any{ptype}
	for i := range 6 {
		if i < len(rule) {
			args = append(args, rule[i])
		} else {
			args = append(args, "")
		}
	}
	return args
}
