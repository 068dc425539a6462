package entity

import "time"

// Company is an employer registered with the fund.
type Company struct {
	ID        int64
	Name      string
	VATNumber string
	City      string
	Province  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type NewCompany struct {
	ID        int64
	Name      string
	VATNumber string
	City      string
	Province  string
	CreatedBy int64
}

type PatchCompany struct {
	ID        int64
	Name      string
	City      string
	Province  string
	UpdatedBy int64
}
