package inbound

import (
	"time"

	"github.com/PC8-Cloud/GestCert-sub000/internal/registry/entity"
)

type DashboardResponse struct {
	Expired     int `json:"expired"`
	Today       int `json:"today"`
	WithinWeek  int `json:"withinWeek"`
	WithinMonth int `json:"withinMonth"`
}

type CertificateResponse struct {
	ID         int64     `json:"id,string"`
	Name       string    `json:"name"`
	IssueDate  time.Time `json:"issue_date"`
	ExpiryDate time.Time `json:"expiry_date"`
	HasFile    bool      `json:"has_file"`
}

type WorkerResponse struct {
	ID            int64                 `json:"id,string"`
	FirstName     string                `json:"first_name"`
	LastName      string                `json:"last_name"`
	CodiceFiscale string                `json:"codice_fiscale"`
	Email         string                `json:"email"`
	Phone         string                `json:"phone"`
	BirthDate     time.Time             `json:"birth_date"`
	CompanyID     int64                 `json:"company_id,string"`
	Status        entity.WorkerStatus   `json:"status"`
	Certificates  []CertificateResponse `json:"certificates"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

type WorkersResponse struct {
	Workers []WorkerResponse `json:"workers"`
	// meta
	total int64
	size  int32
	page  int32
}

func (r WorkersResponse) Meta() map[string]any {
	return map[string]any{
		"total": r.total,
		"size":  r.size,
		"page":  r.page,
	}
}

type WorkerDetailResponse struct {
	Worker WorkerResponse `json:"worker"`
}

type WorkerCertificateRequest struct {
	Name       string    `json:"name"`
	IssueDate  time.Time `json:"issue_date,omitempty"`
	ExpiryDate time.Time `json:"expiry_date"`
}

type WorkerCreateRequest struct {
	FirstName     string                     `json:"first_name"`
	LastName      string                     `json:"last_name"`
	CodiceFiscale string                     `json:"codice_fiscale"`
	Email         string                     `json:"email,omitempty"`
	Phone         string                     `json:"phone,omitempty"`
	BirthDate     time.Time                  `json:"birth_date,omitempty"`
	CompanyID     int64                      `json:"company_id,string,omitempty"`
	Status        entity.WorkerStatus        `json:"status,omitempty"`
	Certificates  []WorkerCertificateRequest `json:"certificates,omitempty"`
}

type WorkerUpdateRequest struct {
	FirstName    string                     `json:"first_name"`
	LastName     string                     `json:"last_name"`
	Email        string                     `json:"email,omitempty"`
	Phone        string                     `json:"phone,omitempty"`
	BirthDate    time.Time                  `json:"birth_date,omitempty"`
	CompanyID    int64                      `json:"company_id,string,omitempty"`
	Status       entity.WorkerStatus        `json:"status,omitempty"`
	Certificates []WorkerCertificateRequest `json:"certificates"`
}

type WorkerImportResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

type CertificateFileURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in"`
}

type CompanyResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	VATNumber string    `json:"vat_number"`
	City      string    `json:"city"`
	Province  string    `json:"province"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
	// meta
	total int64
	size  int32
	page  int32
}

func (r CompaniesResponse) Meta() map[string]any {
	return map[string]any{
		"total": r.total,
		"size":  r.size,
		"page":  r.page,
	}
}

type CompanyDetailResponse struct {
	Company CompanyResponse `json:"company"`
}

type CompanyCreateRequest struct {
	Name      string `json:"name"`
	VATNumber string `json:"vat_number"`
	City      string `json:"city,omitempty"`
	Province  string `json:"province,omitempty"`
}

type CompanyUpdateRequest struct {
	Name     string `json:"name"`
	City     string `json:"city,omitempty"`
	Province string `json:"province,omitempty"`
}
