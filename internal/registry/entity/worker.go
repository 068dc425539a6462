package entity

import "time"

// Worker is a registered construction worker with their certificates.
type Worker struct {
	ID            int64
	FirstName     string
	LastName      string
	CodiceFiscale string
	Email         string
	Phone         string
	BirthDate     time.Time
	CompanyID     int64
	Status        WorkerStatus
	Certificates  []Certificate
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Certificate is a dated credential owned by exactly one worker. Rows are
// immutable once persisted except for the file reference.
type Certificate struct {
	ID         int64
	WorkerID   int64
	Name       string
	IssueDate  time.Time
	ExpiryDate time.Time
	FileKey    string
}

type NewWorker struct {
	ID            int64
	FirstName     string
	LastName      string
	CodiceFiscale string
	Email         string
	Phone         string
	BirthDate     time.Time
	CompanyID     int64
	Status        WorkerStatus
	Certificates  []NewCertificate
	CreatedBy     int64
}

type NewCertificate struct {
	ID         int64
	Name       string
	IssueDate  time.Time
	ExpiryDate time.Time
}

type PatchWorker struct {
	ID            int64
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	BirthDate     time.Time
	CompanyID     int64
	Status        WorkerStatus
	Certificates  []NewCertificate
	UpdatedBy     int64
}

type UpsertWorker struct {
	ID            int64
	FirstName     string
	LastName      string
	CodiceFiscale string
	Email         string
	Phone         string
	BirthDate     time.Time
	Status        WorkerStatus
	CreatedBy     int64
	UpdatedBy     int64
}

type WorkerListFilterData struct {
	OrderBy          string
	OrderDirection   string
	Search           string
	Statuses         []int16
	Size             int32
	Page             int32
	IsFilterBySearch bool
	IsFilterByStatus bool
}
