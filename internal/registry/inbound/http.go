package inbound

import (
	"context"
	"net/http"

	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/router"
	"github.com/PC8-Cloud/GestCert-sub000/internal/registry/usecase"
)

type uc interface {
	Dashboard(ctx context.Context) (*usecase.DashboardOutput, error)

	WorkerList(ctx context.Context, in usecase.WorkerListInput) (*usecase.WorkerListOutput, error)
	WorkerDetail(ctx context.Context, in usecase.WorkerDetailInput) (*usecase.WorkerDetailOutput, error)
	WorkerCreate(ctx context.Context, in usecase.WorkerCreateInput) error
	WorkerUpdate(ctx context.Context, in usecase.WorkerUpdateInput) error
	WorkerDelete(ctx context.Context, in usecase.WorkerDeleteInput) error
	WorkerExport(ctx context.Context, in usecase.WorkerExportInput) (*usecase.WorkerExportOutput, error)
	WorkerImport(ctx context.Context, in usecase.WorkerImportInput) (*usecase.WorkerImportOutput, error)

	CertificateFileUpload(ctx context.Context, in usecase.CertificateFileUploadInput) error
	CertificateFileURL(ctx context.Context, in usecase.CertificateFileURLInput) (*usecase.CertificateFileURLOutput, error)

	CompanyList(ctx context.Context, in usecase.CompanyListInput) (*usecase.CompanyListOutput, error)
	CompanyDetail(ctx context.Context, in usecase.CompanyDetailInput) (*usecase.CompanyDetailOutput, error)
	CompanyCreate(ctx context.Context, in usecase.CompanyCreateInput) error
	CompanyUpdate(ctx context.Context, in usecase.CompanyUpdateInput) error
	CompanyDelete(ctx context.Context, in usecase.CompanyDeleteInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Dashboard
	r.GET("/api/v1/registry/dashboard", end.Dashboard)

	// Worker Directory
	r.GET("/api/v1/registry/workers", end.WorkerList)
	r.GET("/api/v1/registry/workers/:id", end.WorkerDetail)
	r.POST("/api/v1/registry/workers", end.WorkerCreate)
	r.PUT("/api/v1/registry/workers/:id", end.WorkerUpdate)
	r.DELETE("/api/v1/registry/workers/:id", end.WorkerDelete)
	r.GETRaw("/api/v1/registry/workers-export", http.HandlerFunc(end.WorkerExport))
	r.POST("/api/v1/registry/workers-import", end.WorkerImport)

	// Certificate Files
	r.PUT("/api/v1/registry/workers/:id/certificates/:cert_id/file", end.CertificateFileUpload)
	r.GET("/api/v1/registry/workers/:id/certificates/:cert_id/file", end.CertificateFileURL)

	// Company Directory
	r.GET("/api/v1/registry/companies", end.CompanyList)
	r.GET("/api/v1/registry/companies/:id", end.CompanyDetail)
	r.POST("/api/v1/registry/companies", end.CompanyCreate)
	r.PUT("/api/v1/registry/companies/:id", end.CompanyUpdate)
	r.DELETE("/api/v1/registry/companies/:id", end.CompanyDelete)
}
