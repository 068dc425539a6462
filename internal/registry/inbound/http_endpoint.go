package inbound

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goerror"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/router"
	"github.com/PC8-Cloud/GestCert-sub000/internal/registry/entity"
	"github.com/PC8-Cloud/GestCert-sub000/internal/registry/usecase"
)

// HTTPEndpoint exposes HTTP handlers for the worker and company registry.
type HTTPEndpoint struct {
	uc uc
}

// Dashboard returns cumulative expiry counts for the summary tiles.
// @Summary Expiry dashboard
// @Description Returns cumulative certificate expiry counts: expired, due today, due within 7 days, due within 30 days.
// @Tags Registry, Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=DashboardResponse} "Expiry counts"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/registry/dashboard [get]
func (h *HTTPEndpoint) Dashboard(r *router.Request) (any, error) {
	resp, err := h.uc.Dashboard(r.Context())
	if err != nil {
		return nil, err
	}

	return DashboardResponse{
		Expired:     resp.Expired,
		Today:       resp.Today,
		WithinWeek:  resp.WithinWeek,
		WithinMonth: resp.WithinMonth,
	}, nil
}

// WorkerList lists workers with optional search, status and expiry filters.
// @Summary List workers
// @Description Returns a paged worker list. The optional bucket query (expired|today|week|month) keeps only workers with at least one certificate in that expiry window.
// @Tags Registry, Workers
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by name or codice fiscale"
// @Param status query []string false "Status filter (numeric)"
// @Param bucket query string false "Expiry window filter"
// @Success 200 {object} router.successResponse{data=WorkersResponse} "Worker list"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/registry/workers [get]
func (h *HTTPEndpoint) WorkerList(r *router.Request) (any, error) {
	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}
	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.WorkerList(r.Context(), usecase.WorkerListInput{
		Search:    r.GetQuery("search"),
		Statuses:  r.GetQueries("status"),
		Bucket:    r.GetQuery("bucket"),
		Size:      size,
		Page:      page,
		SortBy:    r.GetQuery("sort_by"),
		SortOrder: r.GetQuery("sort_order"),
	})
	if err != nil {
		return nil, err
	}

	workers := make([]WorkerResponse, 0, len(resp.Workers))
	for _, item := range resp.Workers {
		workers = append(workers, toWorkerResponse(item))
	}

	return WorkersResponse{
		Workers: workers,
		total:   resp.Total,
		size:    resp.Size,
		page:    resp.Page,
	}, nil
}

// WorkerDetail returns one worker with its certificates.
// @Summary Worker detail
// @Tags Registry, Workers
// @Security BearerAuth
// @Produce json
// @Param id path string true "Worker ID"
// @Success 200 {object} router.successResponse{data=WorkerDetailResponse} "Worker detail"
// @Failure 404 {object} router.errorResponse "Worker not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/registry/workers/{id} [get]
func (h *HTTPEndpoint) WorkerDetail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.WorkerDetail(r.Context(), usecase.WorkerDetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return WorkerDetailResponse{Worker: toWorkerResponse(resp.Worker)}, nil
}

// WorkerCreate registers a new worker with optional certificates.
// @Summary Create worker
// @Tags Registry, Workers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body WorkerCreateRequest true "Worker payload"
// @Success 200 {object} router.successResponse "Created"
// @Failure 409 {object} router.errorResponse "Duplicate codice fiscale"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/registry/workers [post]
func (h *HTTPEndpoint) WorkerCreate(r *router.Request) (any, error) {
	var req WorkerCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.WorkerCreate(r.Context(), usecase.WorkerCreateInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		CodiceFiscale: req.CodiceFiscale,
		Email:         req.Email,
		Phone:         req.Phone,
		BirthDate:     req.BirthDate,
		CompanyID:     req.CompanyID,
		Status:        req.Status,
		Certificates:  toCertificateInputs(req.Certificates),
	})
}

// WorkerUpdate replaces a worker's fields and certificate set.
// @Summary Update worker
// @Tags Registry, Workers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Worker ID"
// @Param request body WorkerUpdateRequest true "Worker payload"
// @Success 200 {object} router.successResponse "Updated"
// @Failure 404 {object} router.errorResponse "Worker not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/registry/workers/{id} [put]
func (h *HTTPEndpoint) WorkerUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req WorkerUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.WorkerUpdate(r.Context(), usecase.WorkerUpdateInput{
		ID:           id,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		BirthDate:    req.BirthDate,
		CompanyID:    req.CompanyID,
		Status:       req.Status,
		Certificates: toCertificateInputs(req.Certificates),
	})
}

// WorkerDelete soft deletes a worker.
// @Summary Delete worker
// @Tags Registry, Workers
// @Security BearerAuth
// @Produce json
// @Param id path string true "Worker ID"
// @Success 200 {object} router.successResponse "Deleted"
// @Failure 404 {object} router.errorResponse "Worker not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/registry/workers/{id} [delete]
func (h *HTTPEndpoint) WorkerDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	return nil, h.uc.WorkerDelete(r.Context(), usecase.WorkerDeleteInput{ID: id})
}

// WorkerExport streams the worker directory as a CSV download.
// @Summary Export workers
// @Tags Registry, Workers
// @Security BearerAuth
// @Produce text/csv
// @Param search query string false "Search by name or codice fiscale"
// @Param status query []string false "Status filter (numeric)"
// @Success 200 {string} string "CSV document"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/registry/workers-export [get]
func (h *HTTPEndpoint) WorkerExport(w http.ResponseWriter, r *http.Request) {
	req := &router.Request{Request: r}

	resp, err := h.uc.WorkerExport(r.Context(), usecase.WorkerExportInput{
		Search:   req.GetQuery("search"),
		Statuses: req.GetQueries("status"),
	})
	if err != nil {
		writeRawError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+resp.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(resp.CSV); err != nil {
		slog.ErrorContext(r.Context(), "failed to write workers export", "error", err)
	}
}

// WorkerImport upserts workers from an uploaded CSV file.
// @Summary Import workers
// @Description Accepts a multipart CSV file (field name `file`) and upserts one worker per row keyed by codice fiscale.
// @Tags Registry, Workers
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} router.successResponse{data=WorkerImportResponse} "Import summary"
// @Failure 400 {object} router.errorResponse "Invalid file"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/registry/workers-import [post]
func (h *HTTPEndpoint) WorkerImport(r *router.Request) (any, error) {
	ctx := r.Context()

	file, err := r.StreamSingleFile("file")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close file", "error", err)
		}
	}()

	resp, err := h.uc.WorkerImport(ctx, usecase.WorkerImportInput{File: file})
	if err != nil {
		return nil, err
	}

	return WorkerImportResponse{
		Created: resp.Created,
		Updated: resp.Updated,
		Failed:  resp.Failed,
	}, nil
}

// CertificateFileUpload stores the scanned document for a certificate.
// @Summary Upload certificate file
// @Tags Registry, Certificates
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Worker ID"
// @Param cert_id path string true "Certificate ID"
// @Param file formData file true "Certificate document (PDF or image)"
// @Success 200 {object} router.successResponse "Uploaded"
// @Failure 404 {object} router.errorResponse "Certificate not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/registry/workers/{id}/certificates/{cert_id}/file [put]
func (h *HTTPEndpoint) CertificateFileUpload(r *router.Request) (any, error) {
	ctx := r.Context()

	workerID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}
	certID, err := r.GetParamInt64("cert_id")
	if err != nil {
		return nil, err
	}

	file, err := r.StreamSingleFile("file")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close file", "error", err)
		}
	}()

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, goerror.NewInvalidFormat()
	}

	return nil, h.uc.CertificateFileUpload(ctx, usecase.CertificateFileUploadInput{
		WorkerID:      workerID,
		CertificateID: certID,
		File:          io.MultiReader(bytes.NewReader(head[:n]), file),
		ContentType:   http.DetectContentType(head[:n]),
	})
}

// CertificateFileURL returns a signed download URL for a certificate file.
// @Summary Certificate file URL
// @Tags Registry, Certificates
// @Security BearerAuth
// @Produce json
// @Param id path string true "Worker ID"
// @Param cert_id path string true "Certificate ID"
// @Success 200 {object} router.successResponse{data=CertificateFileURLResponse} "Signed URL"
// @Failure 404 {object} router.errorResponse "Certificate or file not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/registry/workers/{id}/certificates/{cert_id}/file [get]
func (h *HTTPEndpoint) CertificateFileURL(r *router.Request) (any, error) {
	workerID, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}
	certID, err := r.GetParamInt64("cert_id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.CertificateFileURL(r.Context(), usecase.CertificateFileURLInput{
		WorkerID:      workerID,
		CertificateID: certID,
	})
	if err != nil {
		return nil, err
	}

	return CertificateFileURLResponse{
		URL:       resp.URL,
		ExpiresIn: int64(resp.ExpiresIn / time.Second),
	}, nil
}

// CompanyList lists companies.
// @Summary List companies
// @Tags Registry, Companies
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=CompaniesResponse} "Company list"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/registry/companies [get]
func (h *HTTPEndpoint) CompanyList(r *router.Request) (any, error) {
	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}
	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.CompanyList(r.Context(), usecase.CompanyListInput{
		Search: r.GetQuery("search"),
		Size:   size,
		Page:   page,
	})
	if err != nil {
		return nil, err
	}

	companies := make([]CompanyResponse, 0, len(resp.Companies))
	for _, item := range resp.Companies {
		companies = append(companies, toCompanyResponse(item))
	}

	return CompaniesResponse{
		Companies: companies,
		total:     resp.Total,
		size:      resp.Size,
		page:      resp.Page,
	}, nil
}

// CompanyDetail returns one company.
// @Summary Company detail
// @Tags Registry, Companies
// @Security BearerAuth
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} router.successResponse{data=CompanyDetailResponse} "Company detail"
// @Failure 404 {object} router.errorResponse "Company not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/registry/companies/{id} [get]
func (h *HTTPEndpoint) CompanyDetail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.CompanyDetail(r.Context(), usecase.CompanyDetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return CompanyDetailResponse{Company: toCompanyResponse(resp.Company)}, nil
}

// CompanyCreate registers a new company.
// @Summary Create company
// @Tags Registry, Companies
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CompanyCreateRequest true "Company payload"
// @Success 200 {object} router.successResponse "Created"
// @Failure 409 {object} router.errorResponse "Duplicate VAT number"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/registry/companies [post]
func (h *HTTPEndpoint) CompanyCreate(r *router.Request) (any, error) {
	var req CompanyCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.CompanyCreate(r.Context(), usecase.CompanyCreateInput{
		Name:      req.Name,
		VATNumber: req.VATNumber,
		City:      req.City,
		Province:  req.Province,
	})
}

// CompanyUpdate updates a company's fields.
// @Summary Update company
// @Tags Registry, Companies
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Company ID"
// @Param request body CompanyUpdateRequest true "Company payload"
// @Success 200 {object} router.successResponse "Updated"
// @Failure 404 {object} router.errorResponse "Company not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/registry/companies/{id} [put]
func (h *HTTPEndpoint) CompanyUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req CompanyUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.CompanyUpdate(r.Context(), usecase.CompanyUpdateInput{
		ID:       id,
		Name:     req.Name,
		City:     req.City,
		Province: req.Province,
	})
}

// CompanyDelete removes a company without registered workers.
// @Summary Delete company
// @Tags Registry, Companies
// @Security BearerAuth
// @Produce json
// @Param id path string true "Company ID"
// @Success 200 {object} router.successResponse "Deleted"
// @Failure 404 {object} router.errorResponse "Company not found"
// @Failure 409 {object} router.errorResponse "Company still has workers"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/registry/companies/{id} [delete]
func (h *HTTPEndpoint) CompanyDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	return nil, h.uc.CompanyDelete(r.Context(), usecase.CompanyDeleteInput{ID: id})
}

func toCertificateInputs(reqs []WorkerCertificateRequest) []usecase.WorkerCertificateInput {
	certs := make([]usecase.WorkerCertificateInput, 0, len(reqs))
	for _, c := range reqs {
		certs = append(certs, usecase.WorkerCertificateInput{
			Name:       c.Name,
			IssueDate:  c.IssueDate,
			ExpiryDate: c.ExpiryDate,
		})
	}
	return certs
}

func toWorkerResponse(w entity.Worker) WorkerResponse {
	certs := make([]CertificateResponse, 0, len(w.Certificates))
	for _, c := range w.Certificates {
		certs = append(certs, CertificateResponse{
			ID:         c.ID,
			Name:       c.Name,
			IssueDate:  c.IssueDate,
			ExpiryDate: c.ExpiryDate,
			HasFile:    c.FileKey != "",
		})
	}

	return WorkerResponse{
		ID:            w.ID,
		FirstName:     w.FirstName,
		LastName:      w.LastName,
		CodiceFiscale: w.CodiceFiscale,
		Email:         w.Email,
		Phone:         w.Phone,
		BirthDate:     w.BirthDate,
		CompanyID:     w.CompanyID,
		Status:        w.Status,
		Certificates:  certs,
		UpdatedAt:     w.UpdatedAt,
	}
}

func toCompanyResponse(c entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		VATNumber: c.VATNumber,
		City:      c.City,
		Province:  c.Province,
		UpdatedAt: c.UpdatedAt,
	}
}

func writeRawError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "Internal server error"

	var gerr *goerror.Error
	if errors.As(err, &gerr) {
		status = gerr.StatusCode()
		msg = gerr.Msg()
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
