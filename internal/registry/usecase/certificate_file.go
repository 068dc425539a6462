package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goerror"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/storage"
	"github.com/PC8-Cloud/GestCert-sub000/internal/shared/constant"
)

//nolint:gochecknoglobals // global for fast reuse
var certificateContentTypeExt = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

var errCertificateFileTooLarge = errors.New("certificate file exceeds max size")

type (
	CertificateFileUploadInput struct {
		WorkerID      int64
		CertificateID int64
		File          io.Reader
		ContentType   string
	}

	CertificateFileURLInput struct {
		WorkerID      int64
		CertificateID int64
	}

	CertificateFileURLOutput struct {
		URL       string
		ExpiresIn time.Duration
	}
)

// CertificateFileUpload stores the scanned document for a certificate and
// records its object key. Re-upload replaces the previous file reference.
func (s *Usecase) CertificateFileUpload(ctx context.Context, in CertificateFileUploadInput) error {
	ctx, span := s.startSpan(ctx, "CertificateFileUpload")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermRegistryWorkers, constant.PermActUpdate); err != nil {
		return err
	}

	if in.File == nil {
		return goerror.NewInvalidInput(nil, "file", "certificate file is required")
	}

	contentType := strings.ToLower(strings.TrimSpace(in.ContentType))
	ext, ok := certificateContentTypeExt[contentType]
	if !ok {
		return goerror.NewInvalidInput(nil, "file", "unsupported certificate content type")
	}

	cert, err := s.repoDB.GetCertificateByID(ctx, in.CertificateID, in.WorkerID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("certificate not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get certificate", "certificate_id", in.CertificateID, "error", err)
		return goerror.NewServer(err)
	}

	bucket := strings.TrimSpace(s.cfg.GetString("modules.registry.certificate_bucket"))
	maxSize := s.cfg.GetInt64("modules.registry.certificate_max_size_bytes")
	key := fmt.Sprintf("certificates/%d/%d%s", in.WorkerID, cert.ID, ext)

	reader := &maxBytesReader{r: in.File, max: maxSize}
	_, err = s.storage.PutObject(ctx, bucket, key, reader, storage.PutOptions{
		Size:        -1,
		ContentType: contentType,
		Metadata:    map[string]string{"worker_id": strconv.FormatInt(in.WorkerID, 10)},
	})
	if err != nil {
		if errors.Is(err, errCertificateFileTooLarge) {
			return goerror.NewInvalidInput(errCertificateFileTooLarge)
		}
		slog.ErrorContext(ctx, "failed to upload certificate file", "certificate_id", cert.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.UpdateCertificateFileKey(ctx, cert.ID, in.WorkerID, key); err != nil {
		slog.ErrorContext(ctx, "failed to repo update certificate file key", "certificate_id", cert.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

// CertificateFileURL returns a short-lived signed download URL for the
// certificate's stored file.
func (s *Usecase) CertificateFileURL(ctx context.Context, in CertificateFileURLInput) (*CertificateFileURLOutput, error) {
	ctx, span := s.startSpan(ctx, "CertificateFileURL")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermRegistryWorkers, constant.PermActRead); err != nil {
		return nil, err
	}

	cert, err := s.repoDB.GetCertificateByID(ctx, in.CertificateID, in.WorkerID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("certificate not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get certificate", "certificate_id", in.CertificateID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if cert.FileKey == "" {
		return nil, goerror.NewBusiness("certificate has no stored file", goerror.CodeNotFound)
	}

	bucket := strings.TrimSpace(s.cfg.GetString("modules.registry.certificate_bucket"))
	expiresIn := 15 * time.Minute

	url, err := s.storage.PresignGet(ctx, bucket, cert.FileKey, expiresIn)
	if err != nil {
		slog.ErrorContext(ctx, "failed to presign certificate file", "certificate_id", cert.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CertificateFileURLOutput{URL: url, ExpiresIn: expiresIn}, nil
}

type maxBytesReader struct {
	r     io.Reader
	max   int64
	read  int64
	buf   [1]byte
	ended bool
}

func (m *maxBytesReader) Read(p []byte) (int, error) {
	if m.read >= m.max {
		if m.ended {
			return 0, errCertificateFileTooLarge
		}

		n, err := m.r.Read(m.buf[:])
		if n > 0 {
			m.ended = true
			return 0, errCertificateFileTooLarge
		}
		if err == nil {
			m.ended = true
			return 0, errCertificateFileTooLarge
		}
		return 0, err
	}

	remaining := m.max - m.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := m.r.Read(p)
	m.read += int64(n)
	return n, err
}
