package usecase

import (
	"context"
	"log/slog"

	"github.com/casbin/casbin/v3"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/clock"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/config"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goerror"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/instrument"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/jwt"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/storage"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/uid"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/validator"
	"github.com/PC8-Cloud/GestCert-sub000/internal/registry/entity"
	"go.opentelemetry.io/otel/trace"
)

type WorkersImportedEvent struct {
	OperatorID int64
	Created    int
	Updated    int
	Failed     int
}

type repoMessaging interface {
	PublishWorkersImported(ctx context.Context, msg WorkersImportedEvent) error
}

type repoDB interface {
	GetWorkerList(ctx context.Context, filter entity.WorkerListFilterData) ([]entity.Worker, int64, error)
	GetWorkerByID(ctx context.Context, id int64) (*entity.Worker, error)
	GetWorkerIDByCodiceFiscale(ctx context.Context, cf string) (int64, error)
	GetCertificateByID(ctx context.Context, id, workerID int64) (*entity.Certificate, error)
	GetAllCertificateExpiries(ctx context.Context) ([]entity.Certificate, error)

	CreateWorker(ctx context.Context, worker entity.NewWorker) error
	UpdateWorker(ctx context.Context, worker entity.PatchWorker) error
	MarkWorkerDeleted(ctx context.Context, id, byID int64) error
	UpsertWorkers(ctx context.Context, workers []entity.UpsertWorker) (created, updated int, err error)
	UpdateCertificateFileKey(ctx context.Context, id, workerID int64, fileKey string) error

	GetCompanyList(ctx context.Context, search string, size, page int32) ([]entity.Company, int64, error)
	GetCompanyByID(ctx context.Context, id int64) (*entity.Company, error)
	CreateCompany(ctx context.Context, company entity.NewCompany) error
	UpdateCompany(ctx context.Context, company entity.PatchCompany) error
	DeleteCompany(ctx context.Context, id int64) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	storage       storage.Storage
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	enforcer      *casbin.Enforcer
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Storage       storage.Storage
	UID           uid.NumberID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Enforcer      *casbin.Enforcer
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		storage:       dep.Storage,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		enforcer:      dep.Enforcer,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("registry.usecase").Start(ctx, name)
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	ok, err := s.enforcer.Enforce(clm.Subject, obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "user_id", clm.Subject, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}
