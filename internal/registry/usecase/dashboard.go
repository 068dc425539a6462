package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/expiry"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goerror"
	"github.com/PC8-Cloud/GestCert-sub000/internal/shared/constant"
)

type DashboardOutput struct {
	Expired     int
	Today       int
	WithinWeek  int
	WithinMonth int
}

// Dashboard tallies every certificate in the registry into the four
// cumulative expiry buckets shown on the summary tiles.
func (s *Usecase) Dashboard(ctx context.Context) (*DashboardOutput, error) {
	ctx, span := s.startSpan(ctx, "Dashboard")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermRegistryDashboard, constant.PermActRead); err != nil {
		return nil, err
	}

	certs, err := s.repoDB.GetAllCertificateExpiries(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list certificate expiries", "error", err)
		return nil, goerror.NewServer(err)
	}

	expiries := make([]time.Time, 0, len(certs))
	for _, c := range certs {
		expiries = append(expiries, c.ExpiryDate)
	}

	summary := expiry.Count(expiries, s.clock.Now())

	return &DashboardOutput{
		Expired:     summary.Expired,
		Today:       summary.Today,
		WithinWeek:  summary.WithinWeek,
		WithinMonth: summary.WithinMonth,
	}, nil
}
