package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PC8-Cloud/GestCert-sub000/internal/alerting/entity"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/config"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goerror"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/instrument"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/mail"
	"github.com/stretchr/testify/assert"
)

type stubClock struct{ now time.Time }

func (c stubClock) Now() time.Time { return c.now }

type stubConfig struct{ config.Config }

func (stubConfig) GetSecond(string) time.Duration { return time.Second }

type stubRepoDB struct {
	settings     *entity.Settings
	settingsErr  error
	templates    map[entity.TemplateKey]*entity.Template
	candidates   []entity.Candidate
	lastSentDate string
}

func (s *stubRepoDB) GetSettings(context.Context) (*entity.Settings, error) {
	if s.settingsErr != nil {
		return nil, s.settingsErr
	}
	return s.settings, nil
}

func (s *stubRepoDB) SaveSettings(context.Context, entity.Settings, int64) error { return nil }

func (s *stubRepoDB) UpdateLastSentDate(_ context.Context, date string) error {
	s.lastSentDate = date
	return nil
}

func (s *stubRepoDB) GetTemplate(_ context.Context, key entity.TemplateKey) (*entity.Template, error) {
	if tpl, ok := s.templates[key]; ok {
		return tpl, nil
	}
	return nil, goerror.ErrNotFound
}

func (s *stubRepoDB) SaveTemplate(context.Context, entity.Template, int64) error { return nil }

func (s *stubRepoDB) GetCandidates(context.Context) ([]entity.Candidate, error) {
	return s.candidates, nil
}

type stubMail struct {
	sent    []mail.Message
	failFor string
}

func (s *stubMail) Send(_ context.Context, msg mail.Message) error {
	if s.failFor != "" && len(msg.To) > 0 && msg.To[0] == s.failFor {
		return errors.New("connection refused")
	}
	s.sent = append(s.sent, msg)
	return nil
}

func newRunUsecase(repo *stubRepoDB, mailer *stubMail, now time.Time) *Usecase {
	return New(Dependency{
		RepoDB:     repo,
		RepoMail:   mailer,
		Config:     stubConfig{},
		Clock:      stubClock{now: now},
		Instrument: instrument.NewNoop(),
	})
}

func TestRunScheduled(t *testing.T) {
	now := time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC)

	settings := entity.Settings{
		Enabled:        true,
		ThresholdDays:  []int{30, 14, 7, 1},
		NotifyWorkers:  true,
		NotifyOperator: true,
		OperatorEmail:  "operatore@example.com",
		DailyDigest:    true,
	}

	candidates := []entity.Candidate{
		{
			Recipient: entity.Recipient{WorkerID: 1, FirstName: "Mario", LastName: "Rossi", Email: "mario@example.com"},
			Certificates: []entity.CandidateCertificate{
				{Name: "Formazione base", ExpiryDate: time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC)},
			},
		},
		{
			Recipient: entity.Recipient{WorkerID: 2, FirstName: "Anna", LastName: "Verdi"},
			Certificates: []entity.CandidateCertificate{
				{Name: "Antincendio", ExpiryDate: time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)},
			},
		},
	}

	t.Run("sends worker mail and operator summary, records the date", func(t *testing.T) {
		repo := &stubRepoDB{settings: &settings, candidates: candidates}
		mailer := &stubMail{}
		uc := newRunUsecase(repo, mailer, now)

		got, err := uc.RunScheduled(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 2, got.Sent)
		assert.Len(t, mailer.sent, 2)
		assert.Equal(t, []string{"mario@example.com"}, mailer.sent[0].To)
		assert.Equal(t, []string{"operatore@example.com"}, mailer.sent[1].To)
		assert.Contains(t, mailer.sent[1].TextBody, "Mario Rossi")
		assert.Equal(t, "2025-01-01", repo.lastSentDate)
	})

	t.Run("already sent today declines without sending", func(t *testing.T) {
		s := settings
		s.LastSentDate = "2025-01-01"
		repo := &stubRepoDB{settings: &s, candidates: candidates}
		mailer := &stubMail{}
		uc := newRunUsecase(repo, mailer, now)

		got, err := uc.RunScheduled(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 0, got.Sent)
		assert.Equal(t, "notifications already sent today", got.Message)
		assert.Empty(t, mailer.sent)
	})

	t.Run("disabled notifications are an error", func(t *testing.T) {
		s := settings
		s.Enabled = false
		repo := &stubRepoDB{settings: &s}
		uc := newRunUsecase(repo, &stubMail{}, now)

		_, err := uc.RunScheduled(context.Background())

		assert.Error(t, err)
	})

	t.Run("missing settings row falls back to defaults", func(t *testing.T) {
		repo := &stubRepoDB{settingsErr: goerror.ErrNotFound, candidates: candidates}
		mailer := &stubMail{}
		uc := newRunUsecase(repo, mailer, now)

		got, err := uc.RunScheduled(context.Background())

		assert.NoError(t, err)
		// defaults have no operator notification, only the worker mail goes out
		assert.Equal(t, 1, got.Sent)
		assert.Equal(t, "2025-01-01", repo.lastSentDate)
	})

	t.Run("zero matches still record the date", func(t *testing.T) {
		repo := &stubRepoDB{settings: &settings}
		mailer := &stubMail{}
		uc := newRunUsecase(repo, mailer, now)

		got, err := uc.RunScheduled(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 0, got.Sent)
		assert.Empty(t, mailer.sent)
		assert.Equal(t, "2025-01-01", repo.lastSentDate)
	})

	t.Run("failed send is skipped, run continues", func(t *testing.T) {
		repo := &stubRepoDB{settings: &settings, candidates: candidates}
		mailer := &stubMail{failFor: "mario@example.com"}
		uc := newRunUsecase(repo, mailer, now)

		got, err := uc.RunScheduled(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 1, got.Sent)
		assert.Len(t, mailer.sent, 1)
		assert.Equal(t, []string{"operatore@example.com"}, mailer.sent[0].To)
	})
}
