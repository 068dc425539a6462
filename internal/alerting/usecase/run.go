package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PC8-Cloud/GestCert-sub000/internal/alerting/entity"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goerror"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/mail"
	"github.com/PC8-Cloud/GestCert-sub000/internal/shared/constant"
)

const defaultSendTimeout = 10 * time.Second

type RunInput struct {
	Force bool
}

type RunOutput struct {
	Message string
	Sent    int
}

// Run executes the notification run on behalf of an authenticated operator.
func (s *Usecase) Run(ctx context.Context, in RunInput) (*RunOutput, error) {
	ctx, span := s.startSpan(ctx, "Run")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermAlertingRun, constant.PermActExecute); err != nil {
		return nil, err
	}

	return s.run(ctx, in.Force)
}

// RunScheduled executes the unforced daily run on behalf of the scheduler
// tick coming in over the message bus.
func (s *Usecase) RunScheduled(ctx context.Context) (*RunOutput, error) {
	ctx, span := s.startSpan(ctx, "RunScheduled")
	defer span.End()

	return s.run(ctx, false)
}

// run is the notification pipeline: guard, match, digest, dispatch, record.
// Two overlapping runs can both pass the guard before either records; the
// guard is best effort, not a lock.
func (s *Usecase) run(ctx context.Context, force bool) (*RunOutput, error) {
	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	if !settings.Enabled {
		return nil, goerror.NewBusiness("notifications are disabled", goerror.CodeInvalidFormat)
	}

	today := s.clock.Now().UTC().Format(time.DateOnly)
	if !settings.ShouldRun(today, force) {
		return &RunOutput{Message: "notifications already sent today", Sent: 0}, nil
	}

	candidates, err := s.repoDB.GetCandidates(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get notification candidates", "error", err)
		return nil, goerror.NewServer(err)
	}

	matches := entity.MatchCandidates(candidates, settings.ThresholdDays, s.clock.Now())

	var messages []entity.Message
	var digestLines []string
	if settings.NotifyWorkers {
		userTpl, err := s.loadTemplate(ctx, entity.TemplateUserExpiry)
		if err != nil {
			return nil, err
		}

		digest := entity.BuildDigest(matches, userTpl)
		messages = digest.Messages
		digestLines = digest.DigestLines
	}

	if settings.NotifyOperator {
		opTpl, err := s.loadTemplate(ctx, entity.TemplateOperatorDigest)
		if err != nil {
			return nil, err
		}

		if msg, ok := entity.OperatorSummary(digestLines, opTpl, settings.OperatorEmail); ok {
			messages = append(messages, msg)
		}
	}

	sent := 0
	for _, msg := range messages {
		if err := s.send(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "failed to send expiry notification", "worker_id", msg.WorkerID, "error", err)
			continue
		}
		sent++
	}

	// Zero matches still record the date, so the same day is not re-evaluated.
	if !force {
		if err := s.repoDB.UpdateLastSentDate(ctx, today); err != nil {
			slog.ErrorContext(ctx, "failed to repo record last sent date", "date", today, "error", err)
		}
	}

	return &RunOutput{
		Message: fmt.Sprintf("notification run completed, %d of %d messages sent", sent, len(messages)),
		Sent:    sent,
	}, nil
}

// send dispatches one message with a bounded timeout so an unreachable mail
// server cannot stall the rest of the run.
func (s *Usecase) send(ctx context.Context, msg entity.Message) error {
	timeout := s.cfg.GetSecond("modules.alerting.send_timeout_seconds")
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return s.repoMail.Send(ctx, mail.Message{
		To:       []string{msg.To},
		Subject:  msg.Subject,
		TextBody: msg.Body,
	})
}
