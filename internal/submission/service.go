// Package submission owns the lead-capture control flow: validate, persist
// the lead exactly once, then make one best-effort confirmation-email
// attempt. The email step never fails the submission; its outcome is
// reported separately on the Result.
package submission

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/brightfold/lead-capture-api/internal/leads"
	"github.com/brightfold/lead-capture-api/internal/observability/metrics"
	"github.com/brightfold/lead-capture-api/pkg/logging"
)

// ErrSubmissionInFlight is returned when a submission for the same email
// address is already being processed.
var ErrSubmissionInFlight = errors.New("submission: already in flight for this email")

// Status distinguishes a clean success from a degraded one, so callers and
// tests can assert on the degraded path directly instead of inspecting logs.
type Status string

const (
	// StatusOK means the lead was stored and the confirmation email sent.
	StatusOK Status = "ok"
	// StatusDegraded means the lead was stored but the confirmation email
	// could not be sent.
	StatusDegraded Status = "degraded"
)

// Result is the outcome of one submission attempt.
type Result struct {
	Lead      *leads.Lead
	Status    Status
	EmailSent bool
}

// ConfirmationSender delivers the confirmation email for a stored lead.
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, lead *leads.Lead) error
}

// Service processes lead form submissions.
type Service struct {
	repo    leads.Repository
	mailer  ConfirmationSender
	metrics *metrics.LeadMetrics
	logger  *logging.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewService creates a submission service. metrics may be nil.
func NewService(repo leads.Repository, mailer ConfirmationSender, m *metrics.LeadMetrics, logger *logging.Logger) *Service {
	if repo == nil {
		panic("submission: repository required")
	}
	if mailer == nil {
		panic("submission: confirmation sender required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:     repo,
		mailer:   mailer,
		metrics:  m,
		logger:   logger,
		inFlight: make(map[string]struct{}),
	}
}

// Submit runs one submission attempt.
//
// Invariants: at most one repository Create and at most one confirmation
// send per call; the send happens only after a successful Create; a send
// failure is absorbed and reported via Result.Status, never as an error.
// While a submission for an email address is in flight, further Submit calls
// for the same address are rejected without touching storage.
func (s *Service) Submit(ctx context.Context, req *leads.SubmitLeadRequest) (*Result, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		s.metrics.ObserveSubmission(metrics.OutcomeValidationError)
		return nil, err
	}

	key := req.NormalizedEmail()
	if !s.begin(key) {
		s.metrics.ObserveSubmission(metrics.OutcomeInFlight)
		return nil, ErrSubmissionInFlight
	}
	defer s.end(key)

	lead, err := s.repo.Create(ctx, req)
	if err != nil {
		if leads.IsValidationError(err) {
			s.metrics.ObserveSubmission(metrics.OutcomeValidationError)
			return nil, err
		}
		s.metrics.ObserveSubmission(metrics.OutcomePersistenceError)
		return nil, fmt.Errorf("submission: persist lead: %w", err)
	}

	result := &Result{Lead: lead, Status: StatusOK}
	if err := s.mailer.SendConfirmation(ctx, lead); err != nil {
		s.logger.Error("confirmation email failed", "error", err, "lead_id", lead.ID)
		result.Status = StatusDegraded
		s.metrics.ObserveConfirmation(false)
		s.metrics.ObserveSubmission(metrics.OutcomeDegraded)
	} else {
		result.EmailSent = true
		s.metrics.ObserveConfirmation(true)
		s.metrics.ObserveSubmission(metrics.OutcomeOK)
	}

	s.metrics.ObserveSubmitLatency(time.Since(start).Seconds())
	return result, nil
}

func (s *Service) begin(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[key]; busy {
		return false
	}
	s.inFlight[key] = struct{}{}
	return true
}

func (s *Service) end(key string) {
	s.mu.Lock()
	delete(s.inFlight, key)
	s.mu.Unlock()
}
