package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/brightfold/lead-capture-api/internal/content"
	"github.com/brightfold/lead-capture-api/internal/leads"
	"github.com/brightfold/lead-capture-api/pkg/logging"
)

const defaultSubject = "Thanks for reaching out"

// fallbackBodyTemplate is used whenever the generator cannot produce a
// personalized body. {name} may render as empty text; the surrounding copy
// must read correctly either way.
const fallbackBodyTemplate = "Hi{name},\n\nThanks for getting in touch. We received your information and a member of our team will contact you within one business day.\n\nBrightfold"

// ConfirmationMailer builds and sends the lead confirmation email. A
// content-generation failure is absorbed here by substituting fallback copy;
// only a delivery failure is returned to the caller.
type ConfirmationMailer struct {
	generator content.Generator
	sender    EmailSender
	subject   string
	logger    *logging.Logger
}

// NewConfirmationMailer creates a confirmation mailer.
func NewConfirmationMailer(generator content.Generator, sender EmailSender, subject string, logger *logging.Logger) *ConfirmationMailer {
	if sender == nil {
		panic("notify: email sender required")
	}
	if subject == "" {
		subject = defaultSubject
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ConfirmationMailer{
		generator: generator,
		sender:    sender,
		subject:   subject,
		logger:    logger,
	}
}

// SendConfirmation sends exactly one confirmation email to the lead.
func (m *ConfirmationMailer) SendConfirmation(ctx context.Context, lead *leads.Lead) error {
	if lead == nil || strings.TrimSpace(lead.Email) == "" {
		return fmt.Errorf("notify: confirmation requires a recipient email")
	}

	body := m.generateBody(ctx, lead)

	msg := EmailMessage{
		To:      lead.Email,
		ToName:  lead.Name,
		Subject: m.subject,
		Body:    body,
	}
	if err := m.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: confirmation send failed: %w", err)
	}
	return nil
}

func (m *ConfirmationMailer) generateBody(ctx context.Context, lead *leads.Lead) string {
	if m.generator == nil {
		return fallbackBody(lead)
	}

	body, err := m.generator.Generate(ctx, content.ConfirmationInput{
		Name:    lead.Name,
		Email:   lead.Email,
		Company: lead.Company,
		Message: lead.Message,
	})
	if err != nil {
		m.logger.Warn("confirmation body generation failed, using fallback copy", "error", err, "lead_id", lead.ID)
		return fallbackBody(lead)
	}
	return body
}

// fallbackBody renders the static copy. Substitution is null-safe: a missing
// name becomes empty text, never an error.
func fallbackBody(lead *leads.Lead) string {
	name := ""
	if lead != nil {
		name = strings.TrimSpace(lead.Name)
	}
	if name != "" {
		name = " " + name
	}
	return strings.NewReplacer("{name}", name).Replace(fallbackBodyTemplate)
}
