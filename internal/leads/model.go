package leads

import (
	"net/mail"
	"strings"
	"time"
)

// Lead represents a lead submission from a web form
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message,omitempty"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitLeadRequest represents the request body for submitting a lead
type SubmitLeadRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Source  string `json:"source"`
}

// Validate checks the required fields before any storage or network call is
// attempted. Name must be non-empty after trimming; email must parse as a
// bare RFC 5322 address.
func (r *SubmitLeadRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		return ErrEmailRequired
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrEmailInvalid
	}
	return nil
}

// NormalizedEmail returns the email lowercased and trimmed, used as the
// in-flight submission key.
func (r *SubmitLeadRequest) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(r.Email))
}
