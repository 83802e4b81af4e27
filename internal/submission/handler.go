package submission

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brightfold/lead-capture-api/internal/leads"
	"github.com/brightfold/lead-capture-api/pkg/logging"
)

// User-facing copy selected by the email outcome.
const (
	msgEmailSent = "Thanks! We sent you a confirmation email."
	msgReceived  = "We received your info and will contact you soon."
)

// Handler handles HTTP requests for lead submissions
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new submission handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// SubmitResponse is the response body for a stored lead.
type SubmitResponse struct {
	Lead      *leads.Lead `json:"lead"`
	EmailSent bool        `json:"email_sent"`
	Message   string      `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// SubmitLead handles POST /api/leads requests
func (h *Handler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	var req leads.SubmitLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		switch {
		case leads.IsValidationError(err):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, ErrSubmissionInFlight):
			writeJSON(w, http.StatusConflict, errorResponse{Error: "a submission for this email is already being processed"})
		default:
			h.logger.Error("failed to submit lead", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to store your information, please try again"})
		}
		return
	}

	h.logger.Info("lead captured",
		"id", result.Lead.ID,
		"name", result.Lead.Name,
		"email_sent", result.EmailSent,
	)

	message := msgReceived
	if result.EmailSent {
		message = msgEmailSent
	}
	writeJSON(w, http.StatusCreated, SubmitResponse{
		Lead:      result.Lead,
		EmailSent: result.EmailSent,
		Message:   message,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
