package leads

import (
	"context"
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     SubmitLeadRequest
		wantErr error
	}{
		{"valid", SubmitLeadRequest{Name: "Jane", Email: "jane@example.com"}, nil},
		{"valid with optionals", SubmitLeadRequest{Name: "Jane", Email: "jane@example.com", Company: "Acme", Message: "hi"}, nil},
		{"missing name", SubmitLeadRequest{Email: "jane@example.com"}, ErrNameRequired},
		{"whitespace name", SubmitLeadRequest{Name: "   ", Email: "jane@example.com"}, ErrNameRequired},
		{"missing email", SubmitLeadRequest{Name: "Jane"}, ErrEmailRequired},
		{"malformed email", SubmitLeadRequest{Name: "Jane", Email: "not-an-email"}, ErrEmailInvalid},
		{"email with display name", SubmitLeadRequest{Name: "Jane", Email: "Jane <jane@example.com>"}, ErrEmailInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil && !IsValidationError(err) {
				t.Fatalf("expected %v to classify as validation error", err)
			}
		})
	}
}

func TestNormalizedEmail(t *testing.T) {
	req := SubmitLeadRequest{Email: "  Jane@Example.COM "}
	if got := req.NormalizedEmail(); got != "jane@example.com" {
		t.Fatalf("expected normalized email, got %q", got)
	}
}

func TestInMemoryRepositoryCreate(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	req := &SubmitLeadRequest{
		Name:    "Jane Smith",
		Email:   "jane@example.com",
		Company: "Acme Co",
		Message: "Looking for a demo",
		Source:  "website",
	}

	lead, err := repo.Create(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.ID == "" {
		t.Error("expected lead ID to be set")
	}
	if lead.Name != req.Name {
		t.Errorf("expected name %s, got %s", req.Name, lead.Name)
	}
	if lead.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestInMemoryRepositoryCreateRejectsInvalid(t *testing.T) {
	repo := NewInMemoryRepository()

	_, err := repo.Create(context.Background(), &SubmitLeadRequest{Name: "Jane"})
	if !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("expected ErrEmailRequired, got %v", err)
	}
}

func TestInMemoryRepositoryGetByID(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &SubmitLeadRequest{Name: "Test User", Email: "test@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("expected ID %s, got %s", created.ID, found.ID)
	}

	if _, err := repo.GetByID(ctx, "nonexistent"); !errors.Is(err, ErrLeadNotFound) {
		t.Errorf("expected ErrLeadNotFound, got %v", err)
	}
}
