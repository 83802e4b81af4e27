package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/brightfold/lead-capture-api/pkg/logging"
)

func seedRepo(t *testing.T, repo Repository, reqs ...*SubmitLeadRequest) []*Lead {
	t.Helper()
	out := make([]*Lead, 0, len(reqs))
	for _, req := range reqs {
		lead, err := repo.Create(context.Background(), req)
		if err != nil {
			t.Fatalf("seed lead: %v", err)
		}
		out = append(out, lead)
	}
	return out
}

func TestListLeads(t *testing.T) {
	repo := NewInMemoryRepository()
	seedRepo(t, repo,
		&SubmitLeadRequest{Name: "Jane Smith", Email: "jane@example.com", Source: "website"},
		&SubmitLeadRequest{Name: "John Doe", Email: "john@example.com", Source: "referral"},
	)
	handler := NewHandler(repo, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
	w := httptest.NewRecorder()
	handler.ListLeads(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp ListLeadsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected 2 leads, got %d", resp.Count)
	}
}

func TestListLeadsSourceFilter(t *testing.T) {
	repo := NewInMemoryRepository()
	seedRepo(t, repo,
		&SubmitLeadRequest{Name: "Jane Smith", Email: "jane@example.com", Source: "website"},
		&SubmitLeadRequest{Name: "John Doe", Email: "john@example.com", Source: "referral"},
	)
	handler := NewHandler(repo, logging.Default())

	req := httptest.NewRequest(http.MethodGet, "/admin/leads?source=referral", nil)
	w := httptest.NewRecorder()
	handler.ListLeads(w, req)

	var resp ListLeadsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 || resp.Leads[0].Source != "referral" {
		t.Fatalf("expected one referral lead, got %+v", resp.Leads)
	}
}

func TestGetLead(t *testing.T) {
	repo := NewInMemoryRepository()
	created := seedRepo(t, repo,
		&SubmitLeadRequest{Name: "Jane Smith", Email: "jane@example.com"},
	)[0]
	handler := NewHandler(repo, logging.Default())

	r := chi.NewRouter()
	r.Get("/admin/leads/{id}", handler.GetLead)

	req := httptest.NewRequest(http.MethodGet, "/admin/leads/"+created.ID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var lead Lead
	if err := json.NewDecoder(w.Body).Decode(&lead); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if lead.ID != created.ID {
		t.Fatalf("expected lead %s, got %s", created.ID, lead.ID)
	}
}

func TestGetLeadNotFound(t *testing.T) {
	handler := NewHandler(NewInMemoryRepository(), logging.Default())

	r := chi.NewRouter()
	r.Get("/admin/leads/{id}", handler.GetLead)

	req := httptest.NewRequest(http.MethodGet, "/admin/leads/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}
