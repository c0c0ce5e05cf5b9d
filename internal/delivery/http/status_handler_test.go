package http

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/FenadoAI/fv2-rate-scout-60fuee/internal/domain"
)

type stubStatusRepo struct {
	saved  []*domain.StatusCheck
	checks []*domain.StatusCheck
	err    error

	gotLimit int
}

func (r *stubStatusRepo) Save(ctx context.Context, check *domain.StatusCheck) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, check)
	return nil
}

func (r *stubStatusRepo) List(ctx context.Context, limit int) ([]*domain.StatusCheck, error) {
	r.gotLimit = limit
	return r.checks, r.err
}

func TestCreateStatusCheck(t *testing.T) {
	repo := &stubStatusRepo{}
	h := NewStatusHandler(repo)

	rec := postJSON(t, h.CreateStatusCheck, "/api/status", `{"client_name":"frontend-app"}`)

	if rec.Code != nethttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var check domain.StatusCheck
	if err := json.Unmarshal(rec.Body.Bytes(), &check); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}
	if check.ClientName != "frontend-app" {
		t.Errorf("ClientName = %q, want frontend-app", check.ClientName)
	}
	if check.ID == uuid.Nil {
		t.Error("ID should be generated")
	}
	if check.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}

	if len(repo.saved) != 1 || repo.saved[0].ClientName != "frontend-app" {
		t.Errorf("saved = %+v, want the created check", repo.saved)
	}
}

func TestCreateStatusCheck_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"client_name":`},
		{"missing client_name", `{}`},
		{"empty client_name", `{"client_name":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubStatusRepo{}
			h := NewStatusHandler(repo)

			rec := postJSON(t, h.CreateStatusCheck, "/api/status", tt.body)

			if rec.Code != nethttp.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if len(repo.saved) != 0 {
				t.Errorf("nothing should be saved, got %+v", repo.saved)
			}
		})
	}
}

func TestCreateStatusCheck_SaveError(t *testing.T) {
	h := NewStatusHandler(&stubStatusRepo{err: errors.New("db down")})

	rec := postJSON(t, h.CreateStatusCheck, "/api/status", `{"client_name":"c"}`)

	if rec.Code != nethttp.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestListStatusChecks(t *testing.T) {
	repo := &stubStatusRepo{checks: []*domain.StatusCheck{
		{ID: uuid.New(), ClientName: "a", Timestamp: time.Now().UTC()},
		{ID: uuid.New(), ClientName: "b", Timestamp: time.Now().UTC()},
	}}
	h := NewStatusHandler(repo)

	e := echo.New()
	req := httptest.NewRequest(nethttp.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	if err := h.ListStatusChecks(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var checks []domain.StatusCheck
	if err := json.Unmarshal(rec.Body.Bytes(), &checks); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}
	if len(checks) != 2 {
		t.Errorf("len = %d, want 2", len(checks))
	}
	if repo.gotLimit != 1000 {
		t.Errorf("limit = %d, want 1000", repo.gotLimit)
	}
}

func TestListStatusChecks_EmptyIsArray(t *testing.T) {
	// A nil repository result serializes as [], not null
	h := NewStatusHandler(&stubStatusRepo{})

	e := echo.New()
	req := httptest.NewRequest(nethttp.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	if err := h.ListStatusChecks(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var raw interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}
	if _, ok := raw.([]interface{}); !ok {
		t.Errorf("body = %s, want a JSON array", rec.Body.String())
	}
}

func TestListStatusChecks_RepoError(t *testing.T) {
	h := NewStatusHandler(&stubStatusRepo{err: errors.New("db down")})

	e := echo.New()
	req := httptest.NewRequest(nethttp.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	if err := h.ListStatusChecks(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != nethttp.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
