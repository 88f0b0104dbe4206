package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/mavropro/mavro-api/internal/models"
	"github.com/mavropro/mavro-api/internal/request"
)

type fakeResolver struct {
	sessions map[string]*models.Session
	err      error
}

func (f *fakeResolver) GetOrCreate(_ context.Context, id string) (*models.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.sessions[id]; ok {
		return s, nil
	}
	return &models.Session{
		ID:           "fresh-id",
		Persona:      models.DefaultPersona,
		Mode:         models.ModePlan,
		View:         models.ViewDashboard,
		DatasetEpoch: 1,
	}, nil
}

func TestSession_ExistingID(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{sessions: map[string]*models.Session{
		"abc": {ID: "abc", Persona: models.PersonaKaren, Mode: models.ModeGrow, View: models.ViewCampaigns},
	}}

	var got *models.Session
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = request.SessionFromContext(r)
		w.WriteHeader(http.StatusOK)
	})

	middleware := Session(resolver, zap.NewNop())(handler)

	req := httptest.NewRequest("GET", "/api/v1/session", nil)
	req.Header.Set(request.SessionHeader, "abc")
	w := httptest.NewRecorder()

	middleware.ServeHTTP(w, req)

	if got == nil || got.ID != "abc" {
		t.Fatalf("session in context = %+v, want abc", got)
	}
	if hdr := w.Header().Get(request.SessionHeader); hdr != "abc" {
		t.Errorf("response header = %q, want abc", hdr)
	}
}

func TestSession_MissingHeaderCreatesFresh(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := request.SessionFromContext(r)
		if sess == nil {
			t.Error("no session in context")
			return
		}
		if sess.Persona != models.DefaultPersona {
			t.Errorf("fresh session persona = %s, want default", sess.Persona)
		}
		w.WriteHeader(http.StatusOK)
	})

	middleware := Session(resolver, zap.NewNop())(handler)

	req := httptest.NewRequest("GET", "/api/v1/session", nil)
	w := httptest.NewRecorder()

	middleware.ServeHTTP(w, req)

	if hdr := w.Header().Get(request.SessionHeader); hdr != "fresh-id" {
		t.Errorf("response header = %q, want fresh-id", hdr)
	}
}

func TestSession_StoreUnavailable(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{err: errors.New("redis down")}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	})

	middleware := Session(resolver, zap.NewNop())(handler)

	req := httptest.NewRequest("GET", "/api/v1/session", nil)
	w := httptest.NewRecorder()

	middleware.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}
