package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/mavropro/mavro-api/internal/models"
)

type mockSettingsRepo struct {
	store map[string]*models.Setting
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{store: make(map[string]*models.Setting)}
}

func (m *mockSettingsRepo) key(sessionID string, key models.SettingKey) string {
	return sessionID + "/" + string(key)
}

func (m *mockSettingsRepo) Get(_ context.Context, sessionID string, key models.SettingKey) (*models.Setting, error) {
	return m.store[m.key(sessionID, key)], nil
}

func (m *mockSettingsRepo) Set(_ context.Context, s *models.Setting) error {
	// Mirror the store contract: created_at survives updates, both
	// timestamps are written back into s.
	now := time.Now().UTC()
	if prev, ok := m.store[m.key(s.SessionID, s.Key)]; ok {
		s.CreatedAt = prev.CreatedAt
	} else {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	m.store[m.key(s.SessionID, s.Key)] = s
	return nil
}

func (m *mockSettingsRepo) List(_ context.Context, sessionID string) ([]*models.Setting, error) {
	out := []*models.Setting{}
	for _, s := range m.store {
		if s.SessionID == sessionID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSettingsRepo) Delete(_ context.Context, sessionID string, key models.SettingKey) (bool, error) {
	k := m.key(sessionID, key)
	if _, ok := m.store[k]; !ok {
		return false, nil
	}
	delete(m.store, k)
	return true, nil
}

func newSettingsRouter(repo *mockSettingsRepo) *mux.Router {
	r := mux.NewRouter()
	h := NewSettingsHandler(repo)
	h.RegisterRoutes(r.PathPrefix("/settings").Subrouter())
	return r
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newMockSettingsRepo()
	router := newSettingsRouter(repo)
	sess := testSession()

	body, _ := json.Marshal(SetSettingRequest{
		SchemaVersion: 2,
		Value:         json.RawMessage(`{"theme":"dark"}`),
	})
	req := withSession(httptest.NewRequest("PUT", "/settings/mavro-theme", bytes.NewReader(body)), sess)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("put status = %d, body %s", w.Code, w.Body.String())
	}

	req = withSession(httptest.NewRequest("GET", "/settings/mavro-theme", nil), sess)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	var resp struct {
		Data struct {
			Setting models.Setting `json:"setting"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Setting.SchemaVersion != 2 {
		t.Errorf("schema version = %d, want 2", resp.Data.Setting.SchemaVersion)
	}
	if string(resp.Data.Setting.Value) != `{"theme":"dark"}` {
		t.Errorf("value = %s", resp.Data.Setting.Value)
	}
}

func TestSettingsUpdateKeepsCreatedAt(t *testing.T) {
	t.Parallel()

	repo := newMockSettingsRepo()
	router := newSettingsRouter(repo)
	sess := testSession()

	created := time.Now().UTC().Add(-time.Hour)
	repo.store[repo.key(sess.ID, models.SettingMavroTheme)] = &models.Setting{
		SessionID: sess.ID,
		Key:       models.SettingMavroTheme,
		Value:     json.RawMessage(`{"theme":"light"}`),
		CreatedAt: created,
		UpdatedAt: created,
	}

	body, _ := json.Marshal(SetSettingRequest{Value: json.RawMessage(`{"theme":"dark"}`)})
	req := withSession(httptest.NewRequest("PUT", "/settings/mavro-theme", bytes.NewReader(body)), sess)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("put status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Setting models.Setting `json:"setting"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The echoed row reports the original creation time, not the update time.
	if !resp.Data.Setting.CreatedAt.Equal(created) {
		t.Errorf("created_at = %v, want %v", resp.Data.Setting.CreatedAt, created)
	}
	if !resp.Data.Setting.UpdatedAt.After(created) {
		t.Errorf("updated_at = %v, want after %v", resp.Data.Setting.UpdatedAt, created)
	}
}

func TestSettingsUnknownKeyRejected(t *testing.T) {
	t.Parallel()

	repo := newMockSettingsRepo()
	router := newSettingsRouter(repo)
	sess := testSession()

	body, _ := json.Marshal(SetSettingRequest{Value: json.RawMessage(`true`)})
	for _, method := range []string{"GET", "PUT", "DELETE"} {
		var req *http.Request
		if method == "PUT" {
			req = httptest.NewRequest(method, "/settings/not-a-real-key", bytes.NewReader(body))
		} else {
			req = httptest.NewRequest(method, "/settings/not-a-real-key", nil)
		}
		req = withSession(req, sess)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s unknown key status = %d, want 400", method, w.Code)
		}
	}
	if len(repo.store) != 0 {
		t.Error("unknown key reached storage")
	}
}

func TestSettingsInvalidValue(t *testing.T) {
	t.Parallel()

	repo := newMockSettingsRepo()
	router := newSettingsRouter(repo)
	sess := testSession()

	tests := []struct {
		name string
		body string
	}{
		{"missing value", `{"schema_version":1}`},
		{"invalid json value", `{"schema_version":1,"value":{"unterminated":}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := withSession(httptest.NewRequest("PUT", "/settings/menuOrder", bytes.NewReader([]byte(tt.body))), sess)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestSettingsDelete(t *testing.T) {
	t.Parallel()

	repo := newMockSettingsRepo()
	router := newSettingsRouter(repo)
	sess := testSession()

	repo.store[repo.key(sess.ID, models.SettingMenuOrder)] = &models.Setting{
		SessionID: sess.ID,
		Key:       models.SettingMenuOrder,
		Value:     json.RawMessage(`["a","b"]`),
	}

	req := withSession(httptest.NewRequest("DELETE", "/settings/menuOrder", nil), sess)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	// Deleting again finds nothing.
	req = withSession(httptest.NewRequest("DELETE", "/settings/menuOrder", nil), sess)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func TestSettingsGetUnset(t *testing.T) {
	t.Parallel()

	router := newSettingsRouter(newMockSettingsRepo())

	req := withSession(httptest.NewRequest("GET", "/settings/viviProfile", nil), testSession())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
