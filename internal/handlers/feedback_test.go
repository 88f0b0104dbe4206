package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/mavropro/mavro-api/internal/models"
	"github.com/mavropro/mavro-api/internal/queue"
)

type mockFeedbackRepo struct {
	seq       int
	feedback  []*models.Feedback
	ratings   []*models.UserRating
	resolved  []string
	analytics *models.FeedbackAnalytics
}

func (m *mockFeedbackRepo) NextFeedbackID() string {
	m.seq++
	return fmt.Sprintf("FB-0-%d", m.seq)
}

func (m *mockFeedbackRepo) NextRatingID() string {
	m.seq++
	return fmt.Sprintf("UF-0-%d", m.seq)
}

func (m *mockFeedbackRepo) CreateFeedback(_ context.Context, f *models.Feedback) error {
	m.feedback = append(m.feedback, f)
	return nil
}

func (m *mockFeedbackRepo) CreateRating(_ context.Context, u *models.UserRating) error {
	m.ratings = append(m.ratings, u)
	return nil
}

func (m *mockFeedbackRepo) GetFeedback(_ context.Context, id string) (*models.Feedback, error) {
	for _, f := range m.feedback {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, nil
}

func (m *mockFeedbackRepo) Resolve(_ context.Context, id string) (bool, error) {
	for _, f := range m.feedback {
		if f.ID == id {
			f.Status = models.FeedbackStatusResolved
			m.resolved = append(m.resolved, id)
			return true, nil
		}
	}
	return false, nil
}

func (m *mockFeedbackRepo) Analytics(_ context.Context) (*models.FeedbackAnalytics, error) {
	if m.analytics != nil {
		return m.analytics, nil
	}
	return &models.FeedbackAnalytics{
		FeedbackByType:     map[string]int{},
		FeedbackBySeverity: map[string]int{},
		RecentFeedback:     []*models.Feedback{},
	}, nil
}

type mockJobQueue struct {
	enqueued []*queue.Job
}

func (m *mockJobQueue) Enqueue(_ context.Context, job *queue.Job) error {
	m.enqueued = append(m.enqueued, job)
	return nil
}

func (m *mockJobQueue) Consume(context.Context, int) (<-chan *queue.Message, <-chan error, error) {
	return nil, nil, nil
}

func (m *mockJobQueue) Close() error { return nil }

func (m *mockJobQueue) HealthCheck(context.Context) error { return nil }

func newFeedbackRouter(repo *mockFeedbackRepo, q queue.JobQueue) *mux.Router {
	r := mux.NewRouter()
	h := NewFeedbackHandler(repo, q, zap.NewNop())
	h.RegisterRoutes(r.PathPrefix("/feedback").Subrouter())
	return r
}

func TestSubmitFeedback(t *testing.T) {
	t.Parallel()

	repo := &mockFeedbackRepo{}
	q := &mockJobQueue{}
	router := newFeedbackRouter(repo, q)
	sess := testSession()

	body, _ := json.Marshal(SubmitFeedbackRequest{
		Type:        "bug",
		Title:       "KPI tile renders blank",
		Description: "After switching persona the revenue tile shows no value.",
		Severity:    "medium",
		Category:    "ui",
	})
	req := withSession(httptest.NewRequest("POST", "/feedback", bytes.NewReader(body)), sess)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if len(repo.feedback) != 1 {
		t.Fatalf("stored feedback = %d, want 1", len(repo.feedback))
	}
	stored := repo.feedback[0]
	if stored.Status != models.FeedbackStatusOpen {
		t.Errorf("status = %s, want open", stored.Status)
	}
	if stored.SessionID != sess.ID {
		t.Errorf("session id = %s, want %s", stored.SessionID, sess.ID)
	}
	// Medium severity does not enqueue an alert.
	if len(q.enqueued) != 0 {
		t.Errorf("enqueued = %d, want 0", len(q.enqueued))
	}
}

func TestSubmitFeedbackHighSeverityEnqueuesAlert(t *testing.T) {
	t.Parallel()

	repo := &mockFeedbackRepo{}
	q := &mockJobQueue{}
	router := newFeedbackRouter(repo, q)
	sess := testSession()

	body, _ := json.Marshal(SubmitFeedbackRequest{
		Type:        "bug",
		Title:       "Dashboard crashes on load",
		Description: "The whole dashboard goes blank immediately after login.",
		Severity:    "critical",
	})
	req := withSession(httptest.NewRequest("POST", "/feedback", bytes.NewReader(body)), sess)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if len(q.enqueued) != 1 {
		t.Fatalf("enqueued = %d, want 1", len(q.enqueued))
	}
	job := q.enqueued[0]
	if job.Type != queue.JobTypeFeedbackAlert {
		t.Errorf("job type = %s, want feedback alert", job.Type)
	}
	if job.FeedbackID != repo.feedback[0].ID {
		t.Errorf("job feedback id = %s, want %s", job.FeedbackID, repo.feedback[0].ID)
	}
}

func TestSubmitFeedbackValidationNeverReachesStorage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  SubmitFeedbackRequest
	}{
		{"short title", SubmitFeedbackRequest{Type: "bug", Title: "hi", Description: "long enough description here"}},
		{"short description", SubmitFeedbackRequest{Type: "bug", Title: "A valid title", Description: "short"}},
		{"bad type", SubmitFeedbackRequest{Type: "complaint", Title: "A valid title", Description: "long enough description here"}},
		{"bad severity", SubmitFeedbackRequest{Type: "bug", Title: "A valid title", Description: "long enough description here", Severity: "urgent"}},
		{"bad category", SubmitFeedbackRequest{Type: "bug", Title: "A valid title", Description: "long enough description here", Category: "misc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := &mockFeedbackRepo{}
			q := &mockJobQueue{}
			router := newFeedbackRouter(repo, q)

			body, _ := json.Marshal(tt.req)
			req := withSession(httptest.NewRequest("POST", "/feedback", bytes.NewReader(body)), testSession())
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if len(repo.feedback) != 0 {
				t.Error("invalid feedback reached storage")
			}
			if len(q.enqueued) != 0 {
				t.Error("invalid feedback reached the queue")
			}
		})
	}
}

func TestSubmitRating(t *testing.T) {
	t.Parallel()

	repo := &mockFeedbackRepo{}
	router := newFeedbackRouter(repo, &mockJobQueue{})
	sess := testSession()

	recommend := true
	body, _ := json.Marshal(SubmitRatingRequest{
		Rating:         4,
		Comment:        "Mostly great",
		Features:       []string{"personas", "chat"},
		WouldRecommend: &recommend,
	})
	req := withSession(httptest.NewRequest("POST", "/feedback/rating", bytes.NewReader(body)), sess)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if len(repo.ratings) != 1 {
		t.Fatalf("stored ratings = %d, want 1", len(repo.ratings))
	}
	if repo.ratings[0].Rating != 4 {
		t.Errorf("rating = %d, want 4", repo.ratings[0].Rating)
	}
}

func TestSubmitRatingOutOfRange(t *testing.T) {
	t.Parallel()

	repo := &mockFeedbackRepo{}
	router := newFeedbackRouter(repo, &mockJobQueue{})

	for _, rating := range []int{0, 6, -1} {
		body, _ := json.Marshal(SubmitRatingRequest{Rating: rating})
		req := withSession(httptest.NewRequest("POST", "/feedback/rating", bytes.NewReader(body)), testSession())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("rating %d: status = %d, want 400", rating, w.Code)
		}
	}
	if len(repo.ratings) != 0 {
		t.Error("invalid ratings reached storage")
	}
}

func TestResolveFeedback(t *testing.T) {
	t.Parallel()

	repo := &mockFeedbackRepo{}
	repo.feedback = append(repo.feedback, &models.Feedback{ID: "FB-0-1", Status: models.FeedbackStatusOpen})
	router := newFeedbackRouter(repo, &mockJobQueue{})

	req := withSession(httptest.NewRequest("POST", "/feedback/FB-0-1/resolve", nil), testSession())
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if repo.feedback[0].Status != models.FeedbackStatusResolved {
		t.Error("feedback not resolved")
	}

	req = withSession(httptest.NewRequest("POST", "/feedback/FB-missing/resolve", nil), testSession())
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", w.Code)
	}
}

func TestGetAnalytics(t *testing.T) {
	t.Parallel()

	repo := &mockFeedbackRepo{analytics: &models.FeedbackAnalytics{
		TotalFeedback:  3,
		FeedbackByType: map[string]int{"bug": 2, "feature": 1},
		AverageRating:  4.5,
		TotalRatings:   2,
	}}
	router := newFeedbackRouter(repo, &mockJobQueue{})

	req := withSession(httptest.NewRequest("GET", "/feedback/analytics", nil), testSession())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Data struct {
			Analytics models.FeedbackAnalytics `json:"analytics"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Analytics.TotalFeedback != 3 {
		t.Errorf("total = %d, want 3", resp.Data.Analytics.TotalFeedback)
	}
	if resp.Data.Analytics.AverageRating != 4.5 {
		t.Errorf("average = %v, want 4.5", resp.Data.Analytics.AverageRating)
	}
}
