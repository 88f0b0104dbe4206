package session

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/mavropro/mavro-api/internal/models"
)

func TestNewSessionInitialState(t *testing.T) {
	t.Parallel()
	sess := newSession()
	if _, err := uuid.Parse(sess.ID); err != nil {
		t.Errorf("session ID %q is not a uuid: %v", sess.ID, err)
	}
	if sess.Persona != models.DefaultPersona {
		t.Errorf("initial persona = %s, want %s", sess.Persona, models.DefaultPersona)
	}
	if sess.Mode != models.ModePlan {
		t.Errorf("initial mode = %s, want plan", sess.Mode)
	}
	if sess.View != models.ViewDashboard {
		t.Errorf("initial view = %s, want dashboard", sess.View)
	}
	if sess.DatasetEpoch != 1 {
		t.Errorf("initial dataset epoch = %d, want 1", sess.DatasetEpoch)
	}
	if sess.CreatedAt.IsZero() || sess.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestNewSessionUniqueIDs(t *testing.T) {
	t.Parallel()
	a := newSession()
	b := newSession()
	if a.ID == b.ID {
		t.Errorf("two sessions share ID %s", a.ID)
	}
}

func TestSessionKeyPrefixes(t *testing.T) {
	t.Parallel()
	if got := sessionKey("abc"); got != "session:abc" {
		t.Errorf("sessionKey = %q, want session:abc", got)
	}
	if got := kpiKey("abc"); got != "kpi:abc" {
		t.Errorf("kpiKey = %q, want kpi:abc", got)
	}
}

func TestSessionJSONRoundTrip(t *testing.T) {
	t.Parallel()
	sess := newSession()
	sess.Persona = models.PersonaSarah
	sess.Mode = models.ModeGrow
	sess.View = models.ViewCampaigns
	sess.DatasetEpoch = 4

	data, err := json.Marshal(sess)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got models.Session
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != sess.ID || got.Persona != sess.Persona || got.Mode != sess.Mode ||
		got.View != sess.View || got.DatasetEpoch != sess.DatasetEpoch {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, *sess)
	}
}
