package database

import (
	"strings"
	"testing"
)

// ID generation is pure enough to test without a database.
func TestFeedbackIDFormats(t *testing.T) {
	t.Parallel()
	r := NewFeedbackRepository(nil)

	fb := r.NextFeedbackID()
	if !strings.HasPrefix(fb, "FB-") {
		t.Errorf("feedback ID %q missing FB- prefix", fb)
	}
	if parts := strings.Split(fb, "-"); len(parts) != 3 {
		t.Errorf("feedback ID %q has %d segments, want 3", fb, len(parts))
	}

	uf := r.NextRatingID()
	if !strings.HasPrefix(uf, "UF-") {
		t.Errorf("rating ID %q missing UF- prefix", uf)
	}
}

func TestFeedbackIDsUnique(t *testing.T) {
	t.Parallel()
	r := NewFeedbackRepository(nil)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := r.NextFeedbackID()
		if seen[id] {
			t.Fatalf("duplicate feedback ID %q", id)
		}
		seen[id] = true
	}
}

func TestNullString(t *testing.T) {
	t.Parallel()
	if ns := nullString(""); ns.Valid {
		t.Error("nullString(\"\") should be invalid")
	}
	if ns := nullString("x"); !ns.Valid || ns.String != "x" {
		t.Errorf("nullString(\"x\") = %+v, want valid x", ns)
	}
}
