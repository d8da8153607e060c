package engine

import (
	"math"
	"testing"
	"time"
)

func emotionAt(ts time.Time, initial float64) EmotionEvent {
	return EmotionEvent{
		ID:               "e1",
		Timestamp:        ts,
		EmotionType:      "frustration",
		InitialIntensity: initial,
		CurrentIntensity: initial,
	}
}

func TestDecayEmotionAtEventTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := DecayEmotion(emotionAt(now, 0.8), now)
	if e.CurrentIntensity != 0.8 {
		t.Errorf("CurrentIntensity = %v, want 0.8", e.CurrentIntensity)
	}
	if e.DecayedAt != nil {
		t.Errorf("DecayedAt = %v, want nil", e.DecayedAt)
	}
}

func TestDecayEmotionClockSkew(t *testing.T) {
	// An event stamped in the future decays as if no time has passed.
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := DecayEmotion(emotionAt(now.Add(2*time.Hour), 0.8), now)
	if e.CurrentIntensity != 0.8 {
		t.Errorf("CurrentIntensity = %v, want 0.8", e.CurrentIntensity)
	}
}

func TestDecayEmotionTenHours(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := DecayEmotion(emotionAt(ts, 1.0), ts.Add(10*time.Hour))

	want := math.Exp(-1) // ~0.3679
	if math.Abs(e.CurrentIntensity-want) > 1e-9 {
		t.Errorf("CurrentIntensity = %v, want %v", e.CurrentIntensity, want)
	}
	if e.DecayedAt != nil {
		t.Errorf("DecayedAt = %v, want nil while intensity is measurable", e.DecayedAt)
	}
	if got := ActiveEmotions([]EmotionEvent{e}); len(got) != 1 {
		t.Errorf("ActiveEmotions = %d events, want 1", len(got))
	}
}

func TestDecayEmotionThirtyHours(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e := DecayEmotion(emotionAt(ts, 1.0), ts.Add(30*time.Hour))

	want := math.Exp(-3) // ~0.0498
	if math.Abs(e.CurrentIntensity-want) > 1e-9 {
		t.Errorf("CurrentIntensity = %v, want %v", e.CurrentIntensity, want)
	}
	// Below the active threshold but not yet settled.
	if got := ActiveEmotions([]EmotionEvent{e}); len(got) != 0 {
		t.Errorf("ActiveEmotions = %d events, want 0", len(got))
	}
	if e.DecayedAt != nil {
		t.Errorf("DecayedAt = %v, want nil above the settled threshold", e.DecayedAt)
	}
}

func TestDecayEmotionSettles(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := ts.Add(50 * time.Hour) // e^-5 ~ 0.0067
	e := DecayEmotion(emotionAt(ts, 1.0), now)

	if e.DecayedAt == nil {
		t.Fatal("DecayedAt = nil, want stamped once settled")
	}
	if !e.DecayedAt.Equal(now) {
		t.Errorf("DecayedAt = %v, want %v", e.DecayedAt, now)
	}

	// A later pass keeps the original stamp.
	later := now.Add(time.Hour)
	e2 := DecayEmotion(e, later)
	if !e2.DecayedAt.Equal(now) {
		t.Errorf("DecayedAt after second pass = %v, want %v", e2.DecayedAt, now)
	}
}

func TestDecayEmotionIdempotent(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := ts.Add(7 * time.Hour)

	once := DecayEmotion(emotionAt(ts, 0.9), now)
	twice := DecayEmotion(once, now)
	if once.CurrentIntensity != twice.CurrentIntensity {
		t.Errorf("second pass changed intensity: %v -> %v", once.CurrentIntensity, twice.CurrentIntensity)
	}
}

func TestDecayEmotionMonotonic(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	prev := math.Inf(1)
	for h := 0; h <= 100; h += 5 {
		e := DecayEmotion(emotionAt(ts, 1.0), ts.Add(time.Duration(h)*time.Hour))
		if e.CurrentIntensity > prev {
			t.Fatalf("intensity rose at %dh: %v > %v", h, e.CurrentIntensity, prev)
		}
		if e.CurrentIntensity < 0 {
			t.Fatalf("intensity negative at %dh: %v", h, e.CurrentIntensity)
		}
		prev = e.CurrentIntensity
	}
}

func TestActiveEmotionsFilter(t *testing.T) {
	events := []EmotionEvent{
		{ID: "a", CurrentIntensity: 0.5},
		{ID: "b", CurrentIntensity: 0.1}, // exactly at threshold is inactive
		{ID: "c", CurrentIntensity: 0.05},
	}
	got := ActiveEmotions(events)
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("ActiveEmotions = %+v, want only event a", got)
	}
}

func TestEmotionLedger(t *testing.T) {
	clk := newStubClock()
	l := NewEmotionLedger(clk.Now)

	l.Add("joy", 0.9, "good conversation", "contact-1")
	l.Add("worry", 0.2, "", "")

	if got := len(l.Events()); got != 2 {
		t.Fatalf("len(Events) = %d, want 2", got)
	}
	if got := len(l.Active()); got != 2 {
		t.Fatalf("len(Active) = %d, want 2", got)
	}

	// After ten hours the weak emotion has dropped out of the active set.
	clk.advance(10 * time.Hour)
	active := l.DecayAll()
	if len(active) != 1 {
		t.Fatalf("len(active) = %d, want 1", len(active))
	}
	if active[0].EmotionType != "joy" {
		t.Errorf("active emotion = %q, want joy", active[0].EmotionType)
	}

	want := 0.9 * math.Exp(-1)
	if math.Abs(active[0].CurrentIntensity-want) > 1e-9 {
		t.Errorf("CurrentIntensity = %v, want %v", active[0].CurrentIntensity, want)
	}

	// Events keeps everything, active or not.
	if got := len(l.Events()); got != 2 {
		t.Errorf("len(Events) = %d, want 2", got)
	}
}
