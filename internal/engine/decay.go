package engine

import (
	"math"
	"time"
)

// Emotion decay constants. Intensity falls off exponentially at 10% per hour;
// below activeThreshold an emotion drops out of the active set, and below
// settledThreshold it is stamped as fully decayed.
const (
	decayRatePerHour = 0.1
	activeThreshold  = 0.1
	settledThreshold = 0.01
)

// EmotionEvent is one tracked emotion in the consciousness model.
// CurrentIntensity is derived; DecayedAt is stamped once intensity settles
// near zero.
type EmotionEvent struct {
	ID               string     `json:"id"`
	Timestamp        time.Time  `json:"timestamp"`
	EmotionType      string     `json:"emotion_type"`
	InitialIntensity float64    `json:"initial_intensity"`
	CurrentIntensity float64    `json:"current_intensity"`
	Cause            string     `json:"cause,omitempty"`
	RelatedContactID string     `json:"related_contact_id,omitempty"`
	DecayedAt        *time.Time `json:"decayed_at,omitempty"`
}

// DecayEmotion recomputes an emotion's current intensity at the given time.
// Pure: intensity is always derived from the initial value, so applying it
// twice with the same now is a no-op, and the caller decides the cadence.
// Elapsed time before the event's own timestamp counts as zero, so
// DecayEmotion(e, e.Timestamp) returns the initial intensity unchanged.
func DecayEmotion(e EmotionEvent, now time.Time) EmotionEvent {
	ageHours := now.Sub(e.Timestamp).Hours()
	if ageHours < 0 {
		ageHours = 0
	}

	intensity := e.InitialIntensity * math.Exp(-decayRatePerHour*ageHours)
	if intensity < 0 {
		intensity = 0
	}
	e.CurrentIntensity = intensity

	if intensity < settledThreshold && e.DecayedAt == nil {
		t := now
		e.DecayedAt = &t
	}
	return e
}

// ActiveEmotions filters to emotions still above the active threshold.
func ActiveEmotions(events []EmotionEvent) []EmotionEvent {
	var out []EmotionEvent
	for _, e := range events {
		if e.CurrentIntensity > activeThreshold {
			out = append(out, e)
		}
	}
	return out
}
