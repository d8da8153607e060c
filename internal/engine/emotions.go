package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EmotionLedger tracks emotion events for the consciousness model and applies
// the decay pass on demand. It has no internal timers; callers run DecayAll
// on whatever cadence suits them (periodic tick, or on read).
type EmotionLedger struct {
	mu     sync.Mutex
	clock  func() time.Time
	events []EmotionEvent
}

// NewEmotionLedger creates an empty ledger. A nil clock defaults to time.Now.
func NewEmotionLedger(clock func() time.Time) *EmotionLedger {
	if clock == nil {
		clock = time.Now
	}
	return &EmotionLedger{clock: clock}
}

// Add records a new emotion event at the current intensity.
func (l *EmotionLedger) Add(emotionType string, intensity float64, cause, relatedContactID string) EmotionEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := EmotionEvent{
		ID:               uuid.NewString(),
		Timestamp:        l.clock(),
		EmotionType:      emotionType,
		InitialIntensity: intensity,
		CurrentIntensity: intensity,
		Cause:            cause,
		RelatedContactID: relatedContactID,
	}
	l.events = append(l.events, e)
	return e
}

// DecayAll runs the decay pass over every event and returns the refreshed
// active set.
func (l *EmotionLedger) DecayAll() []EmotionEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	for i := range l.events {
		l.events[i] = DecayEmotion(l.events[i], now)
	}
	return ActiveEmotions(l.events)
}

// Events returns a copy of every tracked event.
func (l *EmotionLedger) Events() []EmotionEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]EmotionEvent(nil), l.events...)
}

// Active returns the events currently above the active threshold.
func (l *EmotionLedger) Active() []EmotionEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ActiveEmotions(l.events)
}
