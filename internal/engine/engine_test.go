package engine

import (
	"testing"
	"time"

	"github.com/quietroom/rehearse/internal/store"
)

// stubRand returns queued values, then zeroes. Keeps classifier and
// synthesizer output fixed under test.
type stubRand struct {
	floats []float64
	ints   []int
}

func (r *stubRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *stubRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

// manualScheduler collects scheduled tasks; tests fire them explicitly.
type manualTask struct {
	fn        func()
	cancelled bool
	ran       bool
}

func (t *manualTask) Cancel() bool {
	if t.cancelled || t.ran {
		return false
	}
	t.cancelled = true
	return true
}

type manualScheduler struct {
	tasks []*manualTask
}

func (s *manualScheduler) Schedule(d time.Duration, fn func()) TaskHandle {
	t := &manualTask{fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// fire runs every pending task once. Tasks scheduled by a firing task wait
// for the next fire.
func (s *manualScheduler) fire() {
	pending := s.tasks
	for _, t := range pending {
		if t.cancelled || t.ran {
			continue
		}
		t.ran = true
		t.fn()
	}
}

// pendingCount reports tasks that have neither run nor been cancelled.
func (s *manualScheduler) pendingCount() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled && !t.ran {
			n++
		}
	}
	return n
}

// stubClock is a settable time source.
type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time { return c.now }

func (c *stubClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newStubClock() *stubClock {
	return &stubClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

// testEngine wires an Engine to an in-memory database, a manual scheduler, a
// stub clock, and a stub random source.
func testEngine(t *testing.T) (*Engine, *manualScheduler, *stubRand, *stubClock) {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sched := &manualScheduler{}
	rng := &stubRand{}
	clk := newStubClock()
	e := New(db,
		WithScheduler(sched),
		WithRand(rng),
		WithClock(clk.Now),
	)
	return e, sched, rng, clk
}

// startTestSession starts a session with sensible defaults for lifecycle
// tests.
func startTestSession(t *testing.T, e *Engine, level CoachingLevel) *Session {
	t.Helper()
	sess, err := e.StartSession(StartConfig{
		PartnerID:     "partner-1",
		PartnerName:   "Sam",
		SkillID:       "boundary-setting",
		Scenario:      "A friend keeps asking to borrow money despite not paying you back",
		Goals:         []string{"Stay calm"},
		CoachingLevel: level,
	})
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	return sess
}
