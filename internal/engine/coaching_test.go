package engine

import (
	"strings"
	"testing"

	"github.com/quietroom/rehearse/internal/skills"
)

func TestInitialHint(t *testing.T) {
	sk, _ := skills.ByID("boundary-setting")
	h := initialHint(sk)
	want := `Remember to use "i" statements to express your needs`
	if h.content != want {
		t.Errorf("initialHint content = %q, want %q", h.content, want)
	}
	if h.kind != HintTechnique {
		t.Errorf("initialHint kind = %v, want %v", h.kind, HintTechnique)
	}
}

func TestInitialHintUnknownSkill(t *testing.T) {
	h := initialHint(nil)
	want := "Remember to " + genericTechnique
	if h.content != want {
		t.Errorf("initialHint content = %q, want %q", h.content, want)
	}
}

func TestNextTurnHintPriority(t *testing.T) {
	sk, _ := skills.ByID("boundary-setting")

	// Escalation always warns, even when the quiet-start rule would also
	// fire.
	d := nextTurnHint(sk, StateEscalation, 10, nil)
	if d == nil || d.kind != HintWarning {
		t.Fatalf("escalation: got %+v, want warning hint", d)
	}
	if d.content != escalationWarning {
		t.Errorf("warning content = %q, want %q", d.content, escalationWarning)
	}

	d = nextTurnHint(sk, StateReceptive, 10, nil)
	if d == nil || d.kind != HintEncouragement {
		t.Fatalf("receptive: got %+v, want encouragement hint", d)
	}
	if d.content != receptivePraise {
		t.Errorf("encouragement content = %q, want %q", d.content, receptivePraise)
	}
}

func TestNextTurnHintQuietStart(t *testing.T) {
	sk, _ := skills.ByID("boundary-setting")

	d := nextTurnHint(sk, StateChallenging, 5, nil)
	if d == nil || d.kind != HintTechnique {
		t.Fatalf("quiet start: got %+v, want technique hint", d)
	}
	if !strings.HasPrefix(d.content, "Try: ") {
		t.Errorf("technique content = %q, want Try: prefix", d.content)
	}
	if want := "Try: " + sk.KeyTechniques[0]; d.content != want {
		t.Errorf("technique content = %q, want %q", d.content, want)
	}

	// Not enough conversation yet.
	if d := nextTurnHint(sk, StateChallenging, 4, nil); d != nil {
		t.Errorf("short transcript: got %+v, want nil", d)
	}

	// User has already tried enough techniques.
	attempted := []string{"a", "b"}
	if d := nextTurnHint(sk, StateChallenging, 10, attempted); d != nil {
		t.Errorf("enough techniques attempted: got %+v, want nil", d)
	}
}

func TestNextTurnHintSkipsAttemptedTechnique(t *testing.T) {
	sk, _ := skills.ByID("boundary-setting")
	attempted := []string{`"I" statements`}
	d := nextTurnHint(sk, StateChallenging, 10, attempted)
	if d == nil {
		t.Fatal("got nil, want technique hint")
	}
	if want := "Try: " + sk.KeyTechniques[1]; d.content != want {
		t.Errorf("technique content = %q, want %q", d.content, want)
	}
}

func TestFirstUnusedTechniqueExhausted(t *testing.T) {
	techniques := []string{"one", "two"}
	if _, ok := firstUnusedTechnique(techniques, []string{"one", "two"}); ok {
		t.Error("got a technique, want none when all are used")
	}
}
