package engine

import (
	"testing"

	"github.com/quietroom/rehearse/internal/skills"
)

func TestSynthesizeReplyDrawsFromBank(t *testing.T) {
	bank, ok := skills.Responses("boundary-setting")
	if !ok {
		t.Fatal("Responses(boundary-setting) missing")
	}

	rng := &stubRand{ints: []int{1}}
	got := SynthesizeReply(rng, "boundary-setting", StateReceptive)
	want := bank.Receptive[1]
	if got != want {
		t.Errorf("SynthesizeReply = %q, want %q", got, want)
	}
}

func TestSynthesizeReplyUnknownSkill(t *testing.T) {
	rng := &stubRand{}
	if got := SynthesizeReply(rng, "no-such-skill", StateOpening); got != fallbackReply {
		t.Errorf("SynthesizeReply = %q, want fallback %q", got, fallbackReply)
	}
}

func TestSynthesizeReplyUnknownState(t *testing.T) {
	rng := &stubRand{}
	if got := SynthesizeReply(rng, "boundary-setting", EmotionalState("confused")); got != fallbackReply {
		t.Errorf("SynthesizeReply = %q, want fallback %q", got, fallbackReply)
	}
}

func TestSynthesizeReplyCoversAllStates(t *testing.T) {
	rng := &stubRand{}
	states := []EmotionalState{StateOpening, StateEscalation, StateDeescalation, StateChallenging, StateReceptive}
	for _, sk := range skills.All() {
		for _, st := range states {
			got := SynthesizeReply(rng, sk.ID, st)
			if got == "" {
				t.Errorf("SynthesizeReply(%s, %s) returned empty reply", sk.ID, st)
			}
			if got == fallbackReply {
				t.Errorf("SynthesizeReply(%s, %s) fell back; bank should cover it", sk.ID, st)
			}
		}
	}
}
