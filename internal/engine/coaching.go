package engine

import (
	"strings"

	"github.com/quietroom/rehearse/internal/skills"
)

const (
	escalationWarning = "The conversation is escalating. Take a breath and try validating their feelings."
	receptivePraise   = "Great job! They're becoming more receptive to your approach."
	genericTechnique  = "stay present and engaged"
)

// hintDecision is a coaching rule's output.
type hintDecision struct {
	content string
	kind    HintKind
}

// initialHint is the opening technique reminder seeded alongside a new
// session.
func initialHint(sk *skills.Skill) hintDecision {
	tip := genericTechnique
	if sk != nil && len(sk.KeyTechniques) > 0 {
		tip = strings.ToLower(sk.KeyTechniques[0])
	}
	return hintDecision{content: "Remember to " + tip, kind: HintTechnique}
}

// nextTurnHint applies the coaching rules after a partner reply, highest
// priority first. messageCount is the transcript length up to and including
// the user's latest message. Returns nil when no rule fires.
func nextTurnHint(sk *skills.Skill, next EmotionalState, messageCount int, attempted []string) *hintDecision {
	switch {
	case next == StateEscalation:
		return &hintDecision{content: escalationWarning, kind: HintWarning}
	case next == StateReceptive:
		return &hintDecision{content: receptivePraise, kind: HintEncouragement}
	case messageCount > 4 && len(attempted) < 2:
		if sk == nil {
			return nil
		}
		if t, ok := firstUnusedTechnique(sk.KeyTechniques, attempted); ok {
			return &hintDecision{content: "Try: " + t, kind: HintTechnique}
		}
	}
	return nil
}

// firstUnusedTechnique returns the first catalog technique no attempted
// entry is a substring of.
func firstUnusedTechnique(techniques, attempted []string) (string, bool) {
	for _, t := range techniques {
		used := false
		for _, a := range attempted {
			if strings.Contains(t, a) {
				used = true
				break
			}
		}
		if !used {
			return t, true
		}
	}
	return "", false
}
