package engine

import "github.com/quietroom/rehearse/internal/skills"

const fallbackReply = "I hear what you're saying. Tell me more."

// SynthesizeReply draws the partner's reply for a state from the skill's
// response bank. Unknown skills and empty banks fall back to a neutral line.
func SynthesizeReply(rng RandSource, skillID string, state EmotionalState) string {
	bank, ok := skills.Responses(skillID)
	if !ok {
		return fallbackReply
	}
	lines := bank.ForState(string(state))
	if len(lines) == 0 {
		return fallbackReply
	}
	return lines[rng.Intn(len(lines))]
}
