package engine

import "strings"

// RandSource is the randomness the engine consumes. Satisfied by
// *math/rand.Rand; tests inject a deterministic source.
type RandSource interface {
	Float64() float64
	Intn(n int) int
}

// Cue phrases scored against the user's utterance. Matching is a plain
// case-insensitive substring check, so short cues like "i feel" also catch
// longer phrasings.
var (
	acknowledgmentCues = []string{"i hear", "i understand", "you're right"}
	apologyCues        = []string{"sorry", "apologize", "my fault"}
	validationCues     = []string{"feel", "makes sense", "valid"}
	iStatementCues     = []string{"i feel", "i need", "i want"}

	defensivenessCues = []string{"but", "actually", "however"}
	blameCues         = []string{"you always", "you never", "your fault"}
	aggressionWords   = []string{"wrong", "ridiculous"}
)

// stayReceptiveProbability is the chance a receptive or de-escalated partner
// stays receptive when the user's message carries no cues either way.
const stayReceptiveProbability = 0.7

// cueScores totals the de-escalating and escalating cue weights found in an
// utterance. Acknowledgments and apologies weigh double, as do blame phrases;
// aggression words only count when the utterance is punctuated with "!".
func cueScores(utterance string) (deescalation, escalation int) {
	lower := strings.ToLower(utterance)

	for _, c := range acknowledgmentCues {
		if strings.Contains(lower, c) {
			deescalation += 2
			break
		}
	}
	for _, c := range apologyCues {
		if strings.Contains(lower, c) {
			deescalation += 2
			break
		}
	}
	for _, c := range validationCues {
		if strings.Contains(lower, c) {
			deescalation++
			break
		}
	}
	for _, c := range iStatementCues {
		if strings.Contains(lower, c) {
			deescalation++
			break
		}
	}

	for _, c := range defensivenessCues {
		if strings.Contains(lower, c) {
			escalation++
			break
		}
	}
	for _, c := range blameCues {
		if strings.Contains(lower, c) {
			escalation += 2
			break
		}
	}
	if strings.Contains(lower, "!") {
		for _, w := range aggressionWords {
			if strings.Contains(lower, w) {
				escalation += 2
				break
			}
		}
	}
	return deescalation, escalation
}

// NextPartnerState picks the partner's next emotional state from the user's
// latest message. Strong de-escalation wins outright; any de-escalation with
// no pushback softens the partner; repeated pushback escalates. With no clear
// signal, an already-warm partner usually stays receptive and everyone else
// challenges.
func NextPartnerState(rng RandSource, utterance string, current EmotionalState, skillID string) EmotionalState {
	_ = skillID
	deesc, esc := cueScores(utterance)

	switch {
	case deesc >= 3:
		return StateReceptive
	case deesc >= 1 && esc == 0:
		return StateDeescalation
	case esc >= 2:
		return StateEscalation
	}

	if current == StateReceptive || current == StateDeescalation {
		if rng.Float64() > 1-stayReceptiveProbability {
			return StateReceptive
		}
	}
	return StateChallenging
}
