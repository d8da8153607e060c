package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/quietroom/rehearse/internal/skills"
)

// Emotional intensity assigned to each partner tone in the journey series.
func toneIntensity(tone EmotionalState) float64 {
	switch tone {
	case StateReceptive:
		return 0.3
	case StateEscalation:
		return 0.9
	default:
		return 0.6
	}
}

// synthesizeInsights aggregates a finished session into its summary. Pure
// over the session contents; called exactly once by EndSession.
func synthesizeInsights(s *Session, sk *skills.Skill) *Insights {
	goalsCompleted := 0
	for _, g := range s.Goals {
		if g.Completed {
			goalsCompleted++
		}
	}

	receptiveCount := 0
	escalationCount := 0
	for _, m := range s.Messages {
		switch m.EmotionalTone {
		case StateReceptive:
			receptiveCount++
		case StateEscalation:
			escalationCount++
		}
	}

	var journey []EmotionPoint
	for _, m := range s.Messages {
		if m.Role != RolePartner || m.EmotionalTone == "" {
			continue
		}
		journey = append(journey, EmotionPoint{
			Timestamp: m.Timestamp,
			Emotion:   string(m.EmotionalTone),
			Intensity: toneIntensity(m.EmotionalTone),
		})
	}

	var highlights []string
	if goalsCompleted > 0 {
		highlights = append(highlights, fmt.Sprintf("Achieved %d of %d goals", goalsCompleted, len(s.Goals)))
	}
	if s.PartnerState == StateReceptive {
		highlights = append(highlights, "Successfully reached a receptive state with your partner")
	}
	if len(s.TechniquesAttempted) >= 3 {
		highlights = append(highlights, fmt.Sprintf("Applied %d different communication techniques", len(s.TechniquesAttempted)))
	}
	if receptiveCount >= 2 {
		highlights = append(highlights, "Maintained a positive connection throughout the conversation")
	}
	if len(highlights) == 0 {
		highlights = []string{"Completed practice session"}
	}

	var growthAreas []string
	if sk != nil {
		if t, ok := firstUntriedTechnique(sk.KeyTechniques, s.TechniquesAttempted); ok {
			growthAreas = append(growthAreas, "Try incorporating: "+t)
		}
	}
	if escalationCount >= 2 {
		growthAreas = append(growthAreas, "Work on de-escalation techniques when tension rises")
	}
	if goalsCompleted < len(s.Goals) {
		growthAreas = append(growthAreas, "Continue working toward your stated goals")
	}
	if len(growthAreas) == 0 {
		growthAreas = []string{"Keep practicing regularly"}
	}

	var moments []KeyMoment
	for i := 1; i < len(s.Messages); i++ {
		m := s.Messages[i]
		if m.Role != RolePartner {
			continue
		}
		prev := s.Messages[i-1]
		if prev.EmotionalTone == StateEscalation && m.EmotionalTone == StateDeescalation {
			moments = append(moments, KeyMoment{
				Timestamp:   m.Timestamp,
				Description: "Successfully de-escalated tension",
				Kind:        MomentBreakthrough,
			})
		} else if m.EmotionalTone == StateReceptive {
			moments = append(moments, KeyMoment{
				Timestamp:   m.Timestamp,
				Description: "Partner became receptive to your approach",
				Kind:        MomentBreakthrough,
			})
		}
	}

	techniqueTotal := 1
	if sk != nil && len(sk.KeyTechniques) > 0 {
		techniqueTotal = len(sk.KeyTechniques)
	}
	goalTotal := len(s.Goals)
	if goalTotal < 1 {
		goalTotal = 1
	}
	// Receptive/escalation ratios are measured against a quarter of the
	// transcript length, floored at 1.
	msgDenom := math.Max(1, float64(len(s.Messages))/4)

	factors := []float64{
		float64(goalsCompleted) / float64(goalTotal),
		float64(len(s.TechniquesAttempted)) / float64(techniqueTotal),
		float64(receptiveCount) / msgDenom,
		1 - float64(escalationCount)/msgDenom,
	}
	sum := 0.0
	for _, f := range factors {
		sum += f
	}
	score := int(math.Round(sum / float64(len(factors)) * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return &Insights{
		TechniquesUsed:   append([]string(nil), s.TechniquesAttempted...),
		EmotionalJourney: journey,
		Highlights:       highlights,
		GrowthAreas:      growthAreas,
		OverallScore:     score,
		KeyMoments:       moments,
	}
}

// firstUntriedTechnique is the growth-area variant of the unused-technique
// lookup: case-insensitive substring match against the attempted list.
func firstUntriedTechnique(techniques, attempted []string) (string, bool) {
	for _, t := range techniques {
		lower := strings.ToLower(t)
		used := false
		for _, a := range attempted {
			if strings.Contains(lower, strings.ToLower(a)) {
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
