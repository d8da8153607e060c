package engine

import (
	"testing"
	"time"

	"github.com/quietroom/rehearse/internal/skills"
)

func insightsSkill(t *testing.T, id string) *skills.Skill {
	t.Helper()
	sk, ok := skills.ByID(id)
	if !ok {
		t.Fatalf("ByID(%s) missing", id)
	}
	return sk
}

func partnerMsg(tone EmotionalState, at time.Time) Message {
	return Message{Role: RolePartner, Content: "x", Timestamp: at, EmotionalTone: tone}
}

func userMsg(at time.Time) Message {
	return Message{Role: RoleUser, Content: "x", Timestamp: at}
}

func TestOverallScore(t *testing.T) {
	// 2 of 3 goals, 3 of 5 techniques, 2 receptive and 1 escalation tone
	// over a 5-message transcript:
	// (2/3 + 3/5 + 2/1.25 + (1 - 1/1.25)) / 4 = 0.7667 -> 77.
	now := time.Now()
	s := &Session{
		SkillID: "boundary-setting",
		Goals: []Goal{
			{ID: "goal_0", Completed: true},
			{ID: "goal_1", Completed: true},
			{ID: "goal_2"},
		},
		TechniquesAttempted: []string{"a", "b", "c"},
		Messages: []Message{
			userMsg(now),
			partnerMsg(StateReceptive, now),
			userMsg(now),
			partnerMsg(StateEscalation, now),
			partnerMsg(StateReceptive, now),
		},
	}

	in := synthesizeInsights(s, insightsSkill(t, "boundary-setting"))
	if in.OverallScore != 77 {
		t.Errorf("OverallScore = %d, want 77", in.OverallScore)
	}
}

func TestOverallScoreClamped(t *testing.T) {
	now := time.Now()
	s := &Session{
		Messages: []Message{
			partnerMsg(StateReceptive, now),
			partnerMsg(StateReceptive, now),
			partnerMsg(StateReceptive, now),
			partnerMsg(StateReceptive, now),
		},
	}
	in := synthesizeInsights(s, nil)
	if in.OverallScore != 100 {
		t.Errorf("OverallScore = %d, want clamped to 100", in.OverallScore)
	}
}

func TestOverallScoreEmptySession(t *testing.T) {
	s := &Session{}
	in := synthesizeInsights(s, nil)
	// Only the no-escalation factor contributes: 1/4 of the weight.
	if in.OverallScore != 25 {
		t.Errorf("OverallScore = %d, want 25", in.OverallScore)
	}
}

func TestInsightsFallbacks(t *testing.T) {
	s := &Session{}
	in := synthesizeInsights(s, nil)

	if len(in.Highlights) != 1 || in.Highlights[0] != "Completed practice session" {
		t.Errorf("Highlights = %v, want the completion fallback", in.Highlights)
	}
	if len(in.GrowthAreas) != 1 || in.GrowthAreas[0] != "Keep practicing regularly" {
		t.Errorf("GrowthAreas = %v, want the practice fallback", in.GrowthAreas)
	}
	if len(in.KeyMoments) != 0 {
		t.Errorf("KeyMoments = %v, want none", in.KeyMoments)
	}
}

func TestInsightsHighlights(t *testing.T) {
	now := time.Now()
	s := &Session{
		Goals:               []Goal{{ID: "goal_0", Completed: true}, {ID: "goal_1"}},
		PartnerState:        StateReceptive,
		TechniquesAttempted: []string{"a", "b", "c"},
		Messages: []Message{
			partnerMsg(StateReceptive, now),
			partnerMsg(StateReceptive, now),
		},
	}
	in := synthesizeInsights(s, nil)

	want := []string{
		"Achieved 1 of 2 goals",
		"Successfully reached a receptive state with your partner",
		"Applied 3 different communication techniques",
		"Maintained a positive connection throughout the conversation",
	}
	if len(in.Highlights) != len(want) {
		t.Fatalf("Highlights = %v, want %v", in.Highlights, want)
	}
	for i := range want {
		if in.Highlights[i] != want[i] {
			t.Errorf("Highlights[%d] = %q, want %q", i, in.Highlights[i], want[i])
		}
	}
}

func TestInsightsGrowthAreas(t *testing.T) {
	now := time.Now()
	s := &Session{
		SkillID: "boundary-setting",
		Goals:   []Goal{{ID: "goal_0"}},
		Messages: []Message{
			partnerMsg(StateEscalation, now),
			partnerMsg(StateEscalation, now),
		},
	}
	in := synthesizeInsights(s, insightsSkill(t, "boundary-setting"))

	if len(in.GrowthAreas) != 3 {
		t.Fatalf("GrowthAreas = %v, want 3 entries", in.GrowthAreas)
	}
	if in.GrowthAreas[0] != `Try incorporating: Use "I" statements to express your needs` {
		t.Errorf("GrowthAreas[0] = %q, want untried technique suggestion", in.GrowthAreas[0])
	}
	if in.GrowthAreas[1] != "Work on de-escalation techniques when tension rises" {
		t.Errorf("GrowthAreas[1] = %q, want de-escalation advice", in.GrowthAreas[1])
	}
	if in.GrowthAreas[2] != "Continue working toward your stated goals" {
		t.Errorf("GrowthAreas[2] = %q, want goals reminder", in.GrowthAreas[2])
	}
}

func TestInsightsKeyMoments(t *testing.T) {
	now := time.Now()
	s := &Session{
		Messages: []Message{
			partnerMsg(StateReceptive, now), // first message never counts
			partnerMsg(StateEscalation, now),
			partnerMsg(StateDeescalation, now),
			partnerMsg(StateReceptive, now),
		},
	}
	in := synthesizeInsights(s, nil)

	if len(in.KeyMoments) != 2 {
		t.Fatalf("KeyMoments = %v, want 2", in.KeyMoments)
	}
	if in.KeyMoments[0].Description != "Successfully de-escalated tension" {
		t.Errorf("KeyMoments[0] = %q, want de-escalation moment", in.KeyMoments[0].Description)
	}
	if in.KeyMoments[1].Description != "Partner became receptive to your approach" {
		t.Errorf("KeyMoments[1] = %q, want receptive moment", in.KeyMoments[1].Description)
	}
	for _, m := range in.KeyMoments {
		if m.Kind != MomentBreakthrough {
			t.Errorf("moment kind = %v, want %v", m.Kind, MomentBreakthrough)
		}
	}
}

func TestInsightsEmotionalJourney(t *testing.T) {
	now := time.Now()
	s := &Session{
		Messages: []Message{
			{Role: RolePartner, Content: "intro", Timestamp: now}, // seed, no tone
			userMsg(now),
			partnerMsg(StateChallenging, now),
			userMsg(now),
			partnerMsg(StateReceptive, now),
			partnerMsg(StateEscalation, now),
		},
	}
	in := synthesizeInsights(s, nil)

	wantIntensity := []float64{0.6, 0.3, 0.9}
	if len(in.EmotionalJourney) != len(wantIntensity) {
		t.Fatalf("EmotionalJourney = %v, want %d points", in.EmotionalJourney, len(wantIntensity))
	}
	for i, want := range wantIntensity {
		if got := in.EmotionalJourney[i].Intensity; got != want {
			t.Errorf("EmotionalJourney[%d].Intensity = %v, want %v", i, got, want)
		}
	}
}
