package engine

import "time"

// EmotionalState is the practice partner's current disposition. It drives
// which response bank replies are drawn from and how the coaching policy
// reacts.
type EmotionalState string

const (
	StateOpening      EmotionalState = "opening"
	StateEscalation   EmotionalState = "escalation"
	StateDeescalation EmotionalState = "deescalation"
	StateChallenging  EmotionalState = "challenging"
	StateReceptive    EmotionalState = "receptive"
)

// CoachingLevel controls how much live guidance the session surfaces.
type CoachingLevel string

const (
	CoachingOff    CoachingLevel = "off"
	CoachingSubtle CoachingLevel = "subtle"
	CoachingActive CoachingLevel = "active"
)

// Role identifies who authored a transcript message.
type Role string

const (
	RoleUser    Role = "user"
	RolePartner Role = "partner"
)

// HintKind classifies a coaching hint.
type HintKind string

const (
	HintTechnique     HintKind = "technique"
	HintWarning       HintKind = "warning"
	HintEncouragement HintKind = "encouragement"
)

// KeyMomentKind classifies a key moment in the session insights.
type KeyMomentKind string

const (
	MomentBreakthrough KeyMomentKind = "breakthrough"
	MomentSetback      KeyMomentKind = "setback"
	MomentNeutral      KeyMomentKind = "neutral"
)

// Message is one transcript entry. EmotionalTone is set only on partner
// replies; user messages and the seed message carry none.
type Message struct {
	ID            string         `json:"id"`
	Role          Role           `json:"role"`
	Content       string         `json:"content"`
	Timestamp     time.Time      `json:"timestamp"`
	EmotionalTone EmotionalState `json:"emotionalTone,omitempty"`
}

// Goal is a user-stated objective for the session.
type Goal struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Hint is a live coaching prompt shown during the session.
type Hint struct {
	ID      string   `json:"id"`
	Content string   `json:"content"`
	Kind    HintKind `json:"kind"`
}

// KeyMoment marks a notable point in the transcript.
type KeyMoment struct {
	Timestamp   time.Time     `json:"timestamp"`
	Description string        `json:"description"`
	Kind        KeyMomentKind `json:"kind"`
}

// EmotionPoint is one sample in the partner's emotional journey.
type EmotionPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Emotion   string    `json:"emotion"`
	Intensity float64   `json:"intensity"`
}

// Insights is the post-session summary computed by EndSession.
type Insights struct {
	TechniquesUsed   []string       `json:"techniquesUsed"`
	EmotionalJourney []EmotionPoint `json:"emotionalJourney"`
	Highlights       []string       `json:"highlights"`
	GrowthAreas      []string       `json:"growthAreas"`
	OverallScore     int            `json:"overallScore"`
	KeyMoments       []KeyMoment    `json:"keyMoments"`
}

// Session is the full state of one roleplay practice session.
type Session struct {
	ID                  string         `json:"id"`
	PartnerID           string         `json:"partnerId"`
	PartnerName         string         `json:"partnerName"`
	SkillID             string         `json:"skillId"`
	SkillName           string         `json:"skillName"`
	Scenario            string         `json:"scenario"`
	Goals               []Goal         `json:"goals"`
	CoachingLevel       CoachingLevel  `json:"coachingLevel"`
	Messages            []Message      `json:"messages"`
	StartedAt           time.Time      `json:"startedAt"`
	EndedAt             *time.Time     `json:"endedAt,omitempty"`
	DurationSeconds     int            `json:"durationSeconds"`
	PartnerState        EmotionalState `json:"partnerState"`
	TechniquesAttempted []string       `json:"techniquesAttempted"`
	ActiveLens          string         `json:"activeLens,omitempty"`
	Insights            *Insights      `json:"insights,omitempty"`
}

// StartConfig carries the parameters for StartSession.
type StartConfig struct {
	PartnerID     string        `json:"partner_id"`
	PartnerName   string        `json:"partner_name"`
	SkillID       string        `json:"skill_id"`
	Scenario      string        `json:"scenario"`
	Goals         []string      `json:"goals"`
	CoachingLevel CoachingLevel `json:"coaching_level"`
	ActiveLens    string        `json:"active_lens"`
}

// clone returns a deep copy so callers can read a snapshot without holding
// the engine lock.
func (s *Session) clone() *Session {
	out := *s
	out.Goals = append([]Goal(nil), s.Goals...)
	out.Messages = append([]Message(nil), s.Messages...)
	out.TechniquesAttempted = append([]string(nil), s.TechniquesAttempted...)
	if s.EndedAt != nil {
		t := *s.EndedAt
		out.EndedAt = &t
	}
	if s.Insights != nil {
		in := *s.Insights
		in.TechniquesUsed = append([]string(nil), s.Insights.TechniquesUsed...)
		in.EmotionalJourney = append([]EmotionPoint(nil), s.Insights.EmotionalJourney...)
		in.Highlights = append([]string(nil), s.Insights.Highlights...)
		in.GrowthAreas = append([]string(nil), s.Insights.GrowthAreas...)
		in.KeyMoments = append([]KeyMoment(nil), s.Insights.KeyMoments...)
		out.Insights = &in
	}
	return &out
}
