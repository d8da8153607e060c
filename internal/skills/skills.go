// Package skills holds the static communication-skill catalog and the
// per-skill response banks the practice partner draws replies from.
// All data here is immutable; it is loaded once and shared freely.
package skills

// Skill is one practicable communication skill.
type Skill struct {
	ID                string
	Name              string
	Description       string
	Difficulty        int // 1-3
	PracticeScenarios []string
	KeyTechniques     []string
	Lens              string
}

// Analytical lens tags. Opaque labels as far as the engine is concerned.
const (
	LensDamasio = "damasio"
	LensCBT     = "cbt"
	LensACT     = "act"
	LensIFS     = "ifs"
	LensStoic   = "stoic"
)

var catalog = []Skill{
	{
		ID:          "boundary-setting",
		Name:        "Setting Boundaries",
		Description: "Express limits clearly while maintaining connection and respect",
		Difficulty:  2,
		PracticeScenarios: []string{
			"A friend keeps asking to borrow money despite not paying you back",
			"Your partner wants to see you every evening but you need alone time",
			"A family member expects you to attend all gatherings",
			"A colleague keeps asking you to cover their shifts",
		},
		KeyTechniques: []string{
			`Use "I" statements to express your needs`,
			"Be clear and specific about your limits",
			"Acknowledge the other person's feelings",
			"Offer alternatives when possible",
			"Stay firm without being aggressive",
		},
		Lens: LensACT,
	},
	{
		ID:          "conflict-resolution",
		Name:        "Resolving Conflicts",
		Description: "Address disagreements constructively and find mutual understanding",
		Difficulty:  3,
		PracticeScenarios: []string{
			"You and your partner disagree about household responsibilities",
			"A friend accused you of being unsupportive",
			"Your parent criticizes your life choices",
			"A roommate is upset about cleaning standards",
		},
		KeyTechniques: []string{
			"Separate facts from interpretations",
			"Identify cognitive distortions in your thinking",
			`Use "What evidence supports/contradicts this?"`,
			"Focus on specific behaviors, not character",
			"Find common ground before addressing differences",
		},
		Lens: LensCBT,
	},
	{
		ID:          "emotional-expression",
		Name:        "Expressing Emotions",
		Description: "Communicate feelings clearly and authentically without overwhelming others",
		Difficulty:  2,
		PracticeScenarios: []string{
			"You feel hurt by a friend's comment but haven't said anything",
			"Your partner doesn't know how stressed you've been",
			"You're excited about something but fear being judged",
			"You need to tell someone they disappointed you",
		},
		KeyTechniques: []string{
			"Name the emotion and where you feel it in your body",
			"Connect emotion to specific situation",
			"Use emotion as information, not blame",
			"Allow vulnerability while staying grounded",
			"Check in with somatic sensations",
		},
		Lens: LensDamasio,
	},
	{
		ID:          "active-listening",
		Name:        "Active Listening",
		Description: "Fully hear and validate others while managing your own reactions",
		Difficulty:  1,
		PracticeScenarios: []string{
			"Your friend is venting about their relationship troubles",
			"Your parent is expressing worry about your choices",
			"Your partner is sharing something that triggers you",
			"A colleague is explaining why they're upset with you",
		},
		KeyTechniques: []string{
			"Reflect back what you hear without judgment",
			`Notice which "part" is activated in you`,
			"Stay curious about their perspective",
			"Resist the urge to fix or defend",
			"Acknowledge their emotional experience",
		},
		Lens: LensIFS,
	},
	{
		ID:          "assertiveness",
		Name:        "Being Assertive",
		Description: "Express needs and opinions confidently without aggression",
		Difficulty:  2,
		PracticeScenarios: []string{
			"You need to ask your boss for a raise",
			"Someone is treating you disrespectfully",
			"You want to suggest a different plan than your group",
			"You need to say no to a request",
		},
		KeyTechniques: []string{
			"Focus on what's within your control",
			"State your position clearly and calmly",
			"Use confident body language and tone",
			"Don't over-explain or apologize excessively",
			"Accept that others may disagree",
		},
		Lens: LensStoic,
	},
	{
		ID:          "repair-after-rupture",
		Name:        "Repairing Ruptures",
		Description: "Reconnect after conflict or misunderstanding with authenticity",
		Difficulty:  3,
		PracticeScenarios: []string{
			"You said something hurtful in an argument yesterday",
			"There's been tension with a friend for weeks",
			"You need to apologize for missing an important event",
			"A misunderstanding created distance in your relationship",
		},
		KeyTechniques: []string{
			"Acknowledge the hurt without defensiveness",
			"Take responsibility for your part",
			"Listen to their protective parts",
			"Express genuine remorse",
			"Ask what they need to feel safe again",
		},
		Lens: LensIFS,
	},
}

// All returns the full catalog in declaration order.
func All() []Skill {
	out := make([]Skill, len(catalog))
	copy(out, catalog)
	return out
}

// ByID looks a skill up by its id. The second return is false when unknown.
func ByID(id string) (*Skill, bool) {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i], true
		}
	}
	return nil, false
}

// recommendations maps a relationship type to skill ids, most relevant first.
var recommendations = map[string][]string{
	"romantic":  {"boundary-setting", "emotional-expression", "conflict-resolution", "repair-after-rupture"},
	"family":    {"boundary-setting", "assertiveness", "conflict-resolution", "emotional-expression"},
	"friend":    {"emotional-expression", "boundary-setting", "repair-after-rupture", "active-listening"},
	"colleague": {"assertiveness", "conflict-resolution", "boundary-setting", "active-listening"},
	"other":     {"active-listening", "emotional-expression", "assertiveness", "conflict-resolution"},
}

// Recommended returns skills suited to a relationship type, in recommendation
// order. Unknown relationship types fall back to the "other" list.
func Recommended(relationshipType string) []Skill {
	ids, ok := recommendations[relationshipType]
	if !ok {
		ids = recommendations["other"]
	}
	out := make([]Skill, 0, len(ids))
	for _, id := range ids {
		if sk, ok := ByID(id); ok {
			out = append(out, *sk)
		}
	}
	return out
}
