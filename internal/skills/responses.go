package skills

// ResponseBank holds the partner's canned replies for one skill, keyed by the
// partner's emotional state.
type ResponseBank struct {
	Opening      []string
	Escalation   []string
	Deescalation []string
	Challenging  []string
	Receptive    []string
}

// ForState returns the reply candidates for an emotional state name.
// Unknown state names return nil.
func (b *ResponseBank) ForState(state string) []string {
	switch state {
	case "opening":
		return b.Opening
	case "escalation":
		return b.Escalation
	case "deescalation":
		return b.Deescalation
	case "challenging":
		return b.Challenging
	case "receptive":
		return b.Receptive
	}
	return nil
}

var responseBanks = map[string]*ResponseBank{
	"boundary-setting": {
		Opening: []string{
			"I don't understand why this is suddenly an issue...",
			"But you've always been okay with this before",
			"I just need this one favor, please?",
			"Are you saying you don't care about me?",
		},
		Escalation: []string{
			"This is really hurtful. I thought I could count on you.",
			"You're being selfish right now.",
			"Fine, I guess I know where I stand with you.",
			"Why are you making such a big deal out of this?",
		},
		Deescalation: []string{
			"I'm hearing that this is important to you...",
			"Can you help me understand your perspective better?",
			"I didn't realize this was affecting you this way.",
			"What would work better for both of us?",
		},
		Challenging: []string{
			"But what about my needs? Don't they matter?",
			"I feel like you're pushing me away.",
			"This seems to be coming out of nowhere.",
			"Can't you make an exception just this once?",
		},
		Receptive: []string{
			"Thank you for being honest with me about this.",
			"I appreciate you telling me. I want to respect your boundaries.",
			"That makes sense. I'm sorry I didn't see it before.",
			"What can I do to support you while respecting this limit?",
		},
	},
	"conflict-resolution": {
		Opening: []string{
			"We need to talk about what happened.",
			"I've been feeling really upset about this.",
			"I don't think you realize how your actions affected me.",
			"Can we clear the air about what's been going on?",
		},
		Escalation: []string{
			"You always do this! You never take responsibility!",
			"This is exactly what I'm talking about - you're not listening!",
			"I can't believe you're making excuses right now.",
			"You're being completely unreasonable.",
		},
		Deescalation: []string{
			"Let me try to explain where I'm coming from...",
			"I can see this is important to both of us.",
			"Maybe I wasn't clear about what I meant.",
			"Can we take a breath and start over?",
		},
		Challenging: []string{
			"But that's not what happened from my perspective.",
			"I feel attacked right now.",
			"Are you saying this is all my fault?",
			"I don't think you're being fair.",
		},
		Receptive: []string{
			"I see how my actions hurt you. I'm sorry.",
			"You're right, I could have handled that differently.",
			"Help me understand what you needed from me.",
			"I want to work through this together.",
		},
	},
	"emotional-expression": {
		Opening: []string{
			"Is everything okay? You seem different lately.",
			"I want to understand how you're feeling.",
			"You can talk to me, you know.",
			"I'm here if you want to share what's going on.",
		},
		Escalation: []string{
			"Why didn't you tell me sooner?",
			"I had no idea you felt this way!",
			"This is a lot to process right now.",
			"I feel like I don't even know you.",
		},
		Deescalation: []string{
			"Thank you for trusting me with this.",
			"That sounds really difficult. I'm listening.",
			"I can see this is important to you.",
			"Take your time, I'm not going anywhere.",
		},
		Challenging: []string{
			"Are you sure you're not overreacting?",
			"I don't really understand why you feel that way.",
			"But I didn't mean it like that...",
			"You're being really sensitive about this.",
		},
		Receptive: []string{
			"I hear you. That must be really hard.",
			"Thank you for sharing this with me.",
			"I want to understand better. Tell me more.",
			"Your feelings make sense given what you're experiencing.",
		},
	},
	"active-listening": {
		Opening: []string{
			"I really need to talk to you about something.",
			"Can I share what's been on my mind?",
			"I've been struggling with something and need to get it out.",
			"There's something I need you to hear.",
		},
		Escalation: []string{
			"You're not really listening to me!",
			"I don't think you understand what I'm saying.",
			"This is exactly the problem - you're always defending yourself!",
			"Forget it, you don't get it.",
		},
		Deescalation: []string{
			"I appreciate you trying to understand.",
			"It helps just to have you listen.",
			"Thank you for not jumping in with solutions.",
			"I feel heard. That means a lot.",
		},
		Challenging: []string{
			"Did you even hear what I just said?",
			"You're thinking about what to say next, aren't you?",
			"I need you to just listen, not fix this.",
			"Why do you keep interrupting me?",
		},
		Receptive: []string{
			"That's exactly it. You really get it.",
			"Yes! I feel like you understand me.",
			"I'm so glad I talked to you about this.",
			"Thank you for being here with me in this.",
		},
	},
	"assertiveness": {
		Opening: []string{
			"Actually, I have a different idea...",
			"I need to speak up about something.",
			"I'd like to share my perspective on this.",
			"Can we talk about what I need?",
		},
		Escalation: []string{
			"Who do you think you are?",
			"That's not going to work for me at all.",
			"You can't be serious.",
			"That's completely unreasonable.",
		},
		Deescalation: []string{
			"I respect your position. Let me consider it.",
			"That's a valid point. Help me understand more.",
			"I appreciate you being direct with me.",
			"Let's see if we can find something that works for both of us.",
		},
		Challenging: []string{
			"Why should we do it your way?",
			"You're being awfully demanding.",
			"What makes you think you know better?",
			"I don't appreciate your tone right now.",
		},
		Receptive: []string{
			"I respect that. Thanks for being clear.",
			"I appreciate you standing up for what you need.",
			"That makes sense. I can work with that.",
			"I'm glad you were honest with me about this.",
		},
	},
	"repair-after-rupture": {
		Opening: []string{
			"I've been thinking about what happened...",
			"I owe you an apology.",
			"Can we talk about the other day?",
			"I want to make things right between us.",
		},
		Escalation: []string{
			"You really hurt me, you know.",
			"I don't know if I can just move past this.",
			"This isn't the first time this has happened.",
			"Actions speak louder than words.",
		},
		Deescalation: []string{
			"I appreciate you reaching out about this.",
			"I can see you're trying. That means something.",
			"Thank you for acknowledging what happened.",
			"I'm willing to work through this with you.",
		},
		Challenging: []string{
			"Why should I believe things will be different?",
			"You said this before and nothing changed.",
			"I'm not sure I'm ready to forgive yet.",
			"It's going to take time for me to trust again.",
		},
		Receptive: []string{
			"I forgive you. Let's move forward.",
			"I appreciate your honesty. We're okay.",
			"Thank you for taking responsibility.",
			"I'm glad we can talk about this openly.",
		},
	},
}

// Responses returns the response bank for a skill id.
func Responses(skillID string) (*ResponseBank, bool) {
	b, ok := responseBanks[skillID]
	return b, ok
}
