package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quietroom/rehearse/internal/skills"
	"github.com/quietroom/rehearse/internal/store"
)

// Precondition violations. Callers are expected to guard the UI, but the
// engine reports these rather than corrupting state when they don't.
var (
	ErrSessionActive   = errors.New("a session is already active")
	ErrNoSession       = errors.New("no active session")
	ErrSessionPaused   = errors.New("session is paused")
	ErrSessionEnded    = errors.New("session already ended")
	ErrSessionNotEnded = errors.New("session has not ended")
)

const (
	defaultTypingDelay = 1500 * time.Millisecond
	defaultHintDismiss = 5 * time.Second
)

// Engine owns the single active roleplay session and every mutation entry
// point around it. At most one session occupies the active slot; it leaves
// the slot only via SaveSession or Discard. A saved session moves into the
// database's permanent history.
type Engine struct {
	mu    sync.Mutex
	db    *store.DB
	clock func() time.Time
	rng   RandSource
	sched Scheduler

	typingDelay time.Duration
	hintDismiss time.Duration

	session           *Session
	active            bool
	hints             []Hint
	hintTimers        map[string]TaskHandle
	showCoachingPanel bool

	// Pending partner reply bookkeeping. replyGen fences stale callbacks:
	// a delivery scheduled for generation N is dropped if anything has
	// rescheduled since.
	pendingReply    TaskHandle
	pendingUserText string
	replyGen        int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock injects the time source.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithRand injects the random source used by the classifier and synthesizer.
func WithRand(rng RandSource) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithScheduler injects the delayed-task scheduler.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

// WithTypingDelay sets the simulated partner typing delay. The delay is
// cosmetic: replies are identical whether delivered immediately or late.
func WithTypingDelay(d time.Duration) Option {
	return func(e *Engine) { e.typingDelay = d }
}

// WithHintAutoDismiss sets how long encouragement hints live before
// dismissing themselves.
func WithHintAutoDismiss(d time.Duration) Option {
	return func(e *Engine) { e.hintDismiss = d }
}

// New creates an Engine backed by the given database for saved-session
// history and skill progress.
func New(db *store.DB, opts ...Option) *Engine {
	e := &Engine{
		db:          db,
		clock:       time.Now,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		sched:       TimerScheduler{},
		typingDelay: defaultTypingDelay,
		hintDismiss: defaultHintDismiss,
		hintTimers:  make(map[string]TaskHandle),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartSession begins a new session. Fails with ErrSessionActive while any
// session, ended-but-unsaved included, still occupies the active slot.
func (e *Engine) StartSession(cfg StartConfig) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		return nil, ErrSessionActive
	}

	sk, _ := skills.ByID(cfg.SkillID)
	skillName := "Communication Practice"
	if sk != nil {
		skillName = sk.Name
	}

	goals := make([]Goal, len(cfg.Goals))
	for i, g := range cfg.Goals {
		goals[i] = Goal{ID: fmt.Sprintf("goal_%d", i), Description: g}
	}

	now := e.clock()
	seed := Message{
		ID:        uuid.NewString(),
		Role:      RolePartner,
		Content:   fmt.Sprintf("*%s is ready to practice this conversation with you. Take a moment to ground yourself, then begin when you're ready.*", cfg.PartnerName),
		Timestamp: now,
	}

	level := cfg.CoachingLevel
	if level == "" {
		level = CoachingOff
	}

	e.session = &Session{
		ID:            uuid.NewString(),
		PartnerID:     cfg.PartnerID,
		PartnerName:   cfg.PartnerName,
		SkillID:       cfg.SkillID,
		SkillName:     skillName,
		Scenario:      cfg.Scenario,
		Goals:         goals,
		CoachingLevel: level,
		Messages:      []Message{seed},
		StartedAt:     now,
		PartnerState:  StateOpening,
		ActiveLens:    cfg.ActiveLens,
	}
	e.active = true
	e.hints = nil
	e.hintTimers = make(map[string]TaskHandle)
	e.pendingUserText = ""
	e.showCoachingPanel = level != CoachingOff

	if level != CoachingOff {
		h := initialHint(sk)
		e.addHintLocked(h.content, h.kind)
	}

	return e.session.clone(), nil
}

// AddUserMessage appends a user message and schedules the partner's reply
// after the typing delay. Rejected while paused; the message list is left
// untouched on any error.
func (e *Engine) AddUserMessage(content string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil {
		return ErrNoSession
	}
	if s.EndedAt != nil {
		return ErrSessionEnded
	}
	if !e.active {
		return ErrSessionPaused
	}

	s.Messages = append(s.Messages, Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   content,
		Timestamp: e.clock(),
	})
	e.scheduleReplyLocked(content)
	return nil
}

func (e *Engine) scheduleReplyLocked(userText string) {
	if e.pendingReply != nil {
		e.pendingReply.Cancel()
	}
	e.replyGen++
	gen := e.replyGen
	e.pendingUserText = userText
	e.pendingReply = e.sched.Schedule(e.typingDelay, func() {
		e.deliverReply(userText, gen)
	})
}

// deliverReply runs when the typing delay elapses. The generation fence and
// the active check drop replies that became stale while paused or ended.
func (e *Engine) deliverReply(userText string, gen int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil || e.session.EndedAt != nil || !e.active || gen != e.replyGen {
		return
	}
	e.pendingReply = nil
	e.pendingUserText = ""
	e.respondLocked(userText)
}

// respondLocked computes the partner's next state, appends the reply, and
// runs the coaching policy.
func (e *Engine) respondLocked(userText string) {
	s := e.session
	sk, _ := skills.ByID(s.SkillID)

	// Message count as the coaching policy sees it: the transcript up to
	// and including the user's latest message.
	messageCount := len(s.Messages)

	next := NextPartnerState(e.rng, userText, s.PartnerState, s.SkillID)
	reply := SynthesizeReply(e.rng, s.SkillID, next)

	s.Messages = append(s.Messages, Message{
		ID:            uuid.NewString(),
		Role:          RolePartner,
		Content:       reply,
		Timestamp:     e.clock(),
		EmotionalTone: next,
	})
	s.PartnerState = next

	if s.CoachingLevel != CoachingOff {
		if d := nextTurnHint(sk, next, messageCount, s.TechniquesAttempted); d != nil {
			e.addHintLocked(d.content, d.kind)
		}
	}
}

func (e *Engine) addHintLocked(content string, kind HintKind) {
	id := uuid.NewString()
	e.hints = append(e.hints, Hint{ID: id, Content: content, Kind: kind})

	if kind == HintEncouragement && e.hintDismiss > 0 {
		e.hintTimers[id] = e.sched.Schedule(e.hintDismiss, func() {
			e.DismissHint(id)
		})
	}
}

// DismissHint removes a hint from the active list. Idempotent: unknown or
// already-dismissed ids are a no-op.
func (e *Engine) DismissHint(hintID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dismissHintLocked(hintID)
}

func (e *Engine) dismissHintLocked(hintID string) {
	if h, ok := e.hintTimers[hintID]; ok {
		h.Cancel()
		delete(e.hintTimers, hintID)
	}
	for i, h := range e.hints {
		if h.ID == hintID {
			e.hints = append(e.hints[:i], e.hints[i+1:]...)
			return
		}
	}
}

// PauseSession suspends the session. A partner reply still in flight is
// cancelled; the unanswered user message is remembered so ResumeSession can
// reschedule it.
func (e *Engine) PauseSession() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return ErrNoSession
	}
	if e.session.EndedAt != nil {
		return ErrSessionEnded
	}
	e.active = false
	if e.pendingReply != nil {
		e.pendingReply.Cancel()
		e.pendingReply = nil
	}
	return nil
}

// ResumeSession reactivates a paused session and reschedules the partner
// reply for any user message left unanswered by the pause.
func (e *Engine) ResumeSession() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return ErrNoSession
	}
	if e.session.EndedAt != nil {
		return ErrSessionEnded
	}
	e.active = true
	if e.pendingUserText != "" {
		e.scheduleReplyLocked(e.pendingUserText)
	}
	return nil
}

// EndSession finalizes the session: end timestamp, whole-second duration,
// and insights, computed exactly once. Ending an already-ended session is an
// error, never a silent recompute.
func (e *Engine) EndSession() (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil {
		return nil, ErrNoSession
	}
	if s.EndedAt != nil {
		return nil, ErrSessionEnded
	}

	if e.pendingReply != nil {
		e.pendingReply.Cancel()
		e.pendingReply = nil
	}
	e.pendingUserText = ""

	now := e.clock()
	s.EndedAt = &now
	s.DurationSeconds = int(now.Sub(s.StartedAt).Seconds())

	sk, _ := skills.ByID(s.SkillID)
	s.Insights = synthesizeInsights(s, sk)
	e.active = false

	return s.clone(), nil
}

// SaveSession moves an ended session into the permanent history, folds its
// score into the skill's progress aggregate, and clears the active slot.
func (e *Engine) SaveSession() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil {
		return ErrNoSession
	}
	if s.EndedAt == nil {
		return ErrSessionNotEnded
	}

	goalsJSON, err := json.Marshal(s.Goals)
	if err != nil {
		return fmt.Errorf("encode goals: %w", err)
	}
	messagesJSON, err := json.Marshal(s.Messages)
	if err != nil {
		return fmt.Errorf("encode messages: %w", err)
	}
	techniquesJSON, err := json.Marshal(s.TechniquesAttempted)
	if err != nil {
		return fmt.Errorf("encode techniques: %w", err)
	}
	insightsJSON, err := json.Marshal(s.Insights)
	if err != nil {
		return fmt.Errorf("encode insights: %w", err)
	}

	now := e.clock()
	record := store.SavedSession{
		ID:              s.ID,
		SkillID:         s.SkillID,
		SkillName:       s.SkillName,
		PartnerID:       s.PartnerID,
		PartnerName:     s.PartnerName,
		Scenario:        s.Scenario,
		CoachingLevel:   string(s.CoachingLevel),
		StartedAt:       s.StartedAt.UnixMilli(),
		EndedAt:         s.EndedAt.UnixMilli(),
		DurationSeconds: s.DurationSeconds,
		OverallScore:    s.Insights.OverallScore,
		GoalsJSON:       string(goalsJSON),
		MessagesJSON:    string(messagesJSON),
		TechniquesJSON:  string(techniquesJSON),
		InsightsJSON:    string(insightsJSON),
		SavedAt:         now.UnixMilli(),
	}
	if err := e.db.SaveSession(record); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if _, err := e.db.RecordPractice(s.SkillID, s.Insights.OverallScore, s.TechniquesAttempted, now.UnixMilli()); err != nil {
		return fmt.Errorf("record progress: %w", err)
	}

	e.clearSlotLocked()
	return nil
}

// Discard drops the active session without saving. Benign when no session
// exists.
func (e *Engine) Discard() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clearSlotLocked()
}

func (e *Engine) clearSlotLocked() {
	if e.pendingReply != nil {
		e.pendingReply.Cancel()
		e.pendingReply = nil
	}
	for id, h := range e.hintTimers {
		h.Cancel()
		delete(e.hintTimers, id)
	}
	e.session = nil
	e.active = false
	e.hints = nil
	e.pendingUserText = ""
}

// ToggleGoalCompleted flips a goal's completed flag. Allowed in any session
// state, including after EndSession. Unknown ids are a benign no-op.
func (e *Engine) ToggleGoalCompleted(goalID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return
	}
	for i := range e.session.Goals {
		if e.session.Goals[i].ID == goalID {
			e.session.Goals[i].Completed = !e.session.Goals[i].Completed
			return
		}
	}
}

// MarkTechniqueUsed records that the user attempted a technique this session.
func (e *Engine) MarkTechniqueUsed(technique string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return
	}
	e.session.TechniquesAttempted = append(e.session.TechniquesAttempted, technique)
}

// ToggleCoachingPanel flips the coaching panel's visibility and returns the
// new value.
func (e *Engine) ToggleCoachingPanel() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.showCoachingPanel = !e.showCoachingPanel
	return e.showCoachingPanel
}

// CoachingPanelVisible reports whether the coaching panel should be shown.
func (e *Engine) CoachingPanelVisible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.showCoachingPanel
}

// Snapshot returns a deep copy of the active session, or false when the slot
// is empty.
func (e *Engine) Snapshot() (*Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil, false
	}
	return e.session.clone(), true
}

// ActiveHints returns a copy of the current hint list.
func (e *Engine) ActiveHints() []Hint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Hint(nil), e.hints...)
}

// SessionsBySkill returns the saved-session history for a skill.
func (e *Engine) SessionsBySkill(skillID string) ([]store.SavedSession, error) {
	return e.db.SessionsBySkill(skillID)
}

// RecentSessions returns the most recently saved sessions.
func (e *Engine) RecentSessions(limit int) ([]store.SavedSession, error) {
	return e.db.RecentSessions(limit)
}

// Progress returns the per-skill progress aggregate, or nil when the skill
// has never been practiced.
func (e *Engine) Progress(skillID string) (*store.SkillProgress, error) {
	return e.db.GetProgress(skillID)
}
