package store

import (
	"fmt"
)

// SavedSession is one completed, saved practice session. Nested session data
// (goals, transcript, techniques, insights) is stored as serialized JSON; the
// engine owns those shapes.
type SavedSession struct {
	ID              string
	SkillID         string
	SkillName       string
	PartnerID       string
	PartnerName     string
	Scenario        string
	CoachingLevel   string
	StartedAt       int64
	EndedAt         int64
	DurationSeconds int
	OverallScore    int
	GoalsJSON       string
	MessagesJSON    string
	TechniquesJSON  string
	InsightsJSON    string
	SavedAt         int64
}

const savedSessionColumns = `id, skill_id, skill_name, partner_id, partner_name, scenario, coaching_level,
	started_at, ended_at, duration_seconds, overall_score,
	goals_json, messages_json, techniques_json, insights_json, saved_at`

// SaveSession inserts a completed session into the permanent history.
func (db *DB) SaveSession(s SavedSession) error {
	_, err := db.Exec(`
		INSERT INTO saved_sessions (`+savedSessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.SkillID, s.SkillName, s.PartnerID, s.PartnerName, s.Scenario, s.CoachingLevel,
		s.StartedAt, s.EndedAt, s.DurationSeconds, s.OverallScore,
		s.GoalsJSON, s.MessagesJSON, s.TechniquesJSON, s.InsightsJSON, s.SavedAt)
	if err != nil {
		return fmt.Errorf("insert saved session: %w", err)
	}
	return nil
}

func scanSavedSession(scan func(dest ...any) error) (SavedSession, error) {
	var s SavedSession
	err := scan(&s.ID, &s.SkillID, &s.SkillName, &s.PartnerID, &s.PartnerName, &s.Scenario, &s.CoachingLevel,
		&s.StartedAt, &s.EndedAt, &s.DurationSeconds, &s.OverallScore,
		&s.GoalsJSON, &s.MessagesJSON, &s.TechniquesJSON, &s.InsightsJSON, &s.SavedAt)
	return s, err
}

// SessionsBySkill returns saved sessions for a skill, most recent first.
func (db *DB) SessionsBySkill(skillID string) ([]SavedSession, error) {
	rows, err := db.Query(`
		SELECT `+savedSessionColumns+`
		FROM saved_sessions WHERE skill_id = ? ORDER BY started_at DESC
	`, skillID)
	if err != nil {
		return nil, fmt.Errorf("sessions by skill: %w", err)
	}
	defer rows.Close()

	var sessions []SavedSession
	for rows.Next() {
		s, err := scanSavedSession(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan saved session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// RecentSessions returns the most recent saved sessions across all skills.
func (db *DB) RecentSessions(limit int) ([]SavedSession, error) {
	rows, err := db.Query(`
		SELECT `+savedSessionColumns+`
		FROM saved_sessions ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SavedSession
	for rows.Next() {
		s, err := scanSavedSession(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan saved session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
