package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
)

// SkillProgress is the rolling practice aggregate for one skill.
type SkillProgress struct {
	SkillID           string
	SessionsCompleted int
	AverageScore      int
	Techniques        []string
	LastPracticed     int64
}

// GetProgress returns the progress row for a skill, or nil if the skill has
// never been practiced.
func (db *DB) GetProgress(skillID string) (*SkillProgress, error) {
	var p SkillProgress
	var techniquesJSON string
	err := db.QueryRow(`
		SELECT skill_id, sessions_completed, average_score, techniques_json, last_practiced
		FROM skill_progress WHERE skill_id = ?
	`, skillID).Scan(&p.SkillID, &p.SessionsCompleted, &p.AverageScore, &techniquesJSON, &p.LastPracticed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	if err := json.Unmarshal([]byte(techniquesJSON), &p.Techniques); err != nil {
		return nil, fmt.Errorf("decode techniques: %w", err)
	}
	return &p, nil
}

// RecordPractice folds one completed session into the skill's aggregate:
// increments the session count, updates the running average score, unions the
// technique list, and stamps last_practiced. Returns the updated row.
func (db *DB) RecordPractice(skillID string, score int, techniques []string, practicedAt int64) (*SkillProgress, error) {
	current, err := db.GetProgress(skillID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		current = &SkillProgress{SkillID: skillID}
	}

	newCount := current.SessionsCompleted + 1
	newAverage := int(math.Round(
		float64(current.AverageScore*current.SessionsCompleted+score) / float64(newCount)))

	merged := append([]string(nil), current.Techniques...)
	seen := make(map[string]bool, len(merged))
	for _, t := range merged {
		seen[t] = true
	}
	for _, t := range techniques {
		if !seen[t] {
			seen[t] = true
			merged = append(merged, t)
		}
	}

	techniquesJSON, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encode techniques: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO skill_progress (skill_id, sessions_completed, average_score, techniques_json, last_practiced)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(skill_id) DO UPDATE SET
			sessions_completed = excluded.sessions_completed,
			average_score      = excluded.average_score,
			techniques_json    = excluded.techniques_json,
			last_practiced     = excluded.last_practiced
	`, skillID, newCount, newAverage, string(techniquesJSON), practicedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert progress: %w", err)
	}

	return &SkillProgress{
		SkillID:           skillID,
		SessionsCompleted: newCount,
		AverageScore:      newAverage,
		Techniques:        merged,
		LastPracticed:     practicedAt,
	}, nil
}
