package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/quietroom/rehearse/internal/engine"
	"github.com/quietroom/rehearse/internal/skills"
)

func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	if rel := r.URL.Query().Get("relationship"); rel != "" {
		writeJSON(w, http.StatusOK, map[string]any{"skills": skills.Recommended(rel)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"skills": skills.All()})
}

func (s *Server) handleGetSkill(w http.ResponseWriter, r *http.Request) {
	skillID := chi.URLParam(r, "skillID")
	sk, ok := skills.ByID(skillID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown skill: "+skillID)
		return
	}
	writeJSON(w, http.StatusOK, sk)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var cfg engine.StartConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if cfg.SkillID == "" {
		writeError(w, http.StatusBadRequest, "skill_id required")
		return
	}

	sess, err := s.eng.StartSession(cfg)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.eng.Snapshot()
	if !ok {
		writeError(w, http.StatusNotFound, engine.ErrNoSession.Error())
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDiscardSession(w http.ResponseWriter, r *http.Request) {
	s.eng.Discard()
	writeJSON(w, http.StatusOK, map[string]string{"status": "discarded"})
}

func (s *Server) handleAddMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content required")
		return
	}

	if err := s.eng.AddUserMessage(req.Content); err != nil {
		writeEngineError(w, err)
		return
	}
	// The partner reply lands after the typing delay; clients poll the
	// session snapshot.
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}

func (s *Server) handlePauseSession(w http.ResponseWriter, r *http.Request) {
	if err := s.eng.PauseSession(); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "paused"})
}

func (s *Server) handleResumeSession(w http.ResponseWriter, r *http.Request) {
	if err := s.eng.ResumeSession(); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "active"})
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.eng.EndSession()
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	if err := s.eng.SaveSession(); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (s *Server) handleToggleGoal(w http.ResponseWriter, r *http.Request) {
	s.eng.ToggleGoalCompleted(chi.URLParam(r, "goalID"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMarkTechnique(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Technique string `json:"technique"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Technique == "" {
		writeError(w, http.StatusBadRequest, "technique required")
		return
	}
	s.eng.MarkTechniqueUsed(req.Technique)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListHints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"hints":      s.eng.ActiveHints(),
		"show_panel": s.eng.CoachingPanelVisible(),
	})
}

func (s *Server) handleDismissHint(w http.ResponseWriter, r *http.Request) {
	// Dismissal is idempotent; unknown ids succeed.
	s.eng.DismissHint(chi.URLParam(r, "hintID"))
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTogglePanel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"show_panel": s.eng.ToggleCoachingPanel()})
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	skillID := chi.URLParam(r, "skillID")
	p, err := s.eng.Progress(skillID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "no progress for skill: "+skillID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"skill_id":           p.SkillID,
		"sessions_completed": p.SessionsCompleted,
		"average_score":      p.AverageScore,
		"techniques_used":    p.Techniques,
		"last_practiced":     p.LastPracticed,
	})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	if skillID := r.URL.Query().Get("skill"); skillID != "" {
		sessions, err := s.eng.SessionsBySkill(skillID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions, "count": len(sessions)})
		return
	}

	sessions, err := s.eng.RecentSessions(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions, "count": len(sessions)})
}

func (s *Server) handleListEmotions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"emotions": s.ledger.Events(),
		"active":   s.ledger.Active(),
	})
}

func (s *Server) handleAddEmotion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmotionType      string  `json:"emotion_type"`
		Intensity        float64 `json:"intensity"`
		Cause            string  `json:"cause"`
		RelatedContactID string  `json:"related_contact_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.EmotionType == "" {
		writeError(w, http.StatusBadRequest, "emotion_type required")
		return
	}

	e := s.ledger.Add(req.EmotionType, req.Intensity, req.Cause, req.RelatedContactID)
	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) handleDecayEmotions(w http.ResponseWriter, r *http.Request) {
	active := s.ledger.DecayAll()
	writeJSON(w, http.StatusOK, map[string]any{"active": active, "count": len(active)})
}
