// Package http implements the REST API of the mentor matching engine.
package http

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/forge-hub/forge-accelerator-hub/internal/application/query"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/matching"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/mentor"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
	"github.com/forge-hub/forge-accelerator-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":        "Forge Accelerator Hub API",
		"version":     "v1",
		"description": "Mentor matching engine for the accelerator platform",
		"endpoints": map[string]string{
			"health":          "/health",
			"match":           "/api/v1/match",
			"recommendations": "/api/v1/participants/{id}/recommendations",
			"experts":         "/api/v1/experts",
		},
	}

	writeJSON(w, http.StatusOK, info)
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Healthy {
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		writeJSON(w, http.StatusOK, status)
		return
	}

	// Default health response
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"uptime":  s.Uptime().String(),
		"version": "v1",
	})
}

// handleReady handles the readiness probe endpoint (for Kubernetes).
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Ready {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not_ready",
				"reason": status.Message,
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleLive handles the liveness probe endpoint (for Kubernetes).
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST / RESPONSE DTOs
// Доменный скор лежит в [0,1]; наружу он отдаётся как целое 0-100 -
// это чисто презентационное масштабирование.
// ══════════════════════════════════════════════════════════════════════════════

// MatchRequest is the body of POST /api/v1/match.
type MatchRequest struct {
	ParticipantID       string   `json:"participant_id,omitempty"`
	ProjectCategory     string   `json:"project_category,omitempty"`
	RequiredSkills      []string `json:"required_skills,omitempty"`
	PreferredIndustry   string   `json:"preferred_industry,omitempty"`
	ParticipantTimezone string   `json:"participant_timezone,omitempty"`
	MentorType          string   `json:"mentor_type,omitempty"`
	MinRating           float64  `json:"min_rating,omitempty"`

	// Limit is a pointer so an explicit zero can be rejected
	// while an absent limit falls back to the default.
	Limit *int `json:"limit,omitempty"`
}

// BreakdownDTO carries per-dimension scores scaled to 0-100.
type BreakdownDTO struct {
	ExpertiseMatch    int `json:"expertise_match"`
	IndustryMatch     int `json:"industry_match"`
	AvailabilityMatch int `json:"availability_match"`
	RatingScore       int `json:"rating_score"`
	ProjectNeedsMatch int `json:"project_needs_match"`
}

// MentorDTO is the mentor summary shown in match results.
type MentorDTO struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	MentorType        string   `json:"mentor_type"`
	Company           string   `json:"company,omitempty"`
	Position          string   `json:"position,omitempty"`
	Expertise         []string `json:"expertise"`
	Industries        []string `json:"industries,omitempty"`
	Rating            *float64 `json:"rating,omitempty"`
	SessionsCompleted int      `json:"sessions_completed"`
}

// MatchDTO is a single scored mentor in a match response.
type MatchDTO struct {
	MentorID  string       `json:"mentor_id"`
	Mentor    MentorDTO    `json:"mentor"`
	Score     int          `json:"score"`
	Breakdown BreakdownDTO `json:"breakdown"`
}

// MatchResponse is the response of match and recommendation endpoints.
type MatchResponse struct {
	RunID           string     `json:"run_id"`
	Matches         []MatchDTO `json:"matches"`
	TotalCandidates int        `json:"total_candidates"`
	Degenerate      bool       `json:"degenerate,omitempty"`
	GeneratedAt     time.Time  `json:"generated_at"`
}

// ExpertDTO is a single mentor in an expert search response.
type ExpertDTO struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	MentorType        string   `json:"mentor_type"`
	Company           string   `json:"company,omitempty"`
	Position          string   `json:"position,omitempty"`
	Expertise         []string `json:"expertise"`
	Rating            *float64 `json:"rating,omitempty"`
	SessionsCompleted int      `json:"sessions_completed"`
}

// ExpertResponse is the response of GET /api/v1/experts.
type ExpertResponse struct {
	RunID         string      `json:"run_id"`
	ExpertiseArea string      `json:"expertise_area"`
	Mentors       []ExpertDTO `json:"mentors"`
	TotalMatched  int         `json:"total_matched"`
	GeneratedAt   time.Time   `json:"generated_at"`
}

// scoreToPercent scales a [0,1] score to a 0-100 integer.
func scoreToPercent(score float64) int {
	return int(math.Round(score * 100))
}

func toMatchResponse(result *query.MatchMentorsResult) MatchResponse {
	matches := make([]MatchDTO, 0, len(result.Matches))
	for _, m := range result.Matches {
		matches = append(matches, MatchDTO{
			MentorID: string(m.MentorID),
			Mentor: MentorDTO{
				ID:                string(m.Mentor.ID),
				Name:              m.Mentor.Name,
				MentorType:        m.Mentor.MentorType.String(),
				Company:           m.Mentor.Company,
				Position:          m.Mentor.Position,
				Expertise:         m.Mentor.Expertise,
				Industries:        m.Mentor.Industries,
				Rating:            ratingValue(m.Mentor.Rating),
				SessionsCompleted: m.Mentor.SessionsCompleted,
			},
			Score: scoreToPercent(m.Score),
			Breakdown: BreakdownDTO{
				ExpertiseMatch:    scoreToPercent(m.Breakdown.ExpertiseMatch),
				IndustryMatch:     scoreToPercent(m.Breakdown.IndustryMatch),
				AvailabilityMatch: scoreToPercent(m.Breakdown.AvailabilityMatch),
				RatingScore:       scoreToPercent(m.Breakdown.RatingScore),
				ProjectNeedsMatch: scoreToPercent(m.Breakdown.ProjectNeedsMatch),
			},
		})
	}

	return MatchResponse{
		RunID:           result.RunID,
		Matches:         matches,
		TotalCandidates: result.TotalCandidates,
		Degenerate:      result.Degenerate,
		GeneratedAt:     result.GeneratedAt,
	}
}

func toExpertResponse(result *query.FindExpertResult) ExpertResponse {
	mentors := make([]ExpertDTO, 0, len(result.Mentors))
	for _, p := range result.Mentors {
		mentors = append(mentors, ExpertDTO{
			ID:                string(p.ID),
			Name:              p.Name,
			MentorType:        p.MentorType.String(),
			Company:           p.Company,
			Position:          p.Position,
			Expertise:         p.Expertise,
			Rating:            ratingValue(p.Rating),
			SessionsCompleted: p.SessionsCompleted,
		})
	}

	return ExpertResponse{
		RunID:         result.RunID,
		ExpertiseArea: result.ExpertiseArea,
		Mentors:       mentors,
		TotalMatched:  result.TotalMatched,
		GeneratedAt:   result.GeneratedAt,
	}
}

// ratingValue exposes a known rating and hides an absent one.
func ratingValue(r shared.Rating) *float64 {
	if !r.Known {
		return nil
	}
	v := r.Value
	return &v
}

// ══════════════════════════════════════════════════════════════════════════════
// MATCHING HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleMatchMentors handles POST /api/v1/match
func (s *Server) handleMatchMentors(w http.ResponseWriter, r *http.Request) {
	if s.deps.MatchMentorsHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Match handler not configured")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20)) // 1MB limit
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to read request body")
		return
	}
	defer r.Body.Close()

	var req MatchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload")
		return
	}

	limit := 0
	if req.Limit != nil {
		if *req.Limit <= 0 {
			writeJSONError(w, http.StatusBadRequest, "validation_error", "limit must be a positive integer")
			return
		}
		limit = *req.Limit
	}

	// Подбор по ID участника идёт через персональный режим.
	if req.ParticipantID != "" {
		if s.deps.GetRecommendationsHandler == nil {
			writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Recommendations handler not configured")
			return
		}

		result, err := s.deps.GetRecommendationsHandler.Handle(r.Context(), query.RecommendationsQuery{
			ParticipantID: req.ParticipantID,
			Limit:         limit,
		})
		if err != nil {
			s.writeQueryError(w, r, "match mentors", err)
			return
		}

		writeJSONWithMeta(w, r, http.StatusOK, toMatchResponse(result), &ResponseMeta{TotalCount: result.TotalCandidates})
		return
	}

	q := query.MatchMentorsQuery{
		Criteria: matching.Criteria{
			ProjectCategory:     req.ProjectCategory,
			RequiredSkills:      req.RequiredSkills,
			PreferredIndustry:   req.PreferredIndustry,
			ParticipantTimezone: req.ParticipantTimezone,
			MentorType:          mentor.Type(req.MentorType),
			MinRating:           req.MinRating,
		},
		Limit: limit,
	}

	result, err := s.deps.MatchMentorsHandler.Handle(r.Context(), q)
	if err != nil {
		s.writeQueryError(w, r, "match mentors", err)
		return
	}

	writeJSONWithMeta(w, r, http.StatusOK, toMatchResponse(result), &ResponseMeta{TotalCount: result.TotalCandidates})
}

// handleGetRecommendations handles GET /api/v1/participants/{id}/recommendations
func (s *Server) handleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	if s.deps.GetRecommendationsHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Recommendations handler not configured")
		return
	}

	participantID := r.PathValue("id")
	if participantID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Participant ID is required")
		return
	}

	limit, ok := parseLimitParam(w, r)
	if !ok {
		return
	}

	q := query.RecommendationsQuery{
		ParticipantID: participantID,
		Limit:         limit,
	}

	result, err := s.deps.GetRecommendationsHandler.Handle(r.Context(), q)
	if err != nil {
		s.writeQueryError(w, r, "get recommendations", err)
		return
	}

	writeJSONWithMeta(w, r, http.StatusOK, toMatchResponse(result), &ResponseMeta{TotalCount: result.TotalCandidates})
}

// handleFindExpert handles GET /api/v1/experts
func (s *Server) handleFindExpert(w http.ResponseWriter, r *http.Request) {
	if s.deps.FindExpertHandler == nil {
		writeJSONError(w, http.StatusNotImplemented, "not_implemented", "Expert handler not configured")
		return
	}

	area := getQueryParam(r, "area", "")
	if area == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "area query parameter is required")
		return
	}

	limit, ok := parseLimitParam(w, r)
	if !ok {
		return
	}

	q := query.FindExpertQuery{
		ExpertiseArea: area,
		Limit:         limit,
	}

	result, err := s.deps.FindExpertHandler.Handle(r.Context(), q)
	if err != nil {
		s.writeQueryError(w, r, "find expert", err)
		return
	}

	writeJSONWithMeta(w, r, http.StatusOK, toExpertResponse(result), &ResponseMeta{TotalCount: result.TotalMatched})
}

// ══════════════════════════════════════════════════════════════════════════════
// ERROR MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// parseLimitParam reads the optional "limit" query parameter.
// An absent limit returns 0 (handler applies the default); an explicit
// non-positive or malformed limit is a client error.
func parseLimitParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "limit must be a positive integer")
		return 0, false
	}

	return limit, true
}

// writeQueryError maps the domain error taxonomy onto HTTP statuses.
func (s *Server) writeQueryError(w http.ResponseWriter, r *http.Request, op string, err error) {
	fields := logger.Fields{
		"op":         op,
		"error":      err.Error(),
		"request_id": getRequestID(r.Context()),
	}

	switch {
	case shared.IsValidation(err):
		s.logger.Debug("rejected invalid request", fields)
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	case shared.IsNotFound(err):
		s.logger.Debug("requested entity not found", fields)
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case shared.IsDependencyUnavailable(err):
		s.logger.Error("dependency unavailable", fields)
		writeJSONError(w, http.StatusServiceUnavailable, "dependency_unavailable", "Mentor directory is temporarily unavailable")
	default:
		s.logger.Error("query failed", fields)
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
