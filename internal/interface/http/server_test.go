package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-hub/forge-accelerator-hub/internal/application/query"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/matching"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/mentor"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/participant"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
	"github.com/forge-hub/forge-accelerator-hub/pkg/logger"
)

const (
	testMentorID      = "aaaaaaaa-1111-4111-8111-aaaaaaaaaaaa"
	testParticipantID = "99999999-9999-4999-8999-999999999999"
)

type stubDirectory struct {
	mentors []*mentor.Profile
	err     error
}

func (d *stubDirectory) ListCandidates(_ context.Context, filter mentor.CandidateFilter) ([]*mentor.Profile, error) {
	if d.err != nil {
		return nil, d.err
	}
	out := make([]*mentor.Profile, 0, len(d.mentors))
	for _, p := range d.mentors {
		if filter.Allows(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (d *stubDirectory) GetByID(_ context.Context, id shared.MentorID) (*mentor.Profile, error) {
	if d.err != nil {
		return nil, d.err
	}
	for _, p := range d.mentors {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, shared.ErrMentorNotFound
}

type stubParticipantStore struct {
	profiles map[shared.ParticipantID]*participant.Profile
}

func (s *stubParticipantStore) Get(_ context.Context, id shared.ParticipantID) (*participant.Profile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, shared.ErrParticipantNotFound
	}
	return p, nil
}

type stubProjectStore struct{}

func (s *stubProjectStore) GetByParticipant(_ context.Context, _ shared.ParticipantID) (*participant.Project, error) {
	return nil, nil
}

func testMentors() []*mentor.Profile {
	return []*mentor.Profile{
		{
			ID:                shared.MentorID(testMentorID),
			Name:              "Dana Mukhamedzhanova",
			MentorType:        mentor.TypeTechnical,
			Expertise:         []string{"go", "postgres"},
			Industries:        []string{"fintech"},
			Rating:            shared.Rating{Value: 4.5, Known: true},
			SessionsCompleted: 42,
			Availability:      mentor.Availability{Booking: mentor.BookingAccepting, Timezone: "GMT+5"},
		},
		{
			ID:           shared.MentorID("bbbbbbbb-2222-4222-8222-bbbbbbbbbbbb"),
			Name:         "New Mentor",
			MentorType:   mentor.TypeIndustry,
			Expertise:    []string{"marketing"},
			Availability: mentor.Availability{Booking: mentor.BookingAccepting, Timezone: "UTC"},
		},
	}
}

func newTestServer(t *testing.T, directory mentor.Directory) *Server {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelError, logger.FormatText)

	scorer, err := matching.NewScoringEngine(matching.DefaultScoreWeights(), matching.DefaultZoneTolerance)
	require.NoError(t, err)

	participants := &stubParticipantStore{
		profiles: map[shared.ParticipantID]*participant.Profile{
			shared.ParticipantID(testParticipantID): {
				ID:             shared.ParticipantID(testParticipantID),
				Name:           "Arman Student",
				Timezone:       "GMT+5",
				SkillInterests: []string{"go"},
			},
		},
	}

	resolver := query.NewCriteriaResolver(participants, &stubProjectStore{}, false)
	matcher := query.NewMatchMentorsHandler(directory, resolver, matching.NewRankingEngine(scorer, 0), log)

	return NewServer(DefaultConfig(), Dependencies{
		MatchMentorsHandler:       matcher,
		GetRecommendationsHandler: query.NewGetRecommendationsHandler(matcher, resolver, log),
		FindExpertHandler:         query.NewFindExpertHandler(directory, true, log),
		Logger:                    log,
	})
}

func doRequest(s *Server, method, target string, body []byte) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestMatchEndpoint_ExplicitCriteria(t *testing.T) {
	server := newTestServer(t, &stubDirectory{mentors: testMentors()})

	body, _ := json.Marshal(MatchRequest{
		RequiredSkills:      []string{"go", "postgres"},
		PreferredIndustry:   "fintech",
		ParticipantTimezone: "GMT+5",
	})
	rec := doRequest(server, http.MethodPost, "/api/v1/match", body)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MatchResponse
	decodeData(t, rec, &resp)

	assert.NotEmpty(t, resp.RunID)
	assert.Equal(t, 2, resp.TotalCandidates)
	require.NotEmpty(t, resp.Matches)
	assert.Equal(t, testMentorID, resp.Matches[0].MentorID)

	// Scores are exposed as 0-100 integers.
	assert.Greater(t, resp.Matches[0].Score, 0)
	assert.LessOrEqual(t, resp.Matches[0].Score, 100)
	assert.Equal(t, 100, resp.Matches[0].Breakdown.ExpertiseMatch)

	// A known rating is exposed as a number; an absent one is omitted.
	require.NotNil(t, resp.Matches[0].Mentor.Rating)
	assert.Equal(t, 4.5, *resp.Matches[0].Mentor.Rating)
}

func TestMatchEndpoint_ParticipantIDUsesPersonalizedPath(t *testing.T) {
	server := newTestServer(t, &stubDirectory{mentors: testMentors()})

	body, _ := json.Marshal(MatchRequest{ParticipantID: testParticipantID})
	rec := doRequest(server, http.MethodPost, "/api/v1/match", body)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MatchResponse
	decodeData(t, rec, &resp)
	assert.NotEmpty(t, resp.Matches)
}

func TestMatchEndpoint_ExplicitZeroLimitRejected(t *testing.T) {
	server := newTestServer(t, &stubDirectory{mentors: testMentors()})

	zero := 0
	body, _ := json.Marshal(MatchRequest{Limit: &zero})
	rec := doRequest(server, http.MethodPost, "/api/v1/match", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestMatchEndpoint_InvalidJSON(t *testing.T) {
	server := newTestServer(t, &stubDirectory{mentors: testMentors()})

	rec := doRequest(server, http.MethodPost, "/api/v1/match", []byte("{not json"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchEndpoint_DirectoryDownIs503(t *testing.T) {
	server := newTestServer(t, &stubDirectory{err: errors.New("connection refused")})

	body, _ := json.Marshal(MatchRequest{RequiredSkills: []string{"go"}})
	rec := doRequest(server, http.MethodPost, "/api/v1/match", body)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "dependency_unavailable")
}

func TestRecommendationsEndpoint(t *testing.T) {
	server := newTestServer(t, &stubDirectory{mentors: testMentors()})

	rec := doRequest(server, http.MethodGet, "/api/v1/participants/"+testParticipantID+"/recommendations", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MatchResponse
	decodeData(t, rec, &resp)
	assert.NotEmpty(t, resp.Matches)
}

func TestRecommendationsEndpoint_UnknownParticipantIs404(t *testing.T) {
	server := newTestServer(t, &stubDirectory{mentors: testMentors()})

	rec := doRequest(server, http.MethodGet, "/api/v1/participants/11111111-0000-4000-8000-000000000000/recommendations", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestRecommendationsEndpoint_MalformedLimitIs400(t *testing.T) {
	server := newTestServer(t, &stubDirectory{mentors: testMentors()})

	rec := doRequest(server, http.MethodGet, "/api/v1/participants/"+testParticipantID+"/recommendations?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(server, http.MethodGet, "/api/v1/participants/"+testParticipantID+"/recommendations?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExpertsEndpoint(t *testing.T) {
	server := newTestServer(t, &stubDirectory{mentors: testMentors()})

	rec := doRequest(server, http.MethodGet, "/api/v1/experts?area=go", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ExpertResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, "go", resp.ExpertiseArea)
	require.Len(t, resp.Mentors, 1)
	assert.Equal(t, testMentorID, resp.Mentors[0].ID)
}

func TestExpertsEndpoint_MissingAreaIs400(t *testing.T) {
	server := newTestServer(t, &stubDirectory{mentors: testMentors()})

	rec := doRequest(server, http.MethodGet, "/api/v1/experts", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	server := newTestServer(t, &stubDirectory{mentors: testMentors()})

	assert.Equal(t, http.StatusOK, doRequest(server, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(server, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(server, http.MethodGet, "/ready", nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(server, http.MethodGet, "/live", nil).Code)
}

func TestScoreToPercent(t *testing.T) {
	assert.Equal(t, 0, scoreToPercent(0))
	assert.Equal(t, 50, scoreToPercent(0.5))
	assert.Equal(t, 91, scoreToPercent(0.905))
	assert.Equal(t, 100, scoreToPercent(1.0))
}

func TestRatingValue(t *testing.T) {
	assert.Nil(t, ratingValue(shared.UnknownRating()))

	v := ratingValue(shared.Rating{Value: 4.2, Known: true})
	require.NotNil(t, v)
	assert.Equal(t, 4.2, *v)
}
