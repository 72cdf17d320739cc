package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-hub/forge-accelerator-hub/internal/domain/matching"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/mentor"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/participant"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
)

func newRecommendationsHandler(t *testing.T, directory mentor.Directory, participants *fakeParticipantStore, projects *fakeProjectStore) *GetRecommendationsHandler {
	t.Helper()

	scorer, err := matching.NewScoringEngine(matching.DefaultScoreWeights(), matching.DefaultZoneTolerance)
	require.NoError(t, err)

	resolver := NewCriteriaResolver(participants, projects, false)
	matcher := NewMatchMentorsHandler(directory, resolver, matching.NewRankingEngine(scorer, 0), quietLogger())

	return NewGetRecommendationsHandler(matcher, resolver, quietLogger())
}

func studentProfile() *participant.Profile {
	return &participant.Profile{
		ID:             shared.ParticipantID(studentUUID),
		Name:           "Arman Student",
		Cohort:         "2026-spring",
		TeamID:         "team-42",
		Timezone:       "GMT+5",
		SkillInterests: []string{"go"},
	}
}

func studentProject() *participant.Project {
	return &participant.Project{
		ID:        "f0e1d2c3-0000-4000-8000-000000000001",
		TeamID:    "team-42",
		Name:      "PayFlow",
		Category:  "fintech",
		SkillGaps: []string{"postgres", "distributed-systems"},
		Industry:  "fintech",
	}
}

func TestGetRecommendations_ResolvesCriteriaFromProject(t *testing.T) {
	participants := &fakeParticipantStore{
		profiles: map[shared.ParticipantID]*participant.Profile{
			shared.ParticipantID(studentUUID): studentProfile(),
		},
	}
	projects := &fakeProjectStore{
		projects: map[shared.ParticipantID]*participant.Project{
			shared.ParticipantID(studentUUID): studentProject(),
		},
	}
	handler := newRecommendationsHandler(t, &fakeDirectory{mentors: testPool()}, participants, projects)

	result, err := handler.Handle(context.Background(), RecommendationsQuery{ParticipantID: studentUUID})

	require.NoError(t, err)
	assert.False(t, result.Degenerate)

	// Дефициты проекта идут первыми, затем интересы участника.
	assert.Equal(t, []string{"postgres", "distributed-systems", "go"}, result.Criteria.RequiredSkills)
	assert.Equal(t, "fintech", result.Criteria.ProjectCategory)
	assert.Equal(t, "fintech", result.Criteria.PreferredIndustry)
	assert.Equal(t, "GMT+5", result.Criteria.ParticipantTimezone)

	require.NotEmpty(t, result.Matches)
	assert.Equal(t, shared.MentorID(expertID), result.Matches[0].MentorID)
}

func TestGetRecommendations_ParticipantWithoutProject(t *testing.T) {
	participants := &fakeParticipantStore{
		profiles: map[shared.ParticipantID]*participant.Profile{
			shared.ParticipantID(studentUUID): studentProfile(),
		},
	}
	handler := newRecommendationsHandler(t, &fakeDirectory{mentors: testPool()}, participants, &fakeProjectStore{})

	result, err := handler.Handle(context.Background(), RecommendationsQuery{ParticipantID: studentUUID})

	// Участник без проекта - валидный запуск на собственных сигналах.
	require.NoError(t, err)
	assert.False(t, result.Degenerate)
	assert.Equal(t, []string{"go"}, result.Criteria.RequiredSkills)
	assert.Empty(t, result.Criteria.ProjectCategory)
}

func TestGetRecommendations_DefaultAndMaxLimit(t *testing.T) {
	q := RecommendationsQuery{ParticipantID: studentUUID}
	require.NoError(t, q.Validate())
	assert.Equal(t, DefaultRecommendationLimit, q.Limit)

	q = RecommendationsQuery{ParticipantID: studentUUID, Limit: 500}
	require.NoError(t, q.Validate())
	assert.Equal(t, MaxRecommendationLimit, q.Limit)

	q = RecommendationsQuery{ParticipantID: studentUUID, Limit: -1}
	assert.Error(t, q.Validate())
}

func TestGetRecommendations_UnknownParticipant(t *testing.T) {
	handler := newRecommendationsHandler(t, &fakeDirectory{mentors: testPool()}, &fakeParticipantStore{}, &fakeProjectStore{})

	_, err := handler.Handle(context.Background(), RecommendationsQuery{ParticipantID: studentUUID})

	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}

func TestGetRecommendations_MalformedParticipantID(t *testing.T) {
	handler := newRecommendationsHandler(t, &fakeDirectory{mentors: testPool()}, &fakeParticipantStore{}, &fakeProjectStore{})

	_, err := handler.Handle(context.Background(), RecommendationsQuery{ParticipantID: "not-a-uuid"})

	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestGetRecommendations_StoreFailureIsDependencyError(t *testing.T) {
	handler := newRecommendationsHandler(t, &fakeDirectory{mentors: testPool()}, &fakeParticipantStore{err: errStoreDown}, &fakeProjectStore{})

	_, err := handler.Handle(context.Background(), RecommendationsQuery{ParticipantID: studentUUID})

	require.Error(t, err)
	assert.True(t, shared.IsDependencyUnavailable(err))
}

func TestGetRecommendations_ProjectStoreFailureIsDependencyError(t *testing.T) {
	participants := &fakeParticipantStore{
		profiles: map[shared.ParticipantID]*participant.Profile{
			shared.ParticipantID(studentUUID): studentProfile(),
		},
	}
	handler := newRecommendationsHandler(t, &fakeDirectory{mentors: testPool()}, participants, &fakeProjectStore{err: errStoreDown})

	_, err := handler.Handle(context.Background(), RecommendationsQuery{ParticipantID: studentUUID})

	require.Error(t, err)
	assert.True(t, shared.IsDependencyUnavailable(err))
}
