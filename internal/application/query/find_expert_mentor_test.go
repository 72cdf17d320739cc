package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-hub/forge-accelerator-hub/internal/domain/mentor"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
)

func expertPool() []*mentor.Profile {
	return []*mentor.Profile{
		{
			ID:                shared.MentorID(expertID),
			Name:              "UX Lead",
			MentorType:        mentor.TypeIndustry,
			Expertise:         []string{"ux-research", "product-design"},
			Rating:            shared.Rating{Value: 4.6, Known: true},
			SessionsCompleted: 90,
		},
		{
			ID:                shared.MentorID(juniorID),
			Name:              "UX Junior",
			MentorType:        mentor.TypeIndustry,
			Expertise:         []string{"ux-research"},
			Rating:            shared.Rating{Value: 4.6, Known: true},
			SessionsCompleted: 12,
		},
		{
			ID:                shared.MentorID(investorID),
			Name:              "Backend Mentor",
			MentorType:        mentor.TypeTechnical,
			Expertise:         []string{"go", "postgres"},
			Rating:            shared.Rating{Value: 5.0, Known: true},
			SessionsCompleted: 200,
		},
		{
			ID:                shared.MentorID(noRatingID),
			Name:              "New UX Mentor",
			MentorType:        mentor.TypeIndustry,
			Expertise:         []string{"ux-writing"},
			SessionsCompleted: 0,
		},
	}
}

func TestFindExpert_SubstringMatch(t *testing.T) {
	handler := NewFindExpertHandler(&fakeDirectory{mentors: expertPool()}, true, quietLogger())

	result, err := handler.Handle(context.Background(), FindExpertQuery{ExpertiseArea: "ux"})

	require.NoError(t, err)
	assert.Equal(t, "ux", result.ExpertiseArea)
	assert.Equal(t, 3, result.TotalMatched)
	require.Len(t, result.Mentors, 3)

	// Рейтинг по убыванию, ничья по сессиям, затем новичок без рейтинга.
	assert.Equal(t, shared.MentorID(expertID), result.Mentors[0].ID)
	assert.Equal(t, shared.MentorID(juniorID), result.Mentors[1].ID)
	assert.Equal(t, shared.MentorID(noRatingID), result.Mentors[2].ID)
}

func TestFindExpert_ExactMatchOnly(t *testing.T) {
	handler := NewFindExpertHandler(&fakeDirectory{mentors: expertPool()}, false, quietLogger())

	result, err := handler.Handle(context.Background(), FindExpertQuery{ExpertiseArea: "ux"})

	require.NoError(t, err)
	// Точный режим: "ux" не совпадает с "ux-research".
	assert.Empty(t, result.Mentors)

	result, err = handler.Handle(context.Background(), FindExpertQuery{ExpertiseArea: "ux-research"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalMatched)
}

func TestFindExpert_NormalizesArea(t *testing.T) {
	handler := NewFindExpertHandler(&fakeDirectory{mentors: expertPool()}, false, quietLogger())

	result, err := handler.Handle(context.Background(), FindExpertQuery{ExpertiseArea: "  UX Research "})

	require.NoError(t, err)
	assert.Equal(t, "ux-research", result.ExpertiseArea)
	assert.Equal(t, 2, result.TotalMatched)
}

func TestFindExpert_LimitApplied(t *testing.T) {
	handler := NewFindExpertHandler(&fakeDirectory{mentors: expertPool()}, true, quietLogger())

	result, err := handler.Handle(context.Background(), FindExpertQuery{ExpertiseArea: "ux", Limit: 1})

	require.NoError(t, err)
	assert.Len(t, result.Mentors, 1)
	assert.Equal(t, 3, result.TotalMatched)
	assert.Equal(t, shared.MentorID(expertID), result.Mentors[0].ID)
}

func TestFindExpert_DefaultAndMaxLimit(t *testing.T) {
	q := FindExpertQuery{ExpertiseArea: "go"}
	require.NoError(t, q.Validate())
	assert.Equal(t, DefaultExpertLimit, q.Limit)

	q = FindExpertQuery{ExpertiseArea: "go", Limit: 200}
	require.NoError(t, q.Validate())
	assert.Equal(t, MaxExpertLimit, q.Limit)
}

func TestFindExpert_EmptyAreaIsValidationError(t *testing.T) {
	handler := NewFindExpertHandler(&fakeDirectory{mentors: expertPool()}, true, quietLogger())

	_, err := handler.Handle(context.Background(), FindExpertQuery{ExpertiseArea: "   "})

	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestFindExpert_NoMatchesIsNotAnError(t *testing.T) {
	handler := NewFindExpertHandler(&fakeDirectory{mentors: expertPool()}, true, quietLogger())

	result, err := handler.Handle(context.Background(), FindExpertQuery{ExpertiseArea: "blockchain"})

	require.NoError(t, err)
	assert.Empty(t, result.Mentors)
	assert.Zero(t, result.TotalMatched)
}

func TestFindExpert_DirectoryFailureIsDependencyError(t *testing.T) {
	handler := NewFindExpertHandler(&fakeDirectory{err: errStoreDown}, true, quietLogger())

	_, err := handler.Handle(context.Background(), FindExpertQuery{ExpertiseArea: "go"})

	require.Error(t, err)
	assert.True(t, shared.IsDependencyUnavailable(err))
}
