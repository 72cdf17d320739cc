package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Classification(t *testing.T) {
	assert.True(t, IsNotFound(ErrMentorNotFound))
	assert.True(t, IsNotFound(ErrParticipantNotFound))
	assert.False(t, IsValidation(ErrMentorNotFound))

	assert.True(t, IsValidation(ErrInvalidCriteria))
	assert.True(t, IsValidation(ErrInvalidLimit))
	assert.True(t, IsValidation(ErrUnknownMentorType))
	assert.False(t, IsNotFound(ErrInvalidCriteria))

	assert.True(t, IsDependencyUnavailable(ErrDirectoryUnavailable))
	assert.True(t, IsDependencyUnavailable(ErrDirectoryTimeout))
	assert.False(t, IsValidation(ErrDirectoryUnavailable))
}

func TestWrapError_PreservesKindAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapError("mentor", "ListCandidates", ErrDependencyUnavailable, "mentor directory unavailable", cause)

	assert.True(t, IsDependencyUnavailable(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "mentor.ListCandidates")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestDomainError_WrappedNotFoundStaysNotFound(t *testing.T) {
	err := WrapError("participant", "Get", ErrNotFound, "participant not found", nil)

	assert.True(t, IsNotFound(err))
	assert.False(t, IsDependencyUnavailable(err))
}
