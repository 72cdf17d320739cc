package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMentorID(t *testing.T) {
	valid := MentorID("a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d")
	assert.True(t, valid.IsValid())
	assert.False(t, valid.IsEmpty())

	assert.False(t, MentorID("not-a-uuid").IsValid())
	assert.False(t, MentorID("").IsValid())
	assert.True(t, MentorID("").IsEmpty())
}

func TestParticipantID(t *testing.T) {
	valid := ParticipantID("a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d")
	assert.True(t, valid.IsValid())

	assert.False(t, ParticipantID("12345").IsValid())
	assert.True(t, ParticipantID("").IsEmpty())
}

func TestNewRating(t *testing.T) {
	r, err := NewRating(4.5)
	require.NoError(t, err)
	assert.True(t, r.Known)
	assert.Equal(t, 4.5, r.Value)

	_, err = NewRating(-0.1)
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = NewRating(5.1)
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestRating_OrNeutral(t *testing.T) {
	assert.Equal(t, 4.2, Rating{Value: 4.2, Known: true}.OrNeutral())
	assert.Equal(t, RatingNeutral, UnknownRating().OrNeutral())

	// A known zero rating is zero, not the neutral midpoint.
	assert.Equal(t, 0.0, Rating{Value: 0, Known: true}.OrNeutral())
}

func TestRating_AtLeast(t *testing.T) {
	rated := Rating{Value: 4.0, Known: true}
	assert.True(t, rated.AtLeast(4.0))
	assert.True(t, rated.AtLeast(3.5))
	assert.False(t, rated.AtLeast(4.5))

	// A zero or negative threshold always passes.
	assert.True(t, rated.AtLeast(0))
	assert.True(t, UnknownRating().AtLeast(0))
	assert.True(t, UnknownRating().AtLeast(-1))

	// An absent rating never passes a positive threshold, even one
	// below the neutral midpoint.
	assert.False(t, UnknownRating().AtLeast(2.0))
	assert.False(t, UnknownRating().AtLeast(0.1))
}

func TestNormalizeTag(t *testing.T) {
	assert.Equal(t, "fintech", NormalizeTag("  FinTech "))
	assert.Equal(t, "distributed-systems", NormalizeTag("Distributed   Systems"))
	assert.Equal(t, "go", NormalizeTag("go"))
	assert.Equal(t, "", NormalizeTag("   "))
}

func TestNormalizeTags(t *testing.T) {
	tags := NormalizeTags([]string{"Go", " go ", "", "Machine Learning", "GO"})
	assert.Equal(t, []string{"go", "machine-learning"}, tags)

	assert.Empty(t, NormalizeTags(nil))
	assert.Empty(t, NormalizeTags([]string{"", "  "}))
}
