package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
)

func TestDefaultScoreWeights(t *testing.T) {
	w := DefaultScoreWeights()

	assert.NoError(t, w.Validate())
	assert.InDelta(t, 1.0, w.Sum(), weightSumTolerance)
	assert.Equal(t, 0.35, w.Expertise)
	assert.Equal(t, 0.20, w.Rating)
}

func TestScoreWeights_Validate(t *testing.T) {
	valid := ScoreWeights{Expertise: 0.5, Industry: 0.1, Availability: 0.1, Rating: 0.2, ProjectNeeds: 0.1}
	assert.NoError(t, valid.Validate())

	badSum := ScoreWeights{Expertise: 0.5, Industry: 0.5, Availability: 0.5}
	assert.ErrorIs(t, badSum.Validate(), shared.ErrInvalidWeights)

	negative := ScoreWeights{Expertise: 1.2, Industry: -0.2}
	assert.ErrorIs(t, negative.Validate(), shared.ErrInvalidWeights)

	assert.ErrorIs(t, ScoreWeights{}.Validate(), shared.ErrInvalidWeights)
}
