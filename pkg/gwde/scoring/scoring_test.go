package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorePerfectMatch(t *testing.T) {
	assert.Equal(t, 1.0, Score(10, 10))
}

func TestScoreZeroTotal(t *testing.T) {
	assert.Equal(t, 0.0, Score(0, 0))
}

func TestFalsePositiveRatePerfectMatchIsTiny(t *testing.T) {
	fpr := FalsePositiveRate(100, 100)
	assert.Less(t, fpr, 1e-6)
}

func TestFalsePositiveRateChanceMatchIsAboutHalf(t *testing.T) {
	fpr := FalsePositiveRate(50, 100)
	assert.InDelta(t, 0.5, fpr, 0.05)
}
