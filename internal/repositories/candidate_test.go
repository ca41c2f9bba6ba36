package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/personality-assessment/internal/models"
)

func TestAveragesSelectCoversAllTraits(t *testing.T) {
	clause := averagesSelect()

	assert.Equal(t,
		"AVG(openness) AS openness, "+
			"AVG(conscientiousness) AS conscientiousness, "+
			"AVG(extraversion) AS extraversion, "+
			"AVG(agreeableness) AS agreeableness, "+
			"AVG(neuroticism) AS neuroticism",
		clause)
}

func TestTraitNamesMapToScanFields(t *testing.T) {
	// Every aliased column must land on a TraitScores field, and the
	// post-scan rounding loop reads it back through the same name.
	var scores models.TraitScores
	for i, name := range models.TraitNames {
		require.True(t, scores.Set(name, float64(i+1)), "no field for trait %q", name)
		value, ok := scores.Get(name)
		require.True(t, ok)
		assert.Equal(t, float64(i+1), value)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		value float64
		want  float64
	}{
		{50, 50},
		{(40.0 + 60.0) / 2, 50},
		{100.0 / 3, 33.33},
		{200.0 / 3, 66.67},
		{0, 0},
		{48.125, 48.13},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Round2(tc.value))
	}
}
