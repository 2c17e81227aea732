package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quiniela26/prediction-system/models"
)

func intPtr(v int) *int { return &v }

func finalStanding() *models.GroupStanding {
	return &models.GroupStanding{
		GroupCode:    "A",
		FirstTeamID:  1,
		SecondTeamID: 2,
		ThirdTeamID:  3,
		Finalized:    true,
	}
}

func TestScoreGroup_PerfectGroup(t *testing.T) {
	p := &models.GroupPrediction{
		GroupCode:    "A",
		FirstTeamID:  1,
		SecondTeamID: 2,
		ThirdTeamID:  intPtr(3),
	}

	// 5 + 3 + 2 + 5 bonus, never 10 or 20.
	assert.Equal(t, 15, ScoreGroup(p, finalStanding()))
}

func TestScoreGroup_PartialTiers(t *testing.T) {
	cases := []struct {
		name   string
		p      *models.GroupPrediction
		points int
	}{
		{
			name:   "first only",
			p:      &models.GroupPrediction{FirstTeamID: 1, SecondTeamID: 9, ThirdTeamID: intPtr(9)},
			points: 5,
		},
		{
			name:   "second only",
			p:      &models.GroupPrediction{FirstTeamID: 9, SecondTeamID: 2, ThirdTeamID: intPtr(9)},
			points: 3,
		},
		{
			name:   "third only",
			p:      &models.GroupPrediction{FirstTeamID: 9, SecondTeamID: 9, ThirdTeamID: intPtr(3)},
			points: 2,
		},
		{
			name:   "first and second",
			p:      &models.GroupPrediction{FirstTeamID: 1, SecondTeamID: 2, ThirdTeamID: intPtr(9)},
			points: 8,
		},
		{
			name:   "nothing right",
			p:      &models.GroupPrediction{FirstTeamID: 9, SecondTeamID: 8, ThirdTeamID: intPtr(7)},
			points: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.points, ScoreGroup(tc.p, finalStanding()))
		})
	}
}

func TestScoreGroup_MissingThirdNeverReachesBonus(t *testing.T) {
	p := &models.GroupPrediction{
		FirstTeamID:  1,
		SecondTeamID: 2,
		ThirdTeamID:  nil,
	}

	// First and second correct with no third: 8 points, no bonus.
	assert.Equal(t, 8, ScoreGroup(p, finalStanding()))
}

// Teams swapped between tiers score nothing for those tiers.
func TestScoreGroup_SwappedTiers(t *testing.T) {
	p := &models.GroupPrediction{
		FirstTeamID:  2,
		SecondTeamID: 1,
		ThirdTeamID:  intPtr(3),
	}

	assert.Equal(t, 2, ScoreGroup(p, finalStanding()))
}
