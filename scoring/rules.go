package scoring

import (
	"errors"
	"fmt"

	"github.com/quiniela26/prediction-system/models"
)

var ErrUnknownOutcome = errors.New("unknown scoring outcome")

// Outcome keys of the rule table. Knockout outcomes are keyed by the stage
// value itself.
const (
	OutcomeGroupFirst      = "group_first"
	OutcomeGroupSecond     = "group_second"
	OutcomeGroupThird      = "group_third"
	OutcomeGroupPerfect    = "group_perfect_bonus"
	OutcomeMatchWinner     = "match_winner"
	OutcomeMatchExactBonus = "match_exact_bonus"
	OutcomeChampion        = "champion"
	OutcomeRunnerUp        = "runner_up"
	OutcomeTopScorer       = "top_scorer"
	OutcomeBestPlayer      = "best_player"
	OutcomeBestGoalkeeper  = "best_goalkeeper"
)

// ruleTable is the fixed scoring configuration. It is not negotiable at
// runtime; every point value awarded anywhere in the system comes from here.
var ruleTable = map[models.PredictionCategory]map[string]int{
	models.CategoryGroup: {
		OutcomeGroupFirst:   5,
		OutcomeGroupSecond:  3,
		OutcomeGroupThird:   2,
		OutcomeGroupPerfect: 5,
	},
	models.CategoryMatch: {
		OutcomeMatchWinner:     3,
		OutcomeMatchExactBonus: 5,
	},
	models.CategoryKnockout: {
		string(models.StageRoundOf32):    1,
		string(models.StageRoundOf16):    2,
		string(models.StageQuarterFinal): 3,
		string(models.StageSemiFinal):    5,
		string(models.StageThirdPlace):   3,
		string(models.StageFinal):        10,
	},
	models.CategoryTournament: {
		OutcomeChampion:       10,
		OutcomeRunnerUp:       5,
		OutcomeTopScorer:      5,
		OutcomeBestPlayer:     3,
		OutcomeBestGoalkeeper: 3,
	},
}

// PointsFor returns the point value for one category/outcome pair.
func PointsFor(category models.PredictionCategory, outcome string) (int, error) {
	outcomes, ok := ruleTable[category]
	if !ok {
		return 0, fmt.Errorf("%w: category %q", ErrUnknownOutcome, category)
	}
	points, ok := outcomes[outcome]
	if !ok {
		return 0, fmt.Errorf("%w: %q in category %q", ErrUnknownOutcome, outcome, category)
	}
	return points, nil
}

// RuleTable returns a copy of the full scoring configuration for client
// display.
func RuleTable() map[models.PredictionCategory]map[string]int {
	out := make(map[models.PredictionCategory]map[string]int, len(ruleTable))
	for category, outcomes := range ruleTable {
		cp := make(map[string]int, len(outcomes))
		for outcome, points := range outcomes {
			cp[outcome] = points
		}
		out[category] = cp
	}
	return out
}

// points is the internal lookup for outcomes that are package constants;
// a miss is a programmer error, not a runtime condition.
func points(category models.PredictionCategory, outcome string) int {
	return ruleTable[category][outcome]
}
