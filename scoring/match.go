package scoring

import "github.com/quiniela26/prediction-system/models"

// MatchScore is the result of scoring one match prediction.
type MatchScore struct {
	Points        int
	CorrectWinner bool
	CorrectScore  bool
}

// WinnerFromScore derives the match outcome from a final scoreline.
func WinnerFromScore(homeGoals, awayGoals int) models.MatchWinner {
	switch {
	case homeGoals > awayGoals:
		return models.WinnerHome
	case awayGoals > homeGoals:
		return models.WinnerAway
	default:
		return models.WinnerDraw
	}
}

// ScoreMatch compares a match prediction against the final scoreline.
// Exact-score credit requires the winner to be correct as well; since the
// winner is derived from the same scoreline the user predicted, an exact
// score with a wrong winner cannot occur.
func ScoreMatch(p *models.MatchPrediction, homeGoals, awayGoals int) MatchScore {
	actual := WinnerFromScore(homeGoals, awayGoals)

	score := MatchScore{}
	score.CorrectWinner = p.PredictedWinner == actual
	score.CorrectScore = score.CorrectWinner &&
		p.PredictedHomeGoals == homeGoals &&
		p.PredictedAwayGoals == awayGoals

	if score.CorrectWinner {
		score.Points += points(models.CategoryMatch, OutcomeMatchWinner)
	}
	if score.CorrectScore {
		score.Points += points(models.CategoryMatch, OutcomeMatchExactBonus)
	}
	return score
}
