package scoring

import "github.com/quiniela26/prediction-system/models"

// KnockoutScore is the result of scoring one knockout prediction. Correct is
// nil when the linked match ended in a draw: the fixture has no winner to
// compare against, so the prediction is indeterminate rather than wrong.
type KnockoutScore struct {
	Points  int
	Correct *bool
}

// ScoreKnockout resolves the actual winner of the linked knockout match and
// awards the stage value on a hit, zero otherwise.
func ScoreKnockout(p *models.KnockoutPrediction, homeTeamID, awayTeamID, homeGoals, awayGoals int) KnockoutScore {
	winner := WinnerFromScore(homeGoals, awayGoals)
	if winner == models.WinnerDraw {
		return KnockoutScore{}
	}

	winnerTeamID := homeTeamID
	if winner == models.WinnerAway {
		winnerTeamID = awayTeamID
	}

	correct := p.PredictedWinnerTeamID == winnerTeamID
	score := KnockoutScore{Correct: &correct}
	if correct {
		score.Points = points(models.CategoryKnockout, string(p.Stage))
	}
	return score
}
