package scoring

import "github.com/quiniela26/prediction-system/models"

// ScoreTournament independently compares each predicted award against the
// finalized tournament result and sums the matching categories.
func ScoreTournament(p *models.TournamentPrediction, r *models.TournamentResult) int {
	total := 0
	if p.ChampionTeamID == r.ChampionTeamID {
		total += points(models.CategoryTournament, OutcomeChampion)
	}
	if p.RunnerUpTeamID == r.RunnerUpTeamID {
		total += points(models.CategoryTournament, OutcomeRunnerUp)
	}
	if p.TopScorerPlayerID == r.TopScorerPlayerID {
		total += points(models.CategoryTournament, OutcomeTopScorer)
	}
	if p.BestPlayerPlayerID == r.BestPlayerPlayerID {
		total += points(models.CategoryTournament, OutcomeBestPlayer)
	}
	if p.BestGoalkeeperPlayerID == r.BestGoalkeeperPlayerID {
		total += points(models.CategoryTournament, OutcomeBestGoalkeeper)
	}
	return total
}
