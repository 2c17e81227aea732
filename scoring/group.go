package scoring

import "github.com/quiniela26/prediction-system/models"

// ScoreGroup compares a group prediction against the finalized standings and
// returns the points earned. Matching tiers sum individually; hitting all
// three exactly adds the perfect-group bonus on top. A prediction without a
// third place can never reach the bonus but is not penalized.
func ScoreGroup(p *models.GroupPrediction, s *models.GroupStanding) int {
	total := 0
	if p.FirstTeamID == s.FirstTeamID {
		total += points(models.CategoryGroup, OutcomeGroupFirst)
	}
	if p.SecondTeamID == s.SecondTeamID {
		total += points(models.CategoryGroup, OutcomeGroupSecond)
	}
	if p.ThirdTeamID != nil && *p.ThirdTeamID == s.ThirdTeamID {
		total += points(models.CategoryGroup, OutcomeGroupThird)
	}

	perfect := points(models.CategoryGroup, OutcomeGroupFirst) +
		points(models.CategoryGroup, OutcomeGroupSecond) +
		points(models.CategoryGroup, OutcomeGroupThird)
	if total == perfect {
		total += points(models.CategoryGroup, OutcomeGroupPerfect)
	}
	return total
}
