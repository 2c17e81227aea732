package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiniela26/prediction-system/models"
)

type predictionEnv struct {
	*scoringEnv
	teams *fakeTeamRepo
	svc   PredictionService
}

func newPredictionEnv() *predictionEnv {
	base := newScoringEnv()
	teams := newFakeTeamRepo()
	return &predictionEnv{
		scoringEnv: base,
		teams:      teams,
		svc: NewPredictionService(
			base.matches, teams, base.standings, base.results,
			base.groupPreds, base.matchPreds, base.knockoutPreds, base.tournamentPreds,
			base.aggregates),
	}
}

func TestSaveMatchPredictionUpsertsPerMatch(t *testing.T) {
	env := newPredictionEnv()
	user := env.users.addUser("alice")
	group := "A"
	match := env.matches.addMatch(&models.Match{
		GroupCode: &group, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusScheduled,
	})
	ctx := context.Background()

	first, err := env.svc.SaveMatchPrediction(ctx, user.ID, MatchPredictionInput{
		MatchID: match.ID, PredictedWinner: models.WinnerHome,
		PredictedHomeGoals: 2, PredictedAwayGoals: 0,
	})
	require.NoError(t, err)

	second, err := env.svc.SaveMatchPrediction(ctx, user.ID, MatchPredictionInput{
		MatchID: match.ID, PredictedWinner: models.WinnerDraw,
		PredictedHomeGoals: 1, PredictedAwayGoals: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "resubmitting replaces the previous guess")

	stored, err := env.matchPreds.GetByUserAndMatch(ctx, user.ID, match.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WinnerDraw, stored.PredictedWinner)
}

func TestSaveMatchPredictionRejectsStartedMatch(t *testing.T) {
	env := newPredictionEnv()
	user := env.users.addUser("alice")
	group := "A"
	match := env.matches.addMatch(&models.Match{
		GroupCode: &group, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusInProgress,
	})

	_, err := env.svc.SaveMatchPrediction(context.Background(), user.ID, MatchPredictionInput{
		MatchID: match.ID, PredictedWinner: models.WinnerHome,
		PredictedHomeGoals: 1, PredictedAwayGoals: 0,
	})
	assert.ErrorIs(t, err, ErrPredictionLocked)
}

func TestSaveMatchPredictionRejectsContradictoryScoreline(t *testing.T) {
	env := newPredictionEnv()
	user := env.users.addUser("alice")
	group := "A"
	match := env.matches.addMatch(&models.Match{
		GroupCode: &group, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusScheduled,
	})

	_, err := env.svc.SaveMatchPrediction(context.Background(), user.ID, MatchPredictionInput{
		MatchID: match.ID, PredictedWinner: models.WinnerHome,
		PredictedHomeGoals: 0, PredictedAwayGoals: 2,
	})
	assert.ErrorIs(t, err, ErrScorelineMismatch)
}

func TestSaveGroupPredictionValidatesTeams(t *testing.T) {
	env := newPredictionEnv()
	user := env.users.addUser("alice")
	groupA := "A"
	groupB := "B"
	teamA1 := env.teams.addTeam("ARG", &groupA)
	teamA2 := env.teams.addTeam("MEX", &groupA)
	teamB1 := env.teams.addTeam("BRA", &groupB)
	ctx := context.Background()

	_, err := env.svc.SaveGroupPrediction(ctx, user.ID, GroupPredictionInput{
		GroupCode: "A", FirstTeamID: teamA1.ID, SecondTeamID: teamB1.ID,
	})
	assert.ErrorIs(t, err, ErrTeamNotInGroup)

	_, err = env.svc.SaveGroupPrediction(ctx, user.ID, GroupPredictionInput{
		GroupCode: "A", FirstTeamID: teamA1.ID, SecondTeamID: teamA1.ID,
	})
	assert.ErrorIs(t, err, ErrValidationFailed)

	prediction, err := env.svc.SaveGroupPrediction(ctx, user.ID, GroupPredictionInput{
		GroupCode: "A", FirstTeamID: teamA1.ID, SecondTeamID: teamA2.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, prediction.ThirdTeamID, "third place pick stays optional")
}

func TestSaveGroupPredictionRejectsFinalizedGroup(t *testing.T) {
	env := newPredictionEnv()
	user := env.users.addUser("alice")
	groupA := "A"
	team1 := env.teams.addTeam("ARG", &groupA)
	team2 := env.teams.addTeam("MEX", &groupA)
	ctx := context.Background()

	require.NoError(t, env.standings.Upsert(ctx, &models.GroupStanding{
		GroupCode: "A", FirstTeamID: team1.ID, SecondTeamID: team2.ID, ThirdTeamID: 99,
		Finalized: true,
	}))

	_, err := env.svc.SaveGroupPrediction(ctx, user.ID, GroupPredictionInput{
		GroupCode: "A", FirstTeamID: team1.ID, SecondTeamID: team2.ID,
	})
	assert.ErrorIs(t, err, ErrPredictionLocked)
}

func TestSaveKnockoutPredictionValidations(t *testing.T) {
	env := newPredictionEnv()
	user := env.users.addUser("alice")
	group := "A"
	groupMatch := env.matches.addMatch(&models.Match{
		GroupCode: &group, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusScheduled,
	})
	stage := models.StageSemiFinal
	knockoutMatch := env.matches.addMatch(&models.Match{
		Stage: &stage, HomeTeamID: 3, AwayTeamID: 4, Status: models.MatchStatusScheduled,
	})
	ctx := context.Background()

	_, err := env.svc.SaveKnockoutPrediction(ctx, user.ID, KnockoutPredictionInput{
		MatchID: groupMatch.ID, PredictedWinnerTeamID: 1,
	})
	assert.ErrorIs(t, err, ErrNotKnockoutMatch)

	_, err = env.svc.SaveKnockoutPrediction(ctx, user.ID, KnockoutPredictionInput{
		MatchID: knockoutMatch.ID, PredictedWinnerTeamID: 7,
	})
	assert.ErrorIs(t, err, ErrTeamNotInMatch)

	prediction, err := env.svc.SaveKnockoutPrediction(ctx, user.ID, KnockoutPredictionInput{
		MatchID: knockoutMatch.ID, PredictedWinnerTeamID: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, stage, prediction.Stage, "stage is taken from the fixture, not the input")
}

func TestSaveTournamentPredictionLockedAfterFinalization(t *testing.T) {
	env := newPredictionEnv()
	user := env.users.addUser("alice")
	ctx := context.Background()

	input := TournamentPredictionInput{
		ChampionTeamID: 1, RunnerUpTeamID: 2,
		TopScorerPlayerID: 10, BestPlayerPlayerID: 11, BestGoalkeeperPlayerID: 12,
	}

	_, err := env.svc.SaveTournamentPrediction(ctx, user.ID, input)
	require.NoError(t, err)

	require.NoError(t, env.results.Upsert(ctx, &models.TournamentResult{
		ChampionTeamID: 1, RunnerUpTeamID: 2,
		TopScorerPlayerID: 10, BestPlayerPlayerID: 11, BestGoalkeeperPlayerID: 12,
		Finalized: true,
	}))

	_, err = env.svc.SaveTournamentPrediction(ctx, user.ID, input)
	assert.ErrorIs(t, err, ErrPredictionLocked)
}

func TestSaveTournamentPredictionRejectsSameFinalists(t *testing.T) {
	env := newPredictionEnv()
	user := env.users.addUser("alice")

	_, err := env.svc.SaveTournamentPrediction(context.Background(), user.ID, TournamentPredictionInput{
		ChampionTeamID: 1, RunnerUpTeamID: 1,
		TopScorerPlayerID: 10, BestPlayerPlayerID: 11, BestGoalkeeperPlayerID: 12,
	})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestDeletePredictionRecomputesAggregate(t *testing.T) {
	env := newPredictionEnv()
	user := env.users.addUser("alice")
	group := "A"
	match := env.matches.addMatch(&models.Match{
		GroupCode: &group, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusScheduled,
	})
	ctx := context.Background()

	prediction, err := env.svc.SaveMatchPrediction(ctx, user.ID, MatchPredictionInput{
		MatchID: match.ID, PredictedWinner: models.WinnerHome,
		PredictedHomeGoals: 2, PredictedAwayGoals: 0,
	})
	require.NoError(t, err)

	require.NoError(t, env.matches.UpdateResult(ctx, nil, match.ID, 2, 0, models.MatchStatusFinished))
	_, err = env.scoringEnv.svc.FinalizeMatch(ctx, match.ID)
	require.NoError(t, err)

	stored, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, 8, stored.TotalPoints)

	require.NoError(t, env.svc.DeletePrediction(ctx, user.ID, models.CategoryMatch, prediction.ID))

	stored, err = env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.TotalPoints, "deleting a prediction removes its points from the aggregate")
}

func TestDeletePredictionEnforcesOwnership(t *testing.T) {
	env := newPredictionEnv()
	alice := env.users.addUser("alice")
	bob := env.users.addUser("bob")
	group := "A"
	match := env.matches.addMatch(&models.Match{
		GroupCode: &group, HomeTeamID: 1, AwayTeamID: 2, Status: models.MatchStatusScheduled,
	})
	ctx := context.Background()

	prediction, err := env.svc.SaveMatchPrediction(ctx, alice.ID, MatchPredictionInput{
		MatchID: match.ID, PredictedWinner: models.WinnerHome,
		PredictedHomeGoals: 1, PredictedAwayGoals: 0,
	})
	require.NoError(t, err)

	err = env.svc.DeletePrediction(ctx, bob.ID, models.CategoryMatch, prediction.ID)
	assert.ErrorIs(t, err, ErrPredictionNotFound)
}
