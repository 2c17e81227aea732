package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quiniela26/prediction-system/models"
)

func TestRecomputeUserSumsAllCategories(t *testing.T) {
	env := newScoringEnv()
	user := env.users.addUser("alice")
	ctx := context.Background()

	require.NoError(t, env.groupPreds.Upsert(ctx, &models.GroupPrediction{
		UserID: user.ID, GroupCode: "A", FirstTeamID: 1, SecondTeamID: 2,
	}))
	require.NoError(t, env.groupPreds.UpdateScore(ctx, nil, 1, 10))

	require.NoError(t, env.matchPreds.Upsert(ctx, &models.MatchPrediction{
		UserID: user.ID, MatchID: 1,
		PredictedWinner: models.WinnerHome, PredictedHomeGoals: 1,
	}))
	require.NoError(t, env.matchPreds.UpdateScore(ctx, nil, 1, 8, true, true))

	require.NoError(t, env.knockoutPreds.Upsert(ctx, &models.KnockoutPrediction{
		UserID: user.ID, MatchID: 2, Stage: models.StageFinal, PredictedWinnerTeamID: 1,
	}))
	correct := true
	require.NoError(t, env.knockoutPreds.UpdateScore(ctx, nil, 1, 10, &correct))

	require.NoError(t, env.tournamentPreds.Upsert(ctx, &models.TournamentPrediction{
		UserID: user.ID, ChampionTeamID: 1, RunnerUpTeamID: 2,
		TopScorerPlayerID: 10, BestPlayerPlayerID: 11, BestGoalkeeperPlayerID: 12,
	}))
	require.NoError(t, env.tournamentPreds.UpdateScore(ctx, nil, 1, 26))

	agg, err := env.aggregates.RecomputeUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 54, agg.TotalPoints)
	assert.Equal(t, 1, agg.CorrectMatches)
	assert.Equal(t, 1, agg.CorrectScores)

	stored, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 54, stored.TotalPoints)
}

func TestRecomputeUserIsIdempotent(t *testing.T) {
	env := newScoringEnv()
	user := env.users.addUser("alice")
	ctx := context.Background()

	require.NoError(t, env.matchPreds.Upsert(ctx, &models.MatchPrediction{
		UserID: user.ID, MatchID: 1,
		PredictedWinner: models.WinnerHome, PredictedHomeGoals: 1,
	}))
	require.NoError(t, env.matchPreds.UpdateScore(ctx, nil, 1, 3, true, false))

	for i := 0; i < 3; i++ {
		agg, err := env.aggregates.RecomputeUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, agg.TotalPoints)
	}

	stored, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.TotalPoints)
}

func TestRecomputeUserWithoutPredictionsZeroesAggregate(t *testing.T) {
	env := newScoringEnv()
	user := env.users.addUser("alice")
	ctx := context.Background()

	// Seed a stale aggregate, then recompute against an empty record set.
	require.NoError(t, env.users.UpdateAggregate(ctx, &models.UserAggregate{
		UserID: user.ID, TotalPoints: 99, CorrectMatches: 9, CorrectScores: 9,
	}))

	agg, err := env.aggregates.RecomputeUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, agg.TotalPoints)
	assert.Zero(t, agg.CorrectMatches)
	assert.Zero(t, agg.CorrectScores)
}

func TestRecomputeUserUnknownUser(t *testing.T) {
	env := newScoringEnv()
	_, err := env.aggregates.RecomputeUser(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRecomputeAllUsersContinuesOnFailure(t *testing.T) {
	env := newScoringEnv()
	alice := env.users.addUser("alice")
	bob := env.users.addUser("bob")
	carol := env.users.addUser("carol")
	ctx := context.Background()

	require.NoError(t, env.matchPreds.Upsert(ctx, &models.MatchPrediction{
		UserID: bob.ID, MatchID: 1,
		PredictedWinner: models.WinnerHome, PredictedHomeGoals: 1,
	}))
	require.NoError(t, env.matchPreds.UpdateScore(ctx, nil, 1, 8, true, true))

	env.users.failAggregateFor[alice.ID] = true

	summary, err := env.aggregates.RecomputeAllUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.UsersProcessed)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, alice.ID, summary.Errors[0].UserID)

	storedBob, err := env.users.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, storedBob.TotalPoints)

	storedCarol, err := env.users.GetByID(ctx, carol.ID)
	require.NoError(t, err)
	assert.Zero(t, storedCarol.TotalPoints)
}
