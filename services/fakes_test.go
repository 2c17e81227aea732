package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/quiniela26/prediction-system/models"
	"github.com/quiniela26/prediction-system/repositories"
)

// In-memory repository fakes shared by the service tests. They are guarded
// by a mutex because the bulk recompute exercises them concurrently.

type fakeUserRepo struct {
	mu               sync.Mutex
	users            map[int]*models.User
	nextID           int
	failAggregateFor map[int]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:            make(map[int]*models.User),
		nextID:           1,
		failAggregateFor: make(map[int]bool),
	}
}

func (f *fakeUserRepo) addUser(nickname string) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := &models.User{
		ID:       f.nextID,
		Nickname: nickname,
		Email:    nickname + "@example.com",
		Role:     models.RolePlayer,
	}
	f.users[user.ID] = user
	f.nextID++
	return user
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
		if existing.Nickname == user.Nickname {
			return repositories.ErrUserNicknameConflict
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateAvatarKey(ctx context.Context, id int, avatarKey *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.AvatarKey = avatarKey
	return nil
}

func (f *fakeUserRepo) UpdateAggregate(ctx context.Context, agg *models.UserAggregate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAggregateFor[agg.UserID] {
		return errors.New("simulated aggregate write failure")
	}
	user, ok := f.users[agg.UserID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.TotalPoints = agg.TotalPoints
	user.CorrectMatches = agg.CorrectMatches
	user.CorrectScores = agg.CorrectScores
	return nil
}

func (f *fakeUserRepo) ListIDs(ctx context.Context) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

type fakeTeamRepo struct {
	mu     sync.Mutex
	teams  map[int]*models.Team
	nextID int
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[int]*models.Team), nextID: 1}
}

func (f *fakeTeamRepo) addTeam(code string, groupCode *string) *models.Team {
	f.mu.Lock()
	defer f.mu.Unlock()
	team := &models.Team{ID: f.nextID, Name: code, Code: code, GroupCode: groupCode}
	f.teams[team.ID] = team
	f.nextID++
	return team
}

func (f *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.teams {
		if existing.Code == team.Code {
			return repositories.ErrTeamCodeConflict
		}
	}
	team.ID = f.nextID
	f.nextID++
	f.teams[team.ID] = team
	return nil
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	team, ok := f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *team
	return &copied, nil
}

func (f *fakeTeamRepo) GetByCode(ctx context.Context, code string) (*models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, team := range f.teams {
		if team.Code == code {
			copied := *team
			return &copied, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (f *fakeTeamRepo) List(ctx context.Context, groupCode *string) ([]*models.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var teams []*models.Team
	for _, team := range f.teams {
		if groupCode != nil && (team.GroupCode == nil || *team.GroupCode != *groupCode) {
			continue
		}
		copied := *team
		teams = append(teams, &copied)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (f *fakeTeamRepo) UpdateFlagKey(ctx context.Context, id int, flagKey *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	team, ok := f.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.FlagKey = flagKey
	return nil
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	matches map[int]*models.Match
	nextID  int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[int]*models.Match), nextID: 1}
}

func (f *fakeMatchRepo) addMatch(match *models.Match) *models.Match {
	f.mu.Lock()
	defer f.mu.Unlock()
	match.ID = f.nextID
	f.matches[match.ID] = match
	f.nextID++
	return match
}

func (f *fakeMatchRepo) Create(ctx context.Context, match *models.Match) error {
	f.addMatch(match)
	return nil
}

func (f *fakeMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	match, ok := f.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (f *fakeMatchRepo) List(ctx context.Context, groupCode *string, stage *models.KnockoutStage, status *models.MatchStatus) ([]*models.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matches []*models.Match
	for _, match := range f.matches {
		if groupCode != nil && (match.GroupCode == nil || *match.GroupCode != *groupCode) {
			continue
		}
		if stage != nil && (match.Stage == nil || *match.Stage != *stage) {
			continue
		}
		if status != nil && match.Status != *status {
			continue
		}
		copied := *match
		matches = append(matches, &copied)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (f *fakeMatchRepo) UpdateResult(ctx context.Context, exec repositories.SQLExecutor, id int, homeGoals, awayGoals int, status models.MatchStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	match, ok := f.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.HomeGoals = &homeGoals
	match.AwayGoals = &awayGoals
	match.Status = status
	return nil
}

type fakeGroupStandingRepo struct {
	mu        sync.Mutex
	standings map[string]*models.GroupStanding
}

func newFakeGroupStandingRepo() *fakeGroupStandingRepo {
	return &fakeGroupStandingRepo{standings: make(map[string]*models.GroupStanding)}
}

func (f *fakeGroupStandingRepo) Upsert(ctx context.Context, standing *models.GroupStanding) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *standing
	f.standings[standing.GroupCode] = &copied
	return nil
}

func (f *fakeGroupStandingRepo) GetByCode(ctx context.Context, groupCode string) (*models.GroupStanding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	standing, ok := f.standings[groupCode]
	if !ok {
		return nil, repositories.ErrGroupStandingNotFound
	}
	copied := *standing
	return &copied, nil
}

func (f *fakeGroupStandingRepo) List(ctx context.Context) ([]*models.GroupStanding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var standings []*models.GroupStanding
	for _, standing := range f.standings {
		copied := *standing
		standings = append(standings, &copied)
	}
	sort.Slice(standings, func(i, j int) bool { return standings[i].GroupCode < standings[j].GroupCode })
	return standings, nil
}

type fakeTournamentResultRepo struct {
	mu     sync.Mutex
	result *models.TournamentResult
}

func (f *fakeTournamentResultRepo) Upsert(ctx context.Context, result *models.TournamentResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *result
	f.result = &copied
	return nil
}

func (f *fakeTournamentResultRepo) Get(ctx context.Context) (*models.TournamentResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.result == nil {
		return nil, repositories.ErrTournamentResultNotFound
	}
	copied := *f.result
	return &copied, nil
}

type fakeGroupPredRepo struct {
	mu          sync.Mutex
	predictions map[int]*models.GroupPrediction
	nextID      int
	failUpdate  map[int]bool
}

func newFakeGroupPredRepo() *fakeGroupPredRepo {
	return &fakeGroupPredRepo{
		predictions: make(map[int]*models.GroupPrediction),
		nextID:      1,
		failUpdate:  make(map[int]bool),
	}
}

func (f *fakeGroupPredRepo) Upsert(ctx context.Context, prediction *models.GroupPrediction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.predictions {
		if existing.UserID == prediction.UserID && existing.GroupCode == prediction.GroupCode {
			prediction.ID = existing.ID
			prediction.PointsAwarded = existing.PointsAwarded
			f.predictions[existing.ID] = prediction
			return nil
		}
	}
	prediction.ID = f.nextID
	f.nextID++
	f.predictions[prediction.ID] = prediction
	return nil
}

func (f *fakeGroupPredRepo) GetByID(ctx context.Context, id int) (*models.GroupPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prediction, ok := f.predictions[id]
	if !ok {
		return nil, repositories.ErrGroupPredictionNotFound
	}
	copied := *prediction
	return &copied, nil
}

func (f *fakeGroupPredRepo) GetByUserAndGroup(ctx context.Context, userID int, groupCode string) (*models.GroupPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, prediction := range f.predictions {
		if prediction.UserID == userID && prediction.GroupCode == groupCode {
			copied := *prediction
			return &copied, nil
		}
	}
	return nil, repositories.ErrGroupPredictionNotFound
}

func (f *fakeGroupPredRepo) ListByGroup(ctx context.Context, groupCode string) ([]*models.GroupPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var predictions []*models.GroupPrediction
	for _, prediction := range f.predictions {
		if prediction.GroupCode == groupCode {
			copied := *prediction
			predictions = append(predictions, &copied)
		}
	}
	sort.Slice(predictions, func(i, j int) bool { return predictions[i].ID < predictions[j].ID })
	return predictions, nil
}

func (f *fakeGroupPredRepo) ListByUser(ctx context.Context, userID int) ([]*models.GroupPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var predictions []*models.GroupPrediction
	for _, prediction := range f.predictions {
		if prediction.UserID == userID {
			copied := *prediction
			predictions = append(predictions, &copied)
		}
	}
	sort.Slice(predictions, func(i, j int) bool { return predictions[i].ID < predictions[j].ID })
	return predictions, nil
}

func (f *fakeGroupPredRepo) UpdateScore(ctx context.Context, exec repositories.SQLExecutor, id int, points int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate[id] {
		return errors.New("simulated score write failure")
	}
	prediction, ok := f.predictions[id]
	if !ok {
		return repositories.ErrGroupPredictionNotFound
	}
	prediction.PointsAwarded = points
	return nil
}

func (f *fakeGroupPredRepo) Delete(ctx context.Context, id, userID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prediction, ok := f.predictions[id]
	if !ok || prediction.UserID != userID {
		return repositories.ErrGroupPredictionNotFound
	}
	delete(f.predictions, id)
	return nil
}

type fakeMatchPredRepo struct {
	mu          sync.Mutex
	predictions map[int]*models.MatchPrediction
	nextID      int
	failUpdate  map[int]bool
}

func newFakeMatchPredRepo() *fakeMatchPredRepo {
	return &fakeMatchPredRepo{
		predictions: make(map[int]*models.MatchPrediction),
		nextID:      1,
		failUpdate:  make(map[int]bool),
	}
}

func (f *fakeMatchPredRepo) Upsert(ctx context.Context, prediction *models.MatchPrediction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.predictions {
		if existing.UserID == prediction.UserID && existing.MatchID == prediction.MatchID {
			prediction.ID = existing.ID
			prediction.PointsAwarded = existing.PointsAwarded
			prediction.IsCorrectWinner = existing.IsCorrectWinner
			prediction.IsCorrectScore = existing.IsCorrectScore
			f.predictions[existing.ID] = prediction
			return nil
		}
	}
	prediction.ID = f.nextID
	f.nextID++
	f.predictions[prediction.ID] = prediction
	return nil
}

func (f *fakeMatchPredRepo) GetByID(ctx context.Context, id int) (*models.MatchPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prediction, ok := f.predictions[id]
	if !ok {
		return nil, repositories.ErrMatchPredictionNotFound
	}
	copied := *prediction
	return &copied, nil
}

func (f *fakeMatchPredRepo) GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.MatchPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, prediction := range f.predictions {
		if prediction.UserID == userID && prediction.MatchID == matchID {
			copied := *prediction
			return &copied, nil
		}
	}
	return nil, repositories.ErrMatchPredictionNotFound
}

func (f *fakeMatchPredRepo) ListByMatch(ctx context.Context, matchID int) ([]*models.MatchPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var predictions []*models.MatchPrediction
	for _, prediction := range f.predictions {
		if prediction.MatchID == matchID {
			copied := *prediction
			predictions = append(predictions, &copied)
		}
	}
	sort.Slice(predictions, func(i, j int) bool { return predictions[i].ID < predictions[j].ID })
	return predictions, nil
}

func (f *fakeMatchPredRepo) ListByUser(ctx context.Context, userID int) ([]*models.MatchPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var predictions []*models.MatchPrediction
	for _, prediction := range f.predictions {
		if prediction.UserID == userID {
			copied := *prediction
			predictions = append(predictions, &copied)
		}
	}
	sort.Slice(predictions, func(i, j int) bool { return predictions[i].ID < predictions[j].ID })
	return predictions, nil
}

func (f *fakeMatchPredRepo) UpdateScore(ctx context.Context, exec repositories.SQLExecutor, id int, points int, correctWinner, correctScore bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate[id] {
		return errors.New("simulated score write failure")
	}
	prediction, ok := f.predictions[id]
	if !ok {
		return repositories.ErrMatchPredictionNotFound
	}
	prediction.PointsAwarded = points
	prediction.IsCorrectWinner = correctWinner
	prediction.IsCorrectScore = correctScore
	return nil
}

func (f *fakeMatchPredRepo) Delete(ctx context.Context, id, userID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prediction, ok := f.predictions[id]
	if !ok || prediction.UserID != userID {
		return repositories.ErrMatchPredictionNotFound
	}
	delete(f.predictions, id)
	return nil
}

type fakeKnockoutPredRepo struct {
	mu          sync.Mutex
	predictions map[int]*models.KnockoutPrediction
	nextID      int
}

func newFakeKnockoutPredRepo() *fakeKnockoutPredRepo {
	return &fakeKnockoutPredRepo{predictions: make(map[int]*models.KnockoutPrediction), nextID: 1}
}

func (f *fakeKnockoutPredRepo) Upsert(ctx context.Context, prediction *models.KnockoutPrediction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.predictions {
		if existing.UserID == prediction.UserID && existing.MatchID == prediction.MatchID {
			prediction.ID = existing.ID
			prediction.PointsAwarded = existing.PointsAwarded
			prediction.IsCorrect = existing.IsCorrect
			f.predictions[existing.ID] = prediction
			return nil
		}
	}
	prediction.ID = f.nextID
	f.nextID++
	f.predictions[prediction.ID] = prediction
	return nil
}

func (f *fakeKnockoutPredRepo) GetByID(ctx context.Context, id int) (*models.KnockoutPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prediction, ok := f.predictions[id]
	if !ok {
		return nil, repositories.ErrKnockoutPredictionNotFound
	}
	copied := *prediction
	return &copied, nil
}

func (f *fakeKnockoutPredRepo) GetByUserAndMatch(ctx context.Context, userID, matchID int) (*models.KnockoutPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, prediction := range f.predictions {
		if prediction.UserID == userID && prediction.MatchID == matchID {
			copied := *prediction
			return &copied, nil
		}
	}
	return nil, repositories.ErrKnockoutPredictionNotFound
}

func (f *fakeKnockoutPredRepo) ListByMatch(ctx context.Context, matchID int) ([]*models.KnockoutPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var predictions []*models.KnockoutPrediction
	for _, prediction := range f.predictions {
		if prediction.MatchID == matchID {
			copied := *prediction
			predictions = append(predictions, &copied)
		}
	}
	sort.Slice(predictions, func(i, j int) bool { return predictions[i].ID < predictions[j].ID })
	return predictions, nil
}

func (f *fakeKnockoutPredRepo) ListByUser(ctx context.Context, userID int) ([]*models.KnockoutPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var predictions []*models.KnockoutPrediction
	for _, prediction := range f.predictions {
		if prediction.UserID == userID {
			copied := *prediction
			predictions = append(predictions, &copied)
		}
	}
	sort.Slice(predictions, func(i, j int) bool { return predictions[i].ID < predictions[j].ID })
	return predictions, nil
}

func (f *fakeKnockoutPredRepo) UpdateScore(ctx context.Context, exec repositories.SQLExecutor, id int, points int, isCorrect *bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prediction, ok := f.predictions[id]
	if !ok {
		return repositories.ErrKnockoutPredictionNotFound
	}
	prediction.PointsAwarded = points
	prediction.IsCorrect = isCorrect
	return nil
}

func (f *fakeKnockoutPredRepo) Delete(ctx context.Context, id, userID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prediction, ok := f.predictions[id]
	if !ok || prediction.UserID != userID {
		return repositories.ErrKnockoutPredictionNotFound
	}
	delete(f.predictions, id)
	return nil
}

type fakeTournamentPredRepo struct {
	mu          sync.Mutex
	predictions map[int]*models.TournamentPrediction
	nextID      int
}

func newFakeTournamentPredRepo() *fakeTournamentPredRepo {
	return &fakeTournamentPredRepo{predictions: make(map[int]*models.TournamentPrediction), nextID: 1}
}

func (f *fakeTournamentPredRepo) Upsert(ctx context.Context, prediction *models.TournamentPrediction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.predictions {
		if existing.UserID == prediction.UserID {
			prediction.ID = existing.ID
			prediction.PointsAwarded = existing.PointsAwarded
			f.predictions[existing.ID] = prediction
			return nil
		}
	}
	prediction.ID = f.nextID
	f.nextID++
	f.predictions[prediction.ID] = prediction
	return nil
}

func (f *fakeTournamentPredRepo) GetByID(ctx context.Context, id int) (*models.TournamentPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prediction, ok := f.predictions[id]
	if !ok {
		return nil, repositories.ErrTournamentPredictionNotFound
	}
	copied := *prediction
	return &copied, nil
}

func (f *fakeTournamentPredRepo) GetByUser(ctx context.Context, userID int) (*models.TournamentPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, prediction := range f.predictions {
		if prediction.UserID == userID {
			copied := *prediction
			return &copied, nil
		}
	}
	return nil, repositories.ErrTournamentPredictionNotFound
}

func (f *fakeTournamentPredRepo) ListAll(ctx context.Context) ([]*models.TournamentPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var predictions []*models.TournamentPrediction
	for _, prediction := range f.predictions {
		copied := *prediction
		predictions = append(predictions, &copied)
	}
	sort.Slice(predictions, func(i, j int) bool { return predictions[i].ID < predictions[j].ID })
	return predictions, nil
}

func (f *fakeTournamentPredRepo) UpdateScore(ctx context.Context, exec repositories.SQLExecutor, id int, points int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prediction, ok := f.predictions[id]
	if !ok {
		return repositories.ErrTournamentPredictionNotFound
	}
	prediction.PointsAwarded = points
	return nil
}

func (f *fakeTournamentPredRepo) Delete(ctx context.Context, id, userID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prediction, ok := f.predictions[id]
	if !ok || prediction.UserID != userID {
		return repositories.ErrTournamentPredictionNotFound
	}
	delete(f.predictions, id)
	return nil
}

// fakeLeaderboardRepo ranks the users held by a fakeUserRepo the same way
// the SQL implementation does.
type fakeLeaderboardRepo struct {
	users *fakeUserRepo
}

func (f *fakeLeaderboardRepo) ranked() []*models.User {
	f.users.mu.Lock()
	defer f.users.mu.Unlock()
	var ranked []*models.User
	for _, user := range f.users.users {
		if user.TotalPoints > 0 {
			copied := *user
			ranked = append(ranked, &copied)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.CorrectScores != b.CorrectScores {
			return a.CorrectScores > b.CorrectScores
		}
		if a.CorrectMatches != b.CorrectMatches {
			return a.CorrectMatches > b.CorrectMatches
		}
		return a.ID < b.ID
	})
	return ranked
}

func (f *fakeLeaderboardRepo) ListRanked(ctx context.Context, offset, limit int) ([]*models.LeaderboardEntry, error) {
	ranked := f.ranked()
	entries := make([]*models.LeaderboardEntry, 0)
	for i, user := range ranked {
		position := 1
		for _, other := range ranked {
			if betterTuple(other, user) {
				position++
			}
		}
		if i < offset {
			continue
		}
		if len(entries) >= limit {
			break
		}
		entries = append(entries, &models.LeaderboardEntry{
			Position:       position,
			UserID:         user.ID,
			Nickname:       user.Nickname,
			TotalPoints:    user.TotalPoints,
			CorrectMatches: user.CorrectMatches,
			CorrectScores:  user.CorrectScores,
		})
	}
	return entries, nil
}

func (f *fakeLeaderboardRepo) CountRanked(ctx context.Context) (int, error) {
	return len(f.ranked()), nil
}

func (f *fakeLeaderboardRepo) CountStrictlyBetter(ctx context.Context, agg *models.UserAggregate) (int, error) {
	count := 0
	for _, user := range f.ranked() {
		if betterTuple(user, &models.User{
			TotalPoints:    agg.TotalPoints,
			CorrectScores:  agg.CorrectScores,
			CorrectMatches: agg.CorrectMatches,
		}) {
			count++
		}
	}
	return count, nil
}

func betterTuple(a, b *models.User) bool {
	if a.TotalPoints != b.TotalPoints {
		return a.TotalPoints > b.TotalPoints
	}
	if a.CorrectScores != b.CorrectScores {
		return a.CorrectScores > b.CorrectScores
	}
	return a.CorrectMatches > b.CorrectMatches
}
