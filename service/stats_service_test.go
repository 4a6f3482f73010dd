package service

import (
	"context"
	"testing"
	"time"

	"pledge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStatsService_GetUserStats(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockChallengeRepo := new(MockChallengeRepository)

	mockUoW.SetRepositories(mockUserRepo, mockChallengeRepo, nil, nil, nil, nil, nil)

	service := NewStatsService(mockFactory)

	user := &models.User{ID: "user-1", Name: "Sara", Email: "sara@example.com"}
	challenges := []*models.Challenge{
		{ID: "ch-1", Duration: 30, Progress: 30, TotalPenalty: 0},      // completed, settled
		{ID: "ch-2", Duration: 30, Progress: 10, TotalPenalty: 150000}, // active
		{ID: "ch-3", Duration: 7, Progress: 9, TotalPenalty: 50000},    // completed, still owing
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, "user-1").Return(user, nil)
	mockChallengeRepo.On("GetByOwner", ctx, "user-1").Return(challenges, nil)

	stats, err := service.GetUserStats(ctx, "user-1")

	assert.NoError(t, err)
	assert.Equal(t, 3, stats.TotalChallenges)
	assert.Equal(t, 1, stats.ActiveChallenges)
	assert.Equal(t, 2, stats.CompletedChallenges)
	assert.Equal(t, int64(200000), stats.TotalPenalties)
}

func TestStatsService_GetUserStats_UnknownUser(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockChallengeRepo := new(MockChallengeRepository)

	mockUoW.SetRepositories(mockUserRepo, mockChallengeRepo, nil, nil, nil, nil, nil)

	service := NewStatsService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, "nobody").Return(nil, nil)

	_, err := service.GetUserStats(ctx, "nobody")

	assert.ErrorIs(t, err, models.ErrUserNotFound)
	mockChallengeRepo.AssertNotCalled(t, "GetByOwner")
}

func TestStatsService_GetWeeklyStats_Bucketing(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockPenaltyRepo := new(MockPenaltyRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, mockPenaltyRepo, nil, nil, nil, nil)

	service := NewStatsService(mockFactory)

	user := &models.User{ID: "user-1", Name: "Sara", Email: "sara@example.com"}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	twoDaysAgo := today.AddDate(0, 0, -2)

	// Two entries two days ago, one today; ledger order is oldest first
	entries := []*models.PenaltyEntry{
		{ID: "p-1", ChallengeID: "ch-1", Amount: 50000, CreatedAt: twoDaysAgo.Add(8 * time.Hour)},
		{ID: "p-2", ChallengeID: "ch-2", Amount: 25000, CreatedAt: twoDaysAgo.Add(20 * time.Hour)},
		{ID: "p-3", ChallengeID: "ch-1", Amount: 50000, CreatedAt: today.Add(3 * time.Hour)},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, "user-1").Return(user, nil)
	mockPenaltyRepo.On("GetByOwnerSince", ctx, "user-1", mock.MatchedBy(func(since time.Time) bool {
		// Window starts at midnight six days back, today inclusive
		return since.Equal(today.AddDate(0, 0, -6))
	})).Return(entries, nil)

	stats, err := service.GetWeeklyStats(ctx, "user-1")

	assert.NoError(t, err)
	assert.Equal(t, 3, stats.WeeklyCount)
	assert.Equal(t, int64(125000), stats.WeeklyTotalPenalty)

	// Chronological buckets, days without entries omitted
	assert.Len(t, stats.DailyBreakdown, 2)
	assert.Equal(t, twoDaysAgo, stats.DailyBreakdown[0].Date)
	assert.Equal(t, 2, stats.DailyBreakdown[0].Count)
	assert.Equal(t, int64(75000), stats.DailyBreakdown[0].Amount)
	assert.Equal(t, today, stats.DailyBreakdown[1].Date)
	assert.Equal(t, 1, stats.DailyBreakdown[1].Count)
	assert.Equal(t, int64(50000), stats.DailyBreakdown[1].Amount)
}

func TestStatsService_GetWeeklyStats_Empty(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockPenaltyRepo := new(MockPenaltyRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, mockPenaltyRepo, nil, nil, nil, nil)

	service := NewStatsService(mockFactory)

	user := &models.User{ID: "user-1", Name: "Sara", Email: "sara@example.com"}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, "user-1").Return(user, nil)
	mockPenaltyRepo.On("GetByOwnerSince", ctx, "user-1", mock.AnythingOfType("time.Time")).
		Return([]*models.PenaltyEntry{}, nil)

	stats, err := service.GetWeeklyStats(ctx, "user-1")

	assert.NoError(t, err)
	assert.Equal(t, 0, stats.WeeklyCount)
	assert.Equal(t, int64(0), stats.WeeklyTotalPenalty)
	assert.Empty(t, stats.DailyBreakdown)
}

func TestWeeklyWindowStart(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	start := weeklyWindowStart(now)

	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), start)
}
