package service

import (
	"context"
	"fmt"
	"time"

	"pledge/models"
)

// statsService implements the StatsService interface. Aggregates are
// recomputed from challenge and ledger rows on every read; nothing is cached.
type statsService struct {
	uowFactory UnitOfWorkFactory
}

// NewStatsService creates a new stats service
func NewStatsService(uowFactory UnitOfWorkFactory) StatsService {
	return &statsService{
		uowFactory: uowFactory,
	}
}

// GetUserStats returns per-user aggregate statistics
func (s *statsService) GetUserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}

	challenges, err := uow.ChallengeRepository().GetByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get challenges: %w", err)
	}

	stats := &models.UserStats{}
	for _, ch := range challenges {
		stats.TotalChallenges++
		switch ch.State() {
		case models.ChallengeStateCompleted:
			stats.CompletedChallenges++
		default:
			stats.ActiveChallenges++
		}
		stats.TotalPenalties += ch.TotalPenalty
	}

	return stats, nil
}

// GetWeeklyStats returns the trailing 7-day penalty breakdown, today
// inclusive. Days are bucketed in UTC; settled entries still count, the
// window reflects what was recorded, not what remains owed.
func (s *statsService) GetWeeklyStats(ctx context.Context, userID string) (*models.WeeklyStats, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}

	windowStart := weeklyWindowStart(time.Now())
	entries, err := uow.PenaltyRepository().GetByOwnerSince(ctx, userID, windowStart)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly penalties: %w", err)
	}

	stats := &models.WeeklyStats{}
	var breakdown []models.DailyPenalty
	for _, entry := range entries {
		stats.WeeklyCount++
		stats.WeeklyTotalPenalty += entry.Amount

		day := entry.CreatedAt.UTC().Truncate(24 * time.Hour)
		// Entries arrive oldest first, so the current bucket is always last
		if n := len(breakdown); n > 0 && breakdown[n-1].Date.Equal(day) {
			breakdown[n-1].Count++
			breakdown[n-1].Amount += entry.Amount
		} else {
			breakdown = append(breakdown, models.DailyPenalty{
				Date:   day,
				Count:  1,
				Amount: entry.Amount,
			})
		}
	}
	stats.DailyBreakdown = breakdown

	return stats, nil
}

// weeklyWindowStart returns midnight UTC six days before the given time,
// giving a 7-day window that includes the current day.
func weeklyWindowStart(now time.Time) time.Time {
	day := now.UTC().Truncate(24 * time.Hour)
	return day.AddDate(0, 0, -6)
}
