package service

import (
	"context"
	"fmt"

	"pledge/events"
	"pledge/models"

	"github.com/google/uuid"
)

// challengeService implements the ChallengeService interface
type challengeService struct {
	uowFactory UnitOfWorkFactory
}

// NewChallengeService creates a new challenge service
func NewChallengeService(uowFactory UnitOfWorkFactory) ChallengeService {
	return &challengeService{
		uowFactory: uowFactory,
	}
}

// CreateChallenge creates a new challenge for the owner
func (s *challengeService) CreateChallenge(ctx context.Context, ownerID, title, description string, duration int, penaltyAmount int64, charityID string) (*models.Challenge, error) {
	// Validate inputs
	if duration <= 0 {
		return nil, models.ErrInvalidDuration
	}
	if penaltyAmount <= 0 {
		return nil, models.ErrInvalidPenalty
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	owner, err := uow.UserRepository().GetByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}
	if owner == nil {
		return nil, models.ErrUserNotFound
	}

	charity, err := uow.CharityRepository().GetByID(ctx, charityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get charity: %w", err)
	}
	if charity == nil {
		return nil, models.ErrCharityNotFound
	}

	challenge := &models.Challenge{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		Title:         title,
		Description:   description,
		Duration:      duration,
		PenaltyAmount: penaltyAmount,
		CharityID:     charityID,
	}

	if err := uow.ChallengeRepository().Create(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return challenge, nil
}

// RecordPenalty appends a penalty entry to the challenge's ledger. The
// challenge row lock serializes this against concurrent recordings and
// settlements on the same challenge, so the cached total never loses an
// update. Progress is untouched: it is driven externally.
func (s *challengeService) RecordPenalty(ctx context.Context, challengeID, recordedBy string) (*models.RecordPenaltyResult, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	challenge, err := uow.ChallengeRepository().GetByIDForUpdate(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	if challenge == nil {
		return nil, models.ErrChallengeNotFound
	}

	// Only the owner or a registered witness may record failures
	if !challenge.CanRecordPenalty(recordedBy) {
		return nil, models.ErrNotAuthorized
	}

	entry := &models.PenaltyEntry{
		ID:          uuid.New().String(),
		ChallengeID: challenge.ID,
		Amount:      challenge.PenaltyAmount,
		RecordedBy:  recordedBy,
	}

	if err := uow.PenaltyRepository().Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append penalty: %w", err)
	}

	newTotal := challenge.TotalPenalty + entry.Amount
	if err := uow.ChallengeRepository().SetTotalPenalty(ctx, challenge.ID, newTotal); err != nil {
		return nil, fmt.Errorf("failed to update total penalty: %w", err)
	}
	challenge.TotalPenalty = newTotal

	uow.EventBus().Publish(events.PenaltyRecordedEvent{
		ChallengeID:  challenge.ID,
		PenaltyID:    entry.ID,
		Amount:       entry.Amount,
		RecordedBy:   recordedBy,
		TotalPenalty: newTotal,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.RecordPenaltyResult{
		Challenge: challenge,
		Penalty:   entry,
	}, nil
}

// GetChallenge returns a challenge snapshot
func (s *challengeService) GetChallenge(ctx context.Context, challengeID string) (*models.Challenge, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	challenge, err := uow.ChallengeRepository().GetByID(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	if challenge == nil {
		return nil, models.ErrChallengeNotFound
	}

	return challenge, nil
}

// ListChallenges returns all challenges owned by a user
func (s *challengeService) ListChallenges(ctx context.Context, ownerID string) ([]*models.Challenge, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	challenges, err := uow.ChallengeRepository().GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}

	return challenges, nil
}

// GetPenaltyHistory returns the full ledger for a challenge, oldest first.
// Settled entries stay in the history; only the running total forgets them.
func (s *challengeService) GetPenaltyHistory(ctx context.Context, challengeID string) ([]*models.PenaltyEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	challenge, err := uow.ChallengeRepository().GetByID(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	if challenge == nil {
		return nil, models.ErrChallengeNotFound
	}

	entries, err := uow.PenaltyRepository().GetByChallenge(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get penalty history: %w", err)
	}

	return entries, nil
}
