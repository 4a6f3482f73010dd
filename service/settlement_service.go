package service

import (
	"context"
	"fmt"

	"pledge/events"
	"pledge/models"

	"github.com/google/uuid"
)

// settlementService implements the SettlementService interface
type settlementService struct {
	uowFactory UnitOfWorkFactory
	threshold  int64
}

// NewSettlementService creates a new settlement service. threshold is the
// penalty total at which a challenge becomes due for settlement.
func NewSettlementService(uowFactory UnitOfWorkFactory, threshold int64) SettlementService {
	return &settlementService{
		uowFactory: uowFactory,
		threshold:  threshold,
	}
}

// IsSettlementDue reports whether the challenge's penalty total has reached
// the settlement threshold
func (s *settlementService) IsSettlementDue(challenge *models.Challenge) bool {
	return challenge.TotalPenalty >= s.threshold
}

// ConfirmPayment clears the challenge's penalty balance after the owner
// attests the donation was made. The row lock keeps penalty recordings out
// while the ledger stamp, the audit record and the total reset commit as one
// transaction: a concurrent recording either lands before the stamp and is
// cleared with the rest, or after the commit against a zeroed total.
func (s *settlementService) ConfirmPayment(ctx context.Context, challengeID, confirmingUserID string) (*models.Challenge, error) {
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

	// Only the owner settles their own debt
	if challenge.OwnerID != confirmingUserID {
		return nil, models.ErrNotAuthorized
	}

	if !s.IsSettlementDue(challenge) {
		return nil, models.ErrSettlementNotDue
	}

	settlement := &models.Settlement{
		ID:          uuid.New().String(),
		ChallengeID: challenge.ID,
		Amount:      challenge.TotalPenalty,
		ConfirmedBy: confirmingUserID,
	}
	if err := uow.SettlementRepository().Create(ctx, settlement); err != nil {
		return nil, fmt.Errorf("failed to create settlement: %w", err)
	}

	cleared, err := uow.PenaltyRepository().MarkSettled(ctx, challenge.ID, settlement.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to settle ledger: %w", err)
	}

	// Under the row lock the unsettled sum and the cached total are the
	// same number; a mismatch means the books are off.
	if cleared != challenge.TotalPenalty {
		return nil, fmt.Errorf("ledger mismatch for challenge %s: cached total %d, cleared %d",
			challenge.ID, challenge.TotalPenalty, cleared)
	}

	if err := uow.ChallengeRepository().SetTotalPenalty(ctx, challenge.ID, 0); err != nil {
		return nil, fmt.Errorf("failed to reset total penalty: %w", err)
	}
	challenge.TotalPenalty = 0

	uow.EventBus().Publish(events.PaymentConfirmedEvent{
		ChallengeID:   challenge.ID,
		SettlementID:  settlement.ID,
		ClearedAmount: cleared,
		ConfirmedBy:   confirmingUserID,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return challenge, nil
}
