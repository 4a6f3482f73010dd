package repository

import (
	"context"
	"fmt"

	"pledge/database"
	"pledge/models"
)

// SettlementRepository implements the settlement audit log
type SettlementRepository struct {
	q Queryable
}

// NewSettlementRepository creates a new settlement repository
func NewSettlementRepository(db *database.DB) *SettlementRepository {
	return &SettlementRepository{q: db.Pool}
}

// newSettlementRepositoryWithTx creates a new settlement repository with a transaction
func newSettlementRepositoryWithTx(tx Queryable) *SettlementRepository {
	return &SettlementRepository{q: tx}
}

// Create inserts a new settlement record
func (r *SettlementRepository) Create(ctx context.Context, settlement *models.Settlement) error {
	query := `
		INSERT INTO settlements (id, challenge_id, amount, confirmed_by)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		settlement.ID,
		settlement.ChallengeID,
		settlement.Amount,
		settlement.ConfirmedBy,
	).Scan(&settlement.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create settlement for challenge %s: %w", settlement.ChallengeID, err)
	}

	return nil
}
