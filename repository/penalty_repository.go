package repository

import (
	"context"
	"fmt"
	"time"

	"pledge/database"
	"pledge/models"
)

// PenaltyRepository implements the penalty ledger. Entries are append-only;
// settlement stamps settlement_id instead of deleting, so history survives
// while settled entries drop out of the unsettled sum.
type PenaltyRepository struct {
	q Queryable
}

// NewPenaltyRepository creates a new penalty repository
func NewPenaltyRepository(db *database.DB) *PenaltyRepository {
	return &PenaltyRepository{q: db.Pool}
}

// newPenaltyRepositoryWithTx creates a new penalty repository with a transaction
func newPenaltyRepositoryWithTx(tx Queryable) *PenaltyRepository {
	return &PenaltyRepository{q: tx}
}

// Create appends a new ledger entry
func (r *PenaltyRepository) Create(ctx context.Context, entry *models.PenaltyEntry) error {
	query := `
		INSERT INTO penalties (id, challenge_id, amount, recorded_by)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.ID,
		entry.ChallengeID,
		entry.Amount,
		entry.RecordedBy,
	).Scan(&entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create penalty for challenge %s: %w", entry.ChallengeID, err)
	}

	return nil
}

func (r *PenaltyRepository) queryEntries(ctx context.Context, query string, args ...any) ([]*models.PenaltyEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query penalties: %w", err)
	}
	defer rows.Close()

	var entries []*models.PenaltyEntry
	for rows.Next() {
		var entry models.PenaltyEntry
		err := rows.Scan(
			&entry.ID,
			&entry.ChallengeID,
			&entry.Amount,
			&entry.RecordedBy,
			&entry.SettlementID,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan penalty: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate penalties: %w", err)
	}

	return entries, nil
}

// GetByChallenge returns the full ledger for a challenge, oldest first
func (r *PenaltyRepository) GetByChallenge(ctx context.Context, challengeID string) ([]*models.PenaltyEntry, error) {
	query := `
		SELECT id, challenge_id, amount, recorded_by, settlement_id, created_at
		FROM penalties
		WHERE challenge_id = $1
		ORDER BY created_at, id
	`

	return r.queryEntries(ctx, query, challengeID)
}

// SumUnsettled returns the sum of entries not yet cleared by a settlement
func (r *PenaltyRepository) SumUnsettled(ctx context.Context, challengeID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM penalties
		WHERE challenge_id = $1 AND settlement_id IS NULL
	`

	var total int64
	if err := r.q.QueryRow(ctx, query, challengeID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum unsettled penalties for challenge %s: %w", challengeID, err)
	}

	return total, nil
}

// MarkSettled stamps every unsettled entry of a challenge with the settlement
// id and returns the total amount cleared
func (r *PenaltyRepository) MarkSettled(ctx context.Context, challengeID, settlementID string) (int64, error) {
	query := `
		WITH cleared AS (
			UPDATE penalties
			SET settlement_id = $2
			WHERE challenge_id = $1 AND settlement_id IS NULL
			RETURNING amount
		)
		SELECT COALESCE(SUM(amount), 0) FROM cleared
	`

	var cleared int64
	if err := r.q.QueryRow(ctx, query, challengeID, settlementID).Scan(&cleared); err != nil {
		return 0, fmt.Errorf("failed to settle penalties for challenge %s: %w", challengeID, err)
	}

	return cleared, nil
}

// GetByOwnerSince returns ledger entries across all of a user's challenges
// recorded at or after the given time, oldest first. Settled entries are
// included: the ledger is history, not the outstanding balance.
func (r *PenaltyRepository) GetByOwnerSince(ctx context.Context, ownerID string, since time.Time) ([]*models.PenaltyEntry, error) {
	query := `
		SELECT p.id, p.challenge_id, p.amount, p.recorded_by, p.settlement_id, p.created_at
		FROM penalties p
		JOIN challenges c ON c.id = p.challenge_id
		WHERE c.owner_id = $1 AND p.created_at >= $2
		ORDER BY p.created_at, p.id
	`

	return r.queryEntries(ctx, query, ownerID, since)
}
