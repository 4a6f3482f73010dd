package repository

import (
	"context"
	"fmt"

	"pledge/database"
	"pledge/models"

	"github.com/jackc/pgx/v5"
)

// ChallengeRepository implements the ChallengeRepository interface
type ChallengeRepository struct {
	q Queryable
}

// NewChallengeRepository creates a new challenge repository
func NewChallengeRepository(db *database.DB) *ChallengeRepository {
	return &ChallengeRepository{q: db.Pool}
}

// newChallengeRepositoryWithTx creates a new challenge repository with a transaction
func newChallengeRepositoryWithTx(tx Queryable) *ChallengeRepository {
	return &ChallengeRepository{q: tx}
}

const challengeColumns = `
	id, owner_id, title, description, duration, penalty_amount,
	charity_id, progress, total_penalty, created_at, updated_at
`

func (r *ChallengeRepository) scanChallenge(row pgx.Row) (*models.Challenge, error) {
	var ch models.Challenge
	err := row.Scan(
		&ch.ID,
		&ch.OwnerID,
		&ch.Title,
		&ch.Description,
		&ch.Duration,
		&ch.PenaltyAmount,
		&ch.CharityID,
		&ch.Progress,
		&ch.TotalPenalty,
		&ch.CreatedAt,
		&ch.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *ChallengeRepository) loadWitnesses(ctx context.Context, ch *models.Challenge) error {
	query := `
		SELECT user_id
		FROM challenge_witnesses
		WHERE challenge_id = $1
		ORDER BY created_at
	`

	rows, err := r.q.Query(ctx, query, ch.ID)
	if err != nil {
		return fmt.Errorf("failed to get witnesses for challenge %s: %w", ch.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return fmt.Errorf("failed to scan witness: %w", err)
		}
		ch.Witnesses = append(ch.Witnesses, userID)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate witnesses: %w", err)
	}

	return nil
}

// Create inserts a new challenge
func (r *ChallengeRepository) Create(ctx context.Context, challenge *models.Challenge) error {
	query := `
		INSERT INTO challenges (id, owner_id, title, description, duration, penalty_amount, charity_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING progress, total_penalty, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		challenge.ID,
		challenge.OwnerID,
		challenge.Title,
		challenge.Description,
		challenge.Duration,
		challenge.PenaltyAmount,
		challenge.CharityID,
	).Scan(
		&challenge.Progress,
		&challenge.TotalPenalty,
		&challenge.CreatedAt,
		&challenge.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create challenge %q: %w", challenge.Title, err)
	}

	return nil
}

// GetByID retrieves a challenge with its witness set
func (r *ChallengeRepository) GetByID(ctx context.Context, id string) (*models.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges WHERE id = $1`

	ch, err := r.scanChallenge(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge %s: %w", id, err)
	}

	if err := r.loadWitnesses(ctx, ch); err != nil {
		return nil, err
	}

	return ch, nil
}

// GetByIDForUpdate retrieves a challenge while holding a row lock until the
// surrounding transaction ends. Mutations of the same challenge serialize on
// this lock; different challenges proceed in parallel.
func (r *ChallengeRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges WHERE id = $1 FOR UPDATE`

	ch, err := r.scanChallenge(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock challenge %s: %w", id, err)
	}

	// Witness reads are consistent here because witness inserts also take
	// the challenge row lock first.
	if err := r.loadWitnesses(ctx, ch); err != nil {
		return nil, err
	}

	return ch, nil
}

// GetByOwner returns all challenges owned by a user, newest first
func (r *ChallengeRepository) GetByOwner(ctx context.Context, ownerID string) ([]*models.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get challenges for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	var challenges []*models.Challenge
	for rows.Next() {
		ch, err := r.scanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		challenges = append(challenges, ch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate challenges: %w", err)
	}

	for _, ch := range challenges {
		if err := r.loadWitnesses(ctx, ch); err != nil {
			return nil, err
		}
	}

	return challenges, nil
}

// SetTotalPenalty updates the cached unsettled penalty total
func (r *ChallengeRepository) SetTotalPenalty(ctx context.Context, id string, total int64) error {
	query := `
		UPDATE challenges
		SET total_penalty = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, total, id)
	if err != nil {
		return fmt.Errorf("failed to update total penalty for challenge %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("challenge %s not found", id)
	}

	return nil
}

// AddWitness adds a user to the witness set. Returns false when the user was
// already a witness.
func (r *ChallengeRepository) AddWitness(ctx context.Context, challengeID, userID string) (bool, error) {
	query := `
		INSERT INTO challenge_witnesses (challenge_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	result, err := r.q.Exec(ctx, query, challengeID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to add witness %s to challenge %s: %w", userID, challengeID, err)
	}

	return result.RowsAffected() > 0, nil
}
