package repository

import (
	"context"
	"fmt"

	"pledge/database"
	"pledge/models"

	"github.com/jackc/pgx/v5"
)

// InvitationRepository implements the InvitationRepository interface
type InvitationRepository struct {
	q Queryable
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db *database.DB) *InvitationRepository {
	return &InvitationRepository{q: db.Pool}
}

// newInvitationRepositoryWithTx creates a new invitation repository with a transaction
func newInvitationRepositoryWithTx(tx Queryable) *InvitationRepository {
	return &InvitationRepository{q: tx}
}

// Create inserts a new invitation
func (r *InvitationRepository) Create(ctx context.Context, invitation *models.Invitation) error {
	query := `
		INSERT INTO invitations (id, challenge_id, from_user_id, to_user_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		invitation.ID,
		invitation.ChallengeID,
		invitation.FromUserID,
		invitation.ToUserID,
		invitation.Status,
	).Scan(&invitation.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create invitation for challenge %s: %w", invitation.ChallengeID, err)
	}

	return nil
}

// GetByID retrieves an invitation by id
func (r *InvitationRepository) GetByID(ctx context.Context, id string) (*models.Invitation, error) {
	query := `
		SELECT id, challenge_id, from_user_id, to_user_id, status, created_at
		FROM invitations
		WHERE id = $1
	`

	var inv models.Invitation
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID,
		&inv.ChallengeID,
		&inv.FromUserID,
		&inv.ToUserID,
		&inv.Status,
		&inv.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation %s: %w", id, err)
	}

	return &inv, nil
}

// GetByToUser returns invitations addressed to a user, newest first
func (r *InvitationRepository) GetByToUser(ctx context.Context, userID string) ([]*models.Invitation, error) {
	query := `
		SELECT id, challenge_id, from_user_id, to_user_id, status, created_at
		FROM invitations
		WHERE to_user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitations for user %s: %w", userID, err)
	}
	defer rows.Close()

	var invitations []*models.Invitation
	for rows.Next() {
		var inv models.Invitation
		err := rows.Scan(
			&inv.ID,
			&inv.ChallengeID,
			&inv.FromUserID,
			&inv.ToUserID,
			&inv.Status,
			&inv.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, &inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invitations: %w", err)
	}

	return invitations, nil
}

// UpdateStatus transitions an invitation's status
func (r *InvitationRepository) UpdateStatus(ctx context.Context, id string, status models.InvitationStatus) error {
	query := `
		UPDATE invitations
		SET status = $1
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update invitation %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("invitation %s not found", id)
	}

	return nil
}
