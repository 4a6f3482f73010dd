package repository

import (
	"context"
	"fmt"

	"pledge/database"
	"pledge/models"

	"github.com/jackc/pgx/v5"
)

// CharityRepository implements read-only access to charity reference data
type CharityRepository struct {
	q Queryable
}

// NewCharityRepository creates a new charity repository
func NewCharityRepository(db *database.DB) *CharityRepository {
	return &CharityRepository{q: db.Pool}
}

// newCharityRepositoryWithTx creates a new charity repository with a transaction
func newCharityRepositoryWithTx(tx Queryable) *CharityRepository {
	return &CharityRepository{q: tx}
}

// GetByID retrieves a charity by id
func (r *CharityRepository) GetByID(ctx context.Context, id string) (*models.Charity, error) {
	query := `
		SELECT id, name, link
		FROM charities
		WHERE id = $1
	`

	var charity models.Charity
	err := r.q.QueryRow(ctx, query, id).Scan(&charity.ID, &charity.Name, &charity.Link)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get charity %s: %w", id, err)
	}

	return &charity, nil
}

// GetAll returns all charities
func (r *CharityRepository) GetAll(ctx context.Context) ([]*models.Charity, error) {
	query := `
		SELECT id, name, link
		FROM charities
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get charities: %w", err)
	}
	defer rows.Close()

	var charities []*models.Charity
	for rows.Next() {
		var charity models.Charity
		if err := rows.Scan(&charity.ID, &charity.Name, &charity.Link); err != nil {
			return nil, fmt.Errorf("failed to scan charity: %w", err)
		}
		charities = append(charities, &charity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate charities: %w", err)
	}

	return charities, nil
}
