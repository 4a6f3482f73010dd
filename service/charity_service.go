package service

import (
	"context"
	"fmt"

	"pledge/models"
)

// charityService implements the CharityService interface
type charityService struct {
	uowFactory UnitOfWorkFactory
}

// NewCharityService creates a new charity service
func NewCharityService(uowFactory UnitOfWorkFactory) CharityService {
	return &charityService{
		uowFactory: uowFactory,
	}
}

// ListCharities returns all charities
func (s *charityService) ListCharities(ctx context.Context) ([]*models.Charity, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	charities, err := uow.CharityRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list charities: %w", err)
	}

	return charities, nil
}
