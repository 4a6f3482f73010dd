package service

import (
	"context"
	"fmt"

	"pledge/events"
	"pledge/models"

	"github.com/google/uuid"
)

// userService implements the UserService interface
type userService struct {
	uowFactory UnitOfWorkFactory
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory) UserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

// ResolveOrCreateUser retrieves the user registered under the email or
// creates one. This is the identity collaborator behind witness adds and
// invitations: an idempotent get-or-create keyed on the email, with no
// authentication involved.
func (s *userService) ResolveOrCreateUser(ctx context.Context, name, email string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("email must not be empty")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	user, err := uow.UserRepository().GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	// User exists, return it
	if user != nil {
		return user, nil
	}

	// User doesn't exist, create one. The unique constraint on email
	// prevents duplicates under concurrent resolution.
	if name == "" {
		name = email
	}
	user = &models.User{
		ID:    uuid.New().String(),
		Name:  name,
		Email: email,
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uow.EventBus().Publish(events.UserCreatedEvent{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by id
func (s *userService) GetUser(ctx context.Context, id string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}

	return user, nil
}
