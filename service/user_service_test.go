package service

import (
	"context"
	"testing"

	"pledge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserService_ResolveOrCreateUser_ExistingUser(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, nil)

	service := NewUserService(mockFactory)

	existing := &models.User{ID: "user-1", Name: "Sara", Email: "sara@example.com"}

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	// No Commit() expected since nothing changed

	mockUserRepo.On("GetByEmail", ctx, "sara@example.com").Return(existing, nil)

	user, err := service.ResolveOrCreateUser(ctx, "Sara", "sara@example.com")

	assert.NoError(t, err)
	assert.Equal(t, existing, user)

	mockFactory.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
	mockUserRepo.AssertNotCalled(t, "Create")
}

func TestUserService_ResolveOrCreateUser_NewUser(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockPublisher := new(MockEventPublisher)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, mockPublisher)

	service := NewUserService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByEmail", ctx, "reza@example.com").Return(nil, nil)
	mockUserRepo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Name == "Reza" && u.Email == "reza@example.com" && u.ID != ""
	})).Return(nil)
	mockPublisher.On("Publish", mock.Anything).Return()

	user, err := service.ResolveOrCreateUser(ctx, "Reza", "reza@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "Reza", user.Name)
	assert.Equal(t, "reza@example.com", user.Email)

	mockUserRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestUserService_ResolveOrCreateUser_NameDefaultsToEmail(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, nil)

	service := NewUserService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByEmail", ctx, "nima@example.com").Return(nil, nil)
	mockUserRepo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Name == "nima@example.com"
	})).Return(nil)

	user, err := service.ResolveOrCreateUser(ctx, "", "nima@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "nima@example.com", user.Name)
}

func TestUserService_ResolveOrCreateUser_EmptyEmail(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewUserService(mockFactory)

	_, err := service.ResolveOrCreateUser(ctx, "Reza", "")

	assert.Error(t, err)
	mockFactory.AssertNotCalled(t, "Create")
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)

	mockUoW.SetRepositories(mockUserRepo, nil, nil, nil, nil, nil, nil)

	service := NewUserService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, "nobody").Return(nil, nil)

	_, err := service.GetUser(ctx, "nobody")

	assert.ErrorIs(t, err, models.ErrUserNotFound)
}
