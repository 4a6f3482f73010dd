package service

import (
	"context"
	"testing"

	"pledge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestChallengeService_CreateChallenge(t *testing.T) {
	ctx := context.Background()

	// Setup mocks
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockChallengeRepo := new(MockChallengeRepository)
	mockCharityRepo := new(MockCharityRepository)

	mockUoW.SetRepositories(mockUserRepo, mockChallengeRepo, nil, nil, mockCharityRepo, nil, nil)

	service := NewChallengeService(mockFactory)

	owner := &models.User{ID: "user-1", Name: "Sara", Email: "sara@example.com"}
	charity := &models.Charity{ID: "charity1", Name: "Mahak"}

	// Mock expectations
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, "user-1").Return(owner, nil)
	mockCharityRepo.On("GetByID", ctx, "charity1").Return(charity, nil)
	mockChallengeRepo.On("Create", ctx, mock.MatchedBy(func(c *models.Challenge) bool {
		return c.OwnerID == "user-1" &&
			c.Title == "No sugar" &&
			c.Duration == 30 &&
			c.PenaltyAmount == 50000 &&
			c.CharityID == "charity1" &&
			c.ID != ""
	})).Return(nil)

	challenge, err := service.CreateChallenge(ctx, "user-1", "No sugar", "30 days without sugar", 30, 50000, "charity1")

	assert.NoError(t, err)
	assert.NotNil(t, challenge)
	assert.Equal(t, int64(0), challenge.TotalPenalty)
	assert.Equal(t, models.ChallengeStateActive, challenge.State())

	mockFactory.AssertExpectations(t)
	mockChallengeRepo.AssertExpectations(t)
}

func TestChallengeService_CreateChallenge_InvalidInputs(t *testing.T) {
	ctx := context.Background()

	mockFactory := new(MockUnitOfWorkFactory)
	service := NewChallengeService(mockFactory)

	// Validation rejects before any transaction starts
	_, err := service.CreateChallenge(ctx, "user-1", "No sugar", "", 0, 50000, "charity1")
	assert.ErrorIs(t, err, models.ErrInvalidDuration)

	_, err = service.CreateChallenge(ctx, "user-1", "No sugar", "", -5, 50000, "charity1")
	assert.ErrorIs(t, err, models.ErrInvalidDuration)

	_, err = service.CreateChallenge(ctx, "user-1", "No sugar", "", 30, 0, "charity1")
	assert.ErrorIs(t, err, models.ErrInvalidPenalty)

	_, err = service.CreateChallenge(ctx, "user-1", "No sugar", "", 30, -100, "charity1")
	assert.ErrorIs(t, err, models.ErrInvalidPenalty)

	mockFactory.AssertNotCalled(t, "Create")
}

func TestChallengeService_CreateChallenge_UnknownCharity(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockChallengeRepo := new(MockChallengeRepository)
	mockCharityRepo := new(MockCharityRepository)

	mockUoW.SetRepositories(mockUserRepo, mockChallengeRepo, nil, nil, mockCharityRepo, nil, nil)

	service := NewChallengeService(mockFactory)

	owner := &models.User{ID: "user-1", Name: "Sara", Email: "sara@example.com"}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockUserRepo.On("GetByID", ctx, "user-1").Return(owner, nil)
	mockCharityRepo.On("GetByID", ctx, "nope").Return(nil, nil)

	_, err := service.CreateChallenge(ctx, "user-1", "No sugar", "", 30, 50000, "nope")

	assert.ErrorIs(t, err, models.ErrCharityNotFound)
	mockChallengeRepo.AssertNotCalled(t, "Create")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestChallengeService_RecordPenalty_ByOwner(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockChallengeRepo := new(MockChallengeRepository)
	mockPenaltyRepo := new(MockPenaltyRepository)
	mockPublisher := new(MockEventPublisher)

	mockUoW.SetRepositories(nil, mockChallengeRepo, mockPenaltyRepo, nil, nil, nil, mockPublisher)

	service := NewChallengeService(mockFactory)

	challenge := &models.Challenge{
		ID:            "ch-1",
		OwnerID:       "user-1",
		PenaltyAmount: 50000,
		Duration:      30,
		TotalPenalty:  100000,
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockChallengeRepo.On("GetByIDForUpdate", ctx, "ch-1").Return(challenge, nil)
	mockPenaltyRepo.On("Create", ctx, mock.MatchedBy(func(e *models.PenaltyEntry) bool {
		return e.ChallengeID == "ch-1" && e.Amount == 50000 && e.RecordedBy == "user-1" && !e.Settled()
	})).Return(nil)
	mockChallengeRepo.On("SetTotalPenalty", ctx, "ch-1", int64(150000)).Return(nil)
	mockPublisher.On("Publish", mock.Anything).Return()

	result, err := service.RecordPenalty(ctx, "ch-1", "user-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(150000), result.Challenge.TotalPenalty)
	assert.Equal(t, int64(50000), result.Penalty.Amount)

	mockChallengeRepo.AssertExpectations(t)
	mockPenaltyRepo.AssertExpectations(t)
}

func TestChallengeService_RecordPenalty_ByWitness(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockChallengeRepo := new(MockChallengeRepository)
	mockPenaltyRepo := new(MockPenaltyRepository)

	mockUoW.SetRepositories(nil, mockChallengeRepo, mockPenaltyRepo, nil, nil, nil, nil)

	service := NewChallengeService(mockFactory)

	challenge := &models.Challenge{
		ID:            "ch-1",
		OwnerID:       "user-1",
		PenaltyAmount: 25000,
		Duration:      30,
		Witnesses:     []string{"user-2"},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockChallengeRepo.On("GetByIDForUpdate", ctx, "ch-1").Return(challenge, nil)
	mockPenaltyRepo.On("Create", ctx, mock.MatchedBy(func(e *models.PenaltyEntry) bool {
		return e.RecordedBy == "user-2"
	})).Return(nil)
	mockChallengeRepo.On("SetTotalPenalty", ctx, "ch-1", int64(25000)).Return(nil)

	result, err := service.RecordPenalty(ctx, "ch-1", "user-2")

	assert.NoError(t, err)
	assert.Equal(t, int64(25000), result.Challenge.TotalPenalty)
}

func TestChallengeService_RecordPenalty_Unauthorized(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockChallengeRepo := new(MockChallengeRepository)
	mockPenaltyRepo := new(MockPenaltyRepository)

	mockUoW.SetRepositories(nil, mockChallengeRepo, mockPenaltyRepo, nil, nil, nil, nil)

	service := NewChallengeService(mockFactory)

	challenge := &models.Challenge{
		ID:            "ch-1",
		OwnerID:       "user-1",
		PenaltyAmount: 50000,
		Duration:      30,
		Witnesses:     []string{"user-2"},
	}

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockChallengeRepo.On("GetByIDForUpdate", ctx, "ch-1").Return(challenge, nil)

	// user-3 is neither owner nor witness
	_, err := service.RecordPenalty(ctx, "ch-1", "user-3")

	assert.ErrorIs(t, err, models.ErrNotAuthorized)
	mockPenaltyRepo.AssertNotCalled(t, "Create")
	mockChallengeRepo.AssertNotCalled(t, "SetTotalPenalty")
	mockUoW.AssertNotCalled(t, "Commit")
}

func TestChallengeService_RecordPenalty_ChallengeNotFound(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockChallengeRepo := new(MockChallengeRepository)

	mockUoW.SetRepositories(nil, mockChallengeRepo, nil, nil, nil, nil, nil)

	service := NewChallengeService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockChallengeRepo.On("GetByIDForUpdate", ctx, "missing").Return(nil, nil)

	_, err := service.RecordPenalty(ctx, "missing", "user-1")

	assert.ErrorIs(t, err, models.ErrChallengeNotFound)
}
