package service

import (
	"context"
	"time"

	"pledge/events"
	"pledge/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockChallengeRepository is a mock implementation of ChallengeRepository
type MockChallengeRepository struct {
	mock.Mock
}

func (m *MockChallengeRepository) Create(ctx context.Context, challenge *models.Challenge) error {
	args := m.Called(ctx, challenge)
	return args.Error(0)
}

func (m *MockChallengeRepository) GetByID(ctx context.Context, id string) (*models.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) GetByOwner(ctx context.Context, ownerID string) ([]*models.Challenge, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Challenge), args.Error(1)
}

func (m *MockChallengeRepository) SetTotalPenalty(ctx context.Context, id string, total int64) error {
	args := m.Called(ctx, id, total)
	return args.Error(0)
}

func (m *MockChallengeRepository) AddWitness(ctx context.Context, challengeID, userID string) (bool, error) {
	args := m.Called(ctx, challengeID, userID)
	return args.Bool(0), args.Error(1)
}

// MockPenaltyRepository is a mock implementation of PenaltyRepository
type MockPenaltyRepository struct {
	mock.Mock
}

func (m *MockPenaltyRepository) Create(ctx context.Context, entry *models.PenaltyEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockPenaltyRepository) GetByChallenge(ctx context.Context, challengeID string) ([]*models.PenaltyEntry, error) {
	args := m.Called(ctx, challengeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PenaltyEntry), args.Error(1)
}

func (m *MockPenaltyRepository) SumUnsettled(ctx context.Context, challengeID string) (int64, error) {
	args := m.Called(ctx, challengeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPenaltyRepository) MarkSettled(ctx context.Context, challengeID, settlementID string) (int64, error) {
	args := m.Called(ctx, challengeID, settlementID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPenaltyRepository) GetByOwnerSince(ctx context.Context, ownerID string, since time.Time) ([]*models.PenaltyEntry, error) {
	args := m.Called(ctx, ownerID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PenaltyEntry), args.Error(1)
}

// MockInvitationRepository is a mock implementation of InvitationRepository
type MockInvitationRepository struct {
	mock.Mock
}

func (m *MockInvitationRepository) Create(ctx context.Context, invitation *models.Invitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

func (m *MockInvitationRepository) GetByID(ctx context.Context, id string) (*models.Invitation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) GetByToUser(ctx context.Context, userID string) ([]*models.Invitation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Invitation), args.Error(1)
}

func (m *MockInvitationRepository) UpdateStatus(ctx context.Context, id string, status models.InvitationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockCharityRepository is a mock implementation of CharityRepository
type MockCharityRepository struct {
	mock.Mock
}

func (m *MockCharityRepository) GetByID(ctx context.Context, id string) (*models.Charity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Charity), args.Error(1)
}

func (m *MockCharityRepository) GetAll(ctx context.Context) ([]*models.Charity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Charity), args.Error(1)
}

// MockSettlementRepository is a mock implementation of SettlementRepository
type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) Create(ctx context.Context, settlement *models.Settlement) error {
	args := m.Called(ctx, settlement)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Repositories are
// injected with SetRepositories rather than expectation-driven so tests read
// naturally.
type MockUnitOfWork struct {
	mock.Mock
	userRepo       UserRepository
	challengeRepo  ChallengeRepository
	penaltyRepo    PenaltyRepository
	invitationRepo InvitationRepository
	charityRepo    CharityRepository
	settlementRepo SettlementRepository
	eventBus       EventPublisher
}

// SetRepositories configures the repositories returned by the getters.
// Pass nil for repositories the test does not touch.
func (m *MockUnitOfWork) SetRepositories(
	userRepo UserRepository,
	challengeRepo ChallengeRepository,
	penaltyRepo PenaltyRepository,
	invitationRepo InvitationRepository,
	charityRepo CharityRepository,
	settlementRepo SettlementRepository,
	eventBus EventPublisher,
) {
	m.userRepo = userRepo
	m.challengeRepo = challengeRepo
	m.penaltyRepo = penaltyRepo
	m.invitationRepo = invitationRepo
	m.charityRepo = charityRepo
	m.settlementRepo = settlementRepo
	m.eventBus = eventBus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository {
	return m.userRepo
}

func (m *MockUnitOfWork) ChallengeRepository() ChallengeRepository {
	return m.challengeRepo
}

func (m *MockUnitOfWork) PenaltyRepository() PenaltyRepository {
	return m.penaltyRepo
}

func (m *MockUnitOfWork) InvitationRepository() InvitationRepository {
	return m.invitationRepo
}

func (m *MockUnitOfWork) CharityRepository() CharityRepository {
	return m.charityRepo
}

func (m *MockUnitOfWork) SettlementRepository() SettlementRepository {
	return m.settlementRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	if m.eventBus == nil {
		return noopPublisher{}
	}
	return m.eventBus
}

// noopPublisher swallows events for tests that don't assert on them
type noopPublisher struct{}

func (noopPublisher) Publish(events.Event) {}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}

// MockIdentityResolver is a mock implementation of IdentityResolver
type MockIdentityResolver struct {
	mock.Mock
}

func (m *MockIdentityResolver) ResolveOrCreateUser(ctx context.Context, name, email string) (*models.User, error) {
	args := m.Called(ctx, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
