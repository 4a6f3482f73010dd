package service

import (
	"context"
	"time"

	"pledge/events"
	"pledge/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by id, nil when unknown
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail retrieves a user by email, nil when unknown
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Create inserts a new user and fills server-assigned fields
	Create(ctx context.Context, user *models.User) error
}

// ChallengeRepository defines the interface for challenge data access
type ChallengeRepository interface {
	// Create inserts a new challenge
	Create(ctx context.Context, challenge *models.Challenge) error

	// GetByID retrieves a challenge with its witness set, nil when unknown
	GetByID(ctx context.Context, id string) (*models.Challenge, error)

	// GetByIDForUpdate retrieves a challenge with its witness set while
	// holding a row lock until the transaction ends. All mutations of a
	// challenge go through this lock so operations on the same challenge
	// serialize.
	GetByIDForUpdate(ctx context.Context, id string) (*models.Challenge, error)

	// GetByOwner returns all challenges owned by a user, newest first
	GetByOwner(ctx context.Context, ownerID string) ([]*models.Challenge, error)

	// SetTotalPenalty updates the cached unsettled penalty total
	SetTotalPenalty(ctx context.Context, id string, total int64) error

	// AddWitness adds a user to the witness set. Returns false when the
	// user was already a witness; duplicate adds are not an error.
	AddWitness(ctx context.Context, challengeID, userID string) (bool, error)
}

// PenaltyRepository defines the interface for the penalty ledger
type PenaltyRepository interface {
	// Create appends a new ledger entry
	Create(ctx context.Context, entry *models.PenaltyEntry) error

	// GetByChallenge returns the full ledger for a challenge, oldest first,
	// settled entries included
	GetByChallenge(ctx context.Context, challengeID string) ([]*models.PenaltyEntry, error)

	// SumUnsettled returns the sum of entries not yet cleared by a settlement
	SumUnsettled(ctx context.Context, challengeID string) (int64, error)

	// MarkSettled stamps every unsettled entry of a challenge with the
	// settlement id and returns the total amount cleared
	MarkSettled(ctx context.Context, challengeID, settlementID string) (int64, error)

	// GetByOwnerSince returns ledger entries across all of a user's
	// challenges recorded at or after the given time, oldest first
	GetByOwnerSince(ctx context.Context, ownerID string, since time.Time) ([]*models.PenaltyEntry, error)
}

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	// Create inserts a new invitation
	Create(ctx context.Context, invitation *models.Invitation) error

	// GetByID retrieves an invitation by id, nil when unknown
	GetByID(ctx context.Context, id string) (*models.Invitation, error)

	// GetByToUser returns invitations addressed to a user, newest first
	GetByToUser(ctx context.Context, userID string) ([]*models.Invitation, error)

	// UpdateStatus transitions an invitation's status
	UpdateStatus(ctx context.Context, id string, status models.InvitationStatus) error
}

// CharityRepository defines the interface for charity reference data
type CharityRepository interface {
	// GetByID retrieves a charity by id, nil when unknown
	GetByID(ctx context.Context, id string) (*models.Charity, error)

	// GetAll returns all charities
	GetAll(ctx context.Context) ([]*models.Charity, error)
}

// SettlementRepository defines the interface for settlement audit records
type SettlementRepository interface {
	// Create inserts a new settlement record
	Create(ctx context.Context, settlement *models.Settlement) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// IdentityResolver is the identity collaborator used when adding witnesses
// or inviting friends by email. Resolution is an idempotent get-or-create,
// decoupled from authentication.
type IdentityResolver interface {
	ResolveOrCreateUser(ctx context.Context, name, email string) (*models.User, error)
}

// UserService defines the interface for user operations
type UserService interface {
	IdentityResolver

	// GetUser retrieves a user by id
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// ChallengeService defines the interface for challenge lifecycle operations
type ChallengeService interface {
	// CreateChallenge creates a new challenge for the owner
	CreateChallenge(ctx context.Context, ownerID, title, description string, duration int, penaltyAmount int64, charityID string) (*models.Challenge, error)

	// RecordPenalty appends a penalty entry on behalf of the owner or a
	// witness and returns the updated challenge snapshot with the entry
	RecordPenalty(ctx context.Context, challengeID, recordedBy string) (*models.RecordPenaltyResult, error)

	// GetChallenge returns a challenge snapshot
	GetChallenge(ctx context.Context, challengeID string) (*models.Challenge, error)

	// ListChallenges returns all challenges owned by a user
	ListChallenges(ctx context.Context, ownerID string) ([]*models.Challenge, error)

	// GetPenaltyHistory returns the full ledger for a challenge, oldest first
	GetPenaltyHistory(ctx context.Context, challengeID string) ([]*models.PenaltyEntry, error)
}

// SocialService defines the interface for witness and invitation workflows
type SocialService interface {
	// AddWitness resolves the candidate by email and adds them to the
	// challenge's witness set. Adding an existing witness is a no-op.
	AddWitness(ctx context.Context, challengeID, name, email string) (*models.Challenge, error)

	// Invite resolves the candidate by email and creates a pending
	// invitation. Duplicate invitations to the same pair are permitted.
	Invite(ctx context.Context, challengeID, fromUserID, name, email string) (*models.Invitation, error)

	// ListInvitations returns invitations addressed to a user
	ListInvitations(ctx context.Context, userID string) ([]*models.Invitation, error)

	// RespondToInvitation accepts or declines a pending invitation
	RespondToInvitation(ctx context.Context, invitationID, userID string, accept bool) (*models.Invitation, error)
}

// SettlementService defines the interface for payment settlement
type SettlementService interface {
	// IsSettlementDue reports whether the challenge's penalty total has
	// reached the settlement threshold
	IsSettlementDue(challenge *models.Challenge) bool

	// ConfirmPayment clears the challenge's penalty balance after the owner
	// attests the donation was made. The ledger stamp, audit record and
	// total reset commit atomically.
	ConfirmPayment(ctx context.Context, challengeID, confirmingUserID string) (*models.Challenge, error)
}

// StatsService defines the interface for statistics operations
type StatsService interface {
	// GetUserStats returns per-user aggregate statistics
	GetUserStats(ctx context.Context, userID string) (*models.UserStats, error)

	// GetWeeklyStats returns the trailing 7-day penalty breakdown
	GetWeeklyStats(ctx context.Context, userID string) (*models.WeeklyStats, error)
}

// CharityService defines the interface for charity reference data
type CharityService interface {
	// ListCharities returns all charities
	ListCharities(ctx context.Context) ([]*models.Charity, error)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	ChallengeRepository() ChallengeRepository
	PenaltyRepository() PenaltyRepository
	InvitationRepository() InvitationRepository
	CharityRepository() CharityRepository
	SettlementRepository() SettlementRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
