package service

import (
	"context"
	"fmt"

	"pledge/events"
	"pledge/models"

	"github.com/google/uuid"
)

// socialService implements the SocialService interface
type socialService struct {
	uowFactory UnitOfWorkFactory
	identity   IdentityResolver
}

// NewSocialService creates a new social service
func NewSocialService(uowFactory UnitOfWorkFactory, identity IdentityResolver) SocialService {
	return &socialService{
		uowFactory: uowFactory,
		identity:   identity,
	}
}

// AddWitness resolves the candidate by email and adds them to the challenge's
// witness set. Identity resolution runs in its own transaction before the
// challenge lock is taken, so a slow or failing identity lookup never holds
// the challenge row.
func (s *socialService) AddWitness(ctx context.Context, challengeID, name, email string) (*models.Challenge, error) {
	witness, err := s.identity.ResolveOrCreateUser(ctx, name, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrIdentityUnavailable, err)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	challenge, err := uow.ChallengeRepository().GetByIDForUpdate(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	if challenge == nil {
		return nil, models.ErrChallengeNotFound
	}

	if witness.ID == challenge.OwnerID {
		return nil, models.ErrWitnessIsOwner
	}

	added, err := uow.ChallengeRepository().AddWitness(ctx, challenge.ID, witness.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to add witness: %w", err)
	}

	if added {
		challenge.Witnesses = append(challenge.Witnesses, witness.ID)
		uow.EventBus().Publish(events.WitnessAddedEvent{
			ChallengeID: challenge.ID,
			WitnessID:   witness.ID,
		})
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return challenge, nil
}

// Invite resolves the candidate by email and creates a pending invitation
func (s *socialService) Invite(ctx context.Context, challengeID, fromUserID, name, email string) (*models.Invitation, error) {
	invitee, err := s.identity.ResolveOrCreateUser(ctx, name, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrIdentityUnavailable, err)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	challenge, err := uow.ChallengeRepository().GetByID(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	if challenge == nil {
		return nil, models.ErrChallengeNotFound
	}

	invitation := &models.Invitation{
		ID:          uuid.New().String(),
		ChallengeID: challenge.ID,
		FromUserID:  fromUserID,
		ToUserID:    invitee.ID,
		Status:      models.InvitationStatusPending,
	}

	if err := uow.InvitationRepository().Create(ctx, invitation); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	uow.EventBus().Publish(events.InvitationCreatedEvent{
		InvitationID: invitation.ID,
		ChallengeID:  invitation.ChallengeID,
		FromUserID:   invitation.FromUserID,
		ToUserID:     invitation.ToUserID,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return invitation, nil
}

// ListInvitations returns invitations addressed to a user
func (s *socialService) ListInvitations(ctx context.Context, userID string) ([]*models.Invitation, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	invitations, err := uow.InvitationRepository().GetByToUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	return invitations, nil
}

// RespondToInvitation accepts or declines a pending invitation. Accepting is
// a plain status transition; it does not make the invitee a witness.
func (s *socialService) RespondToInvitation(ctx context.Context, invitationID, userID string, accept bool) (*models.Invitation, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	invitation, err := uow.InvitationRepository().GetByID(ctx, invitationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	if invitation == nil {
		return nil, models.ErrInvitationNotFound
	}

	if invitation.ToUserID != userID {
		return nil, models.ErrNotAuthorized
	}
	if invitation.Status != models.InvitationStatusPending {
		return nil, models.ErrInvitationResolved
	}

	status := models.InvitationStatusDeclined
	if accept {
		status = models.InvitationStatusAccepted
	}

	if err := uow.InvitationRepository().UpdateStatus(ctx, invitation.ID, status); err != nil {
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}
	invitation.Status = status

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return invitation, nil
}
