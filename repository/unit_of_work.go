package repository

import (
	"context"
	"fmt"

	"pledge/database"
	"pledge/events"
	"pledge/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	userRepo         service.UserRepository
	challengeRepo    service.ChallengeRepository
	penaltyRepo      service.PenaltyRepository
	invitationRepo   service.InvitationRepository
	charityRepo      service.CharityRepository
	settlementRepo   service.SettlementRepository
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories with the transaction
	u.userRepo = newUserRepositoryWithTx(tx)
	u.challengeRepo = newChallengeRepositoryWithTx(tx)
	u.penaltyRepo = newPenaltyRepositoryWithTx(tx)
	u.invitationRepo = newInvitationRepositoryWithTx(tx)
	u.charityRepo = newCharityRepositoryWithTx(tx)
	u.settlementRepo = newSettlementRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() service.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

// ChallengeRepository returns the challenge repository for this unit of work
func (u *unitOfWork) ChallengeRepository() service.ChallengeRepository {
	if u.challengeRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.challengeRepo
}

// PenaltyRepository returns the penalty repository for this unit of work
func (u *unitOfWork) PenaltyRepository() service.PenaltyRepository {
	if u.penaltyRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.penaltyRepo
}

// InvitationRepository returns the invitation repository for this unit of work
func (u *unitOfWork) InvitationRepository() service.InvitationRepository {
	if u.invitationRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.invitationRepo
}

// CharityRepository returns the charity repository for this unit of work
func (u *unitOfWork) CharityRepository() service.CharityRepository {
	if u.charityRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.charityRepo
}

// SettlementRepository returns the settlement repository for this unit of work
func (u *unitOfWork) SettlementRepository() service.SettlementRepository {
	if u.settlementRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.settlementRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
