package cmd

import (
	"context"
	"fmt"
	"time"

	"pledge/config"
	"pledge/database"
	"pledge/events"
	"pledge/repository"
	"pledge/server"
	"pledge/service"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting pledge server...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()
	subscribeAuditLog(eventBus)

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	log.Info("Initializing services...")
	userService := service.NewUserService(uowFactory)
	challengeService := service.NewChallengeService(uowFactory)
	socialService := service.NewSocialService(uowFactory, userService)
	settlementService := service.NewSettlementService(uowFactory, cfg.SettlementThreshold)
	statsService := service.NewStatsService(uowFactory)
	charityService := service.NewCharityService(uowFactory)
	log.Info("Services initialized successfully")

	// Initialize HTTP server
	srv := server.New(cfg.Port,
		userService,
		challengeService,
		socialService,
		settlementService,
		statsService,
		charityService,
	)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	log.WithFields(log.Fields{
		"port":        cfg.Port,
		"environment": cfg.Environment,
	}).Info("Server is running")

	select {
	case err := <-serverErr:
		db.Close()
		return err
	case <-ctx.Done():
	}

	// Cleanup resources
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server shutdown failed")
	}

	log.Info("Closing database connection...")
	db.Close()

	log.Info("Shutdown completed")
	return nil
}

// subscribeAuditLog attaches logging handlers so every committed domain event
// leaves a trace in the logs
func subscribeAuditLog(bus *events.Bus) {
	bus.Subscribe(events.EventTypePenaltyRecorded, func(ctx context.Context, e events.Event) {
		ev := e.(events.PenaltyRecordedEvent)
		log.WithFields(log.Fields{
			"challengeId":  ev.ChallengeID,
			"penaltyId":    ev.PenaltyID,
			"amount":       ev.Amount,
			"recordedBy":   ev.RecordedBy,
			"totalPenalty": ev.TotalPenalty,
		}).Info("Penalty recorded")
	})

	bus.Subscribe(events.EventTypePaymentConfirmed, func(ctx context.Context, e events.Event) {
		ev := e.(events.PaymentConfirmedEvent)
		log.WithFields(log.Fields{
			"challengeId":   ev.ChallengeID,
			"settlementId":  ev.SettlementID,
			"clearedAmount": ev.ClearedAmount,
			"confirmedBy":   ev.ConfirmedBy,
		}).Info("Payment confirmed, ledger settled")
	})

	bus.Subscribe(events.EventTypeWitnessAdded, func(ctx context.Context, e events.Event) {
		ev := e.(events.WitnessAddedEvent)
		log.WithFields(log.Fields{
			"challengeId": ev.ChallengeID,
			"witnessId":   ev.WitnessID,
		}).Info("Witness added")
	})

	bus.Subscribe(events.EventTypeUserCreated, func(ctx context.Context, e events.Event) {
		ev := e.(events.UserCreatedEvent)
		log.WithFields(log.Fields{
			"userId": ev.UserID,
			"email":  ev.Email,
		}).Info("User created")
	})

	bus.Subscribe(events.EventTypeInvitationCreated, func(ctx context.Context, e events.Event) {
		ev := e.(events.InvitationCreatedEvent)
		log.WithFields(log.Fields{
			"invitationId": ev.InvitationID,
			"challengeId":  ev.ChallengeID,
			"fromUserId":   ev.FromUserID,
			"toUserId":     ev.ToUserID,
		}).Info("Invitation created")
	})
}
