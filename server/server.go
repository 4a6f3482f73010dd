package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pledge/service"

	log "github.com/sirupsen/logrus"
)

// Server is the HTTP/JSON boundary over the domain services
type Server struct {
	userService       service.UserService
	challengeService  service.ChallengeService
	socialService     service.SocialService
	settlementService service.SettlementService
	statsService      service.StatsService
	charityService    service.CharityService

	httpServer *http.Server
}

// New creates a new server listening on the given port
func New(
	port int,
	userService service.UserService,
	challengeService service.ChallengeService,
	socialService service.SocialService,
	settlementService service.SettlementService,
	statsService service.StatsService,
	charityService service.CharityService,
) *Server {
	s := &Server{
		userService:       userService,
		challengeService:  challengeService,
		socialService:     socialService,
		settlementService: settlementService,
		statsService:      statsService,
		charityService:    charityService,
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           loggingMiddleware(s.routes()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /profile/{userId}", s.handleProfile)
	mux.HandleFunc("GET /statistics/{userId}", s.handleStatistics)

	mux.HandleFunc("POST /challenges", s.handleCreateChallenge)
	mux.HandleFunc("GET /challenges/{userId}", s.handleListChallenges)
	mux.HandleFunc("POST /challenges/{id}/penalties", s.handleRecordPenalty)
	mux.HandleFunc("GET /challenges/{id}/penalties", s.handlePenaltyHistory)
	mux.HandleFunc("POST /challenges/{id}/witnesses", s.handleAddWitness)
	mux.HandleFunc("POST /challenges/{id}/confirm-payment", s.handleConfirmPayment)

	mux.HandleFunc("POST /invitations", s.handleInvite)
	mux.HandleFunc("GET /invitations/{userId}", s.handleListInvitations)
	mux.HandleFunc("POST /invitations/{id}/respond", s.handleRespondToInvitation)

	mux.HandleFunc("GET /charities", s.handleListCharities)
	mux.HandleFunc("POST /reminders", s.handleReminder)

	return mux
}

// Start begins serving and blocks until the server stops
func (s *Server) Start() error {
	log.WithField("addr", s.httpServer.Addr).Info("HTTP server starting")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
