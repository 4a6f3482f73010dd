package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pledge/models"

	log "github.com/sirupsen/logrus"
)

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type challengeResponse struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"ownerId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Duration      int       `json:"duration"`
	PenaltyAmount int64     `json:"penaltyAmount"`
	CharityID     string    `json:"charityId"`
	Progress      int       `json:"progress"`
	TotalPenalty  int64     `json:"totalPenalty"`
	State         string    `json:"state"`
	Witnesses     []string  `json:"witnesses"`
	SettlementDue bool      `json:"settlementDue"`
	CreatedAt     time.Time `json:"createdAt"`
}

type penaltyResponse struct {
	ID          string    `json:"id"`
	ChallengeID string    `json:"challengeId"`
	Amount      int64     `json:"amount"`
	RecordedBy  string    `json:"recordedBy"`
	Settled     bool      `json:"settled"`
	CreatedAt   time.Time `json:"createdAt"`
}

type invitationResponse struct {
	ID          string    `json:"id"`
	ChallengeID string    `json:"challengeId"`
	FromUserID  string    `json:"fromUserId"`
	ToUserID    string    `json:"toUserId"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type charityResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Link string `json:"link"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func (s *Server) toChallengeResponse(ch *models.Challenge) challengeResponse {
	witnesses := ch.Witnesses
	if witnesses == nil {
		witnesses = []string{}
	}
	return challengeResponse{
		ID:            ch.ID,
		OwnerID:       ch.OwnerID,
		Title:         ch.Title,
		Description:   ch.Description,
		Duration:      ch.Duration,
		PenaltyAmount: ch.PenaltyAmount,
		CharityID:     ch.CharityID,
		Progress:      ch.Progress,
		TotalPenalty:  ch.TotalPenalty,
		State:         string(ch.State()),
		Witnesses:     witnesses,
		SettlementDue: s.settlementService.IsSettlementDue(ch),
		CreatedAt:     ch.CreatedAt,
	}
}

func toPenaltyResponse(p *models.PenaltyEntry) penaltyResponse {
	return penaltyResponse{
		ID:          p.ID,
		ChallengeID: p.ChallengeID,
		Amount:      p.Amount,
		RecordedBy:  p.RecordedBy,
		Settled:     p.Settled(),
		CreatedAt:   p.CreatedAt,
	}
}

func toInvitationResponse(inv *models.Invitation) invitationResponse {
	return invitationResponse{
		ID:          inv.ID,
		ChallengeID: inv.ChallengeID,
		FromUserID:  inv.FromUserID,
		ToUserID:    inv.ToUserID,
		Status:      string(inv.Status),
		CreatedAt:   inv.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrChallengeNotFound),
		errors.Is(err, models.ErrCharityNotFound),
		errors.Is(err, models.ErrInvitationNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrInvalidDuration),
		errors.Is(err, models.ErrInvalidPenalty),
		errors.Is(err, models.ErrWitnessIsOwner):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNotAuthorized):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrSettlementNotDue),
		errors.Is(err, models.ErrInvitationResolved):
		status = http.StatusConflict
	case errors.Is(err, models.ErrIdentityUnavailable):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		log.WithError(err).Error("Request failed")
		writeJSON(w, status, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

// handleRegister resolves or creates an account by email. The password field
// is accepted for wire compatibility and ignored; there is no credential
// store behind this endpoint.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.userService.ResolveOrCreateUser(r.Context(), req.Name, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// handleLogin resolves the account by email, creating it on first contact
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.userService.ResolveOrCreateUser(r.Context(), "", req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")

	user, err := s.userService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	stats, err := s.statsService.GetUserStats(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		userResponse
		Stats *models.UserStats `json:"stats"`
	}{toUserResponse(user), stats})
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.statsService.GetWeeklyStats(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleCreateChallenge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OwnerID       string `json:"ownerId"`
		Title         string `json:"title"`
		Description   string `json:"description"`
		Duration      int    `json:"duration"`
		PenaltyAmount int64  `json:"penaltyAmount"`
		CharityID     string `json:"charityId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	challenge, err := s.challengeService.CreateChallenge(r.Context(),
		req.OwnerID, req.Title, req.Description, req.Duration, req.PenaltyAmount, req.CharityID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, s.toChallengeResponse(challenge))
}

func (s *Server) handleListChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := s.challengeService.ListChallenges(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]challengeResponse, 0, len(challenges))
	for _, ch := range challenges {
		resp = append(resp, s.toChallengeResponse(ch))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRecordPenalty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RecordedBy string `json:"recordedBy"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.challengeService.RecordPenalty(r.Context(), r.PathValue("id"), req.RecordedBy)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		Challenge challengeResponse `json:"challenge"`
		Penalty   penaltyResponse   `json:"penalty"`
	}{s.toChallengeResponse(result.Challenge), toPenaltyResponse(result.Penalty)})
}

func (s *Server) handlePenaltyHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.challengeService.GetPenaltyHistory(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]penaltyResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, toPenaltyResponse(entry))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddWitness(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	challenge, err := s.socialService.AddWitness(r.Context(), r.PathValue("id"), req.Name, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.toChallengeResponse(challenge))
}

func (s *Server) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	challenge, err := s.settlementService.ConfirmPayment(r.Context(), r.PathValue("id"), req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.toChallengeResponse(challenge))
}

func (s *Server) handleInvite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChallengeID string `json:"challengeId"`
		FromUserID  string `json:"fromUserId"`
		Name        string `json:"name"`
		Email       string `json:"email"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	invitation, err := s.socialService.Invite(r.Context(), req.ChallengeID, req.FromUserID, req.Name, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toInvitationResponse(invitation))
}

func (s *Server) handleListInvitations(w http.ResponseWriter, r *http.Request) {
	invitations, err := s.socialService.ListInvitations(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]invitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		resp = append(resp, toInvitationResponse(inv))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRespondToInvitation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
		Accept bool   `json:"accept"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	invitation, err := s.socialService.RespondToInvitation(r.Context(), r.PathValue("id"), req.UserID, req.Accept)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toInvitationResponse(invitation))
}

func (s *Server) handleListCharities(w http.ResponseWriter, r *http.Request) {
	charities, err := s.charityService.ListCharities(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]charityResponse, 0, len(charities))
	for _, c := range charities {
		resp = append(resp, charityResponse{ID: c.ID, Name: c.Name, Link: c.Link})
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleReminder acknowledges a reminder request. Delivery is out of scope;
// the request is logged so an external notifier could pick it up.
func (s *Server) handleReminder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      string `json:"userId"`
		ChallengeID string `json:"challengeId"`
		Message     string `json:"message"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	log.WithFields(log.Fields{
		"userId":      req.UserID,
		"challengeId": req.ChallengeID,
	}).Info("Reminder requested")

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
