package models

import (
	"time"
)

// InvitationStatus represents the lifecycle of an invitation
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
)

// Invitation links a challenge to another user. Invitations are independent
// of witness membership; duplicates for the same pair are allowed.
type Invitation struct {
	ID          string           `db:"id"`
	ChallengeID string           `db:"challenge_id"`
	FromUserID  string           `db:"from_user_id"`
	ToUserID    string           `db:"to_user_id"`
	Status      InvitationStatus `db:"status"`
	CreatedAt   time.Time        `db:"created_at"`
}
