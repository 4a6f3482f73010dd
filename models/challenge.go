package models

import (
	"time"
)

// ChallengeState is derived from progress, never stored
type ChallengeState string

const (
	ChallengeStateActive    ChallengeState = "active"
	ChallengeStateCompleted ChallengeState = "completed"
)

// Challenge represents a time-boxed self-commitment with a monetary penalty
// schedule. TotalPenalty is a cached sum of the unsettled ledger entries for
// this challenge and is only ever mutated inside the challenge's transaction.
type Challenge struct {
	ID            string    `db:"id"`
	OwnerID       string    `db:"owner_id"`
	Title         string    `db:"title"`
	Description   string    `db:"description"`
	Duration      int       `db:"duration"`       // days
	PenaltyAmount int64     `db:"penalty_amount"` // per occurrence, toman
	CharityID     string    `db:"charity_id"`
	Progress      int       `db:"progress"` // days elapsed, externally driven
	TotalPenalty  int64     `db:"total_penalty"`
	Witnesses     []string  `db:"-"` // user ids, loaded with the challenge
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// State returns the lifecycle state derived from progress
func (c *Challenge) State() ChallengeState {
	if c.Progress >= c.Duration {
		return ChallengeStateCompleted
	}
	return ChallengeStateActive
}

// HasWitness reports whether the given user is a registered witness
func (c *Challenge) HasWitness(userID string) bool {
	for _, w := range c.Witnesses {
		if w == userID {
			return true
		}
	}
	return false
}

// CanRecordPenalty reports whether the given user may append ledger entries
// for this challenge (owner or registered witness).
func (c *Challenge) CanRecordPenalty(userID string) bool {
	return userID == c.OwnerID || c.HasWitness(userID)
}
