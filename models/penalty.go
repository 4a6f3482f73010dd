package models

import (
	"time"
)

// PenaltyEntry is one recorded failure against a challenge. Entries are
// immutable once created; settlement stamps SettlementID instead of deleting,
// so the ledger keeps full history while settled entries drop out of the
// running total.
type PenaltyEntry struct {
	ID           string    `db:"id"`
	ChallengeID  string    `db:"challenge_id"`
	Amount       int64     `db:"amount"` // challenge's per-occurrence penalty at recording time
	RecordedBy   string    `db:"recorded_by"`
	SettlementID *string   `db:"settlement_id"` // nil while the entry is still owed
	CreatedAt    time.Time `db:"created_at"`
}

// Settled reports whether the entry has been cleared by a settlement
func (p *PenaltyEntry) Settled() bool {
	return p.SettlementID != nil
}

// RecordPenaltyResult is returned to the caller after a penalty is appended
type RecordPenaltyResult struct {
	Challenge *Challenge
	Penalty   *PenaltyEntry
}
