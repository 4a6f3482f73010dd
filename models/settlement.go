package models

import (
	"time"
)

// Settlement is the audit record of one confirmed payment. Amount is the
// penalty total that was cleared; the ledger entries it covered carry its id.
type Settlement struct {
	ID          string    `db:"id"`
	ChallengeID string    `db:"challenge_id"`
	Amount      int64     `db:"amount"`
	ConfirmedBy string    `db:"confirmed_by"`
	CreatedAt   time.Time `db:"created_at"`
}
