package models

import (
	"time"
)

// User represents a registered account. Identity is resolved by the boundary
// layer; the core only ever sees an already-known user id.
type User struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}
