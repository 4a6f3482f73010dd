package models

// Charity is read-only reference data. The Link points at the charity's
// external donation page; the core never verifies that a donation happened.
type Charity struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	Link string `db:"link"`
}
