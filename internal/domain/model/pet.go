package model

import "time"

// Pet is the profile unit that swipes and is swiped. Every pet belongs
// to exactly one owner account.
type Pet struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	Breed     string    `json:"breed"`
	Bio       string    `json:"bio"`
	BirthDate time.Time `json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
}
