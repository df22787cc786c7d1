package model

import "time"

// Message belongs to exactly one match and one sender pet. IsRead is
// the only mutable field: it flips false -> true when the non-author
// retrieves the message, and never flips back.
type Message struct {
	ID          int64     `json:"id"`
	MatchID     int64     `json:"match_id"`
	SenderPetID int64     `json:"sender_pet_id"`
	Content     string    `json:"content"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}
