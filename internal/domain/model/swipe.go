package model

import "time"

// Swipe is one append-only ledger entry: a directional like/pass
// judgment of one pet over another. Entries are never merged or
// overwritten; duplicates are tolerated by downstream queries.
type Swipe struct {
	ID        int64     `json:"id"`
	SwiperID  int64     `json:"swiper_pet_id"`
	SwipedID  int64     `json:"swiped_pet_id"`
	Liked     bool      `json:"liked"`
	CreatedAt time.Time `json:"created_at"`
}
