package model

import "time"

// Match is the materialized record of a mutual like between two pets,
// keyed by the canonical pair (PetLowID < PetHighID). At most one match
// exists per unordered pair; a match is immutable and never deleted.
type Match struct {
	ID        int64     `json:"id"`
	PetLowID  int64     `json:"pet_low_id"`
	PetHighID int64     `json:"pet_high_id"`
	CreatedAt time.Time `json:"created_at"`
}

// IsParticipant reports whether petID is one of the two matched pets.
func (m Match) IsParticipant(petID int64) bool {
	return petID > 0 && (petID == m.PetLowID || petID == m.PetHighID)
}

// OtherPet returns the participant opposite petID. The caller must have
// checked IsParticipant first.
func (m Match) OtherPet(petID int64) int64 {
	if petID == m.PetLowID {
		return m.PetHighID
	}
	return m.PetLowID
}
