package dto

import "time"

type MatchItemResponse struct {
	ID           int64     `json:"id"`
	OtherPetID   int64     `json:"other_pet_id"`
	OtherPetName string    `json:"other_pet_name"`
	OtherBreed   string    `json:"other_breed"`
	CreatedAt    time.Time `json:"created_at"`
}

type MatchesResponse struct {
	Items []MatchItemResponse `json:"items"`
}
