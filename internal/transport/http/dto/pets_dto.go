package dto

import "time"

type CreatePetRequest struct {
	Name      string `json:"name"`
	Breed     string `json:"breed"`
	Bio       string `json:"bio"`
	BirthDate string `json:"birth_date"`
}

type PetResponse struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	Breed     string    `json:"breed"`
	Bio       string    `json:"bio"`
	BirthDate string    `json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
}

type CandidatesResponse struct {
	Items []PetResponse `json:"items"`
}
