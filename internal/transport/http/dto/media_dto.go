package dto

import "time"

type PhotoResponse struct {
	ID        int64     `json:"id"`
	PetID     int64     `json:"pet_id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

type PhotosResponse struct {
	Items []PhotoResponse `json:"items"`
}
