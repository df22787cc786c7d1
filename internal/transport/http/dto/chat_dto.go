package dto

import "time"

type SendMessageRequest struct {
	Content string `json:"content"`
}

type MessageResponse struct {
	ID          int64     `json:"id"`
	MatchID     int64     `json:"match_id"`
	SenderPetID int64     `json:"sender_pet_id"`
	SenderName  string    `json:"sender_name"`
	Content     string    `json:"content"`
	IsMine      bool      `json:"is_mine"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

type MessagesResponse struct {
	Items []MessageResponse `json:"items"`
}
