package model

import (
	"time"

	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/domain/enums"
)

type PetPhoto struct {
	ID          int64           `json:"id"`
	PetID       int64           `json:"pet_id"`
	Kind        enums.MediaKind `json:"kind"`
	ObjectKey   string          `json:"object_key"`
	ContentType string          `json:"content_type"`
	CreatedAt   time.Time       `json:"created_at"`
}
