package matches

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgrepo "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/repo/postgres"
)

var ErrValidation = errors.New("validation error")

type MatchStore interface {
	ListForPet(ctx context.Context, petID int64, limit int) ([]pgrepo.MatchListRecord, error)
}

type Service struct {
	matchStore MatchStore
}

type MatchItem struct {
	ID           int64
	OtherPetID   int64
	OtherPetName string
	OtherBreed   string
	CreatedAt    time.Time
}

func NewService(matchStore MatchStore) *Service {
	return &Service{matchStore: matchStore}
}

func (s *Service) List(ctx context.Context, petID int64, limit int) ([]MatchItem, error) {
	if petID <= 0 {
		return nil, ErrValidation
	}
	if s.matchStore == nil {
		return nil, fmt.Errorf("match store is nil")
	}

	rows, err := s.matchStore.ListForPet(ctx, petID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]MatchItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, MatchItem{
			ID:           row.MatchID,
			OtherPetID:   row.OtherPetID,
			OtherPetName: row.OtherPetName,
			OtherBreed:   row.OtherBreed,
			CreatedAt:    row.CreatedAt,
		})
	}
	return items, nil
}
