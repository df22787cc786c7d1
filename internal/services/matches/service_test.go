package matches

import (
	"context"
	"errors"
	"testing"
	"time"

	pgrepo "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/repo/postgres"
)

type matchStoreStub struct {
	rows      []pgrepo.MatchListRecord
	err       error
	lastPetID int64
}

func (s *matchStoreStub) ListForPet(_ context.Context, petID int64, _ int) ([]pgrepo.MatchListRecord, error) {
	s.lastPetID = petID
	return s.rows, s.err
}

func TestListValidatesPetID(t *testing.T) {
	svc := NewService(&matchStoreStub{})

	if _, err := svc.List(context.Background(), 0, 10); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestListMapsRecords(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := &matchStoreStub{
		rows: []pgrepo.MatchListRecord{
			{MatchID: 11, OtherPetID: 3, OtherPetName: "Mel", OtherBreed: "poodle", CreatedAt: created},
			{MatchID: 10, OtherPetID: 8, OtherPetName: "Thor", OtherBreed: "husky", CreatedAt: created.Add(-time.Hour)},
		},
	}
	svc := NewService(store)

	items, err := svc.List(context.Background(), 1, 50)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if store.lastPetID != 1 {
		t.Fatalf("unexpected pet id passed to store: %d", store.lastPetID)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != 11 || items[0].OtherPetName != "Mel" || !items[0].CreatedAt.Equal(created) {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
}

func TestListEmptyIsNotAnError(t *testing.T) {
	svc := NewService(&matchStoreStub{})

	items, err := svc.List(context.Background(), 1, 50)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty list, got %+v", items)
	}
}
