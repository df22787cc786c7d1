package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/domain/model"
	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/pkg/validate"
	pgrepo "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/repo/postgres"
)

var (
	ErrValidation  = errors.New("validation error")
	ErrPetNotFound = errors.New("pet not found")
	ErrNoPet       = errors.New("owner has no pet profile")
)

const (
	maxNameLength  = 100
	maxBreedLength = 100
	maxBioLength   = 1000
)

type PetStore interface {
	Create(ctx context.Context, ownerID int64, name, breed, bio string, birthDate time.Time) (pgrepo.PetRecord, error)
	GetByID(ctx context.Context, petID int64) (pgrepo.PetRecord, error)
	GetFirstByOwner(ctx context.Context, ownerID int64) (pgrepo.PetRecord, error)
}

type Service struct {
	store PetStore
	now   func() time.Time
}

type CreateInput struct {
	Name      string
	Breed     string
	Bio       string
	BirthDate time.Time
}

func NewService(store PetStore) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

func (s *Service) Create(ctx context.Context, ownerID int64, in CreateInput) (model.Pet, error) {
	if ownerID <= 0 {
		return model.Pet{}, fmt.Errorf("invalid owner id: %w", ErrValidation)
	}
	if s.store == nil {
		return model.Pet{}, fmt.Errorf("pet store is nil")
	}

	if !validate.Required(in.Name) {
		return model.Pet{}, fmt.Errorf("name is required: %w", ErrValidation)
	}
	name := strings.TrimSpace(in.Name)
	breed := strings.TrimSpace(in.Breed)
	bio := strings.TrimSpace(in.Bio)
	if len(name) > maxNameLength || len(breed) > maxBreedLength || len(bio) > maxBioLength {
		return model.Pet{}, fmt.Errorf("field too long: %w", ErrValidation)
	}
	if !in.BirthDate.IsZero() && in.BirthDate.After(s.now()) {
		return model.Pet{}, fmt.Errorf("birth date is in the future: %w", ErrValidation)
	}

	rec, err := s.store.Create(ctx, ownerID, name, breed, bio, in.BirthDate)
	if err != nil {
		return model.Pet{}, fmt.Errorf("create pet: %w", err)
	}

	return petFromRecord(rec), nil
}

func (s *Service) Get(ctx context.Context, petID int64) (model.Pet, error) {
	if petID <= 0 {
		return model.Pet{}, fmt.Errorf("invalid pet id: %w", ErrValidation)
	}
	if s.store == nil {
		return model.Pet{}, fmt.Errorf("pet store is nil")
	}

	rec, err := s.store.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrPetNotFound) {
			return model.Pet{}, ErrPetNotFound
		}
		return model.Pet{}, fmt.Errorf("get pet: %w", err)
	}

	return petFromRecord(rec), nil
}

// ResolveForOwner picks the profile an authenticated owner acts as.
func (s *Service) ResolveForOwner(ctx context.Context, ownerID int64) (model.Pet, error) {
	if ownerID <= 0 {
		return model.Pet{}, fmt.Errorf("invalid owner id: %w", ErrValidation)
	}
	if s.store == nil {
		return model.Pet{}, fmt.Errorf("pet store is nil")
	}

	rec, err := s.store.GetFirstByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrPetNotFound) {
			return model.Pet{}, ErrNoPet
		}
		return model.Pet{}, fmt.Errorf("resolve pet for owner: %w", err)
	}

	return petFromRecord(rec), nil
}

func petFromRecord(rec pgrepo.PetRecord) model.Pet {
	return model.Pet{
		ID:        rec.ID,
		OwnerID:   rec.OwnerID,
		Name:      rec.Name,
		Breed:     rec.Breed,
		Bio:       rec.Bio,
		BirthDate: rec.BirthDate,
		CreatedAt: rec.CreatedAt,
	}
}
