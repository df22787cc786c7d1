package swipes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/domain/model"
	pgrepo "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/repo/postgres"
)

var ErrValidation = errors.New("validation error")

type SwipeStore interface {
	Create(ctx context.Context, tx pgx.Tx, swiperID, swipedID int64, liked bool, now time.Time) (pgrepo.SwipeRecord, error)
}

type MatchStore interface {
	EnsureForMutualLike(ctx context.Context, tx pgx.Tx, swiperID, swipedID int64) (bool, error)
}

type CandidateStore interface {
	ListCandidates(ctx context.Context, petID int64, limit int) ([]pgrepo.PetRecord, error)
}

type SwipeResult struct {
	SwipeID      int64
	Liked        bool
	MatchCreated bool
}

type Service struct {
	db         pgrepo.TxBeginner
	swipeStore SwipeStore
	matchStore MatchStore
	candidates CandidateStore
	feedLimit  int
	now        func() time.Time
}

type Dependencies struct {
	DB         pgrepo.TxBeginner
	SwipeStore SwipeStore
	MatchStore MatchStore
	Candidates CandidateStore
}

func NewService(deps Dependencies, feedLimit int) *Service {
	if feedLimit <= 0 {
		feedLimit = 50
	}

	return &Service{
		db:         deps.DB,
		swipeStore: deps.SwipeStore,
		matchStore: deps.MatchStore,
		candidates: deps.Candidates,
		feedLimit:  feedLimit,
		now:        time.Now,
	}
}

// Swipe appends one verdict to the ledger and, for a like, checks
// whether the target already liked back. Both steps share one
// transaction; the match store serializes concurrent reciprocal swipes
// on the canonical pair so the later of two racing checks always sees
// the earlier like.
func (s *Service) Swipe(ctx context.Context, swiperPetID, targetPetID int64, liked bool) (SwipeResult, error) {
	if swiperPetID <= 0 || targetPetID <= 0 || swiperPetID == targetPetID {
		return SwipeResult{}, ErrValidation
	}
	if s.db == nil || s.swipeStore == nil || s.matchStore == nil {
		return SwipeResult{}, fmt.Errorf("swipe dependencies are not configured")
	}

	now := s.now().UTC()

	var result SwipeResult
	err := pgrepo.WithTx(ctx, s.db, func(ctx context.Context, tx pgx.Tx) error {
		rec, err := s.swipeStore.Create(ctx, tx, swiperPetID, targetPetID, liked, now)
		if err != nil {
			return fmt.Errorf("record swipe: %w", err)
		}
		result.SwipeID = rec.ID
		result.Liked = rec.Liked

		if !liked {
			return nil
		}

		matched, err := s.matchStore.EnsureForMutualLike(ctx, tx, swiperPetID, targetPetID)
		if err != nil {
			return fmt.Errorf("ensure mutual match: %w", err)
		}
		result.MatchCreated = matched

		return nil
	})
	if err != nil {
		return SwipeResult{}, err
	}

	return result, nil
}

// Candidates returns swipeable profiles for the pet: never itself,
// never a littermate of the same owner, never a pet already swiped.
func (s *Service) Candidates(ctx context.Context, petID int64, limit int) ([]model.Pet, error) {
	if petID <= 0 {
		return nil, ErrValidation
	}
	if s.candidates == nil {
		return nil, fmt.Errorf("candidate store is not configured")
	}
	if limit <= 0 || limit > s.feedLimit {
		limit = s.feedLimit
	}

	records, err := s.candidates.ListCandidates(ctx, petID, limit)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	items := make([]model.Pet, 0, len(records))
	for _, rec := range records {
		items = append(items, model.Pet{
			ID:        rec.ID,
			OwnerID:   rec.OwnerID,
			Name:      rec.Name,
			Breed:     rec.Breed,
			Bio:       rec.Bio,
			BirthDate: rec.BirthDate,
			CreatedAt: rec.CreatedAt,
		})
	}

	return items, nil
}
