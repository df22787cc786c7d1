package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	pgrepo "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/repo/postgres"
	petssvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/pets"
	swipesvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/swipes"
)

type handlerTx struct {
	pgx.Tx
}

func (t handlerTx) Commit(context.Context) error   { return nil }
func (t handlerTx) Rollback(context.Context) error { return nil }

type handlerTxBeginner struct{}

func (handlerTxBeginner) BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error) {
	return handlerTx{}, nil
}

type handlerSwipeStoreStub struct {
	nextID int64
}

func (s *handlerSwipeStoreStub) Create(_ context.Context, _ pgx.Tx, swiperID, swipedID int64, liked bool, now time.Time) (pgrepo.SwipeRecord, error) {
	s.nextID++
	return pgrepo.SwipeRecord{ID: s.nextID, SwiperID: swiperID, SwipedID: swipedID, Liked: liked, CreatedAt: now}, nil
}

type handlerMatchStoreStub struct {
	mutual bool
}

func (s handlerMatchStoreStub) EnsureForMutualLike(context.Context, pgx.Tx, int64, int64) (bool, error) {
	return s.mutual, nil
}

type handlerCandidateStoreStub struct{}

func (handlerCandidateStoreStub) ListCandidates(context.Context, int64, int) ([]pgrepo.PetRecord, error) {
	return []pgrepo.PetRecord{}, nil
}

func newSwipeTestRouter(mutual bool) http.Handler {
	swipeService := swipesvc.NewService(swipesvc.Dependencies{
		DB:         handlerTxBeginner{},
		SwipeStore: &handlerSwipeStoreStub{},
		MatchStore: handlerMatchStoreStub{mutual: mutual},
		Candidates: handlerCandidateStoreStub{},
	}, 50)

	petService := petssvc.NewService(handlerPetStoreStub{
		petsByOwner: map[int64]pgrepo.PetRecord{
			101: {ID: 1, OwnerID: 101, Name: "Rex"},
		},
	})

	h := NewSwipeHandler(swipeService, petService)

	r := chi.NewRouter()
	r.Post("/swipe", h.Handle)
	return r
}

func TestSwipeHandlerReportsMatch(t *testing.T) {
	router := newSwipeTestRouter(true)

	rr := doChatRequest(t, router, http.MethodPost, "/swipe", 101, map[string]any{
		"target_pet_id": 2,
		"liked":         true,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rr.Code, rr.Body.String())
	}

	var payload struct {
		OK           bool `json:"ok"`
		MatchCreated bool `json:"match_created"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.OK || !payload.MatchCreated {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestSwipeHandlerValidatesTarget(t *testing.T) {
	router := newSwipeTestRouter(false)

	rr := doChatRequest(t, router, http.MethodPost, "/swipe", 101, map[string]any{
		"target_pet_id": 0,
		"liked":         true,
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestSwipeHandlerRejectsSelfSwipe(t *testing.T) {
	router := newSwipeTestRouter(false)

	rr := doChatRequest(t, router, http.MethodPost, "/swipe", 101, map[string]any{
		"target_pet_id": 1,
		"liked":         true,
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestSwipeHandlerRequiresAuth(t *testing.T) {
	router := newSwipeTestRouter(false)

	rr := doChatRequest(t, router, http.MethodPost, "/swipe", 0, map[string]any{
		"target_pet_id": 2,
		"liked":         true,
	})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}
