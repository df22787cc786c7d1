package handlers

import (
	"errors"
	"net/http"

	petssvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/pets"
	swipesvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/swipes"
	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/transport/http/dto"
	httperrors "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/transport/http/errors"
)

type SwipeHandler struct {
	service *swipesvc.Service
	pets    *petssvc.Service
}

func NewSwipeHandler(service *swipesvc.Service, pets *petssvc.Service) *SwipeHandler {
	return &SwipeHandler{service: service, pets: pets}
}

func (h *SwipeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	pet, ok := actingPet(w, r, h.pets)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "SWIPE_SERVICE_UNAVAILABLE", "swipe service is unavailable")
		return
	}

	var req dto.SwipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.TargetPetID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "target_pet_id is required")
		return
	}

	result, err := h.service.Swipe(r.Context(), pet.ID, req.TargetPetID, req.Liked)
	if err != nil {
		if errors.Is(err, swipesvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "invalid swipe request")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to process swipe")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.SwipeResponse{
		OK:           true,
		MatchCreated: result.MatchCreated,
	})
}
