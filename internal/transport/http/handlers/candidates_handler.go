package handlers

import (
	"errors"
	"net/http"
	"strconv"

	petssvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/pets"
	swipesvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/swipes"
	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/transport/http/dto"
	httperrors "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/transport/http/errors"
)

type CandidatesHandler struct {
	service *swipesvc.Service
	pets    *petssvc.Service
}

func NewCandidatesHandler(service *swipesvc.Service, pets *petssvc.Service) *CandidatesHandler {
	return &CandidatesHandler{service: service, pets: pets}
}

func (h *CandidatesHandler) Handle(w http.ResponseWriter, r *http.Request) {
	pet, ok := actingPet(w, r, h.pets)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "SWIPE_SERVICE_UNAVAILABLE", "swipe service is unavailable")
		return
	}

	limit := parseIntOrDefault(r.URL.Query().Get("limit"), 0)

	items, err := h.service.Candidates(r.Context(), pet.ID, limit)
	if err != nil {
		if errors.Is(err, swipesvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "invalid candidates request")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to load candidates")
		return
	}

	resp := dto.CandidatesResponse{Items: make([]dto.PetResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, petToDTO(item))
	}

	httperrors.Write(w, http.StatusOK, resp)
}

func parseIntOrDefault(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
