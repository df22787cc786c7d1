package handlers

import (
	"errors"
	"net/http"

	matchessvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/matches"
	petssvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/pets"
	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/transport/http/dto"
	httperrors "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/transport/http/errors"
)

type MatchesHandler struct {
	service *matchessvc.Service
	pets    *petssvc.Service
}

func NewMatchesHandler(service *matchessvc.Service, pets *petssvc.Service) *MatchesHandler {
	return &MatchesHandler{service: service, pets: pets}
}

func (h *MatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	pet, ok := actingPet(w, r, h.pets)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCH_SERVICE_UNAVAILABLE", "match service is unavailable")
		return
	}

	limit := parseIntOrDefault(r.URL.Query().Get("limit"), 100)

	items, err := h.service.List(r.Context(), pet.ID, limit)
	if err != nil {
		if errors.Is(err, matchessvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "invalid matches request")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to load matches")
		return
	}

	resp := dto.MatchesResponse{Items: make([]dto.MatchItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.MatchItemResponse{
			ID:           item.ID,
			OtherPetID:   item.OtherPetID,
			OtherPetName: item.OtherPetName,
			OtherBreed:   item.OtherBreed,
			CreatedAt:    item.CreatedAt,
		})
	}

	httperrors.Write(w, http.StatusOK, resp)
}
