package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/domain/model"
	authsvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/auth"
	petssvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/pets"
	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/transport/http/dto"
	httperrors "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/transport/http/errors"
)

const birthDateLayout = "2006-01-02"

type PetsHandler struct {
	service *petssvc.Service
}

func NewPetsHandler(service *petssvc.Service) *PetsHandler {
	return &PetsHandler{service: service}
}

func (h *PetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PET_SERVICE_UNAVAILABLE", "pet service is unavailable")
		return
	}

	var req dto.CreatePetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	var birthDate time.Time
	if strings.TrimSpace(req.BirthDate) != "" {
		parsed, err := time.Parse(birthDateLayout, req.BirthDate)
		if err != nil {
			writeBadRequest(w, "VALIDATION_ERROR", "birth_date must be YYYY-MM-DD")
			return
		}
		birthDate = parsed
	}

	pet, err := h.service.Create(r.Context(), identity.OwnerID, petssvc.CreateInput{
		Name:      req.Name,
		Breed:     req.Breed,
		Bio:       req.Bio,
		BirthDate: birthDate,
	})
	if err != nil {
		if errors.Is(err, petssvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "invalid pet profile")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to create pet")
		return
	}

	httperrors.Write(w, http.StatusCreated, petToDTO(pet))
}

func (h *PetsHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "PET_SERVICE_UNAVAILABLE", "pet service is unavailable")
		return
	}

	pet, err := h.service.ResolveForOwner(r.Context(), identity.OwnerID)
	if err != nil {
		if errors.Is(err, petssvc.ErrNoPet) {
			writeNotFound(w, "NOT_FOUND", "no pet profile for this account")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to resolve pet")
		return
	}

	httperrors.Write(w, http.StatusOK, petToDTO(pet))
}

// actingPet resolves the pet profile the authenticated owner acts as.
// On failure the response is already written.
func actingPet(w http.ResponseWriter, r *http.Request, pets *petssvc.Service) (model.Pet, bool) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return model.Pet{}, false
	}
	if pets == nil {
		writeInternal(w, "PET_SERVICE_UNAVAILABLE", "pet service is unavailable")
		return model.Pet{}, false
	}

	pet, err := pets.ResolveForOwner(r.Context(), identity.OwnerID)
	if err != nil {
		if errors.Is(err, petssvc.ErrNoPet) {
			writeBadRequest(w, "VALIDATION_ERROR", "account has no pet profile")
			return model.Pet{}, false
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to resolve pet")
		return model.Pet{}, false
	}

	return pet, true
}

func petToDTO(pet model.Pet) dto.PetResponse {
	birthDate := ""
	if !pet.BirthDate.IsZero() {
		birthDate = pet.BirthDate.Format(birthDateLayout)
	}

	return dto.PetResponse{
		ID:        pet.ID,
		OwnerID:   pet.OwnerID,
		Name:      pet.Name,
		Breed:     pet.Breed,
		Bio:       pet.Bio,
		BirthDate: birthDate,
		CreatedAt: pet.CreatedAt,
	}
}
