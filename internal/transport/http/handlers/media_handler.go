package handlers

import (
	"errors"
	"fmt"
	"net/http"

	mediasvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/media"
	petssvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/pets"
	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/transport/http/dto"
	httperrors "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/transport/http/errors"
)

const maxPhotoUploadSize = 20 << 20 // 20 MiB

type MediaHandler struct {
	service *mediasvc.Service
	pets    *petssvc.Service
}

func NewMediaHandler(service *mediasvc.Service, pets *petssvc.Service) *MediaHandler {
	return &MediaHandler{service: service, pets: pets}
}

func (h *MediaHandler) PhotoUpload(w http.ResponseWriter, r *http.Request) {
	pet, ok := actingPet(w, r, h.pets)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoUploadSize)
	if err := r.ParseMultipartForm(maxPhotoUploadSize); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "file is required")
		return
	}
	defer file.Close()

	if header == nil || header.Size <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "file is empty")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	photo, err := h.service.UploadPhoto(r.Context(), pet.ID, header.Filename, contentType, file, header.Size)
	if err != nil {
		handleMediaError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.PhotoResponse{
		ID:        photo.ID,
		PetID:     photo.PetID,
		URL:       photo.URL,
		CreatedAt: photo.CreatedAt,
	})
}

func (h *MediaHandler) PhotosList(w http.ResponseWriter, r *http.Request) {
	pet, ok := actingPet(w, r, h.pets)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "MEDIA_SERVICE_UNAVAILABLE", "media service is unavailable")
		return
	}

	photos, err := h.service.ListPhotos(r.Context(), pet.ID)
	if err != nil {
		handleMediaError(w, err)
		return
	}

	items := make([]dto.PhotoResponse, 0, len(photos))
	for _, photo := range photos {
		items = append(items, dto.PhotoResponse{
			ID:        photo.ID,
			PetID:     photo.PetID,
			URL:       photo.URL,
			CreatedAt: photo.CreatedAt,
		})
	}

	httperrors.Write(w, http.StatusOK, dto.PhotosResponse{Items: items})
}

func handleMediaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, mediasvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid media request")
	case errors.Is(err, mediasvc.ErrPhotoLimitReached):
		httperrors.Write(w, http.StatusConflict, httperrors.APIError{
			Code:    "PHOTO_LIMIT_REACHED",
			Message: fmt.Sprintf("maximum %d photos allowed per pet", mediasvc.MaxPhotosPerPet()),
		})
	default:
		writeInternal(w, "INTERNAL_ERROR", "media operation failed")
	}
}
