package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	chatsvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/chat"
	petssvc "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/services/pets"
	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/transport/http/dto"
	httperrors "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/transport/http/errors"
)

type ChatHandler struct {
	service *chatsvc.Service
	pets    *petssvc.Service
}

func NewChatHandler(service *chatsvc.Service, pets *petssvc.Service) *ChatHandler {
	return &ChatHandler{service: service, pets: pets}
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	pet, ok := actingPet(w, r, h.pets)
	if !ok {
		return
	}
	matchID, ok := matchIDFromURL(w, r)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "CHAT_SERVICE_UNAVAILABLE", "chat service is unavailable")
		return
	}

	var req dto.SendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	msg, err := h.service.Send(r.Context(), matchID, pet.ID, req.Content)
	if err != nil {
		handleChatError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, messageToDTO(msg))
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	pet, ok := actingPet(w, r, h.pets)
	if !ok {
		return
	}
	matchID, ok := matchIDFromURL(w, r)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "CHAT_SERVICE_UNAVAILABLE", "chat service is unavailable")
		return
	}

	items, err := h.service.History(r.Context(), matchID, pet.ID)
	if err != nil {
		handleChatError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, messagesToDTO(items))
}

func (h *ChatHandler) Poll(w http.ResponseWriter, r *http.Request) {
	pet, ok := actingPet(w, r, h.pets)
	if !ok {
		return
	}
	matchID, ok := matchIDFromURL(w, r)
	if !ok {
		return
	}
	if h.service == nil {
		writeInternal(w, "CHAT_SERVICE_UNAVAILABLE", "chat service is unavailable")
		return
	}

	afterID := int64(0)
	if raw := r.URL.Query().Get("last_message_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			writeBadRequest(w, "VALIDATION_ERROR", "last_message_id must be a non-negative integer")
			return
		}
		afterID = parsed
	}

	items, err := h.service.Poll(r.Context(), matchID, pet.ID, afterID)
	if err != nil {
		handleChatError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, messagesToDTO(items))
}

func handleChatError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chatsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid chat request")
	case errors.Is(err, chatsvc.ErrMatchNotFound):
		writeNotFound(w, "NOT_FOUND", "match not found")
	case errors.Is(err, chatsvc.ErrNotParticipant):
		writeForbidden(w, "FORBIDDEN", "pet is not a participant of this match")
	default:
		if tf, ok := chatsvc.IsTooFast(err); ok {
			httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
				Code:          "TOO_FAST",
				Message:       "too many messages, slow down",
				RetryAfterSec: tf.RetryAfter(),
			})
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to process chat request")
	}
}

func matchIDFromURL(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	matchID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || matchID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "match id must be a positive integer")
		return 0, false
	}
	return matchID, true
}

func messagesToDTO(items []chatsvc.ChatMessage) dto.MessagesResponse {
	resp := dto.MessagesResponse{Items: make([]dto.MessageResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, messageToDTO(item))
	}
	return resp
}

func messageToDTO(msg chatsvc.ChatMessage) dto.MessageResponse {
	return dto.MessageResponse{
		ID:          msg.ID,
		MatchID:     msg.MatchID,
		SenderPetID: msg.SenderPetID,
		SenderName:  msg.SenderName,
		Content:     msg.Content,
		IsMine:      msg.IsMine,
		IsRead:      msg.IsRead,
		CreatedAt:   msg.CreatedAt,
	}
}
