package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/domain/model"
	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/domain/rules"
	pgrepo "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/repo/postgres"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrMatchNotFound  = errors.New("match not found")
	ErrNotParticipant = errors.New("pet is not a participant of the match")
)

type TooFastError struct {
	RetryAfterSec int64
}

func (e TooFastError) Error() string {
	return "too fast"
}

func (e TooFastError) RetryAfter() int64 {
	if e.RetryAfterSec <= 0 {
		return 1
	}
	return e.RetryAfterSec
}

func IsTooFast(err error) (*TooFastError, bool) {
	var tf TooFastError
	if errors.As(err, &tf) {
		return &tf, true
	}
	return nil, false
}

type MatchStore interface {
	GetByID(ctx context.Context, matchID int64) (model.Match, error)
}

type MessageStore interface {
	Insert(ctx context.Context, matchID, senderPetID int64, content string, now time.Time) (pgrepo.MessageRecord, error)
	ListByMatch(ctx context.Context, matchID int64) ([]pgrepo.MessageRecord, error)
	ListAfter(ctx context.Context, matchID, afterID int64) ([]pgrepo.MessageRecord, error)
	MarkReadFromOthers(ctx context.Context, matchID, readerPetID, afterID, upToID int64) (int64, error)
}

type RateLimiter interface {
	AllowMessage(ctx context.Context, petID int64) (int64, bool, error)
}

type Config struct {
	MaxMessageLength int
}

type Service struct {
	matchStore   MatchStore
	messageStore MessageStore
	rateLimiter  RateLimiter
	cfg          Config
	now          func() time.Time
}

type Dependencies struct {
	MatchStore   MatchStore
	MessageStore MessageStore
	RateLimiter  RateLimiter
}

// ChatMessage is a message as one participant sees it. IsMine is
// derived per viewer and never stored.
type ChatMessage struct {
	ID          int64
	MatchID     int64
	SenderPetID int64
	SenderName  string
	Content     string
	IsMine      bool
	IsRead      bool
	CreatedAt   time.Time
}

func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.MaxMessageLength <= 0 {
		cfg.MaxMessageLength = rules.DefaultMaxMessageLength
	}

	return &Service{
		matchStore:   deps.MatchStore,
		messageStore: deps.MessageStore,
		rateLimiter:  deps.RateLimiter,
		cfg:          cfg,
		now:          time.Now,
	}
}

// Send posts a message into the match channel on behalf of senderPetID.
func (s *Service) Send(ctx context.Context, matchID, senderPetID int64, content string) (ChatMessage, error) {
	if matchID <= 0 || senderPetID <= 0 {
		return ChatMessage{}, ErrValidation
	}
	if s.matchStore == nil || s.messageStore == nil {
		return ChatMessage{}, fmt.Errorf("chat dependencies are not configured")
	}

	normalized, err := rules.NormalizeContent(content, s.cfg.MaxMessageLength)
	if err != nil {
		return ChatMessage{}, fmt.Errorf("%v: %w", err, ErrValidation)
	}

	match, err := s.guardParticipant(ctx, matchID, senderPetID)
	if err != nil {
		return ChatMessage{}, err
	}

	if s.rateLimiter != nil {
		retryAfter, allowed, err := s.rateLimiter.AllowMessage(ctx, senderPetID)
		if err != nil {
			return ChatMessage{}, fmt.Errorf("check message rate: %w", err)
		}
		if !allowed {
			return ChatMessage{}, TooFastError{RetryAfterSec: retryAfter}
		}
	}

	rec, err := s.messageStore.Insert(ctx, match.ID, senderPetID, normalized, s.now().UTC())
	if err != nil {
		return ChatMessage{}, fmt.Errorf("insert message: %w", err)
	}

	return messageForViewer(rec, senderPetID), nil
}

// History returns the full conversation for one participant. Retrieval
// is the read receipt: everything the other side wrote is marked read
// before the list is built, so the payload already reflects the flip.
func (s *Service) History(ctx context.Context, matchID, viewerPetID int64) ([]ChatMessage, error) {
	if matchID <= 0 || viewerPetID <= 0 {
		return nil, ErrValidation
	}
	if s.matchStore == nil || s.messageStore == nil {
		return nil, fmt.Errorf("chat dependencies are not configured")
	}

	match, err := s.guardParticipant(ctx, matchID, viewerPetID)
	if err != nil {
		return nil, err
	}

	if _, err := s.messageStore.MarkReadFromOthers(ctx, match.ID, viewerPetID, 0, 0); err != nil {
		return nil, fmt.Errorf("mark history read: %w", err)
	}

	records, err := s.messageStore.ListByMatch(ctx, match.ID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	return messagesForViewer(records, viewerPetID), nil
}

// Poll returns messages above the viewer's high-water mark. Only the
// returned slice is marked read; history below afterID keeps whatever
// read state it already has. The list is taken first and the mark is
// bounded by its highest id, so a message that lands between the two
// steps is neither returned nor marked and surfaces on the next poll.
func (s *Service) Poll(ctx context.Context, matchID, viewerPetID, afterID int64) ([]ChatMessage, error) {
	if matchID <= 0 || viewerPetID <= 0 {
		return nil, ErrValidation
	}
	if afterID < 0 {
		afterID = 0
	}
	if s.matchStore == nil || s.messageStore == nil {
		return nil, fmt.Errorf("chat dependencies are not configured")
	}

	match, err := s.guardParticipant(ctx, matchID, viewerPetID)
	if err != nil {
		return nil, err
	}

	records, err := s.messageStore.ListAfter(ctx, match.ID, afterID)
	if err != nil {
		return nil, fmt.Errorf("list new messages: %w", err)
	}
	if len(records) == 0 {
		return []ChatMessage{}, nil
	}

	upToID := afterID
	for _, rec := range records {
		if rec.ID > upToID {
			upToID = rec.ID
		}
	}

	if _, err := s.messageStore.MarkReadFromOthers(ctx, match.ID, viewerPetID, afterID, upToID); err != nil {
		return nil, fmt.Errorf("mark polled messages read: %w", err)
	}

	// The records predate the flip, so reflect it in the payload.
	for i := range records {
		if records[i].SenderPetID != viewerPetID {
			records[i].IsRead = true
		}
	}

	return messagesForViewer(records, viewerPetID), nil
}

func (s *Service) guardParticipant(ctx context.Context, matchID, petID int64) (model.Match, error) {
	match, err := s.matchStore.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return model.Match{}, ErrMatchNotFound
		}
		return model.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !match.IsParticipant(petID) {
		return model.Match{}, ErrNotParticipant
	}
	return match, nil
}

func messagesForViewer(records []pgrepo.MessageRecord, viewerPetID int64) []ChatMessage {
	items := make([]ChatMessage, 0, len(records))
	for _, rec := range records {
		items = append(items, messageForViewer(rec, viewerPetID))
	}
	return items
}

func messageForViewer(rec pgrepo.MessageRecord, viewerPetID int64) ChatMessage {
	return ChatMessage{
		ID:          rec.ID,
		MatchID:     rec.MatchID,
		SenderPetID: rec.SenderPetID,
		SenderName:  rec.SenderName,
		Content:     rec.Content,
		IsMine:      rec.SenderPetID == viewerPetID,
		IsRead:      rec.IsRead,
		CreatedAt:   rec.CreatedAt,
	}
}
