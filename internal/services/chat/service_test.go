package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/domain/model"
	pgrepo "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/repo/postgres"
)

type matchStoreStub struct {
	matches map[int64]model.Match
}

func (s *matchStoreStub) GetByID(_ context.Context, matchID int64) (model.Match, error) {
	match, ok := s.matches[matchID]
	if !ok {
		return model.Match{}, pgrepo.ErrMatchNotFound
	}
	return match, nil
}

type messageStoreStub struct {
	records     []pgrepo.MessageRecord
	names       map[int64]string
	nextID      int64
	afterListed func()
}

func (s *messageStoreStub) Insert(_ context.Context, matchID, senderPetID int64, content string, now time.Time) (pgrepo.MessageRecord, error) {
	s.nextID++
	rec := pgrepo.MessageRecord{
		ID:          s.nextID,
		MatchID:     matchID,
		SenderPetID: senderPetID,
		SenderName:  s.names[senderPetID],
		Content:     content,
		IsRead:      false,
		CreatedAt:   now,
	}
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *messageStoreStub) ListByMatch(_ context.Context, matchID int64) ([]pgrepo.MessageRecord, error) {
	return s.listAfter(matchID, 0), nil
}

func (s *messageStoreStub) ListAfter(_ context.Context, matchID, afterID int64) ([]pgrepo.MessageRecord, error) {
	out := s.listAfter(matchID, afterID)
	if s.afterListed != nil {
		s.afterListed()
	}
	return out, nil
}

func (s *messageStoreStub) MarkReadFromOthers(_ context.Context, matchID, readerPetID, afterID, upToID int64) (int64, error) {
	var flipped int64
	for i := range s.records {
		rec := &s.records[i]
		if rec.MatchID != matchID || rec.SenderPetID == readerPetID || rec.ID <= afterID || rec.IsRead {
			continue
		}
		if upToID > 0 && rec.ID > upToID {
			continue
		}
		rec.IsRead = true
		flipped++
	}
	return flipped, nil
}

func (s *messageStoreStub) listAfter(matchID, afterID int64) []pgrepo.MessageRecord {
	out := make([]pgrepo.MessageRecord, 0, len(s.records))
	for _, rec := range s.records {
		if rec.MatchID == matchID && rec.ID > afterID {
			out = append(out, rec)
		}
	}
	return out
}

type rateLimiterStub struct {
	allowed    bool
	retryAfter int64
}

func (s rateLimiterStub) AllowMessage(context.Context, int64) (int64, bool, error) {
	if s.allowed {
		return 0, true, nil
	}
	return s.retryAfter, false, nil
}

func newTestService(messages *messageStoreStub) *Service {
	return NewService(Dependencies{
		MatchStore: &matchStoreStub{
			matches: map[int64]model.Match{
				10: {ID: 10, PetLowID: 1, PetHighID: 2},
			},
		},
		MessageStore: messages,
		RateLimiter:  rateLimiterStub{allowed: true},
	}, Config{MaxMessageLength: 200})
}

func TestSendTrimsAndEchoesIsMine(t *testing.T) {
	messages := &messageStoreStub{names: map[int64]string{1: "Rex", 2: "Mel"}}
	svc := newTestService(messages)

	msg, err := svc.Send(context.Background(), 10, 1, "  au au  ")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.Content != "au au" {
		t.Fatalf("expected trimmed content, got %q", msg.Content)
	}
	if !msg.IsMine {
		t.Fatalf("sender must see the echoed message as its own")
	}
	if msg.IsRead {
		t.Fatalf("fresh message must start unread")
	}
	if msg.SenderName != "Rex" {
		t.Fatalf("unexpected sender name: %q", msg.SenderName)
	}
}

func TestSendRejectsEmptyAndOversizedContent(t *testing.T) {
	svc := newTestService(&messageStoreStub{})

	if _, err := svc.Send(context.Background(), 10, 1, "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for blank content, got %v", err)
	}
	if _, err := svc.Send(context.Background(), 10, 1, strings.Repeat("a", 201)); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for oversized content, got %v", err)
	}
}

func TestSendRejectsNonParticipant(t *testing.T) {
	svc := newTestService(&messageStoreStub{})

	if _, err := svc.Send(context.Background(), 10, 99, "oi"); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestSendUnknownMatch(t *testing.T) {
	svc := newTestService(&messageStoreStub{})

	if _, err := svc.Send(context.Background(), 404, 1, "oi"); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestSendRateLimited(t *testing.T) {
	svc := NewService(Dependencies{
		MatchStore: &matchStoreStub{
			matches: map[int64]model.Match{10: {ID: 10, PetLowID: 1, PetHighID: 2}},
		},
		MessageStore: &messageStoreStub{},
		RateLimiter:  rateLimiterStub{allowed: false, retryAfter: 7},
	}, Config{})

	_, err := svc.Send(context.Background(), 10, 1, "oi")
	tooFast, ok := IsTooFast(err)
	if !ok {
		t.Fatalf("expected TooFastError, got %v", err)
	}
	if tooFast.RetryAfter() != 7 {
		t.Fatalf("unexpected retry_after: %d", tooFast.RetryAfter())
	}
}

func TestHistoryMarksOtherSideReadBeforeListing(t *testing.T) {
	messages := &messageStoreStub{names: map[int64]string{1: "Rex", 2: "Mel"}}
	svc := newTestService(messages)
	ctx := context.Background()

	if _, err := svc.Send(ctx, 10, 1, "oi"); err != nil {
		t.Fatalf("send from pet 1: %v", err)
	}
	if _, err := svc.Send(ctx, 10, 2, "oi de volta"); err != nil {
		t.Fatalf("send from pet 2: %v", err)
	}

	history, err := svc.History(ctx, 10, 1)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history))
	}

	// Pet 2's message was retrieved by pet 1, so it comes back read.
	// Pet 1's own message stays unread until pet 2 retrieves it.
	if history[0].SenderPetID != 1 || history[0].IsRead {
		t.Fatalf("own message must stay unread: %+v", history[0])
	}
	if history[1].SenderPetID != 2 || !history[1].IsRead {
		t.Fatalf("other side's message must come back read: %+v", history[1])
	}
	if history[0].IsMine == history[1].IsMine {
		t.Fatalf("is_mine must split by sender: %+v", history)
	}
}

func TestPollReturnsOnlyNewMessagesAndMarksThemRead(t *testing.T) {
	messages := &messageStoreStub{names: map[int64]string{1: "Rex", 2: "Mel"}}
	svc := newTestService(messages)
	ctx := context.Background()

	first, err := svc.Send(ctx, 10, 2, "primeira")
	if err != nil {
		t.Fatalf("send first: %v", err)
	}
	if _, err := svc.Send(ctx, 10, 2, "segunda"); err != nil {
		t.Fatalf("send second: %v", err)
	}

	fresh, err := svc.Poll(ctx, 10, 1, first.ID)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(fresh) != 1 {
		t.Fatalf("expected only messages above the mark, got %d", len(fresh))
	}
	if fresh[0].Content != "segunda" || !fresh[0].IsRead || fresh[0].IsMine {
		t.Fatalf("unexpected polled message: %+v", fresh[0])
	}

	// The message below the mark must keep its unread state.
	if messages.records[0].IsRead {
		t.Fatalf("poll must not touch messages at or below the mark")
	}
}

func TestPollLeavesMessagesArrivingMidPollForTheNextPoll(t *testing.T) {
	messages := &messageStoreStub{names: map[int64]string{1: "Rex", 2: "Mel"}}
	svc := newTestService(messages)
	ctx := context.Background()

	if _, err := svc.Send(ctx, 10, 2, "primeira"); err != nil {
		t.Fatalf("send: %v", err)
	}

	// A message lands after the poll takes its snapshot but before the
	// read-mark runs.
	messages.afterListed = func() {
		messages.afterListed = nil
		if _, err := svc.Send(ctx, 10, 2, "atrasada"); err != nil {
			t.Fatalf("send mid-poll: %v", err)
		}
	}

	fresh, err := svc.Poll(ctx, 10, 1, 0)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if len(fresh) != 1 || fresh[0].Content != "primeira" {
		t.Fatalf("poll must return only the snapshot, got %+v", fresh)
	}

	// The late message stays unread so the next poll still surfaces it.
	if messages.records[1].IsRead {
		t.Fatalf("mid-poll message must not be marked read")
	}

	next, err := svc.Poll(ctx, 10, 1, fresh[0].ID)
	if err != nil {
		t.Fatalf("second poll: %v", err)
	}
	if len(next) != 1 || next[0].Content != "atrasada" || !next[0].IsRead {
		t.Fatalf("next poll must deliver and mark the late message, got %+v", next)
	}
}

func TestPollRejectsNonParticipant(t *testing.T) {
	svc := newTestService(&messageStoreStub{})

	if _, err := svc.Poll(context.Background(), 10, 99, 0); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}
