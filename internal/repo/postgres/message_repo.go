package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

type MessageRecord struct {
	ID          int64
	MatchID     int64
	SenderPetID int64
	SenderName  string
	Content     string
	IsRead      bool
	CreatedAt   time.Time
}

// Insert persists one message. The id is a bigserial, so creation order
// and id order agree; no cross-row coordination is needed.
func (r *MessageRepo) Insert(ctx context.Context, matchID, senderPetID int64, content string, now time.Time) (MessageRecord, error) {
	if matchID <= 0 || senderPetID <= 0 || content == "" {
		return MessageRecord{}, fmt.Errorf("invalid message payload")
	}
	if r.pool == nil {
		return MessageRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var rec MessageRecord
	err := r.pool.QueryRow(ctx, `
INSERT INTO messages (
	match_id,
	sender_pet_id,
	content,
	is_read,
	created_at
) VALUES ($1, $2, $3, FALSE, $4)
RETURNING id, match_id, sender_pet_id, content, is_read, created_at
`, matchID, senderPetID, content, now.UTC()).Scan(
		&rec.ID,
		&rec.MatchID,
		&rec.SenderPetID,
		&rec.Content,
		&rec.IsRead,
		&rec.CreatedAt,
	)
	if err != nil {
		return MessageRecord{}, fmt.Errorf("insert message: %w", err)
	}

	return rec, nil
}

// ListByMatch returns the full history in ascending creation order.
func (r *MessageRepo) ListByMatch(ctx context.Context, matchID int64) ([]MessageRecord, error) {
	return r.list(ctx, matchID, 0)
}

// ListAfter returns messages with id strictly above the caller's
// high-water mark, ascending.
func (r *MessageRepo) ListAfter(ctx context.Context, matchID, afterID int64) ([]MessageRecord, error) {
	if afterID < 0 {
		afterID = 0
	}
	return r.list(ctx, matchID, afterID)
}

func (r *MessageRepo) list(ctx context.Context, matchID, afterID int64) ([]MessageRecord, error) {
	if matchID <= 0 {
		return nil, fmt.Errorf("invalid match id")
	}
	if r.pool == nil {
		return []MessageRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	msg.id,
	msg.match_id,
	msg.sender_pet_id,
	COALESCE(p.name, ''),
	msg.content,
	msg.is_read,
	msg.created_at
FROM messages msg
JOIN pets p ON p.id = msg.sender_pet_id
WHERE msg.match_id = $1 AND msg.id > $2
ORDER BY msg.created_at ASC, msg.id ASC
`, matchID, afterID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	items := make([]MessageRecord, 0, 32)
	for rows.Next() {
		var rec MessageRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.MatchID,
			&rec.SenderPetID,
			&rec.SenderName,
			&rec.Content,
			&rec.IsRead,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		items = append(items, rec)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate messages: %w", rows.Err())
	}

	return items, nil
}

// MarkReadFromOthers flips is_read on messages in the match that were
// not authored by readerPetID and sit in (afterID, upToID]. Pass 0 for
// afterID to start from the beginning and 0 for upToID to leave the
// range open-ended. Already-read rows are untouched, so redundant
// polls are safe.
func (r *MessageRepo) MarkReadFromOthers(ctx context.Context, matchID, readerPetID, afterID, upToID int64) (int64, error) {
	if matchID <= 0 || readerPetID <= 0 {
		return 0, fmt.Errorf("invalid read-mark payload")
	}
	if afterID < 0 {
		afterID = 0
	}
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
UPDATE messages
SET is_read = TRUE
WHERE
	match_id = $1
	AND sender_pet_id <> $2
	AND id > $3
	AND ($4::bigint = 0 OR id <= $4)
	AND is_read = FALSE
`, matchID, readerPetID, afterID, upToID)
	if err != nil {
		return 0, fmt.Errorf("mark messages read: %w", err)
	}

	return result.RowsAffected(), nil
}
