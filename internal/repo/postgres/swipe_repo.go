package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SwipeRepo struct {
	pool *pgxpool.Pool
}

func NewSwipeRepo(pool *pgxpool.Pool) *SwipeRepo {
	return &SwipeRepo{pool: pool}
}

type SwipeRecord struct {
	ID        int64
	SwiperID  int64
	SwipedID  int64
	Liked     bool
	CreatedAt time.Time
}

// Create appends one ledger entry. Prior entries for the same pair are
// never merged or overwritten; a re-submission simply adds a row.
func (r *SwipeRepo) Create(ctx context.Context, tx pgx.Tx, swiperID, swipedID int64, liked bool, now time.Time) (SwipeRecord, error) {
	if swiperID <= 0 || swipedID <= 0 || swiperID == swipedID {
		return SwipeRecord{}, fmt.Errorf("invalid swipe payload")
	}
	if tx == nil {
		return SwipeRecord{}, fmt.Errorf("transaction is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var rec SwipeRecord
	err := tx.QueryRow(ctx, `
INSERT INTO swipes (
	swiper_pet_id,
	swiped_pet_id,
	liked,
	created_at
) VALUES ($1, $2, $3, $4)
RETURNING id, swiper_pet_id, swiped_pet_id, liked, created_at
`, swiperID, swipedID, liked, now.UTC()).Scan(
		&rec.ID,
		&rec.SwiperID,
		&rec.SwipedID,
		&rec.Liked,
		&rec.CreatedAt,
	)
	if err != nil {
		return SwipeRecord{}, fmt.Errorf("create swipe: %w", err)
	}

	return rec, nil
}

// DeleteExactDuplicates removes ledger rows that repeat an earlier row
// with the same swiper, swiped and liked value, keeping the earliest.
// Existence and reciprocity queries are unaffected by the compaction.
func (r *SwipeRepo) DeleteExactDuplicates(ctx context.Context) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
DELETE FROM swipes s
USING swipes keep
WHERE
	keep.swiper_pet_id = s.swiper_pet_id
	AND keep.swiped_pet_id = s.swiped_pet_id
	AND keep.liked = s.liked
	AND keep.id < s.id
`)
	if err != nil {
		return 0, fmt.Errorf("delete duplicate swipes: %w", err)
	}

	return result.RowsAffected(), nil
}
