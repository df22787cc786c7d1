package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/domain/model"
	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/domain/rules"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepo struct {
	pool *pgxpool.Pool
}

func NewMatchRepo(pool *pgxpool.Pool) *MatchRepo {
	return &MatchRepo{pool: pool}
}

type MatchListRecord struct {
	MatchID      int64
	OtherPetID   int64
	OtherPetName string
	OtherBreed   string
	CreatedAt    time.Time
}

// EnsureForMutualLike checks for a reciprocal like and, if present,
// idempotently materializes the match on the canonical pair. It reports
// true whenever reciprocity exists, whether or not this call created
// the row: a unique-key conflict from a concurrent reciprocal swipe is
// silent success, never an error.
//
// The pair-scoped advisory lock is what makes two concurrent reciprocal
// swipes safe. Each side inserts its like and then runs this lookup in
// the same READ COMMITTED transaction, so without the lock neither side
// can see the other's uncommitted like and both would report "no
// reciprocity". The lock serializes the two transactions on the
// canonical pair; the one that waits re-reads after the winner commits
// and observes the like. It is released automatically at commit or
// rollback.
func (r *MatchRepo) EnsureForMutualLike(ctx context.Context, tx pgx.Tx, swiperID, swipedID int64) (bool, error) {
	if swiperID <= 0 || swipedID <= 0 {
		return false, fmt.Errorf("invalid match payload")
	}
	if tx == nil {
		return false, fmt.Errorf("transaction is required")
	}

	low, high := rules.CanonicalPair(swiperID, swipedID)
	if _, err := tx.Exec(ctx, `
SELECT pg_advisory_xact_lock(hashtextextended($1::text || ':' || $2::text, 0))
`, low, high); err != nil {
		return false, fmt.Errorf("lock match pair: %w", err)
	}

	var one int
	err := tx.QueryRow(ctx, `
SELECT 1
FROM swipes
WHERE swiper_pet_id = $1 AND swiped_pet_id = $2 AND liked
LIMIT 1
`, swipedID, swiperID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup reciprocal like: %w", err)
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO matches (
	pet_low_id,
	pet_high_id,
	created_at
) VALUES ($1, $2, NOW())
ON CONFLICT (pet_low_id, pet_high_id) DO NOTHING
`, low, high); err != nil {
		return false, fmt.Errorf("create match: %w", err)
	}

	return true, nil
}

func (r *MatchRepo) GetByID(ctx context.Context, matchID int64) (model.Match, error) {
	if matchID <= 0 {
		return model.Match{}, fmt.Errorf("invalid match id")
	}
	if r.pool == nil {
		return model.Match{}, fmt.Errorf("postgres pool is nil")
	}

	var m model.Match
	err := r.pool.QueryRow(ctx, `
SELECT id, pet_low_id, pet_high_id, created_at
FROM matches
WHERE id = $1
`, matchID).Scan(
		&m.ID,
		&m.PetLowID,
		&m.PetHighID,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, ErrMatchNotFound
		}
		return model.Match{}, fmt.Errorf("get match by id: %w", err)
	}

	return m, nil
}

// ListForPet returns every match the pet participates in, joined with
// the other participant's identity, newest first.
func (r *MatchRepo) ListForPet(ctx context.Context, petID int64, limit int) ([]MatchListRecord, error) {
	if petID <= 0 {
		return nil, fmt.Errorf("invalid pet id")
	}
	if limit <= 0 {
		limit = 100
	}
	if r.pool == nil {
		return []MatchListRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	m.id,
	CASE WHEN m.pet_low_id = $1 THEN m.pet_high_id ELSE m.pet_low_id END AS other_pet_id,
	COALESCE(p.name, ''),
	COALESCE(p.breed, ''),
	m.created_at
FROM matches m
JOIN pets p ON p.id = CASE WHEN m.pet_low_id = $1 THEN m.pet_high_id ELSE m.pet_low_id END
WHERE m.pet_low_id = $1 OR m.pet_high_id = $1
ORDER BY m.created_at DESC, m.id DESC
LIMIT $2
`, petID, limit)
	if err != nil {
		return nil, fmt.Errorf("list matches for pet: %w", err)
	}
	defer rows.Close()

	items := make([]MatchListRecord, 0, limit)
	for rows.Next() {
		var item MatchListRecord
		if err := rows.Scan(
			&item.MatchID,
			&item.OtherPetID,
			&item.OtherPetName,
			&item.OtherBreed,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan match row: %w", err)
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate matches: %w", rows.Err())
	}

	return items, nil
}
