package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrPetNotFound = errors.New("pet not found")

type PetRepo struct {
	pool *pgxpool.Pool
}

func NewPetRepo(pool *pgxpool.Pool) *PetRepo {
	return &PetRepo{pool: pool}
}

type PetRecord struct {
	ID        int64
	OwnerID   int64
	Name      string
	Breed     string
	Bio       string
	BirthDate time.Time
	CreatedAt time.Time
}

func (r *PetRepo) Create(ctx context.Context, ownerID int64, name, breed, bio string, birthDate time.Time) (PetRecord, error) {
	if ownerID <= 0 || strings.TrimSpace(name) == "" {
		return PetRecord{}, fmt.Errorf("invalid pet payload")
	}
	if r.pool == nil {
		return PetRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var rec PetRecord
	err := r.pool.QueryRow(ctx, `
INSERT INTO pets (
	owner_id,
	name,
	breed,
	bio,
	birth_date,
	created_at
) VALUES ($1, $2, $3, $4, $5, NOW())
RETURNING id, owner_id, name, breed, bio, birth_date, created_at
`, ownerID, strings.TrimSpace(name), strings.TrimSpace(breed), bio, birthDate).Scan(
		&rec.ID,
		&rec.OwnerID,
		&rec.Name,
		&rec.Breed,
		&rec.Bio,
		&rec.BirthDate,
		&rec.CreatedAt,
	)
	if err != nil {
		return PetRecord{}, fmt.Errorf("create pet: %w", err)
	}

	return rec, nil
}

func (r *PetRepo) GetByID(ctx context.Context, petID int64) (PetRecord, error) {
	if petID <= 0 {
		return PetRecord{}, fmt.Errorf("invalid pet id")
	}
	if r.pool == nil {
		return PetRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var rec PetRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, owner_id, name, breed, bio, birth_date, created_at
FROM pets
WHERE id = $1
`, petID).Scan(
		&rec.ID,
		&rec.OwnerID,
		&rec.Name,
		&rec.Breed,
		&rec.Bio,
		&rec.BirthDate,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PetRecord{}, ErrPetNotFound
		}
		return PetRecord{}, fmt.Errorf("get pet by id: %w", err)
	}

	return rec, nil
}

// GetFirstByOwner resolves the acting profile for an owner account: the
// owner's oldest pet, matching how the original UI picks the profile.
func (r *PetRepo) GetFirstByOwner(ctx context.Context, ownerID int64) (PetRecord, error) {
	if ownerID <= 0 {
		return PetRecord{}, fmt.Errorf("invalid owner id")
	}
	if r.pool == nil {
		return PetRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var rec PetRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, owner_id, name, breed, bio, birth_date, created_at
FROM pets
WHERE owner_id = $1
ORDER BY created_at ASC, id ASC
LIMIT 1
`, ownerID).Scan(
		&rec.ID,
		&rec.OwnerID,
		&rec.Name,
		&rec.Breed,
		&rec.Bio,
		&rec.BirthDate,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PetRecord{}, ErrPetNotFound
		}
		return PetRecord{}, fmt.Errorf("get first pet by owner: %w", err)
	}

	return rec, nil
}

// ListCandidates returns pets the given pet has not evaluated yet,
// excluding the pet itself and other pets of the same owner. Order is
// implementation-defined; newest profiles first keeps the feed fresh.
func (r *PetRepo) ListCandidates(ctx context.Context, petID int64, limit int) ([]PetRecord, error) {
	if petID <= 0 {
		return nil, fmt.Errorf("invalid pet id")
	}
	if limit <= 0 {
		limit = 50
	}
	if r.pool == nil {
		return []PetRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT p.id, p.owner_id, p.name, p.breed, p.bio, p.birth_date, p.created_at
FROM pets p
WHERE
	p.id <> $1
	AND p.owner_id <> (SELECT owner_id FROM pets WHERE id = $1)
	AND NOT EXISTS (
		SELECT 1
		FROM swipes s
		WHERE s.swiper_pet_id = $1 AND s.swiped_pet_id = p.id
	)
ORDER BY p.created_at DESC, p.id DESC
LIMIT $2
`, petID, limit)
	if err != nil {
		return nil, fmt.Errorf("list swipe candidates: %w", err)
	}
	defer rows.Close()

	items := make([]PetRecord, 0, limit)
	for rows.Next() {
		var rec PetRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.OwnerID,
			&rec.Name,
			&rec.Breed,
			&rec.Bio,
			&rec.BirthDate,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan swipe candidate: %w", err)
		}
		items = append(items, rec)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate swipe candidates: %w", rows.Err())
	}

	return items, nil
}
