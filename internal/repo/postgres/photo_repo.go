package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Marcos-Codfy/latinder-correcao-bugs/internal/domain/enums"
)

type PhotoRepo struct {
	pool *pgxpool.Pool
}

func NewPhotoRepo(pool *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{pool: pool}
}

type PhotoRecord struct {
	ID          int64
	PetID       int64
	Kind        string
	ObjectKey   string
	ContentType string
	CreatedAt   time.Time
}

func (r *PhotoRepo) Create(ctx context.Context, petID int64, objectKey, contentType string) (PhotoRecord, error) {
	if petID <= 0 || strings.TrimSpace(objectKey) == "" {
		return PhotoRecord{}, fmt.Errorf("invalid photo payload")
	}
	if r.pool == nil {
		return PhotoRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var rec PhotoRecord
	err := r.pool.QueryRow(ctx, `
INSERT INTO pet_photos (
	pet_id,
	kind,
	object_key,
	content_type,
	created_at
) VALUES ($1, $2, $3, $4, NOW())
RETURNING id, pet_id, kind, object_key, content_type, created_at
`, petID, string(enums.MediaKindPhoto), objectKey, contentType).Scan(
		&rec.ID,
		&rec.PetID,
		&rec.Kind,
		&rec.ObjectKey,
		&rec.ContentType,
		&rec.CreatedAt,
	)
	if err != nil {
		return PhotoRecord{}, fmt.Errorf("create pet photo: %w", err)
	}

	return rec, nil
}

func (r *PhotoRepo) ListByPet(ctx context.Context, petID int64) ([]PhotoRecord, error) {
	if petID <= 0 {
		return nil, fmt.Errorf("invalid pet id")
	}
	if r.pool == nil {
		return []PhotoRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, pet_id, kind, object_key, content_type, created_at
FROM pet_photos
WHERE pet_id = $1
ORDER BY created_at ASC, id ASC
`, petID)
	if err != nil {
		return nil, fmt.Errorf("list pet photos: %w", err)
	}
	defer rows.Close()

	items := make([]PhotoRecord, 0, 8)
	for rows.Next() {
		var rec PhotoRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.PetID,
			&rec.Kind,
			&rec.ObjectKey,
			&rec.ContentType,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pet photo: %w", err)
		}
		items = append(items, rec)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate pet photos: %w", rows.Err())
	}

	return items, nil
}
