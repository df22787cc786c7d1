package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrOwnerNotFound = errors.New("owner not found")
	ErrUsernameTaken = errors.New("username already taken")
)

type OwnerRepo struct {
	pool *pgxpool.Pool
}

func NewOwnerRepo(pool *pgxpool.Pool) *OwnerRepo {
	return &OwnerRepo{pool: pool}
}

type OwnerRecord struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

func (r *OwnerRepo) Create(ctx context.Context, username, passwordHash string) (OwnerRecord, error) {
	if strings.TrimSpace(username) == "" || passwordHash == "" {
		return OwnerRecord{}, fmt.Errorf("invalid owner payload")
	}
	if r.pool == nil {
		return OwnerRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var rec OwnerRecord
	err := r.pool.QueryRow(ctx, `
INSERT INTO owners (
	username,
	password_hash,
	created_at
) VALUES ($1, $2, NOW())
RETURNING id, username, password_hash, created_at
`, strings.TrimSpace(username), passwordHash).Scan(
		&rec.ID,
		&rec.Username,
		&rec.PasswordHash,
		&rec.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return OwnerRecord{}, ErrUsernameTaken
		}
		return OwnerRecord{}, fmt.Errorf("create owner: %w", err)
	}

	return rec, nil
}

func (r *OwnerRepo) GetByUsername(ctx context.Context, username string) (OwnerRecord, error) {
	if strings.TrimSpace(username) == "" {
		return OwnerRecord{}, fmt.Errorf("username is required")
	}
	if r.pool == nil {
		return OwnerRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var rec OwnerRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, username, password_hash, created_at
FROM owners
WHERE username = $1
`, strings.TrimSpace(username)).Scan(
		&rec.ID,
		&rec.Username,
		&rec.PasswordHash,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return OwnerRecord{}, ErrOwnerNotFound
		}
		return OwnerRecord{}, fmt.Errorf("get owner by username: %w", err)
	}

	return rec, nil
}
