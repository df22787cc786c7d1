package media

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	pgrepo "github.com/Marcos-Codfy/latinder-correcao-bugs/internal/repo/postgres"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrPhotoLimitReached = errors.New("photo limit reached")
)

const (
	signedURLTTL    = 5 * time.Minute
	maxPhotosPerPet = 6
)

type Store interface {
	Create(ctx context.Context, petID int64, objectKey, contentType string) (pgrepo.PhotoRecord, error)
	ListByPet(ctx context.Context, petID int64) ([]pgrepo.PhotoRecord, error)
}

type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	PutPhoto(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type Service struct {
	store   Store
	storage ObjectStorage
	now     func() time.Time
}

type Photo struct {
	ID        int64
	PetID     int64
	URL       string
	CreatedAt time.Time
}

func NewService(store Store, storage ObjectStorage) *Service {
	return &Service{
		store:   store,
		storage: storage,
		now:     time.Now,
	}
}

func (s *Service) UploadPhoto(ctx context.Context, petID int64, fileName, contentType string, body io.Reader, size int64) (Photo, error) {
	if petID <= 0 || body == nil || size <= 0 {
		return Photo{}, ErrValidation
	}
	if s.store == nil || s.storage == nil {
		return Photo{}, fmt.Errorf("media dependencies are not configured")
	}

	existing, err := s.store.ListByPet(ctx, petID)
	if err != nil {
		return Photo{}, fmt.Errorf("count pet photos: %w", err)
	}
	if len(existing) >= maxPhotosPerPet {
		return Photo{}, ErrPhotoLimitReached
	}

	if err := s.storage.EnsureBucket(ctx); err != nil {
		return Photo{}, fmt.Errorf("ensure bucket: %w", err)
	}

	objectKey, err := buildPhotoObjectKey(petID, fileName)
	if err != nil {
		return Photo{}, fmt.Errorf("build object key: %w", err)
	}

	if strings.TrimSpace(contentType) == "" {
		contentType = "application/octet-stream"
	}

	if err := s.storage.PutPhoto(ctx, objectKey, body, size, contentType); err != nil {
		return Photo{}, fmt.Errorf("put object: %w", err)
	}

	record, err := s.store.Create(ctx, petID, objectKey, contentType)
	if err != nil {
		_ = s.storage.Delete(ctx, objectKey)
		return Photo{}, fmt.Errorf("create photo record: %w", err)
	}

	url, err := s.storage.PresignGet(ctx, record.ObjectKey, signedURLTTL)
	if err != nil {
		return Photo{}, fmt.Errorf("presign photo url: %w", err)
	}

	return Photo{
		ID:        record.ID,
		PetID:     record.PetID,
		URL:       url,
		CreatedAt: record.CreatedAt,
	}, nil
}

func (s *Service) ListPhotos(ctx context.Context, petID int64) ([]Photo, error) {
	if petID <= 0 {
		return nil, ErrValidation
	}
	if s.store == nil || s.storage == nil {
		return nil, fmt.Errorf("media dependencies are not configured")
	}

	records, err := s.store.ListByPet(ctx, petID)
	if err != nil {
		return nil, fmt.Errorf("list media records: %w", err)
	}

	photos := make([]Photo, 0, len(records))
	for _, rec := range records {
		url, err := s.storage.PresignGet(ctx, rec.ObjectKey, signedURLTTL)
		if err != nil {
			return nil, fmt.Errorf("presign photo url: %w", err)
		}
		photos = append(photos, Photo{
			ID:        rec.ID,
			PetID:     rec.PetID,
			URL:       url,
			CreatedAt: rec.CreatedAt,
		})
	}

	return photos, nil
}

func buildPhotoObjectKey(petID int64, fileName string) (string, error) {
	rnd := make([]byte, 8)
	if _, err := rand.Read(rnd); err != nil {
		return "", err
	}

	ext := strings.ToLower(path.Ext(strings.TrimSpace(fileName)))
	if ext == "" {
		ext = ".bin"
	}

	stamp := time.Now().UTC().Format("20060102T150405")
	return fmt.Sprintf("pets/%d/photos/%s_%s%s", petID, stamp, hex.EncodeToString(rnd), ext), nil
}

func MaxPhotosPerPet() int {
	return maxPhotosPerPet
}
