package file

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/manoj7417/doctor-appointment-25-sub001/internal/domain"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/pkg/id"
)

// photoURLTTL bounds how long a served photo link stays valid.
const photoURLTTL = 7 * 24 * time.Hour

type Service interface {
	// UploadPhoto stores a profile photo and returns its file record with a
	// presigned URL.
	UploadPhoto(ctx context.Context, ownerID string, r io.Reader, size int64, contentType string) (*domain.File, error)
	Delete(ctx context.Context, ownerID, fileID string) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type fileStore interface {
	Put(ctx context.Context, f *domain.File) error
	Get(ctx context.Context, fileID string) (*domain.File, error)
	SoftDelete(ctx context.Context, fileID string) error
}

type service struct {
	objects objectStore
	repo    fileStore
}

func NewService(objects objectStore, repo fileStore) Service {
	return &service{objects: objects, repo: repo}
}

func (s *service) UploadPhoto(ctx context.Context, ownerID string, r io.Reader, size int64, contentType string) (*domain.File, error) {
	if contentType != "image/jpeg" && contentType != "image/png" {
		return nil, fmt.Errorf("photo must be JPEG or PNG: %w", domain.ErrBadRequest)
	}
	fileID := id.New()
	key := fmt.Sprintf("photos/%s/%s", ownerID, fileID)
	if _, err := s.objects.Upload(ctx, key, r, contentType); err != nil {
		return nil, err
	}
	url, err := s.objects.PresignedURL(ctx, key, photoURLTTL)
	if err != nil {
		return nil, err
	}
	f := &domain.File{
		FileID:      fileID,
		OwnerID:     ownerID,
		Key:         key,
		ContentType: contentType,
		Size:        size,
		URL:         url,
		Enable:      1,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Delete(ctx context.Context, ownerID, fileID string) error {
	f, err := s.repo.Get(ctx, fileID)
	if err != nil {
		return err
	}
	if f.OwnerID != ownerID {
		return fmt.Errorf("file belongs to another user: %w", domain.ErrForbidden)
	}
	if err := s.objects.Delete(ctx, f.Key); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, fileID)
}
