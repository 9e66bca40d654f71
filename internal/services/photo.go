package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"moments-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PhotoStore persists photo records
type PhotoStore interface {
	Create(ctx context.Context, photo *models.Photo) error
	GetByID(ctx context.Context, id string) (*models.Photo, error)
	ListFeed(ctx context.Context) ([]*models.PhotoFeedItem, error)
	Delete(ctx context.Context, id string) error
}

// MediaStore stores photo files and serves them by public URL
type MediaStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

// extByContentType doubles as the upload format allowlist
var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// PhotoService handles the photo feed
type PhotoService struct {
	photos PhotoStore
	media  MediaStore
	hub    *WSHub
}

// NewPhotoService creates a new photo service
func NewPhotoService(photos PhotoStore, media MediaStore, hub *WSHub) *PhotoService {
	return &PhotoService{
		photos: photos,
		media:  media,
		hub:    hub,
	}
}

// Upload stores the file in the media store and records the photo
func (s *PhotoService) Upload(ctx context.Context, userID, contentType string, data []byte, caption string) (*models.Photo, error) {
	ext, ok := extByContentType[contentType]
	if !ok {
		return nil, ErrUnsupportedFormat
	}

	photoID := uuid.New().String()
	key := path.Join("moments", photoID+ext)

	imageURL, err := s.media.Upload(ctx, key, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store media: %w", err)
	}

	photo := &models.Photo{
		ID:         photoID,
		ImageURL:   imageURL,
		PublicID:   key,
		Caption:    caption,
		UploadedBy: userID,
		CreatedAt:  time.Now(),
	}

	if err := s.photos.Create(ctx, photo); err != nil {
		// Best-effort cleanup so the object is not orphaned
		if delErr := s.media.Delete(ctx, key); delErr != nil {
			log.Error().Err(delErr).Str("public_id", key).Msg("Failed to clean up media after record failure")
		}
		return nil, fmt.Errorf("failed to create photo record: %w", err)
	}

	s.hub.BroadcastPhotoUploaded(photo)

	return photo, nil
}

// ListFeed returns all photos newest-first with uploader info
func (s *PhotoService) ListFeed(ctx context.Context) ([]*models.PhotoFeedItem, error) {
	return s.photos.ListFeed(ctx)
}

// Delete removes a photo and its stored media. Only the owner may delete.
// The record is kept if the media store delete fails.
func (s *PhotoService) Delete(ctx context.Context, userID, photoID string) error {
	photo, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return ErrPhotoNotFound
		}
		return fmt.Errorf("failed to get photo: %w", err)
	}

	if photo.UploadedBy != userID {
		return ErrNotPhotoOwner
	}

	if err := s.media.Delete(ctx, photo.PublicID); err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}

	if err := s.photos.Delete(ctx, photoID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return ErrPhotoNotFound
		}
		return fmt.Errorf("failed to delete photo record: %w", err)
	}

	s.hub.BroadcastPhotoDeleted(photoID)

	return nil
}
