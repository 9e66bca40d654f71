package repository

import (
	"context"
	"errors"
	"fmt"

	"moments-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PhotoRepository handles database operations for photos
type PhotoRepository struct {
	db *pgxpool.Pool
}

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(db *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// Create creates a new photo
func (r *PhotoRepository) Create(ctx context.Context, photo *models.Photo) error {
	query := `
		INSERT INTO photos (id, image_url, public_id, caption, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		photo.ID, photo.ImageURL, photo.PublicID, photo.Caption, photo.UploadedBy, photo.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create photo: %w", err)
	}
	return nil
}

// GetByID retrieves a photo by ID
func (r *PhotoRepository) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	query := `
		SELECT id, image_url, public_id, caption, uploaded_by, created_at
		FROM photos
		WHERE id = $1
	`
	var photo models.Photo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&photo.ID, &photo.ImageURL, &photo.PublicID, &photo.Caption,
		&photo.UploadedBy, &photo.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return &photo, nil
}

// ListFeed retrieves all photos newest-first, each joined with its uploader
func (r *PhotoRepository) ListFeed(ctx context.Context) ([]*models.PhotoFeedItem, error) {
	query := `
		SELECT p.id, p.image_url, p.public_id, p.caption, p.uploaded_by, p.created_at,
		       u.name, u.email
		FROM photos p
		JOIN users u ON u.id = p.uploaded_by
		ORDER BY p.created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	items := []*models.PhotoFeedItem{}
	for rows.Next() {
		var item models.PhotoFeedItem
		err := rows.Scan(
			&item.ID, &item.ImageURL, &item.PublicID, &item.Caption,
			&item.UploadedBy, &item.CreatedAt,
			&item.Uploader.Name, &item.Uploader.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photos: %w", err)
	}

	return items, nil
}

// Delete deletes a photo by ID
func (r *PhotoRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM photos WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
