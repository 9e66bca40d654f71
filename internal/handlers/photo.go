package handlers

import (
	"io"
	"net/http"

	"moments-backend/internal/middleware"
	"moments-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const maxUploadSize = 32 << 20 // 32 MiB

// PhotoHandler handles photo-related HTTP requests
type PhotoHandler struct {
	photos *services.PhotoService
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photos *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		photos: photos,
	}
}

// ListFeed handles GET /api/photos
func (h *PhotoHandler) ListFeed(w http.ResponseWriter, r *http.Request) {
	items, err := h.photos.ListFeed(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list photos")
		respondError(w, err.Error(), statusFromError(err))
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// Upload handles POST /api/photos
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := middleware.UserID(ctx)
	if !ok {
		respondError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, "No file uploaded", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		respondError(w, "No file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, "Failed to read file", http.StatusBadRequest)
		return
	}

	caption := r.FormValue("caption")
	contentType := header.Header.Get("Content-Type")

	photo, err := h.photos.Upload(ctx, userID, contentType, data, caption)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("filename", header.Filename).
			Msg("Failed to upload photo")
		respondError(w, err.Error(), statusFromError(err))
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("photo_id", photo.ID).
		Msg("Photo uploaded")

	respondJSON(w, http.StatusCreated, photo)
}

// Delete handles DELETE /api/photos/{id}
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := middleware.UserID(ctx)
	if !ok {
		respondError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	photoID := chi.URLParam(r, "id")

	if err := h.photos.Delete(ctx, userID, photoID); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Str("photo_id", photoID).
			Msg("Failed to delete photo")
		respondError(w, err.Error(), statusFromError(err))
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("photo_id", photoID).
		Msg("Photo deleted")

	respondJSON(w, http.StatusOK, map[string]string{"message": "Photo deleted"})
}
