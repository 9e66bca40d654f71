package models

import (
	"errors"
	"time"
)

// ErrNotFound is returned by repositories when a record does not exist
var ErrNotFound = errors.New("not found")

// User represents a registered user
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Photo represents an uploaded photo
type Photo struct {
	ID         string    `json:"id"`
	ImageURL   string    `json:"image_url"`
	PublicID   string    `json:"public_id"`
	Caption    string    `json:"caption,omitempty"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// Uploader is the public view of a photo's owner
type Uploader struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PhotoFeedItem is a photo joined with its uploader's public info
type PhotoFeedItem struct {
	Photo
	Uploader Uploader `json:"uploader"`
}
