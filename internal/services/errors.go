package services

import "errors"

// Service-level errors mapped to HTTP statuses at the handler boundary.
var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrNotPhotoOwner      = errors.New("unauthorized delete")
	ErrUnsupportedFormat  = errors.New("unsupported image format")
)
