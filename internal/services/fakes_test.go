package services

import (
	"context"
	"fmt"
	"sort"

	"moments-backend/internal/models"
)

// fakeUserStore is an in-memory UserStore
type fakeUserStore struct {
	users       map[string]*models.User // keyed by email
	createCalls int
	getErr      error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	f.createCalls++
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	user, ok := f.users[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, models.ErrNotFound
}

// fakePhotoStore is an in-memory PhotoStore. ListFeed mirrors the
// repository's newest-first ordering and uploader join.
type fakePhotoStore struct {
	photos    map[string]*models.Photo
	uploaders map[string]models.Uploader // keyed by user id
	createErr error
}

func newFakePhotoStore() *fakePhotoStore {
	return &fakePhotoStore{
		photos:    make(map[string]*models.Photo),
		uploaders: make(map[string]models.Uploader),
	}
}

func (f *fakePhotoStore) Create(ctx context.Context, photo *models.Photo) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.photos[photo.ID] = photo
	return nil
}

func (f *fakePhotoStore) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	photo, ok := f.photos[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return photo, nil
}

func (f *fakePhotoStore) ListFeed(ctx context.Context) ([]*models.PhotoFeedItem, error) {
	items := []*models.PhotoFeedItem{}
	for _, photo := range f.photos {
		items = append(items, &models.PhotoFeedItem{
			Photo:    *photo,
			Uploader: f.uploaders[photo.UploadedBy],
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (f *fakePhotoStore) Delete(ctx context.Context, id string) error {
	if _, ok := f.photos[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.photos, id)
	return nil
}

// fakeMediaStore is an in-memory MediaStore recording its calls
type fakeMediaStore struct {
	objects   map[string][]byte
	uploads   []string
	deletes   []string
	uploadErr error
	deleteErr error
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{objects: make(map[string][]byte)}
}

func (f *fakeMediaStore) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads = append(f.uploads, key)
	f.objects[key] = data
	return fmt.Sprintf("https://media.test/%s", key), nil
}

func (f *fakeMediaStore) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, key)
	delete(f.objects, key)
	return nil
}
