package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"strings"
	"testing"

	"moments-backend/internal/middleware"
	"moments-backend/internal/models"
	"moments-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// fakeUserStore is an in-memory services.UserStore
type fakeUserStore struct {
	users map[string]*models.User // keyed by email
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
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

// fakePhotoStore is an in-memory services.PhotoStore with the
// repository's newest-first feed ordering
type fakePhotoStore struct {
	photos map[string]*models.Photo
	users  *fakeUserStore
}

func (f *fakePhotoStore) Create(ctx context.Context, photo *models.Photo) error {
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
		item := &models.PhotoFeedItem{Photo: *photo}
		if user, err := f.users.GetByID(ctx, photo.UploadedBy); err == nil {
			item.Uploader = models.Uploader{Name: user.Name, Email: user.Email}
		}
		items = append(items, item)
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

// fakeMediaStore is an in-memory services.MediaStore recording its calls
type fakeMediaStore struct {
	objects map[string][]byte
	uploads int
}

func (f *fakeMediaStore) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	f.uploads++
	f.objects[key] = data
	return fmt.Sprintf("https://media.test/%s", key), nil
}

func (f *fakeMediaStore) Delete(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

// testEnv wires the handlers to fake stores behind the real router layout
type testEnv struct {
	server *httptest.Server
	users  *fakeUserStore
	photos *fakePhotoStore
	media  *fakeMediaStore
	tokens *services.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := &fakeUserStore{users: make(map[string]*models.User)}
	photos := &fakePhotoStore{photos: make(map[string]*models.Photo), users: users}
	media := &fakeMediaStore{objects: make(map[string][]byte)}

	tokens := services.NewTokenService("test-secret")
	userService := services.NewUserService(users, tokens)
	photoService := services.NewPhotoService(photos, media, services.NewWSHub())

	authHandler := NewAuthHandler(userService)
	photoHandler := NewPhotoHandler(photoService)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthMiddleware(tokens))
				r.Get("/me", authHandler.Me)
			})
		})
		r.Route("/photos", func(r chi.Router) {
			r.Get("/", photoHandler.ListFeed)
			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthMiddleware(tokens))
				r.Post("/", photoHandler.Upload)
				r.Delete("/{id}", photoHandler.Delete)
			})
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{
		server: srv,
		users:  users,
		photos: photos,
		media:  media,
		tokens: tokens,
	}
}

// register creates a user through the API and returns its id and token
func (e *testEnv) register(t *testing.T, name, email, password string) (string, string) {
	t.Helper()

	resp := e.postJSON(t, "/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	decodeBody(t, resp, &body)
	return body.User.ID, body.Token
}

func (e *testEnv) postJSON(t *testing.T, path string, payload interface{}) *http.Response {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(e.server.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (e *testEnv) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, e.server.URL+path, body)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// uploadPhoto posts a multipart upload with the given file content type.
// An empty contentType omits the file part entirely.
func (e *testEnv) uploadPhoto(t *testing.T, token, caption, contentType string, data []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if contentType != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="photo"; filename="photo.img"`)
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	if caption != "" {
		require.NoError(t, w.WriteField("caption", caption))
	}
	require.NoError(t, w.Close())

	return e.do(t, http.MethodPost, "/api/photos", token, &buf, w.FormDataContentType())
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return strings.TrimSpace(string(data))
}
