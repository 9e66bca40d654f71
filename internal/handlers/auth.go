package handlers

import (
	"encoding/json"
	"net/http"

	"moments-backend/internal/middleware"
	"moments-backend/internal/models"
	"moments-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration and login requests
type AuthHandler struct {
	users *services.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{
		users: users,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type authResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    userView `json:"user"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Registration failed")
		respondError(w, err.Error(), statusFromError(err))
		return
	}

	log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("User registered")

	respondJSON(w, http.StatusCreated, newAuthResponse(user, token))
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Login failed")
		respondError(w, err.Error(), statusFromError(err))
		return
	}

	log.Info().Str("user_id", user.ID).Msg("User logged in")

	respondJSON(w, http.StatusOK, newAuthResponse(user, token))
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := middleware.UserID(ctx)
	if !ok {
		respondError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to get user")
		respondError(w, err.Error(), statusFromError(err))
		return
	}

	respondJSON(w, http.StatusOK, userView{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
}

func newAuthResponse(user *models.User, token string) authResponse {
	return authResponse{
		Success: true,
		Token:   token,
		User: userView{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	}
}
