package handler

import (
	"encoding/json"
	"net/http"
	"wings_cafe/internal/api/middleware"
	"wings_cafe/internal/app/service"
	"wings_cafe/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticator)
		protected.Get("/check-session", h.checkSession)
	})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type RegisterResponse struct {
		Message string `json:"message"`
		UserID  int64  `json:"userId"`
	}
	common.RespondWithJSON(w, http.StatusCreated, RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

// checkSession echoes the identity resolved by the Authenticator, letting
// the client validate a stored token without any extra round trips.
func (h *AuthHandler) checkSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	type SessionUser struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	type SessionResponse struct {
		User SessionUser `json:"user"`
	}
	common.RespondWithJSON(w, http.StatusOK, SessionResponse{
		User: SessionUser{ID: userID, Username: username},
	})
}
