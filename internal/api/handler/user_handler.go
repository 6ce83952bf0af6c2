package handler

import (
	"net/http"
	"wings_cafe/internal/api/middleware"
	"wings_cafe/internal/app/service"
	"wings_cafe/internal/common"
	"wings_cafe/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	authService *service.AuthService
}

func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)

	r.Get("/", h.listUsers)
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	if users == nil {
		users = []model.User{}
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}
