package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vocabhq/vocab/internal/auth/service"
	"github.com/vocabhq/vocab/pkg/authsdk"
	"github.com/vocabhq/vocab/pkg/httpx"
)

type RegisterHandler struct {
	AuthService *service.AuthService
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, r, httpx.ErrInvalidRequestBody.WithDetails("malformed request body"))
		return
	}

	if strings.TrimSpace(req.UserName) == "" || req.Password == "" {
		httpx.WriteError(w, r, httpx.ErrInvalidRequestBody.WithDetails("userName and password are required"))
		return
	}

	info, err := h.AuthService.Register(r.Context(), service.RegisterParams{
		Username: req.UserName,
		Password: req.Password,
		Name:     req.Name,
		Email:    req.Email,
	})
	if err != nil {
		httpx.WriteError(w, r, serviceError(err))
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, info)
}
