package http

import (
	"encoding/json"
	"net/http"

	"github.com/vocabhq/vocab/internal/auth/service"
	"github.com/vocabhq/vocab/pkg/authsdk"
	"github.com/vocabhq/vocab/pkg/httpx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, r, httpx.ErrInvalidRequestBody.WithDetails("malformed request body"))
		return
	}

	if req.UserName == "" || req.Password == "" {
		httpx.WriteError(w, r, httpx.ErrInvalidRequestBody.WithDetails("userName and password are required"))
		return
	}

	pair, err := h.AuthService.Login(r.Context(), req.UserName, req.Password)
	if err != nil {
		httpx.WriteError(w, r, serviceError(err))
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, pair)
}
