package http

import (
	"net/http"

	"github.com/vocabhq/vocab/internal/auth/service"
	"github.com/vocabhq/vocab/pkg/httpx"
)

type LogoutHandler struct {
	AuthService *service.AuthService
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	principal, ok := httpx.PrincipalFrom(r.Context())
	if !ok {
		httpx.WriteError(w, r, httpx.ErrInvalidToken.Err())
		return
	}

	if err := h.AuthService.Logout(r.Context(), principal.Username); err != nil {
		httpx.WriteError(w, r, serviceError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
