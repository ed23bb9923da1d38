package http

import (
	"net/http"

	"github.com/vocabhq/vocab/internal/auth/service"
	"github.com/vocabhq/vocab/pkg/httpx"
)

type MeHandler struct {
	AuthService *service.AuthService
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	principal, ok := httpx.PrincipalFrom(r.Context())
	if !ok {
		httpx.WriteError(w, r, httpx.ErrInvalidToken.Err())
		return
	}

	info, err := h.AuthService.CurrentUser(r.Context(), principal.Username)
	if err != nil {
		httpx.WriteError(w, r, serviceError(err))
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, info)
}
