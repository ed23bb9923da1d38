package http

import (
	"net/http"

	"github.com/vocabhq/vocab/pkg/httpx"
)

// ProfileResponse echoes the authenticated principal as the authority
// resolved it.
type ProfileResponse struct {
	UserName    string   `json:"userName"`
	Authorities []string `json:"authorities"`
}

type ProfileHandler struct{}

func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	principal, ok := httpx.PrincipalFrom(r.Context())
	if !ok {
		httpx.WriteError(w, r, httpx.ErrInvalidToken.Err())
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, ProfileResponse{
		UserName:    principal.Username,
		Authorities: principal.Authorities,
	})
}
