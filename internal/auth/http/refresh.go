package http

import (
	"encoding/json"
	"net/http"

	"github.com/vocabhq/vocab/internal/auth/service"
	"github.com/vocabhq/vocab/pkg/authsdk"
	"github.com/vocabhq/vocab/pkg/httpx"
)

type RefreshHandler struct {
	TokenService *service.TokenService
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, r, httpx.ErrInvalidRequestBody.WithDetails("malformed request body"))
		return
	}

	if req.RefreshToken == "" {
		httpx.WriteError(w, r, httpx.ErrInvalidRequestBody.WithDetails("refreshToken is required"))
		return
	}

	pair, err := h.TokenService.Rotate(r.Context(), req.RefreshToken)
	if err != nil {
		httpx.WriteError(w, r, serviceError(err))
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, pair)
}
