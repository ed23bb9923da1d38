package http

import (
	"net/http"

	"github.com/vocabhq/vocab/internal/auth/service"
	"github.com/vocabhq/vocab/pkg/authsdk"
	"github.com/vocabhq/vocab/pkg/httpx"
)

type AvailabilityHandler struct {
	AuthService *service.AuthService
}

func (h *AvailabilityHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		httpx.WriteError(w, r, httpx.ErrInvalidRequestBody.WithDetails("username is required"))
		return
	}

	exists, err := h.AuthService.UsernameExists(r.Context(), username)
	if err != nil {
		httpx.WriteError(w, r, serviceError(err))
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.AvailabilityResponse{Exists: exists})
}
