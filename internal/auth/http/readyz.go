package http

import (
	"net/http"
	"time"

	"github.com/vocabhq/vocab/internal/auth/store"
	"github.com/vocabhq/vocab/pkg/authsdk"
	"github.com/vocabhq/vocab/pkg/httpx"
)

// ReadyzHandler is the readiness probe: checks the credential database and
// the refresh-token store and reports 503 when either is unreachable.
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	refresh store.RefreshTokens,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authsdk.HealthChecks{
			Database:     "ok",
			RefreshStore: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if err := refresh.Ping(r.Context()); err != nil {
			checks.RefreshStore = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, authsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
