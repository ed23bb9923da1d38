package authsdk

// RegisterRequest creates a new principal. Role and enabled state are
// assigned server-side.
type RegisterRequest struct {
	UserName string `json:"userName"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest carries the credentials for the login endpoint.
type LoginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// RefreshRequest exchanges the current refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse is the issuance unit returned by login and refresh.
type TokenResponse struct {
	TokenType    string `json:"tokenType"` // always "Bearer"
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserInfo is the authority's answer to whoami: the principal's profile
// without any credential material.
type UserInfo struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Enabled  bool   `json:"enabled"`
}

// AvailabilityResponse answers the username availability check.
type AvailabilityResponse struct {
	Exists bool `json:"exists"`
}

// HealthResponse is returned by the livez and readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks itemises the readiness probe's dependency checks.
type HealthChecks struct {
	Database     string `json:"database,omitempty"`
	RefreshStore string `json:"refreshStore,omitempty"`
	Authority    string `json:"authority,omitempty"`
}
