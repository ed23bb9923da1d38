package domain

// TokenPair is the issuance unit returned to clients: a short-lived signed
// access token plus the rotating refresh token.
type TokenPair struct {
	TokenType    string `json:"tokenType"` // always "Bearer"
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// GrantType is the token type carried by every issued pair and expected in
// the Authorization header.
const GrantType = "Bearer"
