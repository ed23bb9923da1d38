package domain

import "time"

// User is the persisted principal record. Created at registration, mutated
// on role/enabled changes, never deleted here. The enabled flag gates login.
type User struct {
	ID           string
	Username     string
	Name         string
	Email        string
	PasswordHash string // argon2id PHC encoded
	Role         string // single authority string, e.g. "USER"
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserInfo is the immutable read model handed out over the wire. It is
// constructed at the data-access boundary and never carries credential
// material, so nothing sensitive can leak by serializing it.
type UserInfo struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Enabled  bool   `json:"enabled"`
}

// Info projects the stored record onto the read model.
func (u User) Info() UserInfo {
	return UserInfo{
		ID:       u.ID,
		UserName: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Role:     u.Role,
		Enabled:  u.Enabled,
	}
}
