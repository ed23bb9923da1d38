// Package authsdk is the HTTP client for the vocab token authority.
//
// It serves two callers: end-user tooling driving the credential endpoints
// (register, login, refresh, logout), and sibling services that delegate
// authentication by forwarding bearer tokens to the authority's whoami
// endpoint instead of verifying them locally. Delegating services hold no
// signing secret; every remote outcome is translated into a typed
// httpx.AuthError so the caller's boundary can render the shared envelope.
package authsdk
