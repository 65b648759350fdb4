package httpclient

import "net/http"

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthBearer uses "Authorization: Bearer <token>".
	AuthBearer
	// AuthToken uses "Authorization: Token <token>" (Deepgram-style).
	AuthToken
	// AuthAPIKey sends the key in a named header or query parameter,
	// covering the xi-api-key / x-gladia-key / api-subscription-key
	// family of schemes.
	AuthAPIKey
	// AuthCustom uses a custom authentication function.
	AuthCustom
)

// AuthConfig configures request authentication.
type AuthConfig struct {
	// Type is the authentication method.
	Type AuthType
	// Token is the credential for AuthBearer and AuthToken.
	Token string
	// Key is the API key value (AuthAPIKey).
	Key string
	// In specifies where to place the API key: "header" (default) or "query" (AuthAPIKey).
	In string
	// Name is the header or query parameter name (AuthAPIKey). Defaults to "X-API-Key".
	Name string
	// Apply is a custom function to modify the request (AuthCustom).
	Apply func(*http.Request)
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// TokenAuth creates a "Token <key>" scheme auth config.
func TokenAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthToken, Token: token}
}

// APIKeyAuthHeader creates an API key auth config with a custom header name.
func APIKeyAuthHeader(key, headerName string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "header", Name: headerName}
}

// APIKeyAuthQuery creates an API key auth config sent via query parameter.
func APIKeyAuthQuery(key, paramName string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "query", Name: paramName}
}

// CustomAuth creates a custom auth config with a request modifier function.
func CustomAuth(fn func(*http.Request)) *AuthConfig {
	return &AuthConfig{Type: AuthCustom, Apply: fn}
}

// apply stamps the credential onto the request. Safe on a nil receiver
// so unauthenticated clients need no special casing.
func (a *AuthConfig) apply(req *http.Request) {
	if a == nil {
		return
	}
	switch a.Type {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.Token)
	case AuthToken:
		req.Header.Set("Authorization", "Token "+a.Token)
	case AuthAPIKey:
		a.applyKey(req)
	case AuthCustom:
		if a.Apply != nil {
			a.Apply(req)
		}
	}
}

func (a *AuthConfig) applyKey(req *http.Request) {
	name := a.Name
	if name == "" {
		name = "X-API-Key"
	}
	if a.In == "query" {
		q := req.URL.Query()
		q.Set(name, a.Key)
		req.URL.RawQuery = q.Encode()
		return
	}
	req.Header.Set(name, a.Key)
}
