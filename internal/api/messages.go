package api

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse mirrors the OAuth2 token response. ExpiresIn is in seconds.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
}

type UserResponse struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type MeRequest struct{}

type DeleteAccountRequest struct{}

type DeleteAccountResponse struct{}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
