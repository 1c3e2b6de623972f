package model

import "time"

// Tokens are the signed-in user's APS credentials, rebuilt from cookies on
// every request by the auth middleware.
type Tokens struct {
	InternalToken string
	PublicToken   string
	RefreshToken  string
	ExpiresAt     time.Time
}

type User struct {
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
