package jwt

import "github.com/golang-jwt/jwt/v5"

// AttendeeClaims は参加者トークンのクレームです
// uidは参加者レコードのキーになる
type AttendeeClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Email  string `json:"email,omitempty"`
}
