package service

import "time"

// TokenClaims is the claim set embedded in an issued bearer token.
// The service layer fills the values; the issuer only signs them.
type TokenClaims struct {
	Issuer    string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Scope     string
	NickName  string
}

// TokenIssuer defines the interface for signing and parsing bearer tokens.
// This abstracts the token format and signature algorithm from the use cases.
type TokenIssuer interface {
	// Sign encodes the claim set into a compact, verifiable token string.
	Sign(claims *TokenClaims) (string, error)

	// Parse verifies a token string and returns its claim set.
	Parse(tokenString string) (*TokenClaims, error)
}
