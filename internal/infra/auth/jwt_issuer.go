// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"board/config"
	"board/internal/domain/service"
)

// jwtIssuer is a concrete implementation of the TokenIssuer interface using the JWT standard.
type jwtIssuer struct {
	secret string // Secret key for signing tokens.
}

// NewJWTIssuer is the constructor for jwtIssuer.
func NewJWTIssuer(cfg *config.Config) (service.TokenIssuer, error) {
	if cfg.SecretKey.Token == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtIssuer{secret: cfg.SecretKey.Token}, nil
}

// Sign encodes the claim set into a signed JWT string.
// The claim values, including lifetime, are supplied entirely by the caller.
func (s *jwtIssuer) Sign(claims *service.TokenClaims) (string, error) {
	mapClaims := jwt.MapClaims{
		"iss":      claims.Issuer,
		"sub":      claims.Subject,
		"iat":      claims.IssuedAt.Unix(),
		"exp":      claims.ExpiresAt.Unix(),
		"scope":    claims.Scope,
		"nickName": claims.NickName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Parse verifies a token string and returns its claim set.
func (s *jwtIssuer) Parse(tokenString string) (*service.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected token claims type")
	}

	return toTokenClaims(mapClaims), nil
}

func toTokenClaims(mapClaims jwt.MapClaims) *service.TokenClaims {
	claims := &service.TokenClaims{}

	if iss, ok := mapClaims["iss"].(string); ok {
		claims.Issuer = iss
	}
	if sub, ok := mapClaims["sub"].(string); ok {
		claims.Subject = sub
	}
	if scope, ok := mapClaims["scope"].(string); ok {
		claims.Scope = scope
	}
	if nickName, ok := mapClaims["nickName"].(string); ok {
		claims.NickName = nickName
	}
	if iat, ok := mapClaims["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(iat), 0)
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}

	return claims
}
