package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired indicates a structurally valid token past its expiry.
	ErrTokenExpired = errors.New("jwt: token expired")
	// ErrTokenInvalid indicates a token with a bad signature or format.
	ErrTokenInvalid = errors.New("jwt: token invalid")
)

// Sign issues an HS256 token whose subject is the user identifier. The
// payload carries no roles or permissions: callers needing more than
// identity must fetch the account again.
func Sign(subject, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwtlib.RegisteredClaims{
		Issuer:    "projetorh",
		Subject:   subject,
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Verify checks signature and expiry and returns the token subject. The
// subject may be empty; callers decide how to treat a subject-less token.
func Verify(token, secret string) (string, error) {
	parsed, err := jwtlib.ParseWithClaims(token, &jwtlib.RegisteredClaims{}, func(t *jwtlib.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Name}))
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	claims, ok := parsed.Claims.(*jwtlib.RegisteredClaims)
	if !ok || !parsed.Valid {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
