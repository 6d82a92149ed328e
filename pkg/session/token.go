package session

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenExpired inspects the token's exp claim without verifying the
// signature; the backend is the authority on validity, this only decides
// whether a persisted session is worth resuming. Tokens that do not parse
// or carry no expiry are kept and left for the backend to reject.
func TokenExpired(raw string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(raw, &claims)
	if err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
