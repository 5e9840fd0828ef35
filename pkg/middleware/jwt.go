package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"olivia/pkg/logging"
)

const issuer = "olivia"

var ErrNoSecret = errors.New("jwt secret not configured")

// IssueToken signs an HS256 token whose subject is uid.
func IssueToken(secret, uid string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	claims := jwt.RegisteredClaims{
		Subject:   uid,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies signature, expiry and issuer and returns the subject.
func ParseToken(secret, raw string) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return claims.Subject, nil
}

func bearer(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Auth sets "uid" from a bearer token. Without a token it falls back to
// DevUID when devLogin is on, otherwise the request is rejected with 401.
// A token that is present but invalid is always rejected.
func Auth(secret string, devLogin bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok := bearer(c)
			switch {
			case tok != "":
				uid, err := ParseToken(secret, tok)
				if err != nil {
					logging.Debug().Err(err).Str("path", c.Path()).Msg("rejected bearer token")
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
				}
				c.Set("uid", uid)
			case devLogin:
				c.Set("uid", DevUID(c))
			default:
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			return next(c)
		}
	}
}
