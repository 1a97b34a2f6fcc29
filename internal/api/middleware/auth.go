package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/whalechillz/mas-win-sub025/internal/api/handlers"
	"github.com/whalechillz/mas-win-sub025/internal/auth"
)

type ctxKey int

const (
	claimsKey ctxKey = iota
	requestIDKey
)

const (
	msgMissingToken = "authorization header required"
	msgInvalidToken = "invalid or expired token"
	msgCronDenied   = "cron authentication failed"
)

// TokenParser validates bearer tokens
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Auth requires a valid admin bearer token and stores its claims in the request context
func Auth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims returns the claims stored by Auth
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok
}

// GetUserID returns the authenticated admin id
func GetUserID(ctx context.Context) (int64, bool) {
	c, ok := GetClaims(ctx)
	if !ok {
		return 0, false
	}
	return c.UserID(), true
}

// CronAuth admits a caller presenting the cron secret as a bearer token.
// The platform scheduler header (x-vercel-cron) is honoured only when
// trustPlatformHeader is set, i.e. when a fronting proxy strips it from
// outside traffic.
func CronAuth(secret string, trustPlatformHeader bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if trustPlatformHeader && r.Header.Get("x-vercel-cron") != "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok || secret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				handlers.RespondUnauthorized(w, msgCronDenied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return "", false
	}
	token := strings.TrimSpace(h[7:])
	return token, token != ""
}
