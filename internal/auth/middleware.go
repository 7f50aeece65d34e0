package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	"github.com/saulo-duarte/chronos-planner/internal/config"
)

type contextKey string

const claimsKey contextKey = "user_claims"

const CookieName = "jwt"

var ErrNoClaims = errors.New("no user claims in context")

func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	ctx = config.ContextWithUserID(ctx, claims.UserID)
	return context.WithValue(ctx, claimsKey, claims)
}

func GetUserClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	if !ok || claims == nil {
		return nil, ErrNoClaims
	}
	return claims, nil
}

// CurrentUserID returns the authenticated user's id or
// apperror.ErrUnauthenticated.
func CurrentUserID(ctx context.Context) (uuid.UUID, error) {
	claims, err := GetUserClaimsFromContext(ctx)
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthenticated
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthenticated
	}
	return id, nil
}

func ExtractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := config.WithContext(r.Context())

		token := ExtractToken(r)
		if token == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			apperror.Write(w, r, apperror.ErrUnauthenticated)
			return
		}

		claims, err := ValidateJWT(token)
		if err != nil {
			log.WithError(err).Warn("Rejected access token")
			w.Header().Set("WWW-Authenticate", "Bearer")
			apperror.Write(w, r, apperror.ErrUnauthenticated)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}
