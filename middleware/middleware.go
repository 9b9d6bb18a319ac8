package middleware

import (
	"context"
	"net/http"
	"strings"

	"finflock/tokens"
	"finflock/utils"

	"github.com/julienschmidt/httprouter"
)

type contextKey string

const (
	identityKey  contextKey = "identity"
	requestIDKey contextKey = "requestId"
)

// Identity is the verified caller attached to the request context by
// Required. It is rebuilt from the token on every request; nothing is
// stored server-side.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

// Auth verifies bearer assertions on protected routes.
type Auth struct {
	secret []byte
}

func NewAuth(secret []byte) *Auth {
	return &Auth{secret: secret}
}

// Required rejects requests without a valid bearer assertion and stores
// the resolved identity in the request context. It never touches
// storage.
func (a *Auth) Required(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.RespondWithError(w, http.StatusUnauthorized, "Missing Bearer token")
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "), a.secret)
		if err != nil || claims.UserID == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, Identity{
			UserID: claims.UserID,
			Email:  claims.Email,
			Name:   claims.Name,
		})
		next(w, r.WithContext(ctx), ps)
	}
}

// IdentityFromContext returns the caller attached by Required.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// WithRequestID tags a context with a correlation id for log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
