package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"medisync/internal/app/server/auth"
)

type Auth struct {
	tokens *auth.Manager
	log    *slog.Logger
}

func New(tokens *auth.Manager, log *slog.Logger) *Auth {
	return &Auth{
		tokens: tokens,
		log:    log.With("component", "auth_middleware"),
	}
}

type contextKey string

const UserIDKey contextKey = "userID"

// Middleware validates the bearer token and injects the user id into the
// request context.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			a.reject(ctx, "missing bearer token")
			return
		}

		userID, err := a.tokens.Validate(token)
		if err != nil {
			a.reject(ctx, "token validation failed")
			return
		}

		newCtx := context.WithValue(ctx.Context(), UserIDKey, userID)
		next(huma.WithContext(ctx, newCtx))
	}
}

func (a *Auth) reject(ctx huma.Context, reason string) {
	a.log.Debug("unauthorized request", "reason", reason, "path", ctx.URL().Path)
	ctx.SetStatus(http.StatusUnauthorized)
	ctx.SetHeader("Content-Type", "application/json")

	if err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
		"error": "Unauthorized",
	}); err != nil {
		a.log.Error("write unauthorized response", "error", err)
	}
}

func GetUserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}
