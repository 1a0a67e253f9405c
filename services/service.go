package services

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// SignInPath is where a successful sign-up navigates to.
const SignInPath = "/signin"

type service struct {
	dataDB *sql.DB
	log    *zap.Logger
	now    func() time.Time
}

type sessionKey struct{}

// WithSession binds a browser session id to ctx.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionID)
}

func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
