package auth

import (
	"context"
	"errors"
)

// ErrUnauthenticated is returned by every report entry point when the
// context carries no user.
var ErrUnauthenticated = errors.New("authentication required")

type userKey struct{}

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the user stored by WithUser, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userKey{}).(*User)
	return user, ok && user != nil && user.ID != ""
}

// RequireUser resolves the current user or fails with ErrUnauthenticated.
func RequireUser(ctx context.Context) (*User, error) {
	user, ok := UserFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// SystemContext marks background jobs such as the snapshot scheduler.
func SystemContext(ctx context.Context) context.Context {
	return WithUser(ctx, &User{ID: "system", Role: RoleSystem})
}
