package test_utils

import (
	"context"

	"github.com/crewplan/crewplan/pkg/user"
)

// ContextWithUser returns a context carrying a minimal user identity, for
// exercising code that reads the current user.
func ContextWithUser(ctx context.Context, userId int) context.Context {
	return user.WithUser(ctx, user.User{
		Id:       userId,
		Username: "testuser",
	})
}
