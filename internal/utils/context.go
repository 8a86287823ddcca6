package utils

import (
	"context"

	"github.com/VigyanSetu/WS-Frontend/internal/models"
)

type contextKey string

const ContextUserKey contextKey = "user"

func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(ContextUserKey).(*models.User)
	return user, ok
}
