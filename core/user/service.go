package user

import (
	"context"
	"errors"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrNotFound = errors.New("user not found")
)

type Repository interface {
	GetUserByID(ctx context.Context, id string, exec ...core.DBExecutor) (User, error)
	GetUserRole(ctx context.Context, id string, exec ...core.DBExecutor) (string, error)
}
