package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// The auth gateway in front of the API authenticates requests and forwards
// the caller's identity in this header.
const userIDHeader = "X-User-ID"

const ctxUserIDKey = "userID"

var errUsrNotFoundInCtx = errors.New("user ID not found in echo.Context")

func userIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			uid := strings.TrimSpace(ctx.Request().Header.Get(userIDHeader))
			if uid == "" {
				return errUnauthorized
			}
			ctx.Set(ctxUserIDKey, uid)
			return next(ctx)
		}
	}
}

func getContextUserID(ctx echo.Context) (string, error) {
	if uid, ok := ctx.Get(ctxUserIDKey).(string); ok && uid != "" {
		return uid, nil
	}
	return "", errUsrNotFoundInCtx
}
