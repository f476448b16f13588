package utils

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/forgeboard-dev/forgeboard/internal/middleware"
	"github.com/forgeboard-dev/forgeboard/internal/types"
	"github.com/gin-gonic/gin"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

// GetProjectID parses the numeric project id path parameter.
func GetProjectID(ctx *gin.Context) (uint, error) {
	return uintParam(ctx, "project_id")
}

// GetUserIDParam parses the numeric user id path parameter.
func GetUserIDParam(ctx *gin.Context) (uint, error) {
	return uintParam(ctx, "user_id")
}

func uintParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, errors.New(name + " is required")
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return 0, errors.New("invalid " + name)
	}

	return uint(id), nil
}
