package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lianxu-dev/user-center/internal/constants"
	"github.com/lianxu-dev/user-center/internal/dto"
	apperrors "github.com/lianxu-dev/user-center/internal/errors"
	"github.com/lianxu-dev/user-center/internal/middleware"
	"github.com/lianxu-dev/user-center/internal/service"
	ctxutil "github.com/lianxu-dev/user-center/pkg/context"
	"github.com/lianxu-dev/user-center/pkg/logger"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Me returns the caller's profile
func (h *UserHandler) Me(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Me")

	principal := middleware.CurrentPrincipal(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", ""))
		return
	}

	profile, err := h.userService.GetByID(ctx, principal.User().ID)
	if err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse("Failed to load profile", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateMe applies profile changes for the caller
func (h *UserHandler) UpdateMe(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateMe")

	principal := middleware.CurrentPrincipal(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", ""))
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid profile update request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	profile, err := h.userService.Update(ctx, principal.User().ID, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Profile update failed").
			Uint("user_id", principal.User().ID).
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse("Update failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, profile)
}
