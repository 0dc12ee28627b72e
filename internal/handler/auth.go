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
	"github.com/lianxu-dev/user-center/pkg/validation"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles account creation
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Register")

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid register request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", validation.TranslateError(err)))
		return
	}

	logger.InfoWithContext(ctx, "Registration attempt").
		String("phone", req.Phone).
		Log()

	token, err := h.authService.Register(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Registration failed").
			String("phone", req.Phone).
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse("Registration failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Login")

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid login request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", validation.TranslateError(err)))
		return
	}

	logger.InfoWithContext(ctx, "Login attempt").
		String("phone", req.Phone).
		Log()

	token, err := h.authService.Login(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Login failed").
			String("phone", req.Phone).
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse("Authentication failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Logout drops the caller's session
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "Logout")

	principal := middleware.CurrentPrincipal(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, constants.BuildErrorResponse("Unauthorized", ""))
		return
	}

	if err := h.authService.Logout(ctx, principal.Phone()); err != nil {
		logger.ErrorWithContext(ctx, "Logout failed").
			String("phone", principal.Phone()).
			Err(err).
			Log()
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse("Logout failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Logged out"))
}

// SendEmailCode delivers a verification code to an email address
func (h *AuthHandler) SendEmailCode(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "SendEmailCode")

	var req dto.EmailCodeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid email address", err.Error()))
		return
	}

	if err := h.authService.SendEmailCode(ctx, req.Email); err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse("Failed to send code", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Verification code sent"))
}

// SendPhoneCode delivers a verification code over SMS
func (h *AuthHandler) SendPhoneCode(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "SendPhoneCode")

	var req dto.PhoneCodeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid phone number", err.Error()))
		return
	}

	if err := h.authService.SendPhoneCode(ctx, req.Phone); err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse("Failed to send code", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Verification code sent"))
}

// VerifyEmailCode consumes an email verification code
func (h *AuthHandler) VerifyEmailCode(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "VerifyEmailCode")

	var req dto.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse("Invalid request format", err.Error()))
		return
	}

	if err := h.authService.VerifyEmailCode(ctx, req.Code, req.Email); err != nil {
		status := apperrors.ToHTTPStatus(err)
		c.JSON(status, constants.BuildErrorResponse("Verification failed", apperrors.GetErrorMessage(err)))
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse("Code verified"))
}
