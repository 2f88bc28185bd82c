package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keshevplus/leadhub/internal/application/auth/usecases"
	"github.com/keshevplus/leadhub/internal/interfaces/http/middleware"
	"github.com/keshevplus/leadhub/internal/shared/errors"
	"github.com/keshevplus/leadhub/internal/shared/logger"
	"github.com/keshevplus/leadhub/internal/shared/utils"
)

type Handler struct {
	loginUC        usecases.LoginExecutor
	logoutUC       usecases.LogoutExecutor
	currentAdminUC usecases.GetCurrentAdminExecutor
	requestResetUC usecases.RequestPasswordResetExecutor
	resetUC        usecases.ResetPasswordExecutor
	logger         logger.Interface
}

func NewHandler(
	loginUC usecases.LoginExecutor,
	logoutUC usecases.LogoutExecutor,
	currentAdminUC usecases.GetCurrentAdminExecutor,
	requestResetUC usecases.RequestPasswordResetExecutor,
	resetUC usecases.ResetPasswordExecutor,
	logger logger.Interface,
) *Handler {
	return &Handler{
		loginUC:        loginUC,
		logoutUC:       logoutUC,
		currentAdminUC: currentAdminUC,
		requestResetUC: requestResetUC,
		resetUC:        resetUC,
		logger:         logger,
	}
}

// Login handles POST /auth/login
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Admin credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, errors.NewInvalidCredentialsError())
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: result.Token, User: toAdminUser(result.Admin)})
}

// Logout handles POST /auth/logout
// @Summary Admin logout
// @Tags auth
// @Produce json
// @Security AuthToken
// @Success 200 {object} MessageResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		utils.RespondStatus(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	if err := h.logoutUC.Execute(c.Request.Context(), adminID); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// Me handles GET /auth/me
// @Summary Current admin
// @Tags auth
// @Produce json
// @Security AuthToken
// @Success 200 {object} MeResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		utils.RespondStatus(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	admin, err := h.currentAdminUC.Execute(c.Request.Context(), adminID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMeResponse(admin))
}

// RequestReset handles POST /auth/request-reset
// @Summary Request a password reset email
// @Description Always answers 200 so the response does not reveal which emails belong to admins
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RequestResetRequest true "Admin email"
// @Success 200 {object} MessageResponse
// @Router /auth/request-reset [post]
func (h *Handler) RequestReset(c *gin.Context) {
	var req RequestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, errors.NewValidationError("email is required"))
		return
	}

	if err := h.requestResetUC.Execute(c.Request.Context(), usecases.RequestPasswordResetCommand{Email: req.Email}); err != nil {
		h.logger.Warnw("password reset request failed", "error", err)
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "If that email belongs to an admin, a reset link has been sent"})
}

// ResetPassword handles POST /auth/reset-password
// @Summary Set a new password with a reset token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} utils.APIResponse
// @Router /auth/reset-password [post]
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, errors.NewValidationError("token and password are required"))
		return
	}

	if err := h.resetUC.Execute(c.Request.Context(), usecases.ResetPasswordCommand{
		Token:    req.Token,
		Password: req.Password,
	}); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Password has been reset"})
}
