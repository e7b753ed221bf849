package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/galexandre/showtrack/internal/dto"
	"github.com/galexandre/showtrack/internal/service"
)

// PasswordHandler handles password recovery requests
type PasswordHandler struct {
	resetService service.PasswordResetService
}

// NewPasswordHandler creates a new password handler
func NewPasswordHandler(resetService service.PasswordResetService) *PasswordHandler {
	return &PasswordHandler{
		resetService: resetService,
	}
}

// Recover mails a recovery code to the account owning the given email
func (h *PasswordHandler) Recover(c *gin.Context) {
	var req dto.RecoverPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.resetService.SendRecoveryCode(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "recovery code sent",
	})
}

// Verify consumes a recovery code and sets the new password
func (h *PasswordHandler) Verify(c *gin.Context) {
	var req dto.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.resetService.VerifyCode(c.Request.Context(), req.Code, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "password updated",
	})
}

// Resend mails another recovery code; prior codes stay valid
func (h *PasswordHandler) Resend(c *gin.Context) {
	var req dto.RecoverPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.resetService.ResendCode(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "recovery code sent",
	})
}
