package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/galexandre/showtrack/internal/apperrors"
	"github.com/galexandre/showtrack/internal/dto"
)

// respondError translates a service error into an HTTP response by its
// kind. Internal errors never leak their cause to the client.
func respondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)

	switch kind {
	case apperrors.KindValidation:
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
	case apperrors.KindConflict:
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:   "Conflict",
			Message: err.Error(),
		})
	case apperrors.KindNotFound:
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not found",
			Message: err.Error(),
		})
	case apperrors.KindAuth:
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "something went wrong",
		})
	}
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Validation failed",
		Message: err.Error(),
	})
}
