package controllers

import (
	"errors"

	"delivery-backend/pkg/resp"
	"delivery-backend/services"

	"github.com/gin-gonic/gin"
)

// แปลง error จาก service layer เป็น HTTP status เดียวกันทุก controller
func writeServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		resp.ValidationFailed(c, ve.Fields)
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, "not found")
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, "forbidden")
	case errors.Is(err, services.ErrConflict):
		resp.Conflict(c, "invalid status transition")
	default:
		resp.ServerError(c, err)
	}
}
