package controllers

import (
	"errors"
	"net/http"

	"printshop-backend/services"
	"printshop-backend/store"
	"printshop-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondServiceError maps service and store errors onto HTTP statuses.
// resource names the entity in the 404 message.
func respondServiceError(c *gin.Context, log *zap.Logger, err error, resource string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, resource+" not found")
	case errors.Is(err, services.ErrInvalidTransition):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	default:
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
