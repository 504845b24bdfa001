package controllers

import (
	"errors"
	"log"
	"net/http"

	"pg-backend/services"
	"pg-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP. Unexpected errors
// become a generic 500; the detail stays in the server log.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, services.ErrInvalidArgument):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.JSONError(c, http.StatusConflict, err.Error())
	default:
		log.Printf("❌ internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error")
	}
}
