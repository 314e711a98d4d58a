package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

var errInternal = errors.New("internal server error")

// respondServiceError maps the service error kinds to HTTP statuses. Anything
// unrecognised is logged and reported as a 500 without details.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrConflict):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrValidation):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		utils.ErrorLogger.WithField("request_id", c.GetString("request_id")).
			Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.RespondError(c, http.StatusInternalServerError, errInternal)
	}
}

// paramID reads a positive numeric path parameter, answering 400 otherwise.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New(name+" must be a positive number"))
		return 0, false
	}
	return uint(id), true
}
