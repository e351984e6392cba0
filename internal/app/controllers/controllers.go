package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/studioclass/internal/app/models/dto"
	"github.com/emre/studioclass/internal/pkg/helpers"
)

// parseIDParam reads an int64 path parameter. On failure it writes the
// error response and returns false.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// parseDateParam reads a YYYY-MM-DD path parameter. On failure it writes
// the error response and returns false.
func parseDateParam(ctx *gin.Context, name string) (time.Time, bool) {
	date, err := helpers.ParseDate(ctx.Param(name))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails(name + " must be a YYYY-MM-DD date")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return time.Time{}, false
	}
	return date, true
}

// parseDateQuery reads a YYYY-MM-DD query parameter, falling back to the
// given default when absent.
func parseDateQuery(ctx *gin.Context, name string, fallback time.Time) (time.Time, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback, true
	}
	date, err := helpers.ParseDate(raw)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails(name + " must be a YYYY-MM-DD date")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return time.Time{}, false
	}
	return date, true
}

// bindJSON binds the request body, writing the validation response on
// failure.
func bindJSON(ctx *gin.Context, obj interface{}) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}
