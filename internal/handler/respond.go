package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printcraft/printcraft-api/internal/model"
	"github.com/printcraft/printcraft-api/internal/repository"
	"github.com/printcraft/printcraft-api/internal/service"
)

// All responses share the {success, data|message|error} envelope.

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": true, "message": msg})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// failFor maps service errors to HTTP statuses; anything unrecognized is a
// 500 with the detail suppressed.
func failFor(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCartItemNotFound),
		errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrVersionNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrDesignNotFound),
		errors.Is(err, service.ErrSuggestionNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, repository.ErrNotFound):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrProjectAccessDenied),
		errors.Is(err, service.ErrOrderAccessDenied),
		errors.Is(err, service.ErrDesignAccessDenied),
		errors.Is(err, service.ErrCannotChangeSuperAdmin):
		fail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidDiscount),
		errors.Is(err, service.ErrInvalidStatusChange),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrOrderNotPending),
		errors.Is(err, service.ErrProductInactive),
		errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, model.ErrInvalidCustomization):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, repository.ErrVersionConflict):
		fail(c, http.StatusConflict, "cart or project was modified concurrently, retry")
	default:
		fail(c, http.StatusInternalServerError, "internal server error")
	}
}
