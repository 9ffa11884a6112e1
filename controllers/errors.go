package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"jmt-archery-backend/services"
)

// statusFor memetakan error service ke kode HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidArgument),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrPayloadTooLarge),
		errors.Is(err, services.ErrUnsupportedMediaType):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyExists),
		errors.Is(err, services.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, services.ErrUpstream),
		errors.Is(err, services.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError menulis error sebagai JSON. Detail error 5xx hanya dicatat
// di log server.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	switch status {
	case http.StatusInternalServerError:
		log.Printf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
		msg = "Internal server error"
	case http.StatusServiceUnavailable:
		log.Printf("⚠️ %s %s: %v", c.Request.Method, c.FullPath(), err)
		msg = "Service temporarily unavailable, please retry"
	}
	c.JSON(status, gin.H{"success": false, "error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}
