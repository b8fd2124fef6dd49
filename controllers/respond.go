package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nrj111/foodgram-backend/services"
	"github.com/nrj111/foodgram-backend/storage"
	"github.com/nrj111/foodgram-backend/utils"
)

// respondError maps service and storage errors onto HTTP responses. The
// original error is logged server-side; clients only ever see the
// message, never a stack or driver detail.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": validationMessage(err)})
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email or password"})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	case errors.Is(err, utils.ErrMissingSecret):
		log.Error("JWT secret is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server misconfigured: JWT secret not set"})
	default:
		log.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func validationMessage(err error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, services.ErrValidation.Error()+": "); ok {
		return rest
	}
	return msg
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
