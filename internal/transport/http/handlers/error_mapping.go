package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arklim/contact-platform/internal/usecase"
	"github.com/arklim/contact-platform/internal/validation"
)

// writeError converts the domain error taxonomy into the HTTP error
// envelope. Anything outside the taxonomy maps to an opaque 500; no
// internal detail ever leaks to the client.
func writeError(c *gin.Context, err error) {
	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Errors: vErr.Fields})
	case errors.Is(err, usecase.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, ErrorResponse{Errors: usecase.ErrUsernameTaken.Error()})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Errors: usecase.ErrInvalidCredentials.Error()})
	case errors.Is(err, usecase.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Errors: usecase.ErrUnauthorized.Error()})
	case errors.Is(err, usecase.ErrContactNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Errors: usecase.ErrContactNotFound.Error()})
	case errors.Is(err, usecase.ErrAddressNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Errors: usecase.ErrAddressNotFound.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Errors: "internal server error"})
	}
}

func writeBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Errors: message})
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		writeBadRequest(c, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
