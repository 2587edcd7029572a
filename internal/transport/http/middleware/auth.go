package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arklim/contact-platform/internal/core/domain"
	"github.com/arklim/contact-platform/internal/usecase"
)

// TokenHeader is the fixed request header carrying the opaque session token.
const TokenHeader = "X-API-TOKEN"

const userContextKey = "auth_user"

// errorBody matches the handlers error envelope.
type errorBody struct {
	Errors string `json:"errors"`
}

// TokenResolver maps an opaque session token to its user.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}

// RequireAuth resolves the session token from the request header and
// attaches the user to the request. A missing or unknown token aborts
// with 401 before the handler runs.
func RequireAuth(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Errors: "unauthorized"})
			return
		}

		user, err := resolver.ResolveToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, usecase.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Errors: "unauthorized"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{Errors: "internal server error"})
			return
		}

		c.Set(userContextKey, *user)
		c.Next()
	}
}

// CurrentUser retrieves the identity attached by RequireAuth.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	val, exists := c.Get(userContextKey)
	if !exists {
		return domain.User{}, false
	}

	user, ok := val.(domain.User)
	return user, ok
}
