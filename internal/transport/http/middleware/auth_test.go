package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/arklim/contact-platform/internal/core/domain"
	"github.com/arklim/contact-platform/internal/usecase"
)

type stubTokenResolver struct {
	user  *domain.User
	err   error
	calls int
	last  string
}

func (s *stubTokenResolver) ResolveToken(_ context.Context, token string) (*domain.User, error) {
	s.calls++
	s.last = token
	return s.user, s.err
}

func newAuthRouter(resolver TokenResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAuth(resolver), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"errors": "no identity"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": user.Username})
	})
	return router
}

func TestRequireAuth_ValidToken(t *testing.T) {
	resolver := &stubTokenResolver{user: &domain.User{Username: "johndoe", Name: "John Doe"}}
	router := newAuthRouter(resolver)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(TokenHeader, "valid-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resolver.calls != 1 || resolver.last != "valid-token" {
		t.Fatalf("expected one resolve of valid-token, got calls=%d last=%q", resolver.calls, resolver.last)
	}
	if !strings.Contains(rec.Body.String(), "johndoe") {
		t.Fatalf("expected body to carry the resolved username, got %s", rec.Body.String())
	}
}

func TestRequireAuth_MissingToken(t *testing.T) {
	resolver := &stubTokenResolver{err: errors.New("unexpected call: ResolveToken")}
	router := newAuthRouter(resolver)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if resolver.calls != 0 {
		t.Fatalf("expected no resolver call for missing header")
	}
	if !strings.Contains(rec.Body.String(), "unauthorized") {
		t.Fatalf("expected unauthorized error body, got %s", rec.Body.String())
	}
}

func TestRequireAuth_UnknownToken(t *testing.T) {
	resolver := &stubTokenResolver{err: usecase.ErrUnauthorized}
	router := newAuthRouter(resolver)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(TokenHeader, "stale-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuth_ResolverFailure(t *testing.T) {
	resolver := &stubTokenResolver{err: errors.New("db down")}
	router := newAuthRouter(resolver)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(TokenHeader, "valid-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
