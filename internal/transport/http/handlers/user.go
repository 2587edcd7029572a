package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arklim/contact-platform/internal/transport/http/middleware"
	"github.com/arklim/contact-platform/internal/usecase"
)

// UserHandler exposes registration, login, and profile endpoints.
type UserHandler struct {
	users *usecase.UserService
}

// NewUserHandler constructs UserHandler.
func NewUserHandler(users *usecase.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes binds user routes; register and login are public, the
// /current endpoints sit behind the auth guard.
func (h *UserHandler) RegisterRoutes(api *gin.RouterGroup, auth gin.HandlerFunc) {
	api.POST("/users", h.register)
	api.POST("/users/login", h.login)
	api.GET("/users/current", auth, h.current)
	api.PATCH("/users/current", auth, h.update)
	api.DELETE("/users/current", auth, h.logout)
}

func (h *UserHandler) register(c *gin.Context) {
	var input usecase.RegisterUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}

	resource, err := h.users.Register(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: resource})
}

func (h *UserHandler) login(c *gin.Context) {
	var input usecase.LoginUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}

	resource, err := h.users.Login(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: resource})
}

func (h *UserHandler) current(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Errors: "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: h.users.Current(user)})
}

func (h *UserHandler) update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Errors: "unauthorized"})
		return
	}

	var input usecase.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}

	resource, err := h.users.Update(c.Request.Context(), user, input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: resource})
}

func (h *UserHandler) logout(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Errors: "unauthorized"})
		return
	}

	if err := h.users.Logout(c.Request.Context(), user); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: "OK"})
}
