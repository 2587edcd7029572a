package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arklim/contact-platform/internal/transport/http/middleware"
	"github.com/arklim/contact-platform/internal/usecase"
)

const (
	defaultSearchPage = 1
	defaultSearchSize = 10
)

// ContactHandler exposes the contact CRUD and search endpoints.
type ContactHandler struct {
	contacts *usecase.ContactService
}

// NewContactHandler constructs ContactHandler.
func NewContactHandler(contacts *usecase.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// RegisterRoutes binds contact routes behind the auth guard.
func (h *ContactHandler) RegisterRoutes(api *gin.RouterGroup, auth gin.HandlerFunc) {
	api.POST("/contacts", auth, h.create)
	api.GET("/contacts", auth, h.search)
	api.GET("/contacts/:contactId", auth, h.get)
	api.PUT("/contacts/:contactId", auth, h.update)
	api.DELETE("/contacts/:contactId", auth, h.remove)
}

func (h *ContactHandler) create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Errors: "unauthorized"})
		return
	}

	var input usecase.CreateContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}

	resource, err := h.contacts.Create(c.Request.Context(), user, input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: resource})
}

func (h *ContactHandler) get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Errors: "unauthorized"})
		return
	}

	id, ok := pathID(c, "contactId")
	if !ok {
		return
	}

	resource, err := h.contacts.Get(c.Request.Context(), user, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: resource})
}

func (h *ContactHandler) update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Errors: "unauthorized"})
		return
	}

	id, ok := pathID(c, "contactId")
	if !ok {
		return
	}

	var input usecase.UpdateContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}
	input.ID = id

	resource, err := h.contacts.Update(c.Request.Context(), user, input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: resource})
}

func (h *ContactHandler) remove(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Errors: "unauthorized"})
		return
	}

	id, ok := pathID(c, "contactId")
	if !ok {
		return
	}

	if err := h.contacts.Remove(c.Request.Context(), user, id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: "OK"})
}

func (h *ContactHandler) search(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Errors: "unauthorized"})
		return
	}

	input := usecase.SearchContactsInput{
		Name:  c.Query("name"),
		Email: c.Query("email"),
		Phone: c.Query("phone"),
	}

	page, ok := queryInt(c, "page", defaultSearchPage)
	if !ok {
		return
	}
	size, ok := queryInt(c, "size", defaultSearchSize)
	if !ok {
		return
	}
	input.Page = page
	input.Size = size

	result, err := h.contacts.Search(c.Request.Context(), user, input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, PageResponse{Data: result.Data, Paging: result.Paging})
}

// queryInt parses an optional integer query parameter, falling back to
// the default when absent. An explicitly supplied value passes through
// unchanged so the service can reject out-of-range input.
func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		writeBadRequest(c, name+" must be an integer")
		return 0, false
	}
	return value, true
}
