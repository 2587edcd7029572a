package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arklim/contact-platform/internal/transport/http/middleware"
	"github.com/arklim/contact-platform/internal/usecase"
)

// AddressHandler exposes address endpoints nested under a contact.
type AddressHandler struct {
	addresses *usecase.AddressService
}

// NewAddressHandler constructs AddressHandler.
func NewAddressHandler(addresses *usecase.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// RegisterRoutes binds address routes behind the auth guard.
func (h *AddressHandler) RegisterRoutes(api *gin.RouterGroup, auth gin.HandlerFunc) {
	api.POST("/contacts/:contactId/addresses", auth, h.create)
	api.GET("/contacts/:contactId/addresses", auth, h.list)
	api.GET("/contacts/:contactId/addresses/:addressId", auth, h.get)
	api.PUT("/contacts/:contactId/addresses/:addressId", auth, h.update)
	api.DELETE("/contacts/:contactId/addresses/:addressId", auth, h.remove)
}

func (h *AddressHandler) create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Errors: "unauthorized"})
		return
	}

	contactID, ok := pathID(c, "contactId")
	if !ok {
		return
	}

	var input usecase.CreateAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}
	input.ContactID = contactID

	resource, err := h.addresses.Create(c.Request.Context(), user, input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: resource})
}

func (h *AddressHandler) list(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Errors: "unauthorized"})
		return
	}

	contactID, ok := pathID(c, "contactId")
	if !ok {
		return
	}

	resources, err := h.addresses.List(c.Request.Context(), user, contactID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: resources})
}

func (h *AddressHandler) get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Errors: "unauthorized"})
		return
	}

	input, ok := addressPath(c)
	if !ok {
		return
	}

	resource, err := h.addresses.Get(c.Request.Context(), user, input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: resource})
}

func (h *AddressHandler) update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Errors: "unauthorized"})
		return
	}

	ids, ok := addressPath(c)
	if !ok {
		return
	}

	var input usecase.UpdateAddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		writeBadRequest(c, "invalid request body")
		return
	}
	input.ContactID = ids.ContactID
	input.AddressID = ids.AddressID

	resource, err := h.addresses.Update(c.Request.Context(), user, input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: resource})
}

func (h *AddressHandler) remove(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Errors: "unauthorized"})
		return
	}

	input, ok := addressPath(c)
	if !ok {
		return
	}

	if err := h.addresses.Remove(c.Request.Context(), user, input); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, DataResponse{Data: "OK"})
}

func addressPath(c *gin.Context) (usecase.GetAddressInput, bool) {
	contactID, ok := pathID(c, "contactId")
	if !ok {
		return usecase.GetAddressInput{}, false
	}

	addressID, ok := pathID(c, "addressId")
	if !ok {
		return usecase.GetAddressInput{}, false
	}

	return usecase.GetAddressInput{ContactID: contactID, AddressID: addressID}, true
}
