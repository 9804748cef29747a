package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/warekit/warestock/internal/webserver"
)

type waitEntryPayload struct {
	ClientID string `json:"client_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

func registerWaitlistRoutes() {
	webserver.ApiGET("/crm/products/:id/waitlist", listWaitlist)
	webserver.ApiPOST("/crm/products/:id/waitlist", addWaitEntry)
	webserver.ApiDELETE("/crm/products/:id/waitlist/:clientId", removeWaitEntry)
}

func listWaitlist(c echo.Context) error {
	entries, err := GetService(c).Waitlist(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, entries)
}

func addWaitEntry(c echo.Context) error {
	var payload waitEntryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse wait entry", err.Error())
	}
	entry, err := GetService(c).AddToWaitlist(c.Request().Context(), c.Param("id"), payload.ClientID, payload.Quantity)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, entry)
}

func removeWaitEntry(c echo.Context) error {
	err := GetService(c).RemoveFromWaitlist(c.Request().Context(), c.Param("id"), c.Param("clientId"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, nil)
}
