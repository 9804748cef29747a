package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/warekit/warestock/internal/webserver"
)

type wishItemPayload struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

func registerWishlistRoutes() {
	webserver.ApiGET("/crm/clients/:id/wishlist", listWishlist)
	webserver.ApiPOST("/crm/clients/:id/wishlist", addWishItem)
	webserver.ApiDELETE("/crm/clients/:id/wishlist/:productId", removeWishItem)
}

func listWishlist(c echo.Context) error {
	items, err := GetService(c).Wishlist(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, items)
}

func addWishItem(c echo.Context) error {
	var payload wishItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse wish item", err.Error())
	}
	item, err := GetService(c).AddToWishlist(c.Request().Context(), c.Param("id"), payload.ProductID, payload.Quantity)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, item)
}

func removeWishItem(c echo.Context) error {
	err := GetService(c).RemoveFromWishlist(c.Request().Context(), c.Param("id"), c.Param("productId"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, nil)
}
