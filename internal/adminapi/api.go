package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/warekit/warestock/internal/app"
	"github.com/warekit/warestock/internal/domain"
	"github.com/warekit/warestock/internal/warehouse"
	"github.com/warekit/warestock/internal/webserver"
)

// RegisterRoutes wires every admin API route. Call once after webserver.Init.
func RegisterRoutes() {
	registerProductRoutes()
	registerClientRoutes()
	registerWishlistRoutes()
	registerWaitlistRoutes()
	registerOrderRoutes()
	registerInvoiceRoutes()
	registerSnapshotRoutes()
}

// GetAppContext pulls the application context injected by the webserver
// middleware.
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(webserver.AppContextKey).(app.AppContext)
}

// GetService pulls the warehouse service.
func GetService(c echo.Context) *warehouse.Service {
	return GetAppContext(c).Service()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": data,
	})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": message,
		"detail":  detail,
	})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":      rows,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	pageSize = 20
	if ps, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

// failDomain maps warehouse error kinds onto HTTP statuses.
func failDomain(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", err.Error())
	case errors.Is(err, domain.ErrClientNotFound):
		return fail(c, http.StatusNotFound, "CLIENT_NOT_FOUND", "Client not found", err.Error())
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return fail(c, http.StatusNotFound, "INVOICE_NOT_FOUND", "Invoice not found", err.Error())
	case errors.Is(err, domain.ErrEntryNotFound):
		return fail(c, http.StatusNotFound, "ENTRY_NOT_FOUND", "Entry not found", err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		return fail(c, http.StatusBadRequest, "INVALID_QUANTITY", "Quantity must be positive", err.Error())
	case errors.Is(err, domain.ErrInvalidPrice):
		return fail(c, http.StatusBadRequest, "INVALID_PRICE", "Price must not be negative", err.Error())
	case errors.Is(err, domain.ErrDuplicateEntry):
		return fail(c, http.StatusConflict, "DUPLICATE_ENTRY", "Entry already exists", err.Error())
	case errors.Is(err, domain.ErrAvailabilityChanged):
		return fail(c, http.StatusConflict, "AVAILABILITY_CHANGED", "Stock changed before commit, nothing applied", err.Error())
	case errors.Is(err, domain.ErrInsufficientStock):
		return fail(c, http.StatusConflict, "INSUFFICIENT_STOCK", "Insufficient stock", err.Error())
	default:
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed", err.Error())
	}
}
