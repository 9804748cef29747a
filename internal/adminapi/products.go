package adminapi

import (
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/warekit/warestock/internal/domain"
	"github.com/warekit/warestock/internal/webserver"
)

type productPayload struct {
	Name      string          `json:"name" validate:"required,min=1,max=200"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

func registerProductRoutes() {
	webserver.ApiGET("/crm/products", listProducts)
	webserver.ApiGET("/crm/products/:id", getProduct)
	webserver.ApiPOST("/crm/products", createProduct)
	webserver.ApiPUT("/crm/products/:id", updateProduct)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	q := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))
	sortField := strings.TrimSpace(c.QueryParam("sort"))
	descending := strings.EqualFold(strings.TrimSpace(c.QueryParam("order")), "DESC")

	rows, err := GetService(c).ListProducts(c.Request().Context())
	if err != nil {
		return failDomain(c, err)
	}

	if q != "" {
		filtered := rows[:0]
		for _, p := range rows {
			if strings.Contains(strings.ToLower(p.Name), q) {
				filtered = append(filtered, p)
			}
		}
		rows = filtered
	}

	switch sortField {
	case "name":
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	case "unit_price":
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].UnitPrice.LessThan(rows[j].UnitPrice) })
	case "quantity":
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Quantity < rows[j].Quantity })
	default:
		// registration order
	}
	if descending {
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
	}

	total := int64(len(rows))
	start := (page - 1) * pageSize
	if start > len(rows) {
		start = len(rows)
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return paged(c, rows[start:end], total, page, pageSize)
}

func getProduct(c echo.Context) error {
	p, err := GetService(c).GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}

	p, err := GetService(c).AddProduct(c.Request().Context(), payload.Name, payload.UnitPrice, payload.Quantity)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, p)
}

// updateProduct edits name and unit price. Quantity is not editable
// here, stock moves only through order processing and supply.
func updateProduct(c echo.Context) error {
	svc := GetService(c)
	p, err := svc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failDomain(c, err)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if name := strings.TrimSpace(payload.Name); name != "" {
		p.Name = name
	}
	if payload.UnitPrice.IsNegative() {
		return failDomain(c, domain.ErrInvalidPrice)
	}
	p.UnitPrice = payload.UnitPrice

	if err := svc.Store().Products().Update(c.Request().Context(), p); err != nil {
		return failDomain(c, err)
	}
	return ok(c, p)
}
