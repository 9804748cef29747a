package adminapi

import (
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/warekit/warestock/internal/webserver"
)

type clientPayload struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type balancePayload struct {
	Balance decimal.Decimal `json:"balance"`
}

func registerClientRoutes() {
	webserver.ApiGET("/crm/clients", listClients)
	webserver.ApiGET("/crm/clients/:id", getClient)
	webserver.ApiPOST("/crm/clients", createClient)
	webserver.ApiPUT("/crm/clients/:id", updateClient)
	webserver.ApiPUT("/crm/clients/:id/balance", setClientBalance)
}

func listClients(c echo.Context) error {
	page, pageSize := parsePagination(c)
	q := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))

	rows, err := GetService(c).ListClients(c.Request().Context())
	if err != nil {
		return failDomain(c, err)
	}

	if q != "" {
		filtered := rows[:0]
		for _, cl := range rows {
			if strings.Contains(strings.ToLower(cl.Name), q) ||
				strings.Contains(strings.ToLower(cl.Phone), q) {
				filtered = append(filtered, cl)
			}
		}
		rows = filtered
	}

	if strings.TrimSpace(c.QueryParam("sort")) == "name" {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
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

func getClient(c echo.Context) error {
	cl, err := GetService(c).GetClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, cl)
}

func createClient(c echo.Context) error {
	var payload clientPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse client", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}

	cl, err := GetService(c).AddClient(c.Request().Context(), payload.Name, payload.Address, payload.Phone)
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, cl)
}

func updateClient(c echo.Context) error {
	svc := GetService(c)
	cl, err := svc.GetClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failDomain(c, err)
	}

	var payload clientPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse client", err.Error())
	}
	if name := strings.TrimSpace(payload.Name); name != "" {
		cl.Name = name
	}
	cl.Address = payload.Address
	cl.Phone = payload.Phone

	if err := svc.Store().Clients().Update(c.Request().Context(), cl); err != nil {
		return failDomain(c, err)
	}
	return ok(c, cl)
}

// setClientBalance overwrites the account balance. Negative values are
// accepted, the account runs on credit.
func setClientBalance(c echo.Context) error {
	var payload balancePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse balance", err.Error())
	}
	svc := GetService(c)
	if err := svc.SetClientBalance(c.Request().Context(), c.Param("id"), payload.Balance); err != nil {
		return failDomain(c, err)
	}
	cl, err := svc.GetClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, cl)
}
