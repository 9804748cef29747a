package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"github.com/warekit/warestock/internal/domain"
	"github.com/warekit/warestock/internal/webserver"
)

func registerInvoiceRoutes() {
	webserver.ApiGET("/crm/invoices", listInvoices)
	webserver.ApiGET("/crm/invoices/:id", getInvoice)
	webserver.ApiGET("/crm/invoices/stats", invoiceStats)
	webserver.ApiGET("/crm/invoices/export", exportInvoicesCsv)
	webserver.ApiGET("/crm/products/export", exportProductsCsv)
}

// filterInvoices applies the shared client/start/end query filters.
func filterInvoices(c echo.Context) ([]*domain.Invoice, error) {
	svc := GetService(c)
	var (
		rows []*domain.Invoice
		err  error
	)
	if clientID := strings.TrimSpace(c.QueryParam("client_id")); clientID != "" {
		rows, err = svc.InvoicesForClient(c.Request().Context(), clientID)
	} else {
		rows, err = svc.Invoices(c.Request().Context())
	}
	if err != nil {
		return nil, err
	}

	var start, end time.Time
	if s := strings.TrimSpace(c.QueryParam("start")); s != "" {
		if start, err = dateparse.ParseLocal(s); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid start time: "+s)
		}
	}
	if s := strings.TrimSpace(c.QueryParam("end")); s != "" {
		if end, err = dateparse.ParseLocal(s); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid end time: "+s)
		}
	}
	if start.IsZero() && end.IsZero() {
		return rows, nil
	}

	filtered := rows[:0]
	for _, inv := range rows {
		if !start.IsZero() && inv.CreatedAt.Before(start) {
			continue
		}
		if !end.IsZero() && inv.CreatedAt.After(end) {
			continue
		}
		filtered = append(filtered, inv)
	}
	return filtered, nil
}

func listInvoices(c echo.Context) error {
	page, pageSize := parsePagination(c)
	rows, err := filterInvoices(c)
	if err != nil {
		if he, isHTTP := err.(*echo.HTTPError); isHTTP {
			return fail(c, he.Code, "INVALID_REQUEST", he.Message.(string), nil)
		}
		return failDomain(c, err)
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

func getInvoice(c echo.Context) error {
	inv, err := GetService(c).GetInvoice(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failDomain(c, err)
	}
	return ok(c, inv)
}

// invoiceStats summarizes invoice totals over the filtered set.
func invoiceStats(c echo.Context) error {
	rows, err := filterInvoices(c)
	if err != nil {
		if he, isHTTP := err.(*echo.HTTPError); isHTTP {
			return fail(c, he.Code, "INVALID_REQUEST", he.Message.(string), nil)
		}
		return failDomain(c, err)
	}

	sum := decimal.Zero
	totals := make([]float64, 0, len(rows))
	for _, inv := range rows {
		sum = sum.Add(inv.Total)
		totals = append(totals, inv.Total.InexactFloat64())
	}

	result := map[string]interface{}{
		"count": len(rows),
		"sum":   sum,
	}
	if len(totals) > 0 {
		mean, _ := stats.Mean(totals)
		median, _ := stats.Median(totals)
		max, _ := stats.Max(totals)
		min, _ := stats.Min(totals)
		result["mean"] = mean
		result["median"] = median
		result["max"] = max
		result["min"] = min
	}
	return ok(c, result)
}

func exportInvoicesCsv(c echo.Context) error {
	rows, err := filterInvoices(c)
	if err != nil {
		if he, isHTTP := err.(*echo.HTTPError); isHTTP {
			return fail(c, he.Code, "INVALID_REQUEST", he.Message.(string), nil)
		}
		return failDomain(c, err)
	}
	out, err := gocsv.MarshalString(rows)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_FAILED", "CSV export failed", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="invoices.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(out))
}

func exportProductsCsv(c echo.Context) error {
	rows, err := GetService(c).ListProducts(c.Request().Context())
	if err != nil {
		return failDomain(c, err)
	}
	out, err := gocsv.MarshalString(rows)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_FAILED", "CSV export failed", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(out))
}
