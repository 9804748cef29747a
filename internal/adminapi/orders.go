package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/warekit/warestock/internal/warehouse"
	"github.com/warekit/warestock/internal/webserver"
)

type orderDecisionPayload struct {
	ProductID string `json:"product_id" validate:"required"`
	Action    string `json:"action" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type processOrderPayload struct {
	ClientID  string                 `json:"client_id" validate:"required"`
	Decisions []orderDecisionPayload `json:"decisions"`
	Confirm   bool                   `json:"confirm"`
}

type supplyDecisionPayload struct {
	ClientID string `json:"client_id" validate:"required"`
	Action   string `json:"action" validate:"required"`
	Quantity int    `json:"quantity"`
}

type supplyPayload struct {
	Quantity  int                     `json:"quantity" validate:"required,gt=0"`
	Decisions []supplyDecisionPayload `json:"decisions"`
}

type orderItemView struct {
	warehouse.ItemResult
	Error string `json:"error,omitempty"`
}

type orderResultView struct {
	Committed bool                 `json:"committed"`
	Invoice   interface{}          `json:"invoice,omitempty"`
	Items     []orderItemView      `json:"items"`
	Plan      *warehouse.OrderPlan `json:"plan"`
}

type supplyEntryView struct {
	warehouse.SupplyEntryResult
	Error string `json:"error,omitempty"`
}

type supplyResultView struct {
	ProductID string            `json:"product_id"`
	Added     int               `json:"added"`
	Entries   []supplyEntryView `json:"entries"`
}

func registerOrderRoutes() {
	webserver.ApiPOST("/crm/orders/process", processOrder)
	webserver.ApiPOST("/crm/products/:id/supply", supplyProduct)
}

func parseOrderAction(s string) (warehouse.OrderAction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skip":
		return warehouse.OrderSkip, true
	case "remove":
		return warehouse.OrderRemove, true
	case "requested":
		return warehouse.OrderRequested, true
	case "quantity":
		return warehouse.OrderQuantity, true
	}
	return warehouse.OrderSkip, false
}

func parseSupplyAction(s string) (warehouse.SupplyAction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "leave":
		return warehouse.SupplyLeave, true
	case "existing":
		return warehouse.SupplyExisting, true
	case "quantity":
		return warehouse.SupplyQuantity, true
	}
	return warehouse.SupplyLeave, false
}

// processOrder runs one fulfillment pass over the client's wishlist. The
// request body scripts every decision the interactive console would ask
// for; confirm=false dry-runs the plan without touching state.
func processOrder(c echo.Context) error {
	var payload processOrderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order request", err.Error())
	}
	if strings.TrimSpace(payload.ClientID) == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "client_id is required", nil)
	}

	decider := &warehouse.ScriptedOrderDecider{
		Decisions: make(map[string]warehouse.OrderDecision, len(payload.Decisions)),
		Confirmed: payload.Confirm,
	}
	for _, d := range payload.Decisions {
		action, known := parseOrderAction(d.Action)
		if !known {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown order action "+d.Action, nil)
		}
		decider.Decisions[d.ProductID] = warehouse.OrderDecision{Action: action, Quantity: d.Quantity}
	}

	result, err := GetService(c).ProcessOrder(c.Request().Context(), payload.ClientID, decider)
	if err != nil {
		return failDomain(c, err)
	}

	view := orderResultView{
		Committed: result.Committed,
		Items:     make([]orderItemView, 0, len(result.Items)),
		Plan:      result.Plan,
	}
	if result.Invoice != nil {
		view.Invoice = result.Invoice
	}
	for _, it := range result.Items {
		v := orderItemView{ItemResult: it}
		if it.Err != nil {
			v.Error = warehouse.DescribeItemError(it.Err)
		}
		view.Items = append(view.Items, v)
	}
	return ok(c, view)
}

// supplyProduct registers incoming stock and drains the product waitlist
// with scripted per-client decisions.
func supplyProduct(c echo.Context) error {
	var payload supplyPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse supply request", err.Error())
	}

	decider := &warehouse.ScriptedSupplyDecider{
		Decisions: make(map[string]warehouse.SupplyDecision, len(payload.Decisions)),
	}
	for _, d := range payload.Decisions {
		action, known := parseSupplyAction(d.Action)
		if !known {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown supply action "+d.Action, nil)
		}
		decider.Decisions[d.ClientID] = warehouse.SupplyDecision{Action: action, Quantity: d.Quantity}
	}

	result, err := GetService(c).SupplyProduct(c.Request().Context(), c.Param("id"), payload.Quantity, decider)
	if err != nil {
		return failDomain(c, err)
	}

	view := supplyResultView{
		ProductID: result.ProductID,
		Added:     result.Added,
		Entries:   make([]supplyEntryView, 0, len(result.Entries)),
	}
	for _, e := range result.Entries {
		v := supplyEntryView{SupplyEntryResult: e}
		if e.Err != nil {
			v.Error = warehouse.DescribeItemError(e.Err)
		}
		view.Entries = append(view.Entries, v)
	}
	return ok(c, view)
}
