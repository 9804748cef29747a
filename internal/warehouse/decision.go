package warehouse

import (
	"github.com/shopspring/decimal"

	"github.com/warekit/warestock/internal/domain"
)

// The engines never talk to a terminal. For every wishlist or waitlist item
// they ask a decider for one decision value; the decider may be an
// interactive prompt, an HTTP request body, or a test script.

type OrderAction int

const (
	// OrderSkip leaves the wish item untouched.
	OrderSkip OrderAction = iota
	// OrderRemove drops the item from the wishlist without ordering.
	OrderRemove
	// OrderRequested orders the quantity recorded on the wish item.
	OrderRequested
	// OrderQuantity orders Decision.Quantity instead.
	OrderQuantity
)

type OrderDecision struct {
	Action   OrderAction
	Quantity int
}

type SupplyAction int

const (
	// SupplyLeave keeps the client on the waitlist.
	SupplyLeave SupplyAction = iota
	// SupplyExisting orders the client's full backorder quantity.
	SupplyExisting
	// SupplyQuantity orders Decision.Quantity instead.
	SupplyQuantity
)

type SupplyDecision struct {
	Action   SupplyAction
	Quantity int
}

// WishlistLine is what the order decider sees for one wish item.
type WishlistLine struct {
	Product   domain.Product
	Requested int
}

// WaitlistLine is what the supply decider sees for one backorder entry.
type WaitlistLine struct {
	Client    domain.Client
	Backorder int
	Available int
}

// OrderDecider supplies per-item decisions and the final confirmation for
// ProcessOrder.
type OrderDecider interface {
	DecideItem(line WishlistLine) OrderDecision
	Confirm(plan *OrderPlan) bool
}

// SupplyDecider supplies per-entry decisions for SupplyProduct.
type SupplyDecider interface {
	DecideEntry(line WaitlistLine) SupplyDecision
}

// OrderLine is one provisional invoice line.
type OrderLine struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// Backorder is one provisional waitlist enqueue, applied only on commit.
type Backorder struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderPlan is the provisional state assembled during the decision loop and
// shown to the decider at the confirmation gate. Nothing in it has been
// applied yet.
type OrderPlan struct {
	ClientID   string          `json:"client_id"`
	Lines      []OrderLine     `json:"lines"`
	Removals   []string        `json:"removals"`
	Backorders []Backorder     `json:"backorders"`
	Total      decimal.Decimal `json:"total"`
}

func (p *OrderPlan) Empty() bool {
	return len(p.Lines) == 0 && len(p.Removals) == 0 && len(p.Backorders) == 0
}

// ItemResult reports the outcome for one wish item. Err is one of the
// domain error kinds; processing of other items continues regardless.
type ItemResult struct {
	ProductID string `json:"product_id"`
	Requested int    `json:"requested"`
	Fulfilled int    `json:"fulfilled"`
	Shortfall int    `json:"shortfall"`
	Err       error  `json:"-"`
}

// OrderResult is the overall outcome of one ProcessOrder call.
type OrderResult struct {
	Committed bool            `json:"committed"`
	Invoice   *domain.Invoice `json:"invoice,omitempty"`
	Items     []ItemResult    `json:"items"`
	Plan      *OrderPlan      `json:"plan"`
}

// SupplyEntryResult reports the outcome for one waitlist entry.
type SupplyEntryResult struct {
	ClientID  string          `json:"client_id"`
	Backorder int             `json:"backorder"`
	Ordered   int             `json:"ordered"`
	Invoice   *domain.Invoice `json:"invoice,omitempty"`
	Err       error           `json:"-"`
}

// SupplyResult is the overall outcome of one SupplyProduct call.
type SupplyResult struct {
	ProductID string              `json:"product_id"`
	Added     int                 `json:"added"`
	Entries   []SupplyEntryResult `json:"entries"`
}

// ScriptedOrderDecider resolves decisions from a prepared map keyed by
// product id. Items without a decision are skipped. Used by the admin API
// and tests.
type ScriptedOrderDecider struct {
	Decisions map[string]OrderDecision
	Confirmed bool
}

func (d *ScriptedOrderDecider) DecideItem(line WishlistLine) OrderDecision {
	if dec, ok := d.Decisions[line.Product.ID]; ok {
		return dec
	}
	return OrderDecision{Action: OrderSkip}
}

func (d *ScriptedOrderDecider) Confirm(plan *OrderPlan) bool {
	return d.Confirmed
}

// ScriptedSupplyDecider resolves decisions from a prepared map keyed by
// client id. Entries without a decision are left on the waitlist.
type ScriptedSupplyDecider struct {
	Decisions map[string]SupplyDecision
}

func (d *ScriptedSupplyDecider) DecideEntry(line WaitlistLine) SupplyDecision {
	if dec, ok := d.Decisions[line.Client.ID]; ok {
		return dec
	}
	return SupplyDecision{Action: SupplyLeave}
}
