package console

import (
	"strings"

	"github.com/warekit/warestock/internal/warehouse"
)

// orderPrompter asks the operator for one decision per wishlist item and for
// the final confirmation, mirroring the a/b/c menu of the original terminal
// flow.
type orderPrompter struct {
	console *Console
}

func (p *orderPrompter) DecideItem(line warehouse.WishlistLine) warehouse.OrderDecision {
	t := p.console
	t.printf("Item:")
	t.printf("  Product ID: %s", line.Product.ID)
	t.printf("  Product Name: %s", line.Product.Name)
	t.printf("  Product Quantity: %d", line.Requested)
	t.printf("  In Stock: %d", line.Product.Quantity)

	for {
		action, alive := t.prompt("Select an action (a: Remove, b: Order existing quantity, c: Order different quantity, s: Skip)")
		if !alive {
			return warehouse.OrderDecision{Action: warehouse.OrderSkip}
		}
		switch strings.ToLower(action) {
		case "a":
			return warehouse.OrderDecision{Action: warehouse.OrderRemove}
		case "b":
			return warehouse.OrderDecision{Action: warehouse.OrderRequested}
		case "c":
			quantity, alive := t.promptInt("Enter the quantity to order")
			if !alive {
				return warehouse.OrderDecision{Action: warehouse.OrderSkip}
			}
			return warehouse.OrderDecision{Action: warehouse.OrderQuantity, Quantity: quantity}
		case "s":
			return warehouse.OrderDecision{Action: warehouse.OrderSkip}
		default:
			t.printf("Invalid action. Please select a valid action (a, b, c or s).")
		}
	}
}

func (p *orderPrompter) Confirm(plan *warehouse.OrderPlan) bool {
	t := p.console
	t.printf("Order summary:")
	for _, line := range plan.Lines {
		t.printf("  %s x%d @ %s = %s", line.ProductName, line.Quantity, line.UnitPrice, line.Amount)
	}
	for _, bo := range plan.Backorders {
		t.printf("  backorder: product %s x%d", bo.ProductID, bo.Quantity)
	}
	t.printf("Total: %s", plan.Total)

	answer, alive := t.prompt("Do you want to confirm the order? (yes/no)")
	if !alive {
		return false
	}
	return strings.EqualFold(answer, "yes")
}

// supplyPrompter asks the operator what to do for each waitlisted client
// after a stock delivery.
type supplyPrompter struct {
	console *Console
}

func (p *supplyPrompter) DecideEntry(line warehouse.WaitlistLine) warehouse.SupplyDecision {
	t := p.console
	t.printf("Waitlisted client:")
	t.printf("  Client ID: %s", line.Client.ID)
	t.printf("  Client Name: %s", line.Client.Name)
	t.printf("  Backorder Quantity: %d", line.Backorder)
	t.printf("  Available Stock: %d", line.Available)

	for {
		action, alive := t.prompt("Select an action (a: Leave on waitlist, b: Order backorder quantity, c: Order different quantity)")
		if !alive {
			return warehouse.SupplyDecision{Action: warehouse.SupplyLeave}
		}
		switch strings.ToLower(action) {
		case "a":
			return warehouse.SupplyDecision{Action: warehouse.SupplyLeave}
		case "b":
			return warehouse.SupplyDecision{Action: warehouse.SupplyExisting}
		case "c":
			quantity, alive := t.promptInt("Enter the quantity to order")
			if !alive {
				return warehouse.SupplyDecision{Action: warehouse.SupplyLeave}
			}
			return warehouse.SupplyDecision{Action: warehouse.SupplyQuantity, Quantity: quantity}
		default:
			t.printf("Invalid action. Please select a valid action (a, b or c).")
		}
	}
}
