package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warekit/warestock/internal/domain"
	"github.com/warekit/warestock/pkg/common"
)

// ProcessOrder resolves one client's wishlist against current stock. Per wish
// item, in insertion order, the decider picks remove / order requested /
// order n / skip; shortfalls become provisional backorders. Nothing is
// applied until the decider confirms the assembled plan, and then everything
// is applied in one atomic commit: at most one invoice, stock and balance
// updates, wishlist removals and waitlist enqueues.
//
// Per-item failures (invalid quantity, zero fulfillable stock, vanished
// product) are reported in the result and do not stop the loop. Whole-call
// failures (unknown client, availability changed at commit) abort with no
// state change.
func (s *Service) ProcessOrder(ctx context.Context, clientID string, decider OrderDecider) (*OrderResult, error) {
	client, err := s.store.Clients().GetByID(ctx, clientID)
	if err != nil {
		return nil, errors.Wrap(err, "process order")
	}

	items, err := s.store.Wishlists().ListByClient(ctx, clientID)
	if err != nil {
		return nil, errors.Wrap(err, "process order")
	}

	plan := &OrderPlan{ClientID: clientID, Total: decimal.Zero}
	result := &OrderResult{Plan: plan}

	for _, item := range items {
		product, err := s.store.Products().GetByID(ctx, item.ProductID)
		if err != nil {
			result.Items = append(result.Items, ItemResult{
				ProductID: item.ProductID,
				Requested: item.Quantity,
				Err:       domain.ErrProductNotFound,
			})
			continue
		}

		decision := decider.DecideItem(WishlistLine{Product: *product, Requested: item.Quantity})
		switch decision.Action {
		case OrderSkip:
			continue

		case OrderRemove:
			plan.Removals = append(plan.Removals, product.ID)

		case OrderRequested, OrderQuantity:
			requested := item.Quantity
			if decision.Action == OrderQuantity {
				requested = decision.Quantity
			}
			ir := ItemResult{ProductID: product.ID, Requested: requested}
			if requested <= 0 {
				ir.Err = domain.ErrInvalidQuantity
				result.Items = append(result.Items, ir)
				continue
			}

			fulfilled := requested
			if product.Quantity < fulfilled {
				fulfilled = product.Quantity
			}
			shortfall := requested - fulfilled
			ir.Fulfilled, ir.Shortfall = fulfilled, shortfall

			if fulfilled == 0 {
				ir.Err = domain.ErrInsufficientStock
				result.Items = append(result.Items, ir)
				continue
			}

			amount := product.UnitPrice.Mul(decimal.NewFromInt(int64(fulfilled)))
			plan.Lines = append(plan.Lines, OrderLine{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    fulfilled,
				UnitPrice:   product.UnitPrice,
				Amount:      amount,
			})
			plan.Total = plan.Total.Add(amount)
			plan.Removals = append(plan.Removals, product.ID)
			if shortfall > 0 {
				plan.Backorders = append(plan.Backorders, Backorder{ProductID: product.ID, Quantity: shortfall})
			}
			result.Items = append(result.Items, ir)
		}
	}

	if plan.Empty() {
		return result, nil
	}

	if !decider.Confirm(plan) {
		zap.L().Info("order canceled at confirmation",
			zap.String("client_id", clientID),
			zap.Int("lines", len(plan.Lines)))
		return result, nil
	}

	var invoice *domain.Invoice
	err = s.store.Atomic(ctx, func(tx Store) error {
		// Availability re-check: confirmation may have been delayed.
		for _, line := range plan.Lines {
			product, err := tx.Products().GetByID(ctx, line.ProductID)
			if err != nil {
				return errors.Wrapf(domain.ErrAvailabilityChanged, "product %s", line.ProductID)
			}
			if product.Quantity < line.Quantity {
				return errors.Wrapf(domain.ErrAvailabilityChanged,
					"product %s has %d on hand, need %d", line.ProductID, product.Quantity, line.Quantity)
			}
			product.Quantity -= line.Quantity
			if err := tx.Products().Update(ctx, product); err != nil {
				return err
			}
		}

		if len(plan.Lines) > 0 {
			cl, err := tx.Clients().GetByID(ctx, clientID)
			if err != nil {
				return err
			}
			cl.Balance = cl.Balance.Sub(plan.Total)
			if err := tx.Clients().Update(ctx, cl); err != nil {
				return err
			}

			invoice = newInvoice(clientID, plan.Lines)
			if err := tx.Invoices().Append(ctx, invoice); err != nil {
				return err
			}
		}

		for _, productID := range plan.Removals {
			if err := tx.Wishlists().Remove(ctx, clientID, productID); err != nil {
				return err
			}
		}

		for _, bo := range plan.Backorders {
			entry, err := tx.Waitlists().Get(ctx, bo.ProductID, clientID)
			switch {
			case err == nil:
				// Existing backorder for this pair: merge quantities.
				entry.Quantity += bo.Quantity
				if err := tx.Waitlists().Update(ctx, entry); err != nil {
					return err
				}
			case errors.Is(err, domain.ErrEntryNotFound):
				if err := tx.Waitlists().Add(ctx, &domain.WaitEntry{
					ID:        common.UUIDint64(),
					ProductID: bo.ProductID,
					ClientID:  clientID,
					Quantity:  bo.Quantity,
					CreatedAt: time.Now(),
				}); err != nil {
					return err
				}
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	result.Committed = true
	result.Invoice = invoice

	if invoice != nil {
		zap.L().Info("order committed",
			zap.String("client", client.Name),
			zap.String("client_id", clientID),
			zap.String("invoice_id", invoice.ID),
			zap.String("total", invoice.Total.String()))
		s.publish(TopicInvoiceCreated, InvoiceCreatedEvent{Invoice: invoice, Source: "order"})
	}
	return result, nil
}

// DescribeItemError renders a per-item error kind for UI surfaces.
func DescribeItemError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient stock"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid quantity"
	case errors.Is(err, domain.ErrProductNotFound):
		return "product not found"
	case errors.Is(err, domain.ErrClientNotFound):
		return "client not found"
	default:
		return fmt.Sprintf("failed: %v", err)
	}
}
