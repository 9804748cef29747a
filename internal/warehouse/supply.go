package warehouse

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warekit/warestock/internal/domain"
)

// SupplyProduct applies a stock increase, then walks the product's waitlist
// in enqueue order and offers each client the chance to convert their
// backorder into a sale from the new stock. The stock increase itself is
// immediate and unconditional; each fulfilling decision commits atomically on
// its own (waitlist removal, stock decrement, one-line invoice, balance
// decrement).
//
// A fulfilling decision clears the whole waitlist entry even when the ordered
// quantity differs from the backorder. An ordered quantity exceeding current
// on-hand stock is rejected with InsufficientStock and the entry stays;
// stock never goes negative.
func (s *Service) SupplyProduct(ctx context.Context, productID string, quantity int, decider SupplyDecider) (*SupplyResult, error) {
	if quantity <= 0 {
		return nil, errors.Wrapf(domain.ErrInvalidQuantity, "supply %s", productID)
	}

	product, err := s.store.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "supply product")
	}

	product.Quantity += quantity
	if err := s.store.Products().Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "supply product")
	}

	zap.L().Info("stock supplied",
		zap.String("product_id", productID),
		zap.Int("added", quantity),
		zap.Int("on_hand", product.Quantity))
	s.publish(TopicStockSupplied, StockSuppliedEvent{
		ProductID: productID,
		Added:     quantity,
		OnHand:    product.Quantity,
	})

	entries, err := s.store.Waitlists().ListByProduct(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "supply product")
	}

	result := &SupplyResult{ProductID: productID, Added: quantity}
	for _, entry := range entries {
		er := SupplyEntryResult{ClientID: entry.ClientID, Backorder: entry.Quantity}

		client, err := s.store.Clients().GetByID(ctx, entry.ClientID)
		if err != nil {
			er.Err = domain.ErrClientNotFound
			result.Entries = append(result.Entries, er)
			continue
		}

		// Refresh on-hand before each decision; earlier entries in this
		// call may already have consumed stock.
		product, err = s.store.Products().GetByID(ctx, productID)
		if err != nil {
			return result, errors.Wrap(err, "supply product")
		}

		decision := decider.DecideEntry(WaitlistLine{
			Client:    *client,
			Backorder: entry.Quantity,
			Available: product.Quantity,
		})

		switch decision.Action {
		case SupplyLeave:
			// Client stays on the waitlist.

		case SupplyExisting, SupplyQuantity:
			ordered := entry.Quantity
			if decision.Action == SupplyQuantity {
				ordered = decision.Quantity
			}
			if ordered <= 0 {
				// Invalid, no action taken; the entry stays.
				er.Err = domain.ErrInvalidQuantity
				break
			}
			if ordered > product.Quantity {
				er.Err = domain.ErrInsufficientStock
				break
			}

			var invoice *domain.Invoice
			err = s.store.Atomic(ctx, func(tx Store) error {
				if err := tx.Waitlists().Remove(ctx, productID, entry.ClientID); err != nil {
					return err
				}

				p, err := tx.Products().GetByID(ctx, productID)
				if err != nil {
					return err
				}
				if p.Quantity < ordered {
					return errors.Wrapf(domain.ErrAvailabilityChanged, "product %s", productID)
				}
				p.Quantity -= ordered
				if err := tx.Products().Update(ctx, p); err != nil {
					return err
				}

				amount := p.UnitPrice.Mul(decimal.NewFromInt(int64(ordered)))
				invoice = newInvoice(entry.ClientID, []OrderLine{{
					ProductID:   p.ID,
					ProductName: p.Name,
					Quantity:    ordered,
					UnitPrice:   p.UnitPrice,
					Amount:      amount,
				}})
				if err := tx.Invoices().Append(ctx, invoice); err != nil {
					return err
				}

				cl, err := tx.Clients().GetByID(ctx, entry.ClientID)
				if err != nil {
					return err
				}
				cl.Balance = cl.Balance.Sub(invoice.Total)
				return tx.Clients().Update(ctx, cl)
			})
			if err != nil {
				er.Err = err
				break
			}

			er.Ordered = ordered
			er.Invoice = invoice
			zap.L().Info("backorder fulfilled",
				zap.String("client", client.Name),
				zap.String("product_id", productID),
				zap.Int("ordered", ordered),
				zap.String("invoice_id", invoice.ID))
			s.publish(TopicInvoiceCreated, InvoiceCreatedEvent{Invoice: invoice, Source: "supply"})
		}

		result.Entries = append(result.Entries, er)
	}

	return result, nil
}
