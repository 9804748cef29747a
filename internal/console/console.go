package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warekit/warestock/internal/app"
	"github.com/warekit/warestock/internal/domain"
	"github.com/warekit/warestock/internal/warehouse"
)

// Menu commands, numbered for direct entry.
const (
	cmdExit               = 0
	cmdAddProduct         = 1
	cmdAddClient          = 2
	cmdShowProducts       = 3
	cmdShowClients        = 4
	cmdSave               = 5
	cmdRetrieve           = 6
	cmdHelp               = 7
	cmdAddToWishlist      = 8
	cmdRemoveFromWishlist = 9
	cmdAddToWaitlist      = 10
	cmdRemoveFromWaitlist = 11
	cmdShowWishlist       = 12
	cmdShowWaitlist       = 13
	cmdProcessOrder       = 14
	cmdShowInvoices       = 15
	cmdShowClientInvoice  = 16
	cmdSupplyProduct      = 17
)

// Console is the interactive terminal front end. It drives the warehouse
// service with decisions typed by the operator; every mutation goes through
// the same engine paths the admin API uses.
type Console struct {
	appCtx app.AppContext
	in     *bufio.Scanner
	out    io.Writer
}

func New(appCtx app.AppContext, in io.Reader, out io.Writer) *Console {
	return &Console{
		appCtx: appCtx,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

func (t *Console) service() *warehouse.Service {
	return t.appCtx.Service()
}

func (t *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(t.out, format+"\n", args...)
}

// prompt reads one trimmed line; ok is false when input is exhausted.
func (t *Console) prompt(msg string) (string, bool) {
	fmt.Fprintf(t.out, "%s: ", msg)
	if !t.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(t.in.Text()), true
}

func (t *Console) promptInt(msg string) (int, bool) {
	for {
		raw, alive := t.prompt(msg)
		if !alive {
			return 0, false
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			t.printf("Please input a number")
			continue
		}
		return n, true
	}
}

func (t *Console) promptDecimal(msg string) (decimal.Decimal, bool) {
	for {
		raw, alive := t.prompt(msg)
		if !alive {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			t.printf("Please input a number")
			continue
		}
		return d, true
	}
}

// Run reads commands until exit or EOF. The context cancels the engine
// operations, not the blocking stdin reads.
func (t *Console) Run(ctx context.Context) error {
	t.help()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		raw, alive := t.prompt(fmt.Sprintf("Enter command (%d for help)", cmdHelp))
		if !alive {
			return nil
		}
		command, err := strconv.Atoi(raw)
		if err != nil || command < cmdExit || command > cmdSupplyProduct {
			t.printf("Invalid command. Enter a valid command.")
			continue
		}

		switch command {
		case cmdExit:
			return nil
		case cmdAddProduct:
			t.addProduct(ctx)
		case cmdAddClient:
			t.addClient(ctx)
		case cmdShowProducts:
			t.showProducts(ctx)
		case cmdShowClients:
			t.showClients(ctx)
		case cmdSave:
			t.save(ctx)
		case cmdRetrieve:
			t.retrieve(ctx)
		case cmdHelp:
			t.help()
		case cmdAddToWishlist:
			t.addToWishlist(ctx)
		case cmdRemoveFromWishlist:
			t.removeFromWishlist(ctx)
		case cmdAddToWaitlist:
			t.addToWaitlist(ctx)
		case cmdRemoveFromWaitlist:
			t.removeFromWaitlist(ctx)
		case cmdShowWishlist:
			t.showWishlist(ctx)
		case cmdShowWaitlist:
			t.showWaitlist(ctx)
		case cmdProcessOrder:
			t.processOrder(ctx)
		case cmdShowInvoices:
			t.showInvoices(ctx)
		case cmdShowClientInvoice:
			t.showClientInvoice(ctx)
		case cmdSupplyProduct:
			t.supplyProduct(ctx)
		}
	}
}

func (t *Console) help() {
	t.printf("Enter a number between %d and %d as explained below:", cmdExit, cmdSupplyProduct)
	t.printf("%d to exit", cmdExit)
	t.printf("%d to add a product", cmdAddProduct)
	t.printf("%d to add a client", cmdAddClient)
	t.printf("%d to show products", cmdShowProducts)
	t.printf("%d to show clients", cmdShowClients)
	t.printf("%d to save a snapshot", cmdSave)
	t.printf("%d to restore the latest snapshot", cmdRetrieve)
	t.printf("%d for help", cmdHelp)
	t.printf("%d to add a product to a wishlist", cmdAddToWishlist)
	t.printf("%d to remove a product from a wishlist", cmdRemoveFromWishlist)
	t.printf("%d to add a client to a waitlist", cmdAddToWaitlist)
	t.printf("%d to remove a client from a waitlist", cmdRemoveFromWaitlist)
	t.printf("%d to show a wishlist", cmdShowWishlist)
	t.printf("%d to show a waitlist", cmdShowWaitlist)
	t.printf("%d to process an order", cmdProcessOrder)
	t.printf("%d to show invoices", cmdShowInvoices)
	t.printf("%d to show a client's invoices", cmdShowClientInvoice)
	t.printf("%d to supply a product", cmdSupplyProduct)
}

func (t *Console) addProduct(ctx context.Context) {
	name, alive := t.prompt("Enter product name")
	if !alive {
		return
	}
	price, alive := t.promptDecimal("Enter product price")
	if !alive {
		return
	}
	quantity, alive := t.promptInt("Enter product quantity")
	if !alive {
		return
	}
	p, err := t.service().AddProduct(ctx, name, price, quantity)
	if err != nil {
		t.printf("Failed to add product: %v", err)
		return
	}
	t.printf("Product added successfully:")
	t.printf("  ID: %s | %s | price %s | quantity %d", p.ID, p.Name, p.UnitPrice, p.Quantity)
}

func (t *Console) addClient(ctx context.Context) {
	name, alive := t.prompt("Enter client name")
	if !alive {
		return
	}
	address, alive := t.prompt("Enter client address")
	if !alive {
		return
	}
	phone, alive := t.prompt("Enter client phone")
	if !alive {
		return
	}
	cl, err := t.service().AddClient(ctx, name, address, phone)
	if err != nil {
		t.printf("Failed to add client: %v", err)
		return
	}
	t.printf("Client added successfully:")
	t.printf("  ID: %s | %s | balance %s", cl.ID, cl.Name, cl.Balance)
}

func (t *Console) showProducts(ctx context.Context) {
	products, err := t.service().ListProducts(ctx)
	if err != nil {
		t.printf("Failed to list products: %v", err)
		return
	}
	if len(products) == 0 {
		t.printf("No products available in the warehouse.")
		return
	}
	t.printf("Available Products:")
	for _, p := range products {
		t.printf("Product ID: %s | %s | price %s | quantity %d", p.ID, p.Name, p.UnitPrice, p.Quantity)
	}
}

func (t *Console) showClients(ctx context.Context) {
	clients, err := t.service().ListClients(ctx)
	if err != nil {
		t.printf("Failed to list clients: %v", err)
		return
	}
	if len(clients) == 0 {
		t.printf("No clients registered.")
		return
	}
	t.printf("Clients:")
	for _, cl := range clients {
		t.printf("Client ID: %s | %s | %s | %s | balance %s", cl.ID, cl.Name, cl.Address, cl.Phone, cl.Balance)
	}
}

func (t *Console) save(ctx context.Context) {
	key, err := t.appCtx.SaveSnapshot(ctx)
	if err != nil {
		t.printf("Snapshot failed: %v", err)
		return
	}
	t.printf("Snapshot saved: %s", key)
}

func (t *Console) retrieve(ctx context.Context) {
	entries, err := t.appCtx.ListSnapshots()
	if err != nil {
		t.printf("Unable to list snapshots: %v", err)
		return
	}
	if len(entries) == 0 {
		t.printf("No snapshots archived.")
		return
	}
	latest := entries[len(entries)-1]
	if err := t.appCtx.RestoreSnapshot(ctx, latest.Key); err != nil {
		t.printf("Restore failed: %v", err)
		return
	}
	t.printf("Restored snapshot %s", latest.Key)
}

func (t *Console) addToWishlist(ctx context.Context) {
	clientID, alive := t.prompt("Enter client ID")
	if !alive {
		return
	}
	productID, alive := t.prompt("Enter product ID")
	if !alive {
		return
	}
	quantity, alive := t.promptInt("Enter quantity")
	if !alive {
		return
	}
	if _, err := t.service().AddToWishlist(ctx, clientID, productID, quantity); err != nil {
		t.printf("Failed to add product to wishlist: %v", err)
		return
	}
	t.printf("Product added to wishlist.")
}

func (t *Console) removeFromWishlist(ctx context.Context) {
	clientID, alive := t.prompt("Enter client ID")
	if !alive {
		return
	}
	productID, alive := t.prompt("Enter product ID")
	if !alive {
		return
	}
	if err := t.service().RemoveFromWishlist(ctx, clientID, productID); err != nil {
		t.printf("Failed to remove product from wishlist: %v", err)
		return
	}
	t.printf("Product removed from wishlist.")
}

func (t *Console) addToWaitlist(ctx context.Context) {
	productID, alive := t.prompt("Enter product ID")
	if !alive {
		return
	}
	clientID, alive := t.prompt("Enter client ID")
	if !alive {
		return
	}
	quantity, alive := t.promptInt("Enter quantity")
	if !alive {
		return
	}
	if _, err := t.service().AddToWaitlist(ctx, productID, clientID, quantity); err != nil {
		t.printf("Failed to add client to waitlist: %v", err)
		return
	}
	t.printf("Client added to waitlist.")
}

func (t *Console) removeFromWaitlist(ctx context.Context) {
	productID, alive := t.prompt("Enter product ID")
	if !alive {
		return
	}
	clientID, alive := t.prompt("Enter client ID")
	if !alive {
		return
	}
	if err := t.service().RemoveFromWaitlist(ctx, productID, clientID); err != nil {
		t.printf("Failed to remove client from waitlist: %v", err)
		return
	}
	t.printf("Client removed from waitlist.")
}

func (t *Console) showWishlist(ctx context.Context) {
	clientID, alive := t.prompt("Enter client ID")
	if !alive {
		return
	}
	svc := t.service()
	client, err := svc.GetClient(ctx, clientID)
	if err != nil {
		t.printf("Client not found.")
		return
	}
	items, err := svc.Wishlist(ctx, clientID)
	if err != nil {
		t.printf("Failed to read wishlist: %v", err)
		return
	}
	t.printf("Wishlist for %s:", client.Name)
	if len(items) == 0 {
		t.printf("  (empty)")
		return
	}
	for _, item := range items {
		p, err := svc.GetProduct(ctx, item.ProductID)
		if err != nil {
			t.printf("  Product ID: %s | quantity %d", item.ProductID, item.Quantity)
			continue
		}
		amount := p.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		t.printf("  Product ID: %s | %s | quantity %d | price %s | amount %s",
			p.ID, p.Name, item.Quantity, p.UnitPrice, amount)
	}
}

func (t *Console) showWaitlist(ctx context.Context) {
	productID, alive := t.prompt("Enter product ID")
	if !alive {
		return
	}
	svc := t.service()
	product, err := svc.GetProduct(ctx, productID)
	if err != nil {
		t.printf("Product not found.")
		return
	}
	entries, err := svc.Waitlist(ctx, productID)
	if err != nil {
		t.printf("Failed to read waitlist: %v", err)
		return
	}
	t.printf("Waitlist for %s:", product.Name)
	if len(entries) == 0 {
		t.printf("  (empty)")
		return
	}
	for _, entry := range entries {
		cl, err := svc.GetClient(ctx, entry.ClientID)
		if err != nil {
			t.printf("  Client ID: %s | quantity %d", entry.ClientID, entry.Quantity)
			continue
		}
		t.printf("  Client ID: %s | %s | %s | %s | quantity %d",
			cl.ID, cl.Name, cl.Address, cl.Phone, entry.Quantity)
	}
}

func (t *Console) processOrder(ctx context.Context) {
	clientID, alive := t.prompt("Enter client ID")
	if !alive {
		return
	}
	svc := t.service()
	client, err := svc.GetClient(ctx, clientID)
	if err != nil {
		t.printf("Client not found.")
		return
	}
	t.printf("Processing order for client: %s", client.Name)

	result, err := svc.ProcessOrder(ctx, clientID, &orderPrompter{console: t})
	if err != nil {
		t.printf("Order failed: %v", err)
		return
	}
	for _, item := range result.Items {
		if item.Err != nil {
			t.printf("Item %s: %s", item.ProductID, warehouse.DescribeItemError(item.Err))
		}
	}
	if !result.Committed {
		if result.Plan != nil && result.Plan.Empty() {
			t.printf("Nothing to order.")
		} else {
			t.printf("Order not confirmed, nothing applied.")
		}
		return
	}
	if result.Invoice != nil {
		t.printf("Order confirmed. Invoice %s, total %s.", result.Invoice.ID, result.Invoice.Total)
		cl, err := svc.GetClient(ctx, clientID)
		if err == nil {
			t.printf("New Balance: $%s", cl.Balance)
		}
	} else {
		t.printf("Order confirmed.")
	}
}

func (t *Console) showInvoices(ctx context.Context) {
	invoices, err := t.service().Invoices(ctx)
	if err != nil {
		t.printf("Failed to list invoices: %v", err)
		return
	}
	if len(invoices) == 0 {
		t.printf("No invoices recorded.")
		return
	}
	for _, inv := range invoices {
		t.printInvoice(inv)
	}
}

func (t *Console) showClientInvoice(ctx context.Context) {
	clientID, alive := t.prompt("Enter client ID")
	if !alive {
		return
	}
	svc := t.service()
	client, err := svc.GetClient(ctx, clientID)
	if err != nil {
		t.printf("Client not found.")
		return
	}
	invoices, err := svc.InvoicesForClient(ctx, clientID)
	if err != nil {
		t.printf("Failed to list invoices: %v", err)
		return
	}
	if len(invoices) == 0 {
		t.printf("No invoices found for %s", client.Name)
		return
	}
	t.printf("Invoices for %s:", client.Name)
	for _, inv := range invoices {
		t.printInvoice(inv)
	}
}

func (t *Console) printInvoice(inv *domain.Invoice) {
	t.printf("Invoice %s | client %s | total %s | %s",
		inv.ID, inv.ClientID, inv.Total, inv.CreatedAt.Format("2006-01-02 15:04:05"))
	for _, item := range inv.Items {
		t.printf("  %s x%d @ %s = %s", item.ProductID, item.Quantity, item.UnitPrice, item.Amount)
	}
}

func (t *Console) supplyProduct(ctx context.Context) {
	t.showProducts(ctx)
	productID, alive := t.prompt("Enter the product ID to supply")
	if !alive {
		return
	}
	quantity, alive := t.promptInt("Enter the quantity to add")
	if !alive {
		return
	}
	result, err := t.service().SupplyProduct(ctx, productID, quantity, &supplyPrompter{console: t})
	if err != nil {
		t.printf("Supply failed: %v", err)
		return
	}
	t.printf("Added %d units to product %s.", result.Added, result.ProductID)
	for _, entry := range result.Entries {
		switch {
		case entry.Err != nil:
			t.printf("Waitlist client %s: %s", entry.ClientID, warehouse.DescribeItemError(entry.Err))
		case entry.Invoice != nil:
			t.printf("Waitlist client %s ordered %d, invoice %s.", entry.ClientID, entry.Ordered, entry.Invoice.ID)
		}
	}
}
