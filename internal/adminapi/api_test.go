package adminapi_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warekit/warestock/config"
	"github.com/warekit/warestock/internal/adminapi"
	"github.com/warekit/warestock/internal/app"
	"github.com/warekit/warestock/internal/warehouse"
	"github.com/warekit/warestock/internal/webserver"
)

var (
	setupOnce   sync.Once
	application *app.Application
)

// setupAPI boots one in-memory application for the whole test binary and
// wipes its data before each test.
func setupAPI(t *testing.T) *warehouse.Service {
	t.Helper()
	setupOnce.Do(func() {
		workdir, err := os.MkdirTemp("", "warestock-api-test")
		require.NoError(t, err)
		cfg := *config.DefaultAppConfig
		cfg.System.Location = "UTC"
		cfg.System.Workdir = workdir
		cfg.Logger.FileEnable = false
		application = app.NewApplication(&cfg)
		application.Init(&cfg)
		webserver.Init(application)
		adminapi.RegisterRoutes()
	})
	require.NoError(t, application.Store().Reset(context.Background()))
	return application.Service()
}

func doJSON(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		data, err := jsoniter.MarshalToString(body)
		require.NoError(t, err)
		reader = strings.NewReader(data)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	webserver.Echo().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestProductCrud(t *testing.T) {
	setupAPI(t)

	rec := doJSON(t, http.MethodPost, "/api/crm/products", map[string]interface{}{
		"name": "Office Chair", "unit_price": "49.90", "quantity": 12,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decodeBody(t, rec)["data"].(map[string]interface{})
	id := created["id"].(string)
	assert.True(t, strings.HasPrefix(id, "P"))

	rec = doJSON(t, http.MethodGet, "/api/crm/products/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, http.MethodGet, "/api/crm/products?q=office", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 1, body["total"])

	rec = doJSON(t, http.MethodGet, "/api/crm/products/P000", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	setupAPI(t)
	rec := doJSON(t, http.MethodPost, "/api/crm/products", map[string]interface{}{
		"name": "Bad Chair", "unit_price": "-1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClientBalanceEndpoint(t *testing.T) {
	svc := setupAPI(t)
	client, err := svc.AddClient(context.Background(), "Balance Test", "", "")
	require.NoError(t, err)

	rec := doJSON(t, http.MethodPut, "/api/crm/clients/"+client.ID+"/balance", map[string]interface{}{
		"balance": "-12.50",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated, err := svc.GetClient(context.Background(), client.ID)
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(decimal.RequireFromString("-12.50")))
}

func TestWishlistEndpoints(t *testing.T) {
	svc := setupAPI(t)
	ctx := context.Background()
	client, err := svc.AddClient(ctx, "Wish Tester", "", "")
	require.NoError(t, err)
	product, err := svc.AddProduct(ctx, "Side Table", decimal.NewFromInt(15), 3)
	require.NoError(t, err)

	path := "/api/crm/clients/" + client.ID + "/wishlist"
	rec := doJSON(t, http.MethodPost, path, map[string]interface{}{
		"product_id": product.ID, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Duplicate insert conflicts.
	rec = doJSON(t, http.MethodPost, path, map[string]interface{}{
		"product_id": product.ID, "quantity": 2,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, http.MethodDelete, path+"/"+product.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	items, err := svc.Wishlist(ctx, client.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestProcessOrderEndpoint(t *testing.T) {
	svc := setupAPI(t)
	ctx := context.Background()
	client, err := svc.AddClient(ctx, "Order Tester", "", "")
	require.NoError(t, err)
	require.NoError(t, svc.SetClientBalance(ctx, client.ID, decimal.NewFromInt(100)))
	product, err := svc.AddProduct(ctx, "Bookshelf", decimal.NewFromInt(10), 4)
	require.NoError(t, err)
	_, err = svc.AddToWishlist(ctx, client.ID, product.ID, 6)
	require.NoError(t, err)

	rec := doJSON(t, http.MethodPost, "/api/crm/orders/process", map[string]interface{}{
		"client_id": client.ID,
		"confirm":   true,
		"decisions": []map[string]interface{}{
			{"product_id": product.ID, "action": "requested"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, true, data["committed"])
	require.NotNil(t, data["invoice"])

	updated, err := svc.GetClient(ctx, client.ID)
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(decimal.NewFromInt(60)), "balance %s", updated.Balance)

	waitlist, err := svc.Waitlist(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, waitlist, 1)
	assert.Equal(t, 2, waitlist[0].Quantity)
}

func TestProcessOrderDryRun(t *testing.T) {
	svc := setupAPI(t)
	ctx := context.Background()
	client, err := svc.AddClient(ctx, "Dry Run", "", "")
	require.NoError(t, err)
	product, err := svc.AddProduct(ctx, "Floor Lamp", decimal.NewFromInt(20), 5)
	require.NoError(t, err)
	_, err = svc.AddToWishlist(ctx, client.ID, product.ID, 2)
	require.NoError(t, err)

	rec := doJSON(t, http.MethodPost, "/api/crm/orders/process", map[string]interface{}{
		"client_id": client.ID,
		"confirm":   false,
		"decisions": []map[string]interface{}{
			{"product_id": product.ID, "action": "requested"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, false, data["committed"])

	unchanged, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, unchanged.Quantity)
}

func TestSupplyEndpoint(t *testing.T) {
	svc := setupAPI(t)
	ctx := context.Background()
	client, err := svc.AddClient(ctx, "Waiting Buyer", "", "")
	require.NoError(t, err)
	product, err := svc.AddProduct(ctx, "Coat Rack", decimal.NewFromInt(10), 0)
	require.NoError(t, err)
	_, err = svc.AddToWaitlist(ctx, product.ID, client.ID, 3)
	require.NoError(t, err)

	rec := doJSON(t, http.MethodPost, "/api/crm/products/"+product.ID+"/supply", map[string]interface{}{
		"quantity": 10,
		"decisions": []map[string]interface{}{
			{"client_id": client.ID, "action": "existing"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)

	waitlist, err := svc.Waitlist(ctx, product.ID)
	require.NoError(t, err)
	assert.Empty(t, waitlist)
}

func TestInvoiceListAndExport(t *testing.T) {
	svc := setupAPI(t)
	ctx := context.Background()
	client, err := svc.AddClient(ctx, "Invoice Tester", "", "")
	require.NoError(t, err)
	product, err := svc.AddProduct(ctx, "Stool", decimal.NewFromInt(5), 10)
	require.NoError(t, err)
	_, err = svc.AddToWishlist(ctx, client.ID, product.ID, 2)
	require.NoError(t, err)
	_, err = svc.ProcessOrder(ctx, client.ID, &warehouse.ScriptedOrderDecider{
		Decisions: map[string]warehouse.OrderDecision{
			product.ID: {Action: warehouse.OrderRequested},
		},
		Confirmed: true,
	})
	require.NoError(t, err)

	rec := doJSON(t, http.MethodGet, "/api/crm/invoices?client_id="+client.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.EqualValues(t, 1, body["total"])

	rec = doJSON(t, http.MethodGet, "/api/crm/invoices/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	statsData := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.EqualValues(t, 1, statsData["count"])

	rec = doJSON(t, http.MethodGet, "/api/crm/invoices/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "invoices.csv")
	assert.Contains(t, rec.Body.String(), client.ID)

	rec = doJSON(t, http.MethodGet, "/api/crm/invoices?start=not-a-date", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSnapshotEndpoints(t *testing.T) {
	svc := setupAPI(t)
	ctx := context.Background()
	_, err := svc.AddProduct(ctx, "Archived Desk", decimal.NewFromInt(99), 1)
	require.NoError(t, err)

	rec := doJSON(t, http.MethodPost, "/api/system/snapshots", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	key := decodeBody(t, rec)["data"].(map[string]interface{})["key"].(string)
	require.NotEmpty(t, key)

	require.NoError(t, svc.Store().Reset(ctx))

	rec = doJSON(t, http.MethodPost, fmt.Sprintf("/api/system/snapshots/%s/restore", key), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Archived Desk", products[0].Name)
}
