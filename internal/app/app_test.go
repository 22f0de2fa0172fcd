package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/config"
)

func testApplication(t *testing.T) *Application {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Dataset.DataDir = dir
	cfg.Export.ReportsDir = filepath.Join(dir, "reports")
	cfg.Security.RateLimit.Enabled = false

	app := &Application{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	require.NoError(t, app.setupStore())
	app.setupRouter()
	return app
}

func seedDataset(t *testing.T, app *Application) {
	t.Helper()
	sales := "Transaction ID,Date,Product Category,Product Name,Units Sold,Unit Price,Total Revenue,Payment Method\n" +
		"1,01/03/2024,Electronics,Phone,2,500,1000,Card\n"
	products := "Product Name,Product Category,Unit Price\nPhone,Electronics,500\n"
	require.NoError(t, os.WriteFile(app.Config.SalesPath(), []byte(sales), 0644))
	require.NoError(t, os.WriteFile(app.Config.ProductsPath(), []byte(products), 0644))
}

func TestRouterLiveness(t *testing.T) {
	app := testApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health/live", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterMissingDatasetProblem(t *testing.T) {
	app := testApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "DATASET_NOT_FOUND", problem["error_code"])
	assert.NotEmpty(t, problem["trace_id"], "request id propagates into problem details")
}

func TestRouterTransactionRoundTrip(t *testing.T) {
	app := testApplication(t)
	seedDataset(t, app)

	body := `{"product_category":"Electronics","product_name":"Charger","unit_price":20,"payment_method":"Card"}`
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, float64(2), created["transaction_id"])
	assert.Equal(t, float64(20), created["total_revenue"])

	req = httptest.NewRequest(http.MethodGet, "/api/chart-data", nil)
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterUnknownRoute(t *testing.T) {
	app := testApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
