package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/carpinteria/internal/adapters/export"
	"github.com/phenrril/carpinteria/internal/adapters/httpserver"
	"github.com/phenrril/carpinteria/internal/adapters/metrics"
	"github.com/phenrril/carpinteria/internal/adapters/repo/memory"
	"github.com/phenrril/carpinteria/internal/domain"
	"github.com/phenrril/carpinteria/internal/usecase"
)

var fixedNow = time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	st := memory.NewStore(memory.WithClock(func() time.Time { return fixedNow }))
	return httpserver.New(httpserver.Deps{
		Clients:   &usecase.ClientUC{Store: st},
		Projects:  &usecase.ProjectUC{Store: st},
		Products:  &usecase.ProductUC{Store: st},
		Materials: &usecase.MaterialUC{Store: st},
		Stock:     &usecase.StockUC{Store: st},
		Finance:   &usecase.FinanceUC{Store: st},
		Dashboard: &usecase.DashboardUC{Store: st, Currency: "$"},
		Metrics:   metrics.New(),
		Documents: export.Options{Company: export.Company{Name: "Carpintería Roble"}, ValidityDays: 15, Currency: "$"},
		Now:       func() time.Time { return fixedNow },
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type fixture struct {
	material domain.Material
	product  domain.Product
	client   domain.Client
}

func seed(t *testing.T, h http.Handler) fixture {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/materials",
		`{"name":"MDF 15mm","unit":"m2","category":"Placas","current_stock":50,"min_stock":10,"current_price":85.5}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	m := decode[domain.Material](t, rec)

	rec = do(t, h, http.MethodPost, "/api/products", `{"name":"Puerta de alacena"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	p := decode[domain.Product](t, rec)

	rec = do(t, h, http.MethodPost, "/api/products/"+p.ID+"/components",
		`{"material_id":"`+m.ID+`","quantity":0.5}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	p = decode[domain.Product](t, rec)

	rec = do(t, h, http.MethodPost, "/api/clients", `{"name":" Juan Pérez ","type":"individual","email":"JUAN@MAIL.COM"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	c := decode[domain.Client](t, rec)

	return fixture{material: m, product: p, client: c}
}

func createProject(t *testing.T, h http.Handler, f fixture, status string) domain.Project {
	t.Helper()
	body := `{"client_id":"` + f.client.ID + `","title":"Cocina a medida","status":"` + status + `","type":"sale",
		"budget":1200,"items":[{"product_id":"` + f.product.ID + `","quantity":10,"unit_price":120}]}`
	rec := do(t, h, http.MethodPost, "/api/projects", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[domain.Project](t, rec)
}

func TestHealthAndRequestID(t *testing.T) {
	h := newHandler(t)
	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestCreateSaleProject_RecordsDepositAndConsumesStock(t *testing.T) {
	h := newHandler(t)
	f := seed(t, h)
	assert.Equal(t, "Juan Pérez", f.client.Name)
	assert.Equal(t, "juan@mail.com", f.client.Email)
	require.Len(t, f.product.Components, 1)
	assert.Equal(t, "MDF 15mm", f.product.Components[0].MaterialName)

	p := createProject(t, h, f, "approved")
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, "Juan Pérez", p.ClientName)
	require.Len(t, p.Items, 1)
	assert.True(t, p.Items[0].TotalPrice.Equal(decimal.NewFromInt(1200)))

	rec := do(t, h, http.MethodGet, "/api/transactions?project_id="+p.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	txs := decode[[]domain.Transaction](t, rec)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, domain.DirectionIn, txs[0].Direction)

	rec = do(t, h, http.MethodGet, "/api/materials/"+f.material.ID, "")
	m := decode[domain.Material](t, rec)
	assert.True(t, m.CurrentStock.Equal(decimal.NewFromInt(45)), m.CurrentStock.String())

	rec = do(t, h, http.MethodGet, "/api/stock-movements?project_id="+p.ID+"&type=out", "")
	moves := decode[[]domain.StockMovement](t, rec)
	require.Len(t, moves, 1)
	assert.Equal(t, "Cocina a medida", moves[0].ProjectTitle)

	rec = do(t, h, http.MethodGet, "/api/clients/"+f.client.ID, "")
	c := decode[domain.Client](t, rec)
	assert.Equal(t, 1, c.TotalProjects)
}

func TestUpdateProject_FinalPayment(t *testing.T) {
	h := newHandler(t)
	f := seed(t, h)
	p := createProject(t, h, f, "in_production")

	for _, status := range []string{"completed", "delivered", "completed"} {
		rec := do(t, h, http.MethodPut, "/api/projects/"+p.ID, `{"status":"`+status+`"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	rec := do(t, h, http.MethodGet, "/api/transactions?category=final_payment", "")
	txs := decode[[]domain.Transaction](t, rec)
	require.Len(t, txs, 1)
	assert.Equal(t, "Pago final - Proyecto #1", txs[0].Description)
}

func TestErrors(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodPost, "/api/clients", `{"type":"individual"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[struct {
		Status string               `json:"status"`
		Fields []domain.FieldError `json:"fields"`
	}](t, rec)
	assert.Equal(t, "error", body.Status)
	require.NotEmpty(t, body.Fields)
	assert.Equal(t, "name", body.Fields[0].Field)

	rec = do(t, h, http.MethodPost, "/api/clients", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/projects/no-existe", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/projects/no-existe/otra-cosa", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/dashboard", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/projects",
		`{"client_id":"fantasma","title":"x","status":"approved","type":"sale","budget":10}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, h, http.MethodGet, "/api/transactions", "")
	assert.Empty(t, decode[[]domain.Transaction](t, rec))
}

func TestDelete_ReportsWhetherRemoved(t *testing.T) {
	h := newHandler(t)
	f := seed(t, h)
	p := createProject(t, h, f, "approved")

	rec := do(t, h, http.MethodDelete, "/api/clients/"+f.client.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[struct {
		Deleted bool `json:"deleted"`
	}](t, rec).Deleted)

	rec = do(t, h, http.MethodGet, "/api/projects/"+p.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, h, http.MethodGet, "/api/transactions", "")
	assert.Empty(t, decode[[]domain.Transaction](t, rec))

	rec = do(t, h, http.MethodDelete, "/api/clients/"+f.client.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[struct {
		Deleted bool `json:"deleted"`
	}](t, rec).Deleted)
}

func TestProjectStock_DefaultsToProjectItems(t *testing.T) {
	h := newHandler(t)
	f := seed(t, h)
	p := createProject(t, h, f, "quote")

	rec := do(t, h, http.MethodPost, "/api/projects/"+p.ID+"/stock", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/materials/"+f.material.ID, "")
	m := decode[domain.Material](t, rec)
	// la cotización ya consumió 5 al crearse; el pedido explícito descuenta otros 5
	assert.True(t, m.CurrentStock.Equal(decimal.NewFromInt(40)), m.CurrentStock.String())

	rec = do(t, h, http.MethodPost, "/api/projects/"+p.ID+"/stock",
		`{"items":[{"product_id":"`+f.product.ID+`","quantity":2,"unit_price":0}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = do(t, h, http.MethodGet, "/api/materials/"+f.material.ID, "")
	m = decode[domain.Material](t, rec)
	assert.True(t, m.CurrentStock.Equal(decimal.NewFromInt(39)), m.CurrentStock.String())
}

func TestProductComponents_SetQuantity(t *testing.T) {
	h := newHandler(t)
	f := seed(t, h)

	rec := do(t, h, http.MethodPut, "/api/products/"+f.product.ID+"/components",
		`{"material_id":"`+f.material.ID+`","quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[domain.Product](t, rec)
	require.Len(t, p.Components, 1)
	assert.True(t, p.Components[0].Quantity.Equal(decimal.NewFromInt(2)))

	rec = do(t, h, http.MethodPut, "/api/products/"+f.product.ID+"/components",
		`{"material_id":"`+f.material.ID+`","quantity":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[domain.Product](t, rec).Components)

	rec = do(t, h, http.MethodPost, "/api/products/"+f.product.ID+"/components",
		`{"material_id":"`+f.material.ID+`","quantity":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuoteDownloads(t *testing.T) {
	h := newHandler(t)
	f := seed(t, h)
	p := createProject(t, h, f, "approved")

	rec := do(t, h, http.MethodGet, "/api/projects/"+p.ID+"/quote.pdf", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="sale_0001_Juan_Pérez.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = do(t, h, http.MethodGet, "/api/projects/"+p.ID+"/quote.xlsx", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "sale_0001_Juan_Pérez.xlsx")
	// xlsx es un zip
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))

	rec = do(t, h, http.MethodGet, "/admin/export/materials.xlsx", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "inventario_20240305.xlsx")
}

func TestDashboardAndMetrics(t *testing.T) {
	h := newHandler(t)
	f := seed(t, h)
	createProject(t, h, f, "approved")

	rec := do(t, h, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[domain.DashboardStats](t, rec)
	assert.Equal(t, 1, st.TotalClients)
	assert.Equal(t, 1, st.ActiveProjects)
	assert.True(t, st.MonthlyRevenue.Equal(decimal.NewFromInt(600)))
	assert.NotEmpty(t, st.RecentActivity)

	rec = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "carpinteria_http_requests_total")
	assert.Contains(t, rec.Body.String(), `route="/api/products/{id}/components"`)
}
