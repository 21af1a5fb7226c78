package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/carpinteria/internal/adapters/repo/memory"
	"github.com/phenrril/carpinteria/internal/domain"
	"github.com/phenrril/carpinteria/internal/usecase"
)

// clock avanza un minuto por lectura para que created_at sea estrictamente creciente.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Minute)
	return c.t
}

type env struct {
	store     *memory.Store
	clock     *clock
	clients   *usecase.ClientUC
	projects  *usecase.ProjectUC
	products  *usecase.ProductUC
	materials *usecase.MaterialUC
	stock     *usecase.StockUC
	finance   *usecase.FinanceUC
	dashboard *usecase.DashboardUC
}

func newEnv(t *testing.T, start time.Time) *env {
	t.Helper()
	c := &clock{t: start}
	st := memory.NewStore(memory.WithClock(c.Now))
	return &env{
		store:     st,
		clock:     c,
		clients:   &usecase.ClientUC{Store: st},
		projects:  &usecase.ProjectUC{Store: st},
		products:  &usecase.ProductUC{Store: st},
		materials: &usecase.MaterialUC{Store: st},
		stock:     &usecase.StockUC{Store: st},
		finance:   &usecase.FinanceUC{Store: st},
		dashboard: &usecase.DashboardUC{Store: st, Currency: "$"},
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decEq(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "esperado %s, obtenido %s", want, got)
}

// scenario arma M1 (stock 50), P1 (0.5 de M1 por unidad) y el cliente J1.
type scenario struct {
	material *domain.Material
	product  *domain.Product
	client   *domain.Client
}

func (e *env) scenario(t *testing.T) scenario {
	t.Helper()
	ctx := context.Background()
	m, err := e.materials.Create(ctx, domain.Material{
		Name: "MDF 15mm", Unit: "m2", Category: "Placas",
		CurrentStock: dec("50"), MinStock: dec("10"), CurrentPrice: dec("85.50"),
	})
	require.NoError(t, err)
	p, err := e.products.Create(ctx, domain.Product{
		Name:       "Puerta de alacena",
		Components: []domain.Component{{MaterialID: m.ID, Quantity: dec("0.5")}},
	})
	require.NoError(t, err)
	c, err := e.clients.Create(ctx, domain.Client{Name: "Juan Pérez", Type: domain.ClientIndividual})
	require.NoError(t, err)
	return scenario{material: m, product: p, client: c}
}

func (e *env) saleProject(t *testing.T, s scenario, status domain.ProjectStatus) *domain.Project {
	t.Helper()
	p, err := e.projects.Create(context.Background(), domain.Project{
		ClientID: s.client.ID,
		Title:    "Cocina a medida",
		Status:   status,
		Type:     domain.ProjectTypeSale,
		Budget:   dec("1200"),
		Items: []domain.LineItem{{
			ProductID: s.product.ID, Quantity: dec("10"), UnitPrice: dec("120"),
		}},
	})
	require.NoError(t, err)
	return p
}
