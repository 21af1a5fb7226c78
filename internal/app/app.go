package app

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/carpinteria/internal/adapters/export"
	"github.com/phenrril/carpinteria/internal/adapters/httpserver"
	"github.com/phenrril/carpinteria/internal/adapters/metrics"
	"github.com/phenrril/carpinteria/internal/adapters/repo/memory"
	"github.com/phenrril/carpinteria/internal/config"
	"github.com/phenrril/carpinteria/internal/usecase"
)

type App struct {
	Config      *config.Config
	Store       *memory.Store
	ClientUC    *usecase.ClientUC
	ProjectUC   *usecase.ProjectUC
	ProductUC   *usecase.ProductUC
	MaterialUC  *usecase.MaterialUC
	StockUC     *usecase.StockUC
	FinanceUC   *usecase.FinanceUC
	DashboardUC *usecase.DashboardUC
	Metrics     *metrics.Metrics
}

func NewApp(cfg *config.Config, opts ...memory.Option) (*App, error) {
	store := memory.NewStore(opts...)
	a := &App{
		Config:      cfg,
		Store:       store,
		ClientUC:    &usecase.ClientUC{Store: store},
		ProjectUC:   &usecase.ProjectUC{Store: store},
		ProductUC:   &usecase.ProductUC{Store: store},
		MaterialUC:  &usecase.MaterialUC{Store: store},
		StockUC:     &usecase.StockUC{Store: store},
		FinanceUC:   &usecase.FinanceUC{Store: store},
		DashboardUC: &usecase.DashboardUC{Store: store, Currency: cfg.Quote.CurrencySymbol},
		Metrics:     metrics.New(),
	}
	if err := a.Metrics.RegisterDashboard(a.DashboardUC.Stats); err != nil {
		return nil, err
	}
	if cfg.SeedSampleData {
		a.Seed()
	}
	return a, nil
}

// Seed reemplaza el contenido del store por los datos de ejemplo.
func (a *App) Seed() {
	a.Store.Load(SampleData())
	snap := a.Store.Export()
	log.Info().
		Int("clients", len(snap.Clients)).
		Int("projects", len(snap.Projects)).
		Int("materials", len(snap.Materials)).
		Msg("datos de ejemplo cargados")
}

func (a *App) HTTPHandler() http.Handler {
	c := a.Config.Company
	return httpserver.New(httpserver.Deps{
		Clients:   a.ClientUC,
		Projects:  a.ProjectUC,
		Products:  a.ProductUC,
		Materials: a.MaterialUC,
		Stock:     a.StockUC,
		Finance:   a.FinanceUC,
		Dashboard: a.DashboardUC,
		Metrics:   a.Metrics,
		Documents: export.Options{
			Company: export.Company{
				Name: c.Name, Phone: c.Phone, Email: c.Email, Website: c.Website, Address: c.Address,
			},
			ValidityDays: a.Config.Quote.ValidityDays,
			Currency:     a.Config.Quote.CurrencySymbol,
		},
		Now: time.Now,
	})
}

// LogSummary deja en el log el estado del tablero al arrancar.
func (a *App) LogSummary(ctx context.Context) {
	st, err := a.DashboardUC.Stats(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("no se pudo calcular el resumen")
		return
	}
	log.Info().
		Int("clients", st.TotalClients).
		Int("active_projects", st.ActiveProjects).
		Int("low_stock", st.LowStockItems).
		Msg("taller listo")
}
