package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/carpinteria/internal/adapters/export"
	"github.com/phenrril/carpinteria/internal/adapters/metrics"
	"github.com/phenrril/carpinteria/internal/domain"
	"github.com/phenrril/carpinteria/internal/usecase"
)

type Server struct {
	mux       *http.ServeMux
	clients   *usecase.ClientUC
	projects  *usecase.ProjectUC
	products  *usecase.ProductUC
	materials *usecase.MaterialUC
	stock     *usecase.StockUC
	finance   *usecase.FinanceUC
	dashboard *usecase.DashboardUC
	metrics   *metrics.Metrics
	docs      export.Options
	now       func() time.Time
}

type Deps struct {
	Clients   *usecase.ClientUC
	Projects  *usecase.ProjectUC
	Products  *usecase.ProductUC
	Materials *usecase.MaterialUC
	Stock     *usecase.StockUC
	Finance   *usecase.FinanceUC
	Dashboard *usecase.DashboardUC
	Metrics   *metrics.Metrics
	Documents export.Options
	// reloj para la fecha de emisión de los documentos; nil usa time.Now
	Now func() time.Time
}

func New(d Deps) http.Handler {
	s := &Server{
		mux:       http.NewServeMux(),
		clients:   d.Clients,
		projects:  d.Projects,
		products:  d.Products,
		materials: d.Materials,
		stock:     d.Stock,
		finance:   d.Finance,
		dashboard: d.Dashboard,
		metrics:   d.Metrics,
		docs:      d.Documents,
		now:       d.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	s.routes()
	return Chain(s.mux,
		RequestID,
		Recovery,
		Logging,
		Metrics(s.metrics),
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.Handle("/metrics", s.metrics.Handler())

	s.mux.HandleFunc("/api/clients", s.apiClients)
	s.mux.HandleFunc("/api/clients/", s.apiClientByID)

	// /api/projects/{id}[/stock|/quote.pdf|/quote.xlsx]
	s.mux.HandleFunc("/api/projects", s.apiProjects)
	s.mux.HandleFunc("/api/projects/", s.apiProjectByID)

	// /api/products/{id}[/components]
	s.mux.HandleFunc("/api/products", s.apiProducts)
	s.mux.HandleFunc("/api/products/", s.apiProductByID)

	s.mux.HandleFunc("/api/materials", s.apiMaterials)
	s.mux.HandleFunc("/api/materials/", s.apiMaterialByID)

	s.mux.HandleFunc("/api/transactions", s.apiTransactions)
	s.mux.HandleFunc("/api/stock-movements", s.apiStockMovements)
	s.mux.HandleFunc("/api/dashboard", s.apiDashboard)

	s.mux.HandleFunc("/admin/export/materials.xlsx", s.handleExportMaterials)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError traduce los errores de dominio a códigos HTTP.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "error", "message": ve.Error(), "fields": ve.Fields})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"status": "error", "message": err.Error()})
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Str("request_id", requestIDFrom(r.Context())).Msg("api")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"status": "error", "message": "error interno"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{"status": "error", "message": msg})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"status": "error", "message": "método no permitido"})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func deleted(w http.ResponseWriter, id string, ok bool) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "id": id, "deleted": ok})
}

// splitPath separa "/api/x/{id}/resto" en id y resto.
func splitPath(path, prefix string) (id, rest string) {
	tail := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	id, rest, _ = strings.Cut(tail, "/")
	return id, rest
}

func attachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
