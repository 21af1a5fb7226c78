package httpserver

import (
	"net/http"

	"github.com/phenrril/carpinteria/internal/domain"
	"github.com/phenrril/carpinteria/internal/usecase"
)

func (s *Server) apiTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		list, err := s.finance.ListTransactions(r.Context(), usecase.TransactionFilter{
			ProjectID: q.Get("project_id"),
			Direction: domain.Direction(q.Get("type")),
			Category:  q.Get("category"),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var in domain.Transaction
		if err := decodeJSON(r, &in); err != nil {
			badRequest(w, "json inválido")
			return
		}
		t, err := s.finance.CreateTransaction(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) apiStockMovements(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		list, err := s.stock.List(r.Context(), usecase.StockFilter{
			MaterialID: q.Get("material_id"),
			ProjectID:  q.Get("project_id"),
			Direction:  domain.Direction(q.Get("type")),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var in domain.StockMovement
		if err := decodeJSON(r, &in); err != nil {
			badRequest(w, "json inválido")
			return
		}
		m, err := s.stock.Create(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) apiDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	st, err := s.dashboard.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
