package httpserver

import (
	"io"
	"net/http"

	"github.com/phenrril/carpinteria/internal/adapters/export"
	"github.com/phenrril/carpinteria/internal/adapters/export/pdf"
	"github.com/phenrril/carpinteria/internal/adapters/export/xlsx"
	"github.com/phenrril/carpinteria/internal/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) apiProjects(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		list, err := s.projects.List(r.Context(), domain.ProjectFilter{
			Query:  q.Get("q"),
			Status: domain.ProjectStatus(q.Get("status")),
			Type:   domain.ProjectType(q.Get("type")),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var in domain.Project
		if err := decodeJSON(r, &in); err != nil {
			badRequest(w, "json inválido")
			return
		}
		p, err := s.projects.Create(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) apiProjectByID(w http.ResponseWriter, r *http.Request) {
	id, rest := splitPath(r.URL.Path, "/api/projects/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	switch rest {
	case "":
	case "stock":
		s.projectStock(w, r, id)
		return
	case "quote.pdf", "quote.xlsx":
		s.projectQuote(w, r, id, rest)
		return
	default:
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		p, err := s.projects.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPut, http.MethodPatch:
		var patch domain.ProjectPatch
		if err := decodeJSON(r, &patch); err != nil {
			badRequest(w, "json inválido")
			return
		}
		p, err := s.projects.Update(r.Context(), id, patch)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodDelete:
		ok, err := s.projects.Delete(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		deleted(w, id, ok)
	default:
		methodNotAllowed(w)
	}
}

// projectStock acepta un cuerpo vacío: en ese caso se consumen los ítems del proyecto.
func (s *Server) projectStock(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var in struct {
		Items []domain.LineItem `json:"items"`
	}
	if err := decodeJSON(r, &in); err != nil && err != io.EOF {
		badRequest(w, "json inválido")
		return
	}
	moves, err := s.projects.ApplyStockConsumption(r.Context(), id, in.Items)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "movements": moves})
}

func (s *Server) projectQuote(w http.ResponseWriter, r *http.Request, id, kind string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	p, err := s.projects.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := export.NewQuote(*p, s.docs, s.now())
	if kind == "quote.pdf" {
		b, err := pdf.QuotePDF(q)
		if err != nil {
			writeError(w, r, err)
			return
		}
		attachment(w, "application/pdf", q.FileBase+".pdf", b)
		return
	}
	b, err := xlsx.QuoteXLSX(q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	attachment(w, xlsxContentType, q.FileBase+".xlsx", b)
}
