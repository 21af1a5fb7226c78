package httpserver

import (
	"net/http"

	"github.com/phenrril/carpinteria/internal/domain"
)

func (s *Server) apiClients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		list, err := s.clients.List(r.Context(), domain.ClientFilter{
			Query: q.Get("q"),
			Type:  domain.ClientType(q.Get("type")),
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var in domain.Client
		if err := decodeJSON(r, &in); err != nil {
			badRequest(w, "json inválido")
			return
		}
		c, err := s.clients.Create(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) apiClientByID(w http.ResponseWriter, r *http.Request) {
	id, rest := splitPath(r.URL.Path, "/api/clients/")
	if id == "" || rest != "" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		c, err := s.clients.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	case http.MethodPut, http.MethodPatch:
		var patch domain.ClientPatch
		if err := decodeJSON(r, &patch); err != nil {
			badRequest(w, "json inválido")
			return
		}
		c, err := s.clients.Update(r.Context(), id, patch)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, c)
	case http.MethodDelete:
		ok, err := s.clients.Delete(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		deleted(w, id, ok)
	default:
		methodNotAllowed(w)
	}
}
