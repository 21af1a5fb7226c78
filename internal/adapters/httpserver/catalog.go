package httpserver

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/phenrril/carpinteria/internal/adapters/export/xlsx"
	"github.com/phenrril/carpinteria/internal/domain"
)

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		list, err := s.products.List(r.Context(), domain.ProductFilter{Query: q.Get("q"), Category: q.Get("category")})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var in domain.Product
		if err := decodeJSON(r, &in); err != nil {
			badRequest(w, "json inválido")
			return
		}
		p, err := s.products.Create(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) apiProductByID(w http.ResponseWriter, r *http.Request) {
	id, rest := splitPath(r.URL.Path, "/api/products/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	if rest == "components" {
		s.productComponents(w, r, id)
		return
	}
	if rest != "" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		p, err := s.products.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPut, http.MethodPatch:
		var patch domain.ProductPatch
		if err := decodeJSON(r, &patch); err != nil {
			badRequest(w, "json inválido")
			return
		}
		p, err := s.products.Update(r.Context(), id, patch)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodDelete:
		ok, err := s.products.Delete(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		deleted(w, id, ok)
	default:
		methodNotAllowed(w)
	}
}

type componentRequest struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// POST suma al componente existente; PUT fija la cantidad y con cero lo quita.
func (s *Server) productComponents(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	var in componentRequest
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "json inválido")
		return
	}
	var (
		p   *domain.Product
		err error
	)
	if r.Method == http.MethodPost {
		p, err = s.products.AddComponent(r.Context(), id, in.MaterialID, in.Quantity)
	} else {
		p, err = s.products.SetComponentQuantity(r.Context(), id, in.MaterialID, in.Quantity)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) apiMaterials(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		low, _ := strconv.ParseBool(q.Get("low_stock"))
		list, err := s.materials.List(r.Context(), domain.MaterialFilter{
			Query:    q.Get("q"),
			Category: q.Get("category"),
			LowStock: low,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	case http.MethodPost:
		var in domain.Material
		if err := decodeJSON(r, &in); err != nil {
			badRequest(w, "json inválido")
			return
		}
		m, err := s.materials.Create(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) apiMaterialByID(w http.ResponseWriter, r *http.Request) {
	id, rest := splitPath(r.URL.Path, "/api/materials/")
	if id == "" || rest != "" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		m, err := s.materials.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	case http.MethodPut, http.MethodPatch:
		var patch domain.MaterialPatch
		if err := decodeJSON(r, &patch); err != nil {
			badRequest(w, "json inválido")
			return
		}
		m, err := s.materials.Update(r.Context(), id, patch)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	case http.MethodDelete:
		ok, err := s.materials.Delete(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		deleted(w, id, ok)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleExportMaterials(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	list, err := s.materials.List(r.Context(), domain.MaterialFilter{})
	if err != nil {
		writeError(w, r, err)
		return
	}
	b, err := xlsx.InventoryXLSX(list)
	if err != nil {
		writeError(w, r, err)
		return
	}
	attachment(w, xlsxContentType, "inventario_"+s.now().Format("20060102")+".xlsx", b)
}
