package memory

import (
	"github.com/shopspring/decimal"

	"github.com/phenrril/carpinteria/internal/domain"
)

// tx escribe sobre su propio clon del estado; RunInTransaction lo publica al final.
type tx struct {
	view
	store *Store
}

func (t *tx) id(exists func(string) bool) string {
	for {
		id := t.store.newID()
		if !exists(id) {
			return id
		}
	}
}

// --- Clientes ---

func (t *tx) CreateClient(c domain.Client) (domain.Client, error) {
	c.ID = t.id(func(id string) bool { return indexClient(t.state.clients, id) >= 0 })
	c.CreatedAt = t.now
	c.TotalProjects = 0
	c.TotalValue = decimal.Zero
	t.state.clients = append(t.state.clients, cloneClient(c))
	return cloneClient(c), nil
}

func (t *tx) UpdateClient(id string, mutator func(*domain.Client) error) (domain.Client, error) {
	i := indexClient(t.state.clients, id)
	if i < 0 {
		return domain.Client{}, domain.NotFound("cliente", id)
	}
	current := cloneClient(t.state.clients[i])
	if err := mutator(&current); err != nil {
		return domain.Client{}, err
	}
	current.ID = id
	current.CreatedAt = t.state.clients[i].CreatedAt
	t.state.clients[i] = cloneClient(current)
	return current, nil
}

func (t *tx) DeleteClient(id string) bool {
	i := indexClient(t.state.clients, id)
	if i < 0 {
		return false
	}
	t.state.clients = append(t.state.clients[:i], t.state.clients[i+1:]...)
	return true
}

// --- Proyectos ---

func (t *tx) CreateProject(p domain.Project) (domain.Project, error) {
	p.ID = t.id(func(id string) bool { return indexProject(t.state.projects, id) >= 0 })
	p.Number = t.nextNumber()
	p.CreatedAt = t.now
	for i := range p.Items {
		if p.Items[i].ID == "" {
			p.Items[i].ID = t.store.newID()
		}
	}
	t.state.lastNumber = p.Number
	t.state.projects = append(t.state.projects, cloneProject(p))
	return cloneProject(p), nil
}

// nextNumber es el máximo existente + 1, sin reutilizar números de proyectos borrados.
func (t *tx) nextNumber() int {
	n := t.state.lastNumber
	for _, p := range t.state.projects {
		if p.Number > n {
			n = p.Number
		}
	}
	return n + 1
}

func (t *tx) UpdateProject(id string, mutator func(*domain.Project) error) (domain.Project, error) {
	i := indexProject(t.state.projects, id)
	if i < 0 {
		return domain.Project{}, domain.NotFound("proyecto", id)
	}
	stored := t.state.projects[i]
	current := cloneProject(stored)
	if err := mutator(&current); err != nil {
		return domain.Project{}, err
	}
	current.ID = id
	current.Number = stored.Number
	current.CreatedAt = stored.CreatedAt
	for j := range current.Items {
		if current.Items[j].ID == "" {
			current.Items[j].ID = t.store.newID()
		}
	}
	t.state.projects[i] = cloneProject(current)
	return cloneProject(current), nil
}

func (t *tx) DeleteProject(id string) bool {
	i := indexProject(t.state.projects, id)
	if i < 0 {
		return false
	}
	t.state.projects = append(t.state.projects[:i], t.state.projects[i+1:]...)
	return true
}

// --- Productos ---

func (t *tx) CreateProduct(p domain.Product) (domain.Product, error) {
	p.ID = t.id(func(id string) bool { return indexProduct(t.state.products, id) >= 0 })
	p.CreatedAt = t.now
	t.state.products = append(t.state.products, cloneProduct(p))
	return cloneProduct(p), nil
}

func (t *tx) UpdateProduct(id string, mutator func(*domain.Product) error) (domain.Product, error) {
	i := indexProduct(t.state.products, id)
	if i < 0 {
		return domain.Product{}, domain.NotFound("producto", id)
	}
	current := cloneProduct(t.state.products[i])
	if err := mutator(&current); err != nil {
		return domain.Product{}, err
	}
	current.ID = id
	current.CreatedAt = t.state.products[i].CreatedAt
	t.state.products[i] = cloneProduct(current)
	return cloneProduct(current), nil
}

func (t *tx) DeleteProduct(id string) bool {
	i := indexProduct(t.state.products, id)
	if i < 0 {
		return false
	}
	t.state.products = append(t.state.products[:i], t.state.products[i+1:]...)
	return true
}

// --- Materiales ---

func (t *tx) CreateMaterial(m domain.Material) (domain.Material, error) {
	m.ID = t.id(func(id string) bool { return indexMaterial(t.state.materials, id) >= 0 })
	m.CreatedAt = t.now
	t.state.materials = append(t.state.materials, cloneMaterial(m))
	return cloneMaterial(m), nil
}

func (t *tx) UpdateMaterial(id string, mutator func(*domain.Material) error) (domain.Material, error) {
	i := indexMaterial(t.state.materials, id)
	if i < 0 {
		return domain.Material{}, domain.NotFound("material", id)
	}
	current := cloneMaterial(t.state.materials[i])
	if err := mutator(&current); err != nil {
		return domain.Material{}, err
	}
	current.ID = id
	current.CreatedAt = t.state.materials[i].CreatedAt
	t.state.materials[i] = cloneMaterial(current)
	return cloneMaterial(current), nil
}

func (t *tx) DeleteMaterial(id string) bool {
	i := indexMaterial(t.state.materials, id)
	if i < 0 {
		return false
	}
	t.state.materials = append(t.state.materials[:i], t.state.materials[i+1:]...)
	return true
}

// --- Caja y stock ---

func (t *tx) CreateTransaction(tr domain.Transaction) (domain.Transaction, error) {
	tr.ID = t.id(func(id string) bool {
		for _, x := range t.state.transactions {
			if x.ID == id {
				return true
			}
		}
		return false
	})
	tr.CreatedAt = t.now
	t.state.transactions = append(t.state.transactions, tr)
	return tr, nil
}

func (t *tx) DeleteTransactionsByProject(projectID string) int {
	kept := t.state.transactions[:0]
	removed := 0
	for _, tr := range t.state.transactions {
		if tr.ProjectID != "" && tr.ProjectID == projectID {
			removed++
			continue
		}
		kept = append(kept, tr)
	}
	t.state.transactions = kept
	return removed
}

// CreateStockMovement sólo registra el movimiento; el ajuste de stock lo hace el caso de uso.
func (t *tx) CreateStockMovement(m domain.StockMovement) (domain.StockMovement, error) {
	m.ID = t.id(func(id string) bool {
		for _, x := range t.state.movements {
			if x.ID == id {
				return true
			}
		}
		return false
	})
	m.CreatedAt = t.now
	t.state.movements = append(t.state.movements, cloneMovement(m))
	return cloneMovement(m), nil
}

func (t *tx) DeleteStockMovementsByProject(projectID string) int {
	kept := t.state.movements[:0]
	removed := 0
	for _, m := range t.state.movements {
		if m.ProjectID != "" && m.ProjectID == projectID {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	t.state.movements = kept
	return removed
}
