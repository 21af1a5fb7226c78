package memory

import (
	"time"

	"github.com/phenrril/carpinteria/internal/domain"
)

type view struct {
	state state
	now   time.Time
}

func (v view) Now() time.Time { return v.now }

func (v view) ListClients() []domain.Client {
	out := make([]domain.Client, 0, len(v.state.clients))
	for _, c := range v.state.clients {
		out = append(out, cloneClient(c))
	}
	return out
}

func (v view) FindClient(id string) (domain.Client, bool) {
	if i := indexClient(v.state.clients, id); i >= 0 {
		return cloneClient(v.state.clients[i]), true
	}
	return domain.Client{}, false
}

func (v view) ListProjects() []domain.Project {
	out := make([]domain.Project, 0, len(v.state.projects))
	for _, p := range v.state.projects {
		out = append(out, cloneProject(p))
	}
	return out
}

func (v view) FindProject(id string) (domain.Project, bool) {
	if i := indexProject(v.state.projects, id); i >= 0 {
		return cloneProject(v.state.projects[i]), true
	}
	return domain.Project{}, false
}

func (v view) ListProducts() []domain.Product {
	out := make([]domain.Product, 0, len(v.state.products))
	for _, p := range v.state.products {
		out = append(out, cloneProduct(p))
	}
	return out
}

func (v view) FindProduct(id string) (domain.Product, bool) {
	if i := indexProduct(v.state.products, id); i >= 0 {
		return cloneProduct(v.state.products[i]), true
	}
	return domain.Product{}, false
}

func (v view) ListMaterials() []domain.Material {
	out := make([]domain.Material, 0, len(v.state.materials))
	for _, m := range v.state.materials {
		out = append(out, cloneMaterial(m))
	}
	return out
}

func (v view) FindMaterial(id string) (domain.Material, bool) {
	if i := indexMaterial(v.state.materials, id); i >= 0 {
		return cloneMaterial(v.state.materials[i]), true
	}
	return domain.Material{}, false
}

func (v view) ListTransactions() []domain.Transaction {
	return append([]domain.Transaction{}, v.state.transactions...)
}

func (v view) ListStockMovements() []domain.StockMovement {
	out := make([]domain.StockMovement, 0, len(v.state.movements))
	for _, m := range v.state.movements {
		out = append(out, cloneMovement(m))
	}
	return out
}

func indexClient(list []domain.Client, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func indexProject(list []domain.Project, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func indexProduct(list []domain.Product, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func indexMaterial(list []domain.Material, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
