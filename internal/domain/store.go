package domain

import (
	"context"
	"time"
)

// View es una lectura consistente del estado. Todo lo que devuelve son copias.
type View interface {
	Now() time.Time
	ListClients() []Client
	FindClient(id string) (Client, bool)
	ListProjects() []Project
	FindProject(id string) (Project, bool)
	ListProducts() []Product
	FindProduct(id string) (Product, bool)
	ListMaterials() []Material
	FindMaterial(id string) (Material, bool)
	ListTransactions() []Transaction
	ListStockMovements() []StockMovement
}

// Tx agrega las escrituras primarias. Las reglas entre entidades viven en los casos de uso.
type Tx interface {
	View

	CreateClient(c Client) (Client, error)
	UpdateClient(id string, mutator func(*Client) error) (Client, error)
	DeleteClient(id string) bool

	CreateProject(p Project) (Project, error)
	UpdateProject(id string, mutator func(*Project) error) (Project, error)
	DeleteProject(id string) bool

	CreateProduct(p Product) (Product, error)
	UpdateProduct(id string, mutator func(*Product) error) (Product, error)
	DeleteProduct(id string) bool

	CreateMaterial(m Material) (Material, error)
	UpdateMaterial(id string, mutator func(*Material) error) (Material, error)
	DeleteMaterial(id string) bool

	CreateTransaction(t Transaction) (Transaction, error)
	DeleteTransactionsByProject(projectID string) int

	CreateStockMovement(m StockMovement) (StockMovement, error)
	DeleteStockMovementsByProject(projectID string) int
}

type Store interface {
	RunInTransaction(ctx context.Context, fn func(tx Tx) error) error
	View(ctx context.Context, fn func(v View) error) error
}

// Snapshot es el estado completo en orden de creación; sirve para sembrar y resetear.
type Snapshot struct {
	Clients        []Client        `json:"clients"`
	Projects       []Project       `json:"projects"`
	Products       []Product       `json:"products"`
	Materials      []Material      `json:"materials"`
	Transactions   []Transaction   `json:"transactions"`
	StockMovements []StockMovement `json:"stock_movements"`
}
