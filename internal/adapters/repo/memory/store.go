// Package memory implementa el store de entidades en memoria.
//
// Las mutaciones se serializan con un único lock de escritura: cada transacción
// trabaja sobre un clon del estado y sólo se publica si termina sin error, de modo
// que un lector nunca ve una cascada a medias.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phenrril/carpinteria/internal/domain"
)

var _ domain.Store = (*Store)(nil)

type state struct {
	clients      []domain.Client
	projects     []domain.Project
	products     []domain.Product
	materials    []domain.Material
	transactions []domain.Transaction
	movements    []domain.StockMovement
	// mayor número de proyecto emitido; no baja al borrar
	lastNumber int
}

type Store struct {
	mu    sync.RWMutex
	state state
	nowFn func() time.Time
	newID func() string
}

type Option func(*Store)

// WithClock fija el reloj usado para created_at y para "hoy" en las reglas.
func WithClock(fn func() time.Time) Option {
	return func(s *Store) {
		if fn != nil {
			s.nowFn = fn
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		nowFn: func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) RunInTransaction(ctx context.Context, fn func(tx domain.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &tx{
		store: s,
		view:  view{state: s.state.clone(), now: s.nowFn()},
	}
	if err := fn(t); err != nil {
		return err
	}
	s.state = t.state
	return nil
}

func (s *Store) View(ctx context.Context, fn func(v domain.View) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	// las lecturas devuelven copias, alcanza con sostener el RLock
	return fn(view{state: s.state, now: s.nowFn()})
}

// Reset vacía todas las colecciones.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state{}
}

// Load reemplaza el estado por el snapshot (ids y fechas se respetan tal cual).
func (s *Store) Load(snap domain.Snapshot) {
	next := state{}
	for _, c := range snap.Clients {
		next.clients = append(next.clients, cloneClient(c))
	}
	for _, p := range snap.Projects {
		next.projects = append(next.projects, cloneProject(p))
		if p.Number > next.lastNumber {
			next.lastNumber = p.Number
		}
	}
	for _, p := range snap.Products {
		next.products = append(next.products, cloneProduct(p))
	}
	for _, m := range snap.Materials {
		next.materials = append(next.materials, cloneMaterial(m))
	}
	next.transactions = append(next.transactions, snap.Transactions...)
	for _, m := range snap.StockMovements {
		next.movements = append(next.movements, cloneMovement(m))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = next
}

func (s *Store) Export() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := view{state: s.state}
	return domain.Snapshot{
		Clients:        v.ListClients(),
		Projects:       v.ListProjects(),
		Products:       v.ListProducts(),
		Materials:      v.ListMaterials(),
		Transactions:   v.ListTransactions(),
		StockMovements: v.ListStockMovements(),
	}
}

func (s state) clone() state {
	out := state{lastNumber: s.lastNumber}
	out.clients = make([]domain.Client, len(s.clients))
	for i, c := range s.clients {
		out.clients[i] = cloneClient(c)
	}
	out.projects = make([]domain.Project, len(s.projects))
	for i, p := range s.projects {
		out.projects[i] = cloneProject(p)
	}
	out.products = make([]domain.Product, len(s.products))
	for i, p := range s.products {
		out.products[i] = cloneProduct(p)
	}
	out.materials = make([]domain.Material, len(s.materials))
	for i, m := range s.materials {
		out.materials[i] = cloneMaterial(m)
	}
	out.transactions = append([]domain.Transaction(nil), s.transactions...)
	out.movements = make([]domain.StockMovement, len(s.movements))
	for i, m := range s.movements {
		out.movements[i] = cloneMovement(m)
	}
	return out
}
