package usecase

import (
	"context"

	"github.com/phenrril/carpinteria/internal/domain"
)

type StockUC struct {
	Store domain.Store
}

// StockFilter acota el listado de movimientos. Los campos vacíos no filtran.
type StockFilter struct {
	MaterialID string
	ProjectID  string
	Direction  domain.Direction
}

func (uc *StockUC) Create(ctx context.Context, m domain.StockMovement) (*domain.StockMovement, error) {
	if err := validateEntity("movimiento", m); err != nil {
		return nil, err
	}
	var created domain.StockMovement
	err := uc.Store.RunInTransaction(ctx, func(tx domain.Tx) error {
		if m.ProjectID != "" {
			p, ok := tx.FindProject(m.ProjectID)
			if !ok {
				return domain.NotFound("proyecto", m.ProjectID)
			}
			if m.ProjectTitle == "" {
				m.ProjectTitle = p.Title
			}
		}
		var err error
		created, err = recordMovement(tx, m)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (uc *StockUC) List(ctx context.Context, f StockFilter) ([]domain.StockMovement, error) {
	var out []domain.StockMovement
	err := uc.Store.View(ctx, func(v domain.View) error {
		for _, m := range v.ListStockMovements() {
			if f.MaterialID != "" && m.MaterialID != f.MaterialID {
				continue
			}
			if f.ProjectID != "" && m.ProjectID != f.ProjectID {
				continue
			}
			if f.Direction != "" && m.Direction != f.Direction {
				continue
			}
			out = append(out, m)
		}
		return nil
	})
	return out, err
}
