package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/carpinteria/internal/domain"
)

type MaterialUC struct {
	Store domain.Store
}

func (uc *MaterialUC) List(ctx context.Context, f domain.MaterialFilter) ([]domain.Material, error) {
	var out []domain.Material
	err := uc.Store.View(ctx, func(v domain.View) error {
		q := strings.ToLower(strings.TrimSpace(f.Query))
		for _, m := range v.ListMaterials() {
			if f.Category != "" && !strings.EqualFold(m.Category, f.Category) {
				continue
			}
			if f.LowStock && !m.LowStock() {
				continue
			}
			if q != "" && !containsAny(q, m.Name, m.Description, m.Category) {
				continue
			}
			out = append(out, m)
		}
		return nil
	})
	return out, err
}

func (uc *MaterialUC) Get(ctx context.Context, id string) (*domain.Material, error) {
	var m domain.Material
	err := uc.Store.View(ctx, func(v domain.View) error {
		var ok bool
		if m, ok = v.FindMaterial(id); !ok {
			return domain.NotFound("material", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create arranca el historial con el precio inicial si no viene uno.
func (uc *MaterialUC) Create(ctx context.Context, m domain.Material) (*domain.Material, error) {
	m.Name = strings.TrimSpace(m.Name)
	if err := validateEntity("material", m); err != nil {
		return nil, err
	}
	var created domain.Material
	err := uc.Store.RunInTransaction(ctx, func(tx domain.Tx) error {
		if len(m.PriceHistory) == 0 {
			m.PriceHistory = []domain.PricePoint{{Date: today(tx), Price: m.CurrentPrice}}
		}
		var err error
		created, err = tx.CreateMaterial(m)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update agrega una entrada al historial sólo cuando el precio cambia.
func (uc *MaterialUC) Update(ctx context.Context, id string, patch domain.MaterialPatch) (*domain.Material, error) {
	var updated domain.Material
	err := uc.Store.RunInTransaction(ctx, func(tx domain.Tx) error {
		var err error
		updated, err = tx.UpdateMaterial(id, func(m *domain.Material) error {
			patch.Apply(m)
			m.Name = strings.TrimSpace(m.Name)
			if patch.CurrentPrice != nil && !patch.CurrentPrice.Equal(m.CurrentPrice) {
				point := domain.PricePoint{Date: today(tx), Price: *patch.CurrentPrice}
				if patch.Supplier != nil {
					point.Supplier = *patch.Supplier
				}
				log.Debug().Str("material", m.Name).Str("antes", m.CurrentPrice.String()).
					Str("ahora", point.Price.String()).Msg("cambio de precio")
				m.CurrentPrice = point.Price
				m.PriceHistory = append(m.PriceHistory, point)
			}
			return validateEntity("material", *m)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete deja intactos los componentes y movimientos que lo referencian.
func (uc *MaterialUC) Delete(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := uc.Store.RunInTransaction(ctx, func(tx domain.Tx) error {
		deleted = tx.DeleteMaterial(id)
		return nil
	})
	return deleted, err
}
