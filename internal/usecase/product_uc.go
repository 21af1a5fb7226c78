package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/phenrril/carpinteria/internal/domain"
)

type ProductUC struct {
	Store domain.Store
}

func (uc *ProductUC) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	var out []domain.Product
	err := uc.Store.View(ctx, func(v domain.View) error {
		q := strings.ToLower(strings.TrimSpace(f.Query))
		for _, p := range v.ListProducts() {
			if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
				continue
			}
			if q != "" && !containsAny(q, p.Name, p.Description, p.Category) {
				continue
			}
			out = append(out, p)
		}
		return nil
	})
	return out, err
}

func (uc *ProductUC) Get(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := uc.Store.View(ctx, func(v domain.View) error {
		var ok bool
		if p, ok = v.FindProduct(id); !ok {
			return domain.NotFound("producto", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (uc *ProductUC) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Components = domain.MergeComponents(p.Components)
	if err := validateEntity("producto", p); err != nil {
		return nil, err
	}
	var created domain.Product
	err := uc.Store.RunInTransaction(ctx, func(tx domain.Tx) error {
		if err := fillComponents(tx, p.Components); err != nil {
			return err
		}
		var err error
		created, err = tx.CreateProduct(p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (uc *ProductUC) Update(ctx context.Context, id string, patch domain.ProductPatch) (*domain.Product, error) {
	var updated domain.Product
	err := uc.Store.RunInTransaction(ctx, func(tx domain.Tx) error {
		var err error
		updated, err = tx.UpdateProduct(id, func(p *domain.Product) error {
			patch.Apply(p)
			p.Name = strings.TrimSpace(p.Name)
			if patch.Components != nil {
				if err := fillComponents(tx, p.Components); err != nil {
					return err
				}
			}
			return validateEntity("producto", *p)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete no toca los proyectos que referencian al producto.
func (uc *ProductUC) Delete(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := uc.Store.RunInTransaction(ctx, func(tx domain.Tx) error {
		deleted = tx.DeleteProduct(id)
		return nil
	})
	return deleted, err
}

// AddComponent suma qty si el material ya está en la lista; si no, lo agrega con
// el nombre y la unidad del material.
func (uc *ProductUC) AddComponent(ctx context.Context, productID, materialID string, qty decimal.Decimal) (*domain.Product, error) {
	if !qty.IsPositive() {
		return nil, &domain.ValidationError{Entity: "componente", Fields: []domain.FieldError{{
			Field: "quantity", Tag: "gt", Message: "quantity debe ser mayor a 0",
		}}}
	}
	var updated domain.Product
	err := uc.Store.RunInTransaction(ctx, func(tx domain.Tx) error {
		mat, ok := tx.FindMaterial(materialID)
		if !ok {
			return domain.NotFound("material", materialID)
		}
		var err error
		updated, err = tx.UpdateProduct(productID, func(p *domain.Product) error {
			for i := range p.Components {
				if p.Components[i].MaterialID == materialID {
					p.Components[i].Quantity = p.Components[i].Quantity.Add(qty)
					return nil
				}
			}
			p.Components = append(p.Components, domain.Component{
				MaterialID:   mat.ID,
				MaterialName: mat.Name,
				Quantity:     qty,
				Unit:         mat.Unit,
			})
			return nil
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetComponentQuantity fija la cantidad de un componente; con qty <= 0 lo quita.
func (uc *ProductUC) SetComponentQuantity(ctx context.Context, productID, materialID string, qty decimal.Decimal) (*domain.Product, error) {
	var updated domain.Product
	err := uc.Store.RunInTransaction(ctx, func(tx domain.Tx) error {
		var err error
		updated, err = tx.UpdateProduct(productID, func(p *domain.Product) error {
			for i := range p.Components {
				if p.Components[i].MaterialID != materialID {
					continue
				}
				if !qty.IsPositive() {
					p.Components = append(p.Components[:i], p.Components[i+1:]...)
				} else {
					p.Components[i].Quantity = qty
				}
				return nil
			}
			return domain.NotFound("componente", materialID)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// fillComponents completa nombre y unidad desde el material cuando vienen vacíos.
// Un material inexistente corta con NotFound.
func fillComponents(v domain.View, comps []domain.Component) error {
	for i := range comps {
		mat, ok := v.FindMaterial(comps[i].MaterialID)
		if !ok {
			return domain.NotFound("material", comps[i].MaterialID)
		}
		if comps[i].MaterialName == "" {
			comps[i].MaterialName = mat.Name
		}
		if comps[i].Unit == "" {
			comps[i].Unit = mat.Unit
		}
	}
	return nil
}
