package usecase

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/phenrril/carpinteria/internal/domain"
)

// Reglas entre entidades. Todas corren dentro de la transacción del caso de uso que las
// dispara, así que o se aplican completas o no se aplica nada.

func today(v domain.View) domain.Date {
	return domain.NewDate(v.Now())
}

// recordMovement registra el movimiento y ajusta el stock del material, sin bajar de cero.
func recordMovement(tx domain.Tx, m domain.StockMovement) (domain.StockMovement, error) {
	mat, ok := tx.FindMaterial(m.MaterialID)
	if !ok {
		return domain.StockMovement{}, domain.NotFound("material", m.MaterialID)
	}
	if m.MaterialName == "" {
		m.MaterialName = mat.Name
	}
	if m.Date.IsZero() {
		m.Date = today(tx)
	}
	if m.UnitPrice != nil && m.TotalValue == nil {
		total := m.UnitPrice.Mul(m.Quantity)
		m.TotalValue = &total
	}
	created, err := tx.CreateStockMovement(m)
	if err != nil {
		return domain.StockMovement{}, err
	}
	_, err = tx.UpdateMaterial(mat.ID, func(cur *domain.Material) error {
		next, clamped := created.Apply(cur.CurrentStock)
		if clamped {
			log.Warn().Str("material", cur.Name).Str("stock", cur.CurrentStock.String()).
				Str("salida", created.Quantity.String()).Msg("stock insuficiente, se deja en cero")
		}
		cur.CurrentStock = next
		return nil
	})
	if err != nil {
		return domain.StockMovement{}, err
	}
	return created, nil
}

// consumeStock genera una salida por cada componente de cada producto de las líneas.
func consumeStock(tx domain.Tx, project domain.Project, items []domain.LineItem) ([]domain.StockMovement, error) {
	var out []domain.StockMovement
	for _, it := range items {
		prod, ok := tx.FindProduct(it.ProductID)
		if !ok {
			return nil, domain.NotFound("producto", it.ProductID)
		}
		for _, c := range prod.Components {
			if _, ok := tx.FindMaterial(c.MaterialID); !ok {
				log.Warn().Str("producto", prod.Name).Str("material_id", c.MaterialID).
					Msg("componente sin material, se omite el consumo")
				continue
			}
			mv, err := recordMovement(tx, domain.StockMovement{
				MaterialID:   c.MaterialID,
				MaterialName: c.MaterialName,
				Direction:    domain.DirectionOut,
				Quantity:     c.Quantity.Mul(it.Quantity),
				ProjectID:    project.ID,
				ProjectTitle: project.Title,
				Date:         today(tx),
			})
			if err != nil {
				return nil, err
			}
			out = append(out, mv)
		}
	}
	return out, nil
}

// deleteProjectCascade borra el proyecto con sus transacciones y movimientos.
// El stock de los materiales no se revierte.
func deleteProjectCascade(tx domain.Tx, id string) bool {
	if !tx.DeleteProject(id) {
		return false
	}
	nt := tx.DeleteTransactionsByProject(id)
	nm := tx.DeleteStockMovementsByProject(id)
	log.Debug().Str("project_id", id).Int("transactions", nt).Int("movements", nm).Msg("proyecto borrado en cascada")
	return true
}

func projectInflow(tx domain.Tx, p domain.Project, category, description string, amount decimal.Decimal) (domain.Transaction, error) {
	t, err := tx.CreateTransaction(domain.Transaction{
		ProjectID:    p.ID,
		ProjectTitle: p.Title,
		Direction:    domain.DirectionIn,
		Category:     category,
		Description:  description,
		Amount:       amount,
		Date:         today(tx),
		Automatic:    true,
	})
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("registrar %s: %w", category, err)
	}
	log.Info().Int("project", p.Number).Str("category", category).Str("amount", amount.String()).Msg("transacción automática")
	return t, nil
}
