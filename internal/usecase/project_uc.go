package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/carpinteria/internal/domain"
)

type ProjectUC struct {
	Store domain.Store
}

func (uc *ProjectUC) List(ctx context.Context, f domain.ProjectFilter) ([]domain.Project, error) {
	var out []domain.Project
	err := uc.Store.View(ctx, func(v domain.View) error {
		q := strings.ToLower(strings.TrimSpace(f.Query))
		for _, p := range v.ListProjects() {
			if f.Status != "" && p.Status != f.Status {
				continue
			}
			if f.Type != "" && p.Type != f.Type {
				continue
			}
			if q != "" && !containsAny(q, p.Title, p.ClientName, p.Description) {
				continue
			}
			out = append(out, p)
		}
		return nil
	})
	return out, err
}

func (uc *ProjectUC) Get(ctx context.Context, id string) (*domain.Project, error) {
	var p domain.Project
	err := uc.Store.View(ctx, func(v domain.View) error {
		var ok bool
		if p, ok = v.FindProject(id); !ok {
			return domain.NotFound("proyecto", id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create da de alta el proyecto con sus efectos: seña si es una venta confirmada,
// consumo de stock de las líneas y acumulados del cliente.
func (uc *ProjectUC) Create(ctx context.Context, p domain.Project) (*domain.Project, error) {
	if p.Status == "" {
		p.Status = domain.ProjectStatusQuote
	}
	if p.Type == "" {
		p.Type = domain.ProjectTypeQuote
	}
	p.Title = strings.TrimSpace(p.Title)
	p.Recalculate()
	if err := validateEntity("proyecto", p); err != nil {
		return nil, err
	}

	var created domain.Project
	err := uc.Store.RunInTransaction(ctx, func(tx domain.Tx) error {
		client, ok := tx.FindClient(p.ClientID)
		if !ok {
			return domain.NotFound("cliente", p.ClientID)
		}
		p.ClientName = client.Name
		if err := resolveItems(tx, p.Items); err != nil {
			return err
		}

		var err error
		if created, err = tx.CreateProject(p); err != nil {
			return err
		}

		if created.Type == domain.ProjectTypeSale && created.Status != domain.ProjectStatusQuote {
			desc := fmt.Sprintf("Seña del proyecto #%d - %s", created.Number, created.Title)
			if _, err := projectInflow(tx, created, domain.CategoryDeposit, desc, created.HalfBudget()); err != nil {
				return err
			}
		}
		if len(created.Items) > 0 {
			if _, err := consumeStock(tx, created, created.Items); err != nil {
				return err
			}
		}

		_, err = tx.UpdateClient(client.ID, func(c *domain.Client) error {
			c.TotalProjects++
			c.TotalValue = c.TotalValue.Add(created.Budget)
			return nil
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int("number", created.Number).Str("client", created.ClientName).Msg("proyecto creado")
	return &created, nil
}

// Update aplica el patch en dos fases: primero lee el proyecto guardado para decidir los
// efectos contra el estado anterior, después escribe el registro combinado.
func (uc *ProjectUC) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	var updated domain.Project
	err := uc.Store.RunInTransaction(ctx, func(tx domain.Tx) error {
		stored, ok := tx.FindProject(id)
		if !ok {
			return domain.NotFound("proyecto", id)
		}

		next := stored
		patch.Apply(&next)
		if patch.ClientID != nil && *patch.ClientID != stored.ClientID {
			client, ok := tx.FindClient(*patch.ClientID)
			if !ok {
				return domain.NotFound("cliente", *patch.ClientID)
			}
			next.ClientID = client.ID
			next.ClientName = client.Name
		}
		if patch.Items != nil {
			next.Items = append([]domain.LineItem(nil), (*patch.Items)...)
			if err := resolveItems(tx, next.Items); err != nil {
				return err
			}
		}
		next.Title = strings.TrimSpace(next.Title)
		next.Recalculate()
		if err := validateEntity("proyecto", next); err != nil {
			return err
		}

		var err error
		updated, err = tx.UpdateProject(id, func(p *domain.Project) error {
			*p = next
			return nil
		})
		if err != nil {
			return err
		}

		if stored.Status != domain.ProjectStatusCompleted && updated.Status == domain.ProjectStatusCompleted &&
			!hasFinalPayment(tx, id) {
			// el monto sale del presupuesto guardado antes de este cambio
			desc := fmt.Sprintf("Pago final - Proyecto #%d", stored.Number)
			if _, err := projectInflow(tx, stored, domain.CategoryFinalPayment, desc, stored.HalfBudget()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete borra el proyecto, sus transacciones y sus movimientos de stock.
func (uc *ProjectUC) Delete(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := uc.Store.RunInTransaction(ctx, func(tx domain.Tx) error {
		deleted = deleteProjectCascade(tx, id)
		return nil
	})
	return deleted, err
}

// ApplyStockConsumption descuenta del stock los materiales de las líneas indicadas.
// Sin líneas usa las del proyecto.
func (uc *ProjectUC) ApplyStockConsumption(ctx context.Context, projectID string, items []domain.LineItem) ([]domain.StockMovement, error) {
	for _, it := range items {
		if err := validateEntity("línea", it); err != nil {
			return nil, err
		}
	}
	var out []domain.StockMovement
	err := uc.Store.RunInTransaction(ctx, func(tx domain.Tx) error {
		p, ok := tx.FindProject(projectID)
		if !ok {
			return domain.NotFound("proyecto", projectID)
		}
		if len(items) == 0 {
			items = p.Items
		}
		var err error
		out, err = consumeStock(tx, p, items)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Str("project_id", projectID).Int("movements", len(out)).Msg("consumo de stock aplicado")
	return out, nil
}

// hasFinalPayment evita un segundo pago final al volver de entregado a terminado.
// Sólo cuentan los pagos automáticos; uno cargado a mano no lo reemplaza.
func hasFinalPayment(v domain.View, projectID string) bool {
	for _, t := range v.ListTransactions() {
		if t.ProjectID == projectID && t.Category == domain.CategoryFinalPayment && t.Automatic {
			return true
		}
	}
	return false
}

// resolveItems toma el nombre de cada producto referenciado.
func resolveItems(tx domain.Tx, items []domain.LineItem) error {
	for i := range items {
		prod, ok := tx.FindProduct(items[i].ProductID)
		if !ok {
			return domain.NotFound("producto", items[i].ProductID)
		}
		items[i].ProductName = prod.Name
		items[i].TotalPrice = items[i].Quantity.Mul(items[i].UnitPrice)
	}
	return nil
}
