package usecase

import (
	"context"
	"strings"

	"github.com/phenrril/carpinteria/internal/domain"
)

type FinanceUC struct {
	Store domain.Store
}

type TransactionFilter struct {
	ProjectID string
	Direction domain.Direction
	Category  string
}

// CreateTransaction registra un movimiento de caja manual.
func (uc *FinanceUC) CreateTransaction(ctx context.Context, t domain.Transaction) (*domain.Transaction, error) {
	t.Category = strings.TrimSpace(t.Category)
	t.Automatic = false
	if err := validateEntity("transacción", t); err != nil {
		return nil, err
	}
	var created domain.Transaction
	err := uc.Store.RunInTransaction(ctx, func(tx domain.Tx) error {
		if t.ProjectID != "" {
			p, ok := tx.FindProject(t.ProjectID)
			if !ok {
				return domain.NotFound("proyecto", t.ProjectID)
			}
			if t.ProjectTitle == "" {
				t.ProjectTitle = p.Title
			}
		}
		if t.Date.IsZero() {
			t.Date = today(tx)
		}
		var err error
		created, err = tx.CreateTransaction(t)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (uc *FinanceUC) ListTransactions(ctx context.Context, f TransactionFilter) ([]domain.Transaction, error) {
	var out []domain.Transaction
	err := uc.Store.View(ctx, func(v domain.View) error {
		for _, t := range v.ListTransactions() {
			if f.ProjectID != "" && t.ProjectID != f.ProjectID {
				continue
			}
			if f.Direction != "" && t.Direction != f.Direction {
				continue
			}
			if f.Category != "" && t.Category != f.Category {
				continue
			}
			out = append(out, t)
		}
		return nil
	})
	return out, err
}
