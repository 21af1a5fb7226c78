package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/phenrril/carpinteria/internal/domain"
)

const (
	recentPerKind = 3
	recentTotal   = 5
)

type DashboardUC struct {
	Store domain.Store
	// símbolo usado en los mensajes de actividad; vacío usa "$"
	Currency string
}

// Stats calcula los indicadores sobre una única lectura consistente del store.
func (uc *DashboardUC) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var st domain.DashboardStats
	err := uc.Store.View(ctx, func(v domain.View) error {
		projects := v.ListProjects()
		transactions := v.ListTransactions()

		st.TotalClients = len(v.ListClients())
		st.MonthlyRevenue = decimal.Zero
		st.PendingPayments = decimal.Zero

		for _, p := range projects {
			if p.Status.Active() {
				st.ActiveProjects++
			}
			if p.Status.AwaitingFinalPayment() {
				st.PendingPayments = st.PendingPayments.Add(p.HalfBudget())
			}
		}

		// sólo se compara el mes, el año no entra en la cuenta
		month := v.Now().Month()
		for _, t := range transactions {
			if t.Direction == domain.DirectionIn && !t.Date.IsZero() && t.Date.Month() == month {
				st.MonthlyRevenue = st.MonthlyRevenue.Add(t.Amount)
			}
		}

		for _, m := range v.ListMaterials() {
			if m.LowStock() {
				st.LowStockItems++
			}
		}

		st.RecentActivity = uc.recentActivity(projects, transactions)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (uc *DashboardUC) recentActivity(projects []domain.Project, transactions []domain.Transaction) []domain.Activity {
	out := make([]domain.Activity, 0, 2*recentPerKind)
	for _, p := range lastN(projects, recentPerKind) {
		out = append(out, domain.Activity{
			Kind:    domain.ActivityProject,
			Message: fmt.Sprintf("Nuevo proyecto #%d: %s", p.Number, p.Title),
			Date:    p.CreatedAt,
		})
	}
	cur := uc.Currency
	if cur == "" {
		cur = "$"
	}
	for _, t := range lastN(transactions, recentPerKind) {
		verb := "Cobro"
		if t.Direction == domain.DirectionOut {
			verb = "Pago"
		}
		out = append(out, domain.Activity{
			Kind:    domain.ActivityTransaction,
			Message: fmt.Sprintf("%s: %s %s", verb, cur, t.Amount.StringFixed(2)),
			Date:    t.CreatedAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > recentTotal {
		out = out[:recentTotal]
	}
	return out
}

func lastN[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
