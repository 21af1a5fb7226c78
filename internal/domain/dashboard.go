package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ActivityKind string

const (
	ActivityProject     ActivityKind = "project"
	ActivityTransaction ActivityKind = "transaction"
)

type Activity struct {
	Kind    ActivityKind `json:"type"`
	Message string       `json:"message"`
	Date    time.Time    `json:"date"`
}

type DashboardStats struct {
	TotalClients    int             `json:"total_clients"`
	ActiveProjects  int             `json:"active_projects"`
	MonthlyRevenue  decimal.Decimal `json:"monthly_revenue"`
	PendingPayments decimal.Decimal `json:"pending_payments"`
	LowStockItems   int             `json:"low_stock_items"`
	RecentActivity  []Activity      `json:"recent_activity"`
}
