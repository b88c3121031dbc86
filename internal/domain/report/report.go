package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummary is the read model behind the dashboard endpoint.
// All figures are derived by SQL aggregation; nothing here is a source
// of truth.
type DashboardSummary struct {
	CashBalance        decimal.Decimal `json:"cash_balance"`
	BankBalance        decimal.Decimal `json:"bank_balance"`
	TotalBalance       decimal.Decimal `json:"total_balance"`
	InvoiceReceivables decimal.Decimal `json:"invoice_receivables"`
	DebtReceivables    decimal.Decimal `json:"debt_receivables"`
	SupplierPayables   decimal.Decimal `json:"supplier_payables"`
	UnpaidInvoices     int64           `json:"unpaid_invoices"`
	OverdueDebts       int64           `json:"overdue_debts"`
	LowStockItems      int64           `json:"low_stock_items"`
	MonthIncome        decimal.Decimal `json:"month_income"`
	MonthExpense       decimal.Decimal `json:"month_expense"`
	MonthProfit        decimal.Decimal `json:"month_profit"`
	GeneratedAt        time.Time       `json:"generated_at"`
}

// MovementTotal aggregates cash movements of one type over a period
type MovementTotal struct {
	MovementType string          `json:"movement_type"`
	Total        decimal.Decimal `json:"total"`
	Count        int64           `json:"count"`
}

// ReportRepository is the read-only aggregation port
type ReportRepository interface {
	GetDashboardSummary(ctx context.Context, now time.Time) (*DashboardSummary, error)
	GetMovementTotals(ctx context.Context, from, to time.Time) ([]MovementTotal, error)
}
