package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos y categorías de transacción usados por esta capa.
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"

	CategorySalary = "Salary"

	SourcePayrollAuto = "payroll-auto"
)

// Transaction movimiento contable de una tienda (venta, gasto, nómina).
type Transaction struct {
	ID             string
	ShopID         string
	UserID         string
	Desc           string
	Amount         decimal.Decimal
	Type           string
	Category       string
	IsFixedExpense bool
	Source         string
	Date           time.Time
}
