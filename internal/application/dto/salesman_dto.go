package dto

import "github.com/shopspring/decimal"

// SalesmanResponse salida de un vendedor. Persisted=false: registro local que no llegó al almacén.
type SalesmanResponse struct {
	UserResponse
	Pin                 string `json:"pin"`
	SalesmanNumber      int    `json:"salesman_number"`
	CanEditTransactions bool   `json:"can_edit_transactions"`
	CanBulkEdit         bool   `json:"can_bulk_edit"`
	Persisted           bool   `json:"persisted"`
}

// AddSalesmanRequest entrada de POST /api/salesmen.
type AddSalesmanRequest struct {
	Name                string          `json:"name" validate:"required,min=1,max=200"`
	Pin                 string          `json:"pin" validate:"required,len=4,numeric"`
	Phone               string          `json:"phone"`
	Photo               string          `json:"photo"`
	HourlyRate          decimal.Decimal `json:"hourly_rate"`
	SalesmanNumber      int             `json:"salesman_number"`
	CanEditTransactions bool            `json:"can_edit_transactions"`
	CanBulkEdit         bool            `json:"can_bulk_edit"`
}

// UpdateSalesmanRequest entrada de PATCH /api/salesmen/:id (campos opcionales).
type UpdateSalesmanRequest struct {
	Name                *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Pin                 *string          `json:"pin" validate:"omitempty,len=4,numeric"`
	Phone               *string          `json:"phone"`
	Photo               *string          `json:"photo"`
	HourlyRate          *decimal.Decimal `json:"hourly_rate"`
	Active              *bool            `json:"active"`
	SalesmanNumber      *int             `json:"salesman_number"`
	CanEditTransactions *bool            `json:"can_edit_transactions"`
	CanBulkEdit         *bool            `json:"can_bulk_edit"`
}
