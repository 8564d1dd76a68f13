package dto

import "time"

// ShopResponse salida de una tienda. Los datos del dueño solo se llenan para administradores globales.
type ShopResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Location       string     `json:"location,omitempty"`
	Address        string     `json:"address,omitempty"`
	Telephone      string     `json:"telephone,omitempty"`
	OwnerEmail     string     `json:"owner_email,omitempty"`
	OwnerPassword  string     `json:"owner_password,omitempty"`
	OwnerProfileID string     `json:"owner_profile_id,omitempty"`
	BillShowTax    bool       `json:"bill_show_tax"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

// CreateShopRequest entrada de POST /api/shops.
type CreateShopRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Location   string `json:"location"`
	Address    string `json:"address"`
	OwnerEmail string `json:"owner_email" validate:"required,email"`
	Telephone  string `json:"telephone"`
}

// CreateShopResponse tienda creada y credenciales generadas del dueño (se muestran una sola vez).
type CreateShopResponse struct {
	Shop        ShopResponse        `json:"shop"`
	Admin       UserResponse        `json:"admin"`
	Credentials OwnerCredentialsDTO `json:"credentials"`
}

// OwnerCredentialsDTO credenciales del administrador de la tienda.
type OwnerCredentialsDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Pin      string `json:"pin"`
}

// UpdateShopRequest entrada de PATCH /api/shops/:id (campos opcionales).
type UpdateShopRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	Location      *string `json:"location"`
	Address       *string `json:"address"`
	Telephone     *string `json:"telephone"`
	OwnerEmail    *string `json:"owner_email" validate:"omitempty,email"`
	OwnerPassword *string `json:"owner_password"`
	BillShowTax   *bool   `json:"bill_show_tax"`
}

// CascadeStepDTO resultado del borrado en una tabla dependiente.
type CascadeStepDTO struct {
	Table   string `json:"table"`
	Deleted int64  `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

// DeleteShopResponse informe del borrado en cascada.
type DeleteShopResponse struct {
	ShopID       string           `json:"shop_id"`
	ShopDeleted  bool             `json:"shop_deleted"`
	Partial      bool             `json:"partial"`
	Steps        []CascadeStepDTO `json:"steps"`
	ActiveShopID string           `json:"active_shop_id"`
}
