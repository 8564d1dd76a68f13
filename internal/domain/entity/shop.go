package entity

import "time"

// Shop tenant: una tienda aislada con su inventario, personal y transacciones.
// OwnerEmail/OwnerPassword son una desnormalización para la vista de administración.
type Shop struct {
	ID             string
	Name           string
	Location       string
	Address        string
	Telephone      string
	OwnerEmail     string
	OwnerPassword  string
	OwnerProfileID string
	BillShowTax    bool
	CreatedAt      time.Time
}

// ShopMeta configuración local de la tienda que el esquema remoto no conserva de forma fiable.
// Durabilidad: la del OverrideStore configurado (memoria = vida del proceso).
type ShopMeta struct {
	Address     *string `json:"address,omitempty"`
	Telephone   *string `json:"telephone,omitempty"`
	BillShowTax *bool   `json:"billShowTax,omitempty"`
}

// IsZero informa si no hay ningún override definido.
func (m ShopMeta) IsZero() bool {
	return m.Address == nil && m.Telephone == nil && m.BillShowTax == nil
}

// Merge devuelve m con los campos definidos en next sobrescritos.
func (m ShopMeta) Merge(next ShopMeta) ShopMeta {
	if next.Address != nil {
		m.Address = next.Address
	}
	if next.Telephone != nil {
		m.Telephone = next.Telephone
	}
	if next.BillShowTax != nil {
		m.BillShowTax = next.BillShowTax
	}
	return m
}

// Apply superpone el override sobre la tienda (el override gana).
func (m ShopMeta) Apply(s *Shop) {
	if m.Address != nil {
		s.Address = *m.Address
	}
	if m.Telephone != nil {
		s.Telephone = *m.Telephone
	}
	if m.BillShowTax != nil {
		s.BillShowTax = *m.BillShowTax
	}
}
