package entity

import "time"

// Session sesión de un cliente: rol + usuario con vencimiento fijo.
type Session struct {
	Role      string    `json:"role"`
	UserID    string    `json:"userId"`
	ShopID    string    `json:"shopId,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired informa si la sesión venció en el instante now.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
