package entity

import "time"

// Tipos de marcación.
const (
	PunchIN  = "IN"
	PunchOUT = "OUT"
)

// AttendanceLog marcación de entrada/salida de un usuario en una tienda.
type AttendanceLog struct {
	ID        string
	UserID    string
	UserName  string
	Type      string // IN | OUT
	ShopID    string
	Timestamp time.Time
	Note      string
}

// AttendancePatch cambios parciales sobre una marcación.
type AttendancePatch struct {
	Type      *string
	Timestamp *time.Time
	Note      *string
}
