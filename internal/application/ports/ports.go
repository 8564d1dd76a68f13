// Package ports define los colaboradores externos que consume la capa de aplicación.
package ports

import (
	"context"
	"time"

	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
	"github.com/shopspring/decimal"
)

// AdminAuthenticator valida credenciales de administrador contra el endpoint remoto
// (POST {API_BASE}/api/auth/admin-login). Devuelve la fila de perfil tal como la envía el endpoint.
type AdminAuthenticator interface {
	AdminLogin(ctx context.Context, identifier, password string) (schema.Row, error)
}

// Canales y eventos de difusión.
const (
	ChannelSettings         = "public:settings"
	ChannelAttendancePrefix = "public:attendance:"

	EventSettingsSync = "settings_sync"
	EventInsert       = "INSERT"
	EventUpdate       = "UPDATE"
	EventDelete       = "DELETE"
)

// AttendanceChannel canal de cambios de marcaciones de una tienda.
func AttendanceChannel(shopID string) string {
	return ChannelAttendancePrefix + shopID
}

// Message mensaje recibido por un canal de difusión.
type Message struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Payload []byte `json:"payload"`
}

// Broadcaster canal pub/sub best-effort: sin orden garantizado respecto a escrituras directas.
// Subscribe devuelve un canal de mensajes y una función para cancelar la suscripción.
type Broadcaster interface {
	Publish(ctx context.Context, channel, event string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan Message, func(), error)
}

// PayrollEvent se publica al generar automáticamente un gasto de nómina.
type PayrollEvent struct {
	TransactionID string          `json:"transaction_id"`
	ShopID        string          `json:"shop_id"`
	UserID        string          `json:"user_id"`
	UserName      string          `json:"user_name"`
	Hours         decimal.Decimal `json:"hours"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	Amount        decimal.Decimal `json:"amount"`
	ShiftStart    time.Time       `json:"shift_start"`
	ShiftEnd      time.Time       `json:"shift_end"`
}

// PayrollPublisher publica eventos de nómina para consumidores externos (contabilidad).
type PayrollPublisher interface {
	PublishPayroll(ctx context.Context, ev PayrollEvent) error
}
