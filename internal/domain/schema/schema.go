// Package schema es la única capa que conoce los nombres de columna del almacén remoto.
//
// Las filas remotas son heterogéneas (phone/telephone, pin/passcode, ...). Cada campo
// canónico declara sus alias en Aliases; la proyección al modelo de dominio se hace en
// una sola dirección (fila → entidad). Un cambio de esquema se resuelve aquí.
package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tablas del almacén remoto.
const (
	TableProfiles     = "profiles"
	TableShops        = "shops"
	TableAttendance   = "attendance"
	TableTransactions = "transactions"
	TableRepairs      = "repairs"
	TableCategories   = "categories"
	TableInventory    = "inventory"
)

// Field campo canónico con uno o más nombres de columna posibles.
type Field string

// Campos canónicos.
const (
	FieldID                  Field = "id"
	FieldName                Field = "name"
	FieldEmail               Field = "email"
	FieldRole                Field = "role"
	FieldPin                 Field = "pin"
	FieldPassword            Field = "password"
	FieldPasswordHash        Field = "password_hash"
	FieldPhone               Field = "phone"
	FieldHourlyRate          Field = "hourlyRate"
	FieldPhoto               Field = "photo"
	FieldActive              Field = "active"
	FieldShopID              Field = "shop_id"
	FieldIsOnline            Field = "is_online"
	FieldSalesmanNumber      Field = "salesmanNumber"
	FieldCanEditTransactions Field = "canEditTransactions"
	FieldCanBulkEdit         Field = "canBulkEdit"
	FieldLocation            Field = "location"
	FieldAddress             Field = "address"
	FieldTelephone           Field = "telephone"
	FieldOwnerEmail          Field = "owner_email"
	FieldBillShowTax         Field = "billShowTax"
	FieldCreatedAt           Field = "created_at"
	FieldWorkerID            Field = "workerId"
	FieldWorkerName          Field = "workerName"
	FieldType                Field = "type"
	FieldTimestamp           Field = "timestamp"
	FieldNote                Field = "note"
	FieldDesc                Field = "desc"
	FieldAmount              Field = "amount"
	FieldCategory            Field = "category"
	FieldIsFixedExpense      Field = "isFixedExpense"
	FieldSource              Field = "source"
	FieldDate                Field = "date"
)

// Aliases tabla de mapeo declarada: el primer alias es la columna canónica de escritura.
var Aliases = map[Field][]string{
	FieldID:                  {"id"},
	FieldName:                {"name", "full_name"},
	FieldEmail:               {"email"},
	FieldRole:                {"role"},
	FieldPin:                 {"pin", "passcode", "pin_code", "pass_code"},
	FieldPassword:            {"password"},
	FieldPasswordHash:        {"password_hash"},
	FieldPhone:               {"phone", "telephone", "phone_number", "mobile"},
	FieldHourlyRate:          {"hourlyRate", "hourly_rate"},
	FieldPhoto:               {"photo", "avatar", "photo_url"},
	FieldActive:              {"active", "is_active"},
	FieldShopID:              {"shop_id", "shopId"},
	FieldIsOnline:            {"is_online", "isOnline"},
	FieldSalesmanNumber:      {"salesmanNumber", "salesman_number"},
	FieldCanEditTransactions: {"canEditTransactions", "can_edit_transactions"},
	FieldCanBulkEdit:         {"canBulkEdit", "can_bulk_edit"},
	FieldLocation:            {"location"},
	FieldAddress:             {"address"},
	FieldTelephone: {
		"telephone", "phone", "phone_number", "mobile",
		"contact_phone", "shop_phone", "contact_number", "tel",
	},
	FieldOwnerEmail:     {"owner_email", "ownerEmail"},
	FieldBillShowTax:    {"billShowTax", "bill_show_tax"},
	FieldCreatedAt:      {"created_at", "createdAt"},
	FieldWorkerID:       {"workerId", "worker_id", "user_id"},
	FieldWorkerName:     {"workerName", "worker_name"},
	FieldType:           {"type"},
	FieldTimestamp:      {"timestamp", "created_at"},
	FieldNote:           {"note"},
	FieldDesc:           {"desc", "description"},
	FieldAmount:         {"amount"},
	FieldCategory:       {"category"},
	FieldIsFixedExpense: {"isFixedExpense", "is_fixed_expense"},
	FieldSource:         {"source"},
	FieldDate:           {"date", "created_at"},
}

// Column devuelve la columna canónica (de escritura) del campo.
func Column(f Field) string {
	if names, ok := Aliases[f]; ok && len(names) > 0 {
		return names[0]
	}
	return string(f)
}

// Columns devuelve todos los alias del campo, en orden de preferencia.
func Columns(f Field) []string {
	if names, ok := Aliases[f]; ok {
		return names
	}
	return []string{string(f)}
}

// Row fila del almacén remoto tal como llega (schema-on-read).
type Row map[string]any

// Lookup devuelve el primer valor no nulo entre los alias del campo.
func (r Row) Lookup(f Field) (any, bool) {
	for _, col := range Columns(f) {
		if v, ok := r[col]; ok && v != nil {
			if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
				continue
			}
			return v, true
		}
	}
	return nil, false
}

// Has informa si el campo tiene valor en alguno de sus alias.
func (r Row) Has(f Field) bool {
	_, ok := r.Lookup(f)
	return ok
}

// String valor textual del campo ("" si no existe).
func (r Row) String(f Field) string {
	v, ok := r.Lookup(f)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []byte:
		return strings.TrimSpace(string(t))
	case [16]byte:
		return uuid.UUID(t).String()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// Bool valor booleano del campo; def si no existe o no es interpretable.
func (r Row) Bool(f Field, def bool) bool {
	v, ok := r.Lookup(f)
	if !ok {
		return def
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return def
		}
		return b
	case int, int32, int64, float64:
		return fmt.Sprint(t) != "0"
	default:
		return def
	}
}

// Int valor entero del campo (0 si no existe o no es interpretable).
func (r Row) Int(f Field) int {
	d := r.Decimal(f)
	return int(d.IntPart())
}

// Decimal valor numérico del campo (cero si no existe o no es interpretable).
func (r Row) Decimal(f Field) decimal.Decimal {
	v, ok := r.Lookup(f)
	if !ok {
		return decimal.Zero
	}
	switch t := v.(type) {
	case decimal.Decimal:
		return t
	case float64:
		return decimal.NewFromFloat(t)
	case float32:
		return decimal.NewFromFloat32(t)
	case int:
		return decimal.NewFromInt(int64(t))
	case int32:
		return decimal.NewFromInt32(t)
	case int64:
		return decimal.NewFromInt(t)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		d, err := decimal.NewFromString(fmt.Sprint(t))
		if err != nil {
			return decimal.Zero
		}
		return d
	}
}

// Time valor temporal del campo (zero time si no existe o no es interpretable).
func (r Row) Time(f Field) time.Time {
	v, ok := r.Lookup(f)
	if !ok {
		return time.Time{}
	}
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts
			}
		}
	case int64:
		return time.UnixMilli(t)
	case float64:
		return time.UnixMilli(int64(t))
	}
	return time.Time{}
}

// Clone copia superficial de la fila.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Without devuelve una copia sin las columnas indicadas.
func (r Row) Without(cols ...string) Row {
	out := r.Clone()
	for _, c := range cols {
		delete(out, c)
	}
	return out
}
