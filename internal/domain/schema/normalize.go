package schema

import (
	"strings"

	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// FoldIdentifier normaliza emails/identificadores para comparación sin distinción de mayúsculas.
func FoldIdentifier(s string) string {
	return folder.String(strings.TrimSpace(s))
}

// NormalizeRole proyecta las variantes de rol al conjunto canónico.
// Devuelve "" si el rol no es reconocido.
func NormalizeRole(raw string) string {
	r := FoldIdentifier(raw)
	r = strings.NewReplacer("_", "", "-", "", " ", "").Replace(r)
	switch r {
	case entity.RoleSuperAdmin:
		return entity.RoleSuperAdmin
	case entity.RoleSuperUser:
		return entity.RoleSuperUser
	case entity.RoleAdmin, "owner", "shopadmin":
		return entity.RoleAdmin
	case entity.RoleSalesman, "salesperson", "staff", "worker":
		return entity.RoleSalesman
	default:
		return ""
	}
}

// ProfileFromRow proyecta una fila de profiles al usuario canónico.
func ProfileFromRow(r Row) entity.User {
	return entity.User{
		ID:           r.String(FieldID),
		Name:         r.String(FieldName),
		Email:        r.String(FieldEmail),
		Role:         NormalizeRole(r.String(FieldRole)),
		Pin:          r.String(FieldPin),
		Password:     r.String(FieldPassword),
		PasswordHash: r.String(FieldPasswordHash),
		Phone:        r.String(FieldPhone),
		HourlyRate:   r.Decimal(FieldHourlyRate),
		Photo:        r.String(FieldPhoto),
		Active:       r.Bool(FieldActive, true),
		ShopID:       r.String(FieldShopID),
		IsOnline:     r.Bool(FieldIsOnline, false),
	}
}

// SalesmanFromRow proyecta una fila de profiles a vendedor, incluyendo los metadatos
// que el esquema remoto tenga (los overrides locales se aplican después).
func SalesmanFromRow(r Row) entity.Salesman {
	return entity.Salesman{
		User:                ProfileFromRow(r),
		SalesmanNumber:      r.Int(FieldSalesmanNumber),
		CanEditTransactions: r.Bool(FieldCanEditTransactions, false),
		CanBulkEdit:         r.Bool(FieldCanBulkEdit, false),
		Persisted:           true,
	}
}

// ShopFromRow proyecta una fila de shops a la tienda canónica.
func ShopFromRow(r Row) entity.Shop {
	return entity.Shop{
		ID:          r.String(FieldID),
		Name:        r.String(FieldName),
		Location:    r.String(FieldLocation),
		Address:     r.String(FieldAddress),
		Telephone:   r.String(FieldTelephone),
		OwnerEmail:  r.String(FieldOwnerEmail),
		BillShowTax: r.Bool(FieldBillShowTax, false),
		CreatedAt:   r.Time(FieldCreatedAt),
	}
}

// AttendanceFromRow proyecta una fila de attendance a la marcación canónica.
func AttendanceFromRow(r Row) entity.AttendanceLog {
	return entity.AttendanceLog{
		ID:        r.String(FieldID),
		UserID:    r.String(FieldWorkerID),
		UserName:  r.String(FieldWorkerName),
		Type:      strings.ToUpper(r.String(FieldType)),
		ShopID:    r.String(FieldShopID),
		Timestamp: r.Time(FieldTimestamp),
		Note:      r.String(FieldNote),
	}
}

// TransactionFromRow proyecta una fila de transactions.
func TransactionFromRow(r Row) entity.Transaction {
	return entity.Transaction{
		ID:             r.String(FieldID),
		ShopID:         r.String(FieldShopID),
		UserID:         r.String(FieldWorkerID),
		Desc:           r.String(FieldDesc),
		Amount:         r.Decimal(FieldAmount),
		Type:           strings.ToLower(r.String(FieldType)),
		Category:       r.String(FieldCategory),
		IsFixedExpense: r.Bool(FieldIsFixedExpense, false),
		Source:         r.String(FieldSource),
		Date:           r.Time(FieldDate),
	}
}

// ── Escritura: entidad → fila con columnas canónicas ────────────────────────

// ProfileInsert datos de un perfil nuevo.
type ProfileInsert struct {
	ID           string
	Name         string
	Email        string
	Role         string
	Pin          string
	Password     string
	PasswordHash string
	Phone        string
	HourlyRate   decimal.Decimal
	Photo        string
	Active       bool
	ShopID       string
}

// Row fila lista para insertar (sin columnas vacías opcionales).
func (p ProfileInsert) Row() Row {
	r := Row{
		Column(FieldID):         p.ID,
		Column(FieldName):       p.Name,
		Column(FieldRole):       p.Role,
		Column(FieldActive):     p.Active,
		Column(FieldShopID):     p.ShopID,
		Column(FieldIsOnline):   false,
		Column(FieldHourlyRate): p.HourlyRate,
	}
	setIfNotEmpty(r, FieldEmail, p.Email)
	setIfNotEmpty(r, FieldPin, p.Pin)
	setIfNotEmpty(r, FieldPassword, p.Password)
	setIfNotEmpty(r, FieldPasswordHash, p.PasswordHash)
	setIfNotEmpty(r, FieldPhone, p.Phone)
	setIfNotEmpty(r, FieldPhoto, p.Photo)
	return r
}

// ProfilePatch cambios parciales de un perfil (nil = sin cambio).
type ProfilePatch struct {
	Name         *string
	Email        *string
	Pin          *string
	Password     *string
	PasswordHash *string
	Phone        *string
	HourlyRate   *decimal.Decimal
	Photo        *string
	Active       *bool
	IsOnline     *bool
}

// IsZero informa si el patch no cambia nada.
func (p ProfilePatch) IsZero() bool {
	return p.Row().IsEmpty() && p.Pin == nil
}

// Row columnas canónicas a actualizar. El PIN se excluye: se escribe por alias.
func (p ProfilePatch) Row() Row {
	r := Row{}
	setPtr(r, FieldName, p.Name)
	setPtr(r, FieldEmail, p.Email)
	setPtr(r, FieldPassword, p.Password)
	setPtr(r, FieldPasswordHash, p.PasswordHash)
	setPtr(r, FieldPhone, p.Phone)
	setPtr(r, FieldPhoto, p.Photo)
	if p.HourlyRate != nil {
		r[Column(FieldHourlyRate)] = *p.HourlyRate
	}
	if p.Active != nil {
		r[Column(FieldActive)] = *p.Active
	}
	if p.IsOnline != nil {
		r[Column(FieldIsOnline)] = *p.IsOnline
	}
	return r
}

// ShopPatch cambios parciales de una tienda. El teléfono se escribe aparte, por alias.
type ShopPatch struct {
	Name        *string
	Location    *string
	Address     *string
	OwnerEmail  *string
	BillShowTax *bool
}

// Row columnas canónicas a actualizar.
func (p ShopPatch) Row() Row {
	r := Row{}
	setPtr(r, FieldName, p.Name)
	setPtr(r, FieldLocation, p.Location)
	setPtr(r, FieldAddress, p.Address)
	setPtr(r, FieldOwnerEmail, p.OwnerEmail)
	if p.BillShowTax != nil {
		r[Column(FieldBillShowTax)] = *p.BillShowTax
	}
	return r
}

// AttendanceRow fila de una marcación.
func AttendanceRow(l entity.AttendanceLog) Row {
	r := Row{
		Column(FieldID):         l.ID,
		Column(FieldWorkerID):   l.UserID,
		Column(FieldWorkerName): l.UserName,
		Column(FieldType):       l.Type,
		Column(FieldShopID):     l.ShopID,
		Column(FieldTimestamp):  l.Timestamp.UTC(),
	}
	setIfNotEmpty(r, FieldNote, l.Note)
	return r
}

// AttendancePatchRow columnas a actualizar de una marcación.
func AttendancePatchRow(p entity.AttendancePatch) Row {
	r := Row{}
	setPtr(r, FieldType, p.Type)
	setPtr(r, FieldNote, p.Note)
	if p.Timestamp != nil {
		r[Column(FieldTimestamp)] = p.Timestamp.UTC()
	}
	return r
}

// TransactionRow fila de una transacción.
func TransactionRow(t entity.Transaction) Row {
	r := Row{
		Column(FieldID):             t.ID,
		Column(FieldShopID):         t.ShopID,
		Column(FieldDesc):           t.Desc,
		Column(FieldAmount):         t.Amount,
		Column(FieldType):           t.Type,
		Column(FieldCategory):       t.Category,
		Column(FieldIsFixedExpense): t.IsFixedExpense,
		Column(FieldDate):           t.Date.UTC(),
	}
	setIfNotEmpty(r, FieldWorkerID, t.UserID)
	setIfNotEmpty(r, FieldSource, t.Source)
	return r
}

// IsEmpty informa si la fila no tiene columnas.
func (r Row) IsEmpty() bool { return len(r) == 0 }

func setIfNotEmpty(r Row, f Field, v string) {
	if v != "" {
		r[Column(f)] = v
	}
}

func setPtr(r Row, f Field, v *string) {
	if v != nil {
		r[Column(f)] = *v
	}
}
