package remote

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/entity"
	"github.com/jhoicas/DailyBooks-api/internal/domain/repository"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
	"github.com/jhoicas/DailyBooks-api/pkg/logger"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// Columnas que un esquema antiguo de profiles puede no tener.
var (
	optionalProfileColumns = columnsOf(
		schema.FieldPasswordHash, schema.FieldPhone, schema.FieldPhoto,
		schema.FieldHourlyRate, schema.FieldIsOnline,
	)
	salesmanMetaColumns = columnsOf(
		schema.FieldSalesmanNumber, schema.FieldCanEditTransactions, schema.FieldCanBulkEdit,
	)
	salesmanOrderCandidates = []string{"salesmanNumber", "salesman_number", "created_at", "name"}
)

// ProfileRepo implementación del puerto ProfileRepository sobre el almacén de filas.
type ProfileRepo struct {
	store repository.RowStore
	log   *logger.Logger
}

// NewProfileRepository construye el repositorio de perfiles.
func NewProfileRepository(store repository.RowStore, log *logger.Logger) *ProfileRepo {
	return &ProfileRepo{store: store, log: logger.OrNop(log).Component("profiles")}
}

// GetByID obtiene un perfil por ID.
func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row, err := selectOne(ctx, r.store, schema.TableProfiles, byID(id))
	if err != nil {
		return nil, fmt.Errorf("get profile by id: %w", err)
	}
	if row == nil {
		return nil, nil
	}
	u := schema.ProfileFromRow(row)
	return &u, nil
}

// FindByEmail busca por email exacto y, si no hay coincidencia, sin distinguir mayúsculas.
func (r *ProfileRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findByIdentifier(ctx, schema.FieldEmail, email)
}

// FindByName busca por nombre sobre sus columnas alias.
func (r *ProfileRepo) FindByName(ctx context.Context, name string) (*entity.User, error) {
	return r.findByIdentifier(ctx, schema.FieldName, name)
}

func (r *ProfileRepo) findByIdentifier(ctx context.Context, f schema.Field, value string) (*entity.User, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, col := range schema.Columns(f) {
		row, err := selectOne(ctx, r.store, schema.TableProfiles, []repository.Filter{repository.Eq(col, value)})
		if err != nil {
			if isUndefinedColumn(err) {
				continue
			}
			return nil, fmt.Errorf("find profile by %s: %w", f, err)
		}
		if row != nil {
			u := schema.ProfileFromRow(row)
			return &u, nil
		}
	}

	rows, err := r.store.Select(ctx, schema.TableProfiles, repository.Query{})
	if err != nil {
		return nil, fmt.Errorf("scan profiles: %w", err)
	}
	folded := schema.FoldIdentifier(value)
	for _, row := range rows {
		if schema.FoldIdentifier(row.String(f)) == folded {
			u := schema.ProfileFromRow(row)
			return &u, nil
		}
	}
	return nil, nil
}

// FindSalesmenByPin consulta por igualdad exacta cada columna alias del PIN. Si alguna
// consulta falla por esquema y no hubo coincidencias, escanea todos los vendedores.
func (r *ProfileRepo) FindSalesmenByPin(ctx context.Context, pin, shopID string) ([]entity.Salesman, error) {
	var (
		found     []entity.Salesman
		seen      = make(map[string]struct{})
		schemaErr bool
	)
	for _, col := range schema.Columns(schema.FieldPin) {
		filters := []repository.Filter{
			repository.Eq(col, pin),
			repository.Eq(schema.Column(schema.FieldRole), entity.RoleSalesman),
		}
		if shopID != "" {
			filters = append(filters, repository.Eq(schema.Column(schema.FieldShopID), shopID))
		}
		rows, err := r.store.Select(ctx, schema.TableProfiles, repository.Query{Filters: filters})
		if err != nil {
			if isUndefinedColumn(err) {
				schemaErr = true
				continue
			}
			return nil, fmt.Errorf("find salesmen by pin: %w", err)
		}
		for _, row := range rows {
			s := schema.SalesmanFromRow(row)
			if _, dup := seen[s.ID]; dup {
				continue
			}
			seen[s.ID] = struct{}{}
			found = append(found, s)
		}
	}
	if len(found) > 0 || !schemaErr {
		return found, nil
	}

	r.log.Warn().Str("shop_id", shopID).Msg("búsqueda por PIN con error de esquema; escaneando vendedores")
	all, err := r.ListSalesmen(ctx, shopID)
	if err != nil {
		return nil, err
	}
	for _, s := range all {
		if s.Pin == pin {
			found = append(found, s)
		}
	}
	return found, nil
}

// ListSalesmen lista vendedores probando columnas de orden candidatas.
func (r *ProfileRepo) ListSalesmen(ctx context.Context, shopID string) ([]entity.Salesman, error) {
	filters := []repository.Filter{repository.Eq(schema.Column(schema.FieldRole), entity.RoleSalesman)}
	if shopID != "" {
		filters = append(filters, repository.Eq(schema.Column(schema.FieldShopID), shopID))
	}
	rows, err := selectOrdered(ctx, r.store, schema.TableProfiles, filters, false, salesmanOrderCandidates...)
	if err != nil {
		return nil, fmt.Errorf("list salesmen: %w", err)
	}
	out := make([]entity.Salesman, 0, len(rows))
	for _, row := range rows {
		out = append(out, schema.SalesmanFromRow(row))
	}
	return out, nil
}

// ListAdmins perfiles con rol de gestión (admin, superadmin, superuser).
func (r *ProfileRepo) ListAdmins(ctx context.Context) ([]entity.User, error) {
	rows, err := r.store.Select(ctx, schema.TableProfiles, repository.Query{})
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	var out []entity.User
	for _, row := range rows {
		u := schema.ProfileFromRow(row)
		if entity.IsAdminLike(u.Role) {
			out = append(out, u)
		}
	}
	return out, nil
}

// CreateProfile inserta un perfil degradando columnas opcionales si el esquema no las tiene.
func (r *ProfileRepo) CreateProfile(ctx context.Context, p schema.ProfileInsert) (*entity.User, error) {
	stored, err := insertAttempts(ctx, r.store, schema.TableProfiles, profileAttempts(p.Row())...)
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	u := schema.ProfileFromRow(stored)
	return &u, nil
}

// CreateSalesman inserta el vendedor con sus metadatos; si el esquema no los admite
// se inserta sin ellos (el llamador los conserva como override local).
func (r *ProfileRepo) CreateSalesman(ctx context.Context, p schema.ProfileInsert, meta entity.SalesmanMeta) (*entity.Salesman, error) {
	base := p.Row()
	withMeta := base.Clone()
	if meta.SalesmanNumber != nil {
		withMeta[schema.Column(schema.FieldSalesmanNumber)] = *meta.SalesmanNumber
	}
	if meta.CanEditTransactions != nil {
		withMeta[schema.Column(schema.FieldCanEditTransactions)] = *meta.CanEditTransactions
	}
	if meta.CanBulkEdit != nil {
		withMeta[schema.Column(schema.FieldCanBulkEdit)] = *meta.CanBulkEdit
	}

	attempts := []schema.Row{withMeta}
	attempts = append(attempts, profileAttempts(base)...)
	stored, err := insertAttempts(ctx, r.store, schema.TableProfiles, attempts...)
	if err != nil {
		return nil, fmt.Errorf("insert salesman: %w", err)
	}
	s := schema.SalesmanFromRow(stored)
	meta.Apply(&s)
	return &s, nil
}

// profileAttempts variantes de inserción: completa, sin columnas opcionales y con
// el PIN en cada columna alias alternativa.
func profileAttempts(full schema.Row) []schema.Row {
	full = full.Without(salesmanMetaColumns...)
	minimal := full.Without(optionalProfileColumns...)
	attempts := []schema.Row{full, minimal}

	pinCol := schema.Column(schema.FieldPin)
	pin, hasPin := minimal[pinCol]
	if !hasPin {
		return attempts
	}
	for _, alias := range schema.Columns(schema.FieldPin)[1:] {
		alt := minimal.Without(pinCol)
		alt[alias] = pin
		attempts = append(attempts, alt)
	}
	return attempts
}

// Update aplica el patch. El PIN se escribe en cada columna alias que exista.
func (r *ProfileRepo) Update(ctx context.Context, id, shopID string, patch schema.ProfilePatch) error {
	filters := scoped(id, shopID)
	row := patch.Row()
	if !row.IsEmpty() {
		n, err := updateAttempts(ctx, r.store, schema.TableProfiles, filters, row, row.Without(optionalProfileColumns...))
		if err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		if n == 0 {
			return domain.ErrNotFound
		}
	}
	if patch.Pin != nil {
		written, n, err := writeAliases(ctx, r.store, schema.TableProfiles, filters, schema.FieldPin, *patch.Pin)
		if err != nil {
			return fmt.Errorf("update profile pin: %w", err)
		}
		if written == 0 {
			return fmt.Errorf("update profile pin: %w", domain.ErrUndefinedColumn)
		}
		if n == 0 {
			return domain.ErrNotFound
		}
	}
	return nil
}

// Delete borra el perfil; shopID no vacío restringe el borrado a esa tienda.
func (r *ProfileRepo) Delete(ctx context.Context, id, shopID string) error {
	n, err := r.store.Delete(ctx, schema.TableProfiles, scoped(id, shopID))
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
