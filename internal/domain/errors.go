package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los mensajes se muestran tal cual al usuario final.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Almacén remoto: la columna no existe en el esquema desplegado.
	ErrUndefinedColumn = errors.New("columna inexistente en el almacén remoto")

	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInvalidPin         = errors.New("el PIN debe tener 4 dígitos")
	ErrPinNotFound        = errors.New("PIN incorrecto")
	ErrAmbiguousPin       = errors.New("el PIN existe en varias tiendas; seleccione una tienda primero")
	ErrDuplicatePin       = errors.New("el PIN está asignado a varios vendedores de la tienda; contacte al administrador")
	ErrInactiveAccount    = errors.New("la cuenta está inactiva")
	ErrRoleNotAllowed     = errors.New("el rol no tiene acceso de administrador")
	ErrAdminWithoutShop   = errors.New("el administrador no tiene una tienda asignada")
	ErrPinTaken           = errors.New("el PIN ya está en uso por otro vendedor")
	ErrLastShop           = errors.New("no se puede eliminar la última tienda")
	ErrNoActiveShop       = errors.New("no hay una tienda activa")
	ErrNotLoggedIn        = errors.New("no hay una sesión activa")
)
