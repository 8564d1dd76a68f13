package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los datos de la sesión del workspace.
// WorkspaceID identifica el estado del cliente en el servidor; Role permite decisiones
// RBAC sin consultar el almacén.
type Claims struct {
	jwt.RegisteredClaims
	WorkspaceID string `json:"workspace_id"`
	UserID      string `json:"user_id"`
	ShopID      string `json:"shop_id"`
	Role        string `json:"role"` // "superadmin" | "superuser" | "admin" | "salesman"
}

// SessionClaims datos de sesión extraídos de un token válido.
type SessionClaims struct {
	WorkspaceID string
	UserID      string
	ShopID      string
	Role        string
	ExpiresAt   time.Time
}

// Generate firma un token HS256 que vence exactamente en expiresAt (ventana fija de la sesión).
func Generate(secret, issuer string, s SessionClaims) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if s.WorkspaceID == "" {
		return "", fmt.Errorf("jwt: workspace_id vacío")
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
		WorkspaceID: s.WorkspaceID,
		UserID:      s.UserID,
		ShopID:      s.ShopID,
		Role:        s.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve los datos de sesión.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*SessionClaims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	out := &SessionClaims{
		WorkspaceID: claims.WorkspaceID,
		UserID:      claims.UserID,
		ShopID:      claims.ShopID,
		Role:        claims.Role,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
