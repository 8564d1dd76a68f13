// Package authapi cliente del endpoint remoto de autenticación de administradores.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/DailyBooks-api/internal/application/ports"
	"github.com/jhoicas/DailyBooks-api/internal/domain"
	"github.com/jhoicas/DailyBooks-api/internal/domain/schema"
)

// AdminLoginPath ruta del endpoint relativa a la URL base.
const AdminLoginPath = "/api/auth/admin-login"

var _ ports.AdminAuthenticator = (*Client)(nil)

// Client adaptador HTTP de ports.AdminAuthenticator.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. baseURL sin barra final (ej. https://api.dailybooks.app).
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// ── Protocolo del endpoint ────────────────────────────────────────────────────

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type loginResponse struct {
	Success bool       `json:"success"`
	Data    schema.Row `json:"data"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// RejectedError rechazo explícito del endpoint ({success:false}). El mensaje es apto
// para mostrarse al usuario.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string { return e.Message }

func (e *RejectedError) Unwrap() error { return domain.ErrInvalidCredentials }

// AdminLogin envía {identifier, password} y devuelve el perfil crudo de data.
func (c *Client) AdminLogin(ctx context.Context, identifier, password string) (schema.Row, error) {
	body, err := json.Marshal(loginRequest{Identifier: identifier, Password: password})
	if err != nil {
		return nil, fmt.Errorf("auth api: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+AdminLoginPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("auth api: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("auth api: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("auth api: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("auth api: leer respuesta: %w", err)
	}

	var out loginResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("auth api: HTTP %d con cuerpo no JSON", resp.StatusCode)
	}
	if !out.Success {
		msg := domain.ErrInvalidCredentials.Error()
		if out.Error != nil && strings.TrimSpace(out.Error.Message) != "" {
			msg = out.Error.Message
		}
		return nil, &RejectedError{Message: msg}
	}
	if len(out.Data) == 0 {
		return nil, fmt.Errorf("auth api: respuesta sin perfil")
	}
	return out.Data, nil
}
