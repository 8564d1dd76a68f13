package tenant

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"
)

const passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

// PasswordLength longitud de la contraseña temporal del dueño.
const PasswordLength = 10

func randomString(r io.Reader, alphabet string, n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(r, max)
		if err != nil {
			return "", fmt.Errorf("generar credencial: %w", err)
		}
		b.WriteByte(alphabet[idx.Int64()])
	}
	return b.String(), nil
}

// RandomPIN PIN temporal de 4 dígitos.
func RandomPIN(r io.Reader) (string, error) {
	return randomString(r, "0123456789", 4)
}

// RandomPassword contraseña temporal sin caracteres ambiguos.
func RandomPassword(r io.Reader) (string, error) {
	return randomString(r, passwordAlphabet, PasswordLength)
}
