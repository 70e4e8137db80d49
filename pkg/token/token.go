package token

import (
	"strings"

	"github.com/google/uuid"
)

// New genera un token de sesión opaco a partir de un UUID v4 (122 bits aleatorios de crypto/rand),
// en hexadecimal sin guiones (32 caracteres).
func New() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(id.String(), "-", ""), nil
}

// ParseBearer extrae el token de un header "Bearer <token>".
// ok=false si el header está vacío, no usa el esquema Bearer o el token viene vacío.
func ParseBearer(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", false
	}
	return tok, true
}
