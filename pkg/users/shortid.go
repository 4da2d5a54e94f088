package users

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultIDLength é o tamanho padrão dos IDs gerados.
const DefaultIDLength = 3

// GenerateShortID gera um UUID v4, remove os hífens e devolve os primeiros
// length caracteres hexadecimais. Com o tamanho padrão a chance de colisão é
// alta e uma colisão sobrescreve o usuário existente no Put.
func GenerateShortID(length int) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate user id: %w", err)
	}

	hex := strings.ReplaceAll(id.String(), "-", "")
	if length < 1 {
		length = DefaultIDLength
	}
	if length > len(hex) {
		length = len(hex)
	}
	return hex[:length], nil
}
