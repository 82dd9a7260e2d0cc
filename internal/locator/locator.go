// Package locator encontra a linha da planilha que guarda um cadastro.
package locator

import (
	"fmt"
	"strings"

	"sigec/internal/apperrors"
	"sigec/internal/cliente"
	"sigec/internal/codec"
	"sigec/internal/schema"
)

// Locator procura o identificador na coluna primária e, para IDs no formato timestamp, também
// na coluna legada. Não guarda estado.
type Locator struct {
	Primary    int
	Legacy     int
	HeaderRows int
}

// New devolve um localizador para o layout vigente (cabeçalho na linha 1).
func New() Locator {
	return Locator{Primary: schema.ColID, Legacy: schema.ColLegacyID, HeaderRows: 1}
}

// Locate percorre rows (a tabela inteira, cabeçalho incluso) de cima para baixo e devolve o
// número 1-based da primeira linha que contém id. Sem correspondência devolve
// apperrors.ErrNotFound.
func (l Locator) Locate(id string, rows [][]string) (int, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, fmt.Errorf("%w: id vazio", apperrors.ErrNotFound)
	}
	legacy := cliente.IsLegacyID(id)
	for i := l.HeaderRows; i < len(rows); i++ {
		if cell(rows[i], l.Primary) == id {
			return i + 1, nil
		}
		if legacy && cell(rows[i], l.Legacy) == id {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: id %s", apperrors.ErrNotFound, id)
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(codec.Unmark(strings.TrimSpace(row[col])))
}
