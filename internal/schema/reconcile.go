package schema

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"sigec/internal/apperrors"
)

// Action descreve o que precisa ser feito na planilha para o cabeçalho vivo voltar a ter o
// esquema como prefixo.
type Action struct {
	// StartColumn é a primeira coluna (0-based) divergente.
	StartColumn int
	// Header são os nomes a gravar na linha 1 a partir de StartColumn.
	Header []string
	// AppendColumns é quantas colunas faltam além da largura do cabeçalho vivo.
	AppendColumns int
	// PadRows indica que as linhas de dados precisam ser completadas até Width.
	PadRows bool
	// Width é a largura final do esquema.
	Width int
}

// NoOp informa se o cabeçalho já está de acordo.
func (a Action) NoOp() bool {
	return len(a.Header) == 0 && a.AppendColumns == 0
}

// Reconcile compara o cabeçalho lido da planilha com o esquema.
//
// Células vazias, iguais a menos de acento/caixa/espaços, ou iguais a um nome anterior da
// coluna são reescritas. Qualquer outro valor indica coluna renomeada ou movida fora do
// sistema e resulta em ErrSchemaMismatch: gravar assim colocaria dados na coluna errada.
// Colunas extras depois do fim do esquema são toleradas.
func (s Schema) Reconcile(live []string) (Action, error) {
	first := -1
	for i, col := range s {
		var cell string
		if i < len(live) {
			cell = strings.TrimSpace(live[i])
		}
		if cell == col.Name {
			continue
		}
		if cell != "" && !col.matches(cell) {
			return Action{}, fmt.Errorf("%w: coluna %s contém %q, esperado %q",
				apperrors.ErrSchemaMismatch, Letter(i), cell, col.Name)
		}
		if first < 0 {
			first = i
		}
	}

	action := Action{Width: len(s)}
	if first >= 0 {
		action.StartColumn = first
		action.Header = s.Header()[first:]
	}
	if missing := len(s) - len(live); missing > 0 {
		action.AppendColumns = missing
		action.PadRows = true
	}
	return action, nil
}

func (c Column) matches(cell string) bool {
	f := fold(cell)
	if f == fold(c.Name) {
		return true
	}
	for _, p := range c.Previous {
		if f == fold(p) {
			return true
		}
	}
	return false
}

// fold remove acentos, normaliza caixa e colapsa espaços.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToUpper(out)), " ")
}
