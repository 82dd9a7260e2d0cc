package tabela

import (
	"context"
	"fmt"
	"strings"

	"sigec/internal/apperrors"
)

// Memoria é uma tabela em memória. Guarda as células como recebidas (marcador de texto
// incluso) e omite células vazias no fim das linhas, como o Sheets faz na leitura.
// Não é segura para uso concorrente.
type Memoria struct {
	rows [][]string

	// Fail, quando definido, é chamado antes de cada operação; um erro devolvido simula
	// falha do serviço.
	Fail func(op string) error
}

func NewMemoria(rows ...[]string) *Memoria {
	m := &Memoria{}
	for _, r := range rows {
		m.rows = append(m.rows, append([]string(nil), r...))
	}
	return m
}

// Rows devolve uma cópia do conteúdo atual.
func (m *Memoria) Rows() [][]string {
	out := make([][]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = trimRight(r)
	}
	return out
}

// Len devolve o número de linhas, cabeçalho incluso.
func (m *Memoria) Len() int {
	return len(m.rows)
}

func (m *Memoria) ReadAll(ctx context.Context) ([][]string, error) {
	if err := m.check(ctx, "ler"); err != nil {
		return nil, err
	}
	return m.Rows(), nil
}

func (m *Memoria) WriteRange(ctx context.Context, row, col int, cells []string) error {
	if err := m.check(ctx, "gravar"); err != nil {
		return err
	}
	if row < 1 || col < 0 {
		return fmt.Errorf("%w: posição inválida linha %d coluna %d", apperrors.ErrIO, row, col)
	}
	for len(m.rows) < row {
		m.rows = append(m.rows, nil)
	}
	r := m.rows[row-1]
	for len(r) < col+len(cells) {
		r = append(r, "")
	}
	copy(r[col:], cells)
	m.rows[row-1] = r
	return nil
}

func (m *Memoria) AppendRow(ctx context.Context, cells []string) error {
	if err := m.check(ctx, "acrescentar"); err != nil {
		return err
	}
	last := len(m.rows)
	for last > 0 && isBlank(m.rows[last-1]) {
		last--
	}
	m.rows = append(m.rows[:last], append([]string(nil), cells...))
	return nil
}

func (m *Memoria) DeleteRow(ctx context.Context, row int) error {
	if err := m.check(ctx, "remover"); err != nil {
		return err
	}
	if row < 1 || row > len(m.rows) {
		return fmt.Errorf("%w: linha %d fora da tabela", apperrors.ErrIO, row)
	}
	m.rows = append(m.rows[:row-1], m.rows[row:]...)
	return nil
}

func (m *Memoria) EnsureColumns(ctx context.Context, width int) error {
	if err := m.check(ctx, "expandir"); err != nil {
		return err
	}
	for i, r := range m.rows {
		for len(r) < width {
			r = append(r, "")
		}
		m.rows[i] = r
	}
	return nil
}

func (m *Memoria) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", apperrors.ErrIO, op, err)
	}
	if m.Fail != nil {
		if err := m.Fail(op); err != nil {
			return fmt.Errorf("%w: %s: %w", apperrors.ErrIO, op, err)
		}
	}
	return nil
}

func trimRight(r []string) []string {
	n := len(r)
	for n > 0 && r[n-1] == "" {
		n--
	}
	return append([]string(nil), r[:n]...)
}

func isBlank(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
