package tabela

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigec/internal/apperrors"
)

var _ Table = (*Memoria)(nil)

func TestMemoriaWriteAndRead(t *testing.T) {
	ctx := context.Background()
	m := NewMemoria([]string{"A", "B"})

	require.NoError(t, m.WriteRange(ctx, 3, 1, []string{"x", "", ""}))
	rows, err := m.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B"}, nil, {"", "x"}}, rows)

	// ReadAll devolve cópia
	rows[0][0] = "Z"
	assert.Equal(t, "A", m.Rows()[0][0])
}

func TestMemoriaAppendAfterLastData(t *testing.T) {
	ctx := context.Background()
	m := NewMemoria([]string{"H"}, []string{"1"}, []string{" "}, nil)

	require.NoError(t, m.AppendRow(ctx, []string{"2"}))
	assert.Equal(t, [][]string{{"H"}, {"1"}, {"2"}}, m.Rows())
	assert.Equal(t, 3, m.Len())
}

func TestMemoriaDeleteRow(t *testing.T) {
	ctx := context.Background()
	m := NewMemoria([]string{"H"}, []string{"1"}, []string{"2"})

	require.NoError(t, m.DeleteRow(ctx, 2))
	assert.Equal(t, [][]string{{"H"}, {"2"}}, m.Rows())

	err := m.DeleteRow(ctx, 5)
	assert.ErrorIs(t, err, apperrors.ErrIO)
}

func TestMemoriaEnsureColumns(t *testing.T) {
	ctx := context.Background()
	m := NewMemoria([]string{"H"}, []string{"1", "2"})

	require.NoError(t, m.EnsureColumns(ctx, 4))
	require.NoError(t, m.WriteRange(ctx, 2, 3, []string{"fim"}))
	assert.Equal(t, [][]string{{"H"}, {"1", "2", "", "fim"}}, m.Rows())
}

func TestMemoriaFailures(t *testing.T) {
	boom := errors.New("quota excedida")
	m := NewMemoria([]string{"H"})
	m.Fail = func(op string) error {
		if op == "gravar" {
			return boom
		}
		return nil
	}
	ctx := context.Background()

	_, err := m.ReadAll(ctx)
	require.NoError(t, err)

	err = m.WriteRange(ctx, 1, 0, []string{"X"})
	assert.ErrorIs(t, err, apperrors.ErrIO)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, [][]string{{"H"}}, m.Rows())

	assert.ErrorIs(t, m.WriteRange(ctx, 0, 0, nil), apperrors.ErrIO)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = m.ReadAll(cancelled)
	assert.ErrorIs(t, err, apperrors.ErrIO)
	assert.ErrorIs(t, err, context.Canceled)
}
