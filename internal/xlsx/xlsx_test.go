package xlsx

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sigec/internal/apperrors"
	"sigec/internal/tabela"
)

var _ tabela.Table = (*File)(nil)

func TestFileTable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "clientes.xlsx")

	x, err := Open(path, "Clientes", nil)
	require.NoError(t, err)

	rows, err := x.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, x.WriteRange(ctx, 1, 0, []string{"ID LEGADO", "NOME DA EMPRESA"}))
	require.NoError(t, x.AppendRow(ctx, []string{"'2023-05-10T09:15:00.123456", "Acme"}))
	require.NoError(t, x.AppendRow(ctx, []string{"", "'007"}))
	require.NoError(t, x.EnsureColumns(ctx, 157))
	require.NoError(t, x.Close())

	x, err = Open(path, "Clientes", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = x.Close() })

	rows, err = x.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"ID LEGADO", "NOME DA EMPRESA"},
		{"2023-05-10T09:15:00.123456", "Acme"},
		{"", "007"},
	}, rows)

	require.NoError(t, x.DeleteRow(ctx, 2))
	rows, err = x.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"ID LEGADO", "NOME DA EMPRESA"}, {"", "007"}}, rows)
}

func TestOpenAddsMissingTab(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outro.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	x, err := Open(path, "Clientes", nil)
	require.NoError(t, err)
	defer x.Close()

	idx, err := x.f.GetSheetIndex("Clientes")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, idx, 0)
}

func TestCancelledContext(t *testing.T) {
	x, err := Open(filepath.Join(t.TempDir(), "c.xlsx"), "Clientes", nil)
	require.NoError(t, err)
	defer x.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = x.ReadAll(ctx)
	assert.ErrorIs(t, err, apperrors.ErrIO)
	assert.ErrorIs(t, x.WriteRange(ctx, 1, 0, []string{"x"}), apperrors.ErrIO)
	assert.ErrorIs(t, x.DeleteRow(ctx, 1), apperrors.ErrIO)
	err = x.EnsureColumns(ctx, 157)
	assert.ErrorIs(t, err, apperrors.ErrIO)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExport(t *testing.T) {
	header := []string{"ID LEGADO", "NOME DA EMPRESA", "CNPJ/CPF"}
	rows := [][]string{
		{"", "Acme", "'01234567000189"},
		{"'2021-03-04T05:06:07.000001", "Antiga"},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, header, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(ExportSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		header,
		{"", "Acme", "01234567000189"},
		{"2021-03-04T05:06:07.000001", "Antiga"},
	}, got)

	panes, err := f.GetPanes(ExportSheet)
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 1, panes.YSplit)
}
