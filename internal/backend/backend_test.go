package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sigec/internal/config"
	"sigec/internal/tabela"
	"sigec/internal/xlsx"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	table, closeFn, err := Open(ctx, config.Config{Backend: config.BackendMemoria}, log)
	require.NoError(t, err)
	assert.IsType(t, &tabela.Memoria{}, table)
	assert.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "clientes.xlsx")
	table, closeFn, err = Open(ctx, config.Config{Backend: config.BackendXLSX, XLSXPath: path, Aba: "Clientes"}, log)
	require.NoError(t, err)
	assert.IsType(t, &xlsx.File{}, table)
	assert.NoError(t, closeFn())
	assert.FileExists(t, path)

	_, _, err = Open(ctx, config.Config{Backend: "postgres"}, log)
	assert.Error(t, err)
}

func TestOpenPlanilhaWithoutCredentials(t *testing.T) {
	cfg := config.Config{
		Backend:         config.BackendPlanilha,
		SpreadsheetID:   "abc",
		Aba:             "Clientes",
		CredentialsFile: filepath.Join(t.TempDir(), "nao-existe.json"),
	}
	_, _, err := Open(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "credenciais")
}
