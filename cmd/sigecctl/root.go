package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sigec/internal/backend"
	"sigec/internal/config"
	"sigec/internal/logger"
	"sigec/internal/manutencao"
	"sigec/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "sigecctl",
	Short: "Manutenção do cadastro de clientes do SIGEC",
	Long: `sigecctl executa as correções e verificações do cadastro de clientes diretamente na
planilha configurada (SIGEC_BACKEND, SPREADSHEET_ID, SIGEC_ABA, ...).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(esquemaCmd, auditarCmd, corrigirInversaoCmd, migrarIDsCmd, exportarCmd, listarCmd)
}

type env struct {
	store *store.Store
	manut *manutencao.Manutencao
	log   *zap.Logger
	close func() error
}

func open(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogLevel, "console", "sigecctl")
	if err != nil {
		return nil, err
	}
	table, closeTable, err := backend.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	st := store.New(table, store.WithLogger(log))
	return &env{
		store: st,
		manut: manutencao.New(st, log),
		log:   log,
		close: func() error {
			_ = log.Sync()
			return closeTable()
		},
	}, nil
}

// withEnv abre a tabela, executa fn e fecha a tabela.
func withEnv(cmd *cobra.Command, fn func(ctx context.Context, e *env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := open(ctx)
	if err != nil {
		return err
	}
	defer e.close()
	return fn(ctx, e)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
