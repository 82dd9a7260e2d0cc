package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"sigec/internal/backend"
	"sigec/internal/config"
	"sigec/internal/httpapi"
	"sigec/internal/logger"
	"sigec/internal/manutencao"
	"sigec/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuração inválida: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "sigec")
	if err != nil {
		fmt.Fprintf(os.Stderr, "falha ao criar logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("servidor encerrado com erro", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Abre a tabela do cadastro
	table, closeTable, err := backend.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeTable()

	st := store.New(table, store.WithLogger(log))

	// 2. Confere o cabeçalho antes de aceitar requisições
	action, err := st.EnsureSchema(ctx)
	if err != nil {
		return fmt.Errorf("cabeçalho da planilha: %w", err)
	}
	if !action.NoOp() {
		log.Info("cabeçalho atualizado na inicialização", zap.Int("colunas_acrescentadas", action.AppendColumns))
	}

	// 3. Rotas
	srv := httpapi.NewServer(st, manutencao.New(st, log), httpapi.Options{
		FrontendURL:    cfg.FrontendURL,
		RequestTimeout: cfg.RequestTimeout,
	}, log)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("servidor rodando", zap.String("porta", cfg.Port), zap.String("frontend", cfg.FrontendURL))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
