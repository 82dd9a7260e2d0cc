// Package backend escolhe a tabela que guarda o cadastro conforme a configuração.
package backend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"sigec/internal/config"
	"sigec/internal/planilha"
	"sigec/internal/tabela"
	"sigec/internal/xlsx"
)

// Open devolve a tabela configurada e uma função para liberá-la.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (tabela.Table, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case config.BackendPlanilha:
		creds := planilha.Credentials{File: cfg.CredentialsFile, Base64: cfg.CredentialsBase64}
		sheet, err := planilha.Open(ctx, creds, cfg.SpreadsheetID, cfg.Aba, log)
		if err != nil {
			return nil, nil, fmt.Errorf("falha na inicialização do serviço Sheets: %w", err)
		}
		log.Info("serviço do Google Sheets inicializado", zap.String("planilha", cfg.SpreadsheetID), zap.String("aba", cfg.Aba))
		return sheet, noop, nil
	case config.BackendXLSX:
		f, err := xlsx.Open(cfg.XLSXPath, cfg.Aba, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info("usando arquivo .xlsx local", zap.String("arquivo", cfg.XLSXPath))
		return f, f.Close, nil
	case config.BackendMemoria:
		log.Warn("usando tabela em memória; os dados se perdem ao encerrar")
		return tabela.NewMemoria(), noop, nil
	}
	return nil, nil, fmt.Errorf("backend desconhecido: %q", cfg.Backend)
}
