package store

import (
	"context"

	"go.uber.org/zap"

	"sigec/internal/schema"
)

// CheckSchema compara o cabeçalho da tabela com o esquema sem alterar nada.
func (s *Store) CheckSchema(ctx context.Context) (schema.Action, error) {
	rows, err := s.table.ReadAll(ctx)
	if err != nil {
		return schema.Action{}, err
	}
	return s.schema.Reconcile(header(rows))
}

// EnsureSchema reconcilia o cabeçalho da tabela com o esquema e devolve o que foi feito.
func (s *Store) EnsureSchema(ctx context.Context) (schema.Action, error) {
	rows, err := s.table.ReadAll(ctx)
	if err != nil {
		return schema.Action{}, err
	}
	return s.reconcile(ctx, rows)
}

// read lê a tabela e garante o cabeçalho antes de qualquer outra coisa. Se a leitura
// falha, a operação falha: nunca se presume que o esquema confere.
func (s *Store) read(ctx context.Context) ([][]string, error) {
	rows, err := s.table.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	action, err := s.reconcile(ctx, rows)
	if err != nil {
		return nil, err
	}
	if !action.NoOp() {
		if len(rows) == 0 {
			rows = [][]string{nil}
		}
		rows[0] = s.schema.Header()
	}
	return rows, nil
}

func (s *Store) reconcile(ctx context.Context, rows [][]string) (schema.Action, error) {
	action, err := s.schema.Reconcile(header(rows))
	if err != nil {
		s.log.Error("cabeçalho da planilha não confere com o esquema", zap.Error(err))
		return schema.Action{}, err
	}
	if action.NoOp() {
		return action, nil
	}
	if action.AppendColumns > 0 || (action.PadRows && len(rows) > 1) {
		if err := s.table.EnsureColumns(ctx, action.Width); err != nil {
			return schema.Action{}, err
		}
	}
	if len(action.Header) > 0 {
		if err := s.table.WriteRange(ctx, 1, action.StartColumn, action.Header); err != nil {
			return schema.Action{}, err
		}
	}
	s.log.Info("cabeçalho reconciliado",
		zap.Int("versao", schema.Version),
		zap.String("coluna_inicial", schema.Letter(action.StartColumn)),
		zap.Int("colunas_acrescentadas", action.AppendColumns))
	return action, nil
}

func header(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}
