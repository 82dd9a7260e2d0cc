// Package xlsx implementa tabela.Table sobre um arquivo .xlsx local e gera a exportação do
// cadastro em planilha formatada.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"sigec/internal/apperrors"
	"sigec/internal/codec"
)

// File é uma aba de um arquivo .xlsx. Cada alteração é salva em disco antes de retornar.
// Não é segura para uso concorrente.
type File struct {
	path string
	aba  string
	f    *excelize.File
	log  *zap.Logger
}

// Open abre o arquivo, criando-o (e a aba) se não existir.
func Open(path, aba string, log *zap.Logger) (*File, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var f *excelize.File
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		f = excelize.NewFile()
		if err := f.SetSheetName(f.GetSheetName(0), aba); err != nil {
			return nil, fmt.Errorf("%w: criar aba %s: %w", apperrors.ErrIO, aba, err)
		}
		if err := f.SaveAs(path); err != nil {
			return nil, fmt.Errorf("%w: criar %s: %w", apperrors.ErrIO, path, err)
		}
		log.Info("arquivo de clientes criado", zap.String("arquivo", path))
	} else {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: abrir %s: %w", apperrors.ErrIO, path, err)
		}
	}
	if idx, err := f.GetSheetIndex(aba); err != nil || idx < 0 {
		if _, err := f.NewSheet(aba); err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: criar aba %s: %w", apperrors.ErrIO, aba, err)
		}
	}
	return &File{path: path, aba: aba, f: f, log: log.With(zap.String("arquivo", path), zap.String("aba", aba))}, nil
}

func (x *File) Close() error {
	return x.f.Close()
}

func (x *File) ReadAll(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: ler: %w", apperrors.ErrIO, err)
	}
	rows, err := x.f.GetRows(x.aba)
	if err != nil {
		return nil, fmt.Errorf("%w: ler %s: %w", apperrors.ErrIO, x.aba, err)
	}
	return rows, nil
}

// WriteRange grava as células como texto. O marcador de texto do codec é consumido aqui,
// porque a célula já é tipada como texto no arquivo.
func (x *File) WriteRange(ctx context.Context, row, col int, cells []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: gravar: %w", apperrors.ErrIO, err)
	}
	for i, v := range cells {
		cell, err := excelize.CoordinatesToCellName(col+i+1, row)
		if err != nil {
			return fmt.Errorf("%w: coordenada inválida: %w", apperrors.ErrIO, err)
		}
		if err := x.f.SetCellStr(x.aba, cell, codec.Unmark(v)); err != nil {
			return fmt.Errorf("%w: gravar %s: %w", apperrors.ErrIO, cell, err)
		}
	}
	return x.save()
}

func (x *File) AppendRow(ctx context.Context, cells []string) error {
	rows, err := x.ReadAll(ctx)
	if err != nil {
		return err
	}
	last := len(rows)
	for last > 0 && blank(rows[last-1]) {
		last--
	}
	return x.WriteRange(ctx, last+1, 0, cells)
}

func (x *File) DeleteRow(ctx context.Context, row int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: remover: %w", apperrors.ErrIO, err)
	}
	if err := x.f.RemoveRow(x.aba, row); err != nil {
		return fmt.Errorf("%w: remover linha %d: %w", apperrors.ErrIO, row, err)
	}
	return x.save()
}

// EnsureColumns não faz nada: o .xlsx não tem grade de tamanho fixo.
func (x *File) EnsureColumns(ctx context.Context, width int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: expandir: %w", apperrors.ErrIO, err)
	}
	return nil
}

func (x *File) save() error {
	if err := x.f.Save(); err != nil {
		x.log.Error("falha ao salvar arquivo", zap.Error(err))
		return fmt.Errorf("%w: salvar %s: %w", apperrors.ErrIO, x.path, err)
	}
	return nil
}

func blank(r []string) bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
