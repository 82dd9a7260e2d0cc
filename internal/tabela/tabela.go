// Package tabela define o contrato do serviço de tabela que guarda os cadastros.
//
// Linhas são numeradas a partir de 1 e a linha 1 é o cabeçalho. Colunas são 0-based.
// Implementações podem omitir células vazias no fim de cada linha; quem lê deve tolerar.
// Toda falha do serviço é devolvida envolvendo apperrors.ErrIO.
package tabela

import "context"

type Table interface {
	// ReadAll lê a tabela inteira, cabeçalho incluso.
	ReadAll(ctx context.Context) ([][]string, error)
	// WriteRange grava cells na linha row a partir da coluna col.
	WriteRange(ctx context.Context, row, col int, cells []string) error
	// AppendRow acrescenta uma linha depois da última linha com dados.
	AppendRow(ctx context.Context, cells []string) error
	// DeleteRow remove a linha, subindo as seguintes.
	DeleteRow(ctx context.Context, row int) error
	// EnsureColumns garante que a grade tem pelo menos width colunas e que as linhas de
	// dados aceitam valores até essa largura.
	EnsureColumns(ctx context.Context, width int) error
}
