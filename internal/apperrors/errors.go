// Package apperrors define a taxonomia de erros compartilhada pelos componentes do cadastro.
package apperrors

import "errors"

var (
	// ErrNotFound indica que nenhum registro corresponde ao identificador pedido.
	// É um resultado esperado: o chamador decide entre criar e editar.
	ErrNotFound = errors.New("registro não encontrado")

	// ErrSchemaMismatch indica que o cabeçalho da planilha diverge do esquema e não pode
	// ser reconciliado sem risco de gravar dados na coluna errada.
	ErrSchemaMismatch = errors.New("cabeçalho da planilha diverge do esquema")

	// ErrIO indica falha do serviço de tabela (rede, permissão, cota).
	ErrIO = errors.New("falha de comunicação com a planilha")

	// ErrInvalidRecord indica que o registro viola um invariante e não foi gravado.
	ErrInvalidRecord = errors.New("registro inválido")

	// ErrEncodingAmbiguity marca valores que não têm representação exata na linha.
	// Nunca é devolvido; aparece apenas nos logs do codec.
	ErrEncodingAmbiguity = errors.New("valor ambíguo na codificação")
)
