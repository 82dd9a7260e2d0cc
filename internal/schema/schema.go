// Package schema é o registro do cabeçalho da planilha de clientes: a lista ordenada de
// colunas que define em que posição cada campo do cadastro é gravado.
//
// Colunas novas entram sempre no fim. Uma posição, uma vez atribuída, não muda: o codec e o
// localizador dependem disso.
package schema

import (
	"github.com/xuri/excelize/v2"

	"sigec/internal/cliente"
)

// Version identifica a revisão atual do layout. Incrementar sempre que uma coluna for
// acrescentada ou renomeada.
const Version = 7

// Kind diz como o valor de uma coluna é representado na célula.
type Kind int

const (
	// Texto livre.
	Texto Kind = iota
	// Codigo é gravado forçado como texto para preservar zeros à esquerda (CPF, CNPJ, códigos).
	Codigo
	// Data é gravada forçada como texto para a planilha não reformatar.
	Data
	// Booleano vira "SIM"/"NÃO".
	Booleano
	// IDPrimario é a coluna ID, com o identificador sequencial.
	IDPrimario
	// IDLegado guarda o identificador antigo em formato timestamp.
	IDLegado
)

func (k Kind) String() string {
	switch k {
	case Texto:
		return "texto"
	case Codigo:
		return "codigo"
	case Data:
		return "data"
	case Booleano:
		return "booleano"
	case IDPrimario:
		return "id"
	case IDLegado:
		return "id-legado"
	}
	return "desconhecido"
}

// Column liga um nome de coluna ao campo do cadastro. Colunas de texto usam Text e
// booleanas usam Flag.
type Column struct {
	Name     string
	Kind     Kind
	Previous []string

	Text func(*cliente.Record) *string
	Flag func(*cliente.Record) *bool
}

// Schema é uma lista ordenada de colunas.
type Schema []Column

var current = build()

var (
	ColLegacyID = current.IndexOf("ID LEGADO")
	ColID       = current.IndexOf("ID")
	ColCriadoEm = current.IndexOf("CRIADO EM")
)

// Current devolve o esquema vigente. A fatia é compartilhada; não altere.
func Current() Schema {
	return current
}

// Header devolve os nomes das colunas na ordem.
func (s Schema) Header() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// IndexOf devolve a posição (0-based) da coluna, ou -1.
func (s Schema) IndexOf(name string) int {
	for i, c := range s {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Letter converte uma posição 0-based na letra da coluna (0 → "A").
func Letter(col int) string {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return "?"
	}
	return name
}
