// Package codec converte um cadastro de cliente em linha da planilha e de volta.
//
// As duas direções são geradas da mesma lista de colunas do schema, então não existe
// tabela de índices para manter em sincronia.
package codec

import (
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"sigec/internal/apperrors"
	"sigec/internal/cliente"
	"sigec/internal/schema"
)

const (
	// TextMarker faz a planilha guardar o valor como texto (zeros à esquerda, datas).
	TextMarker = "'"

	Sim = "SIM"
	Nao = "NÃO"
)

type Codec struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Codec {
	if log == nil {
		log = zap.NewNop()
	}
	return &Codec{log: log}
}

// Encode gera uma célula por coluna de s, na ordem. Campos vazios viram "".
func (c *Codec) Encode(r *cliente.Record, s schema.Schema) []string {
	rec := *r
	row := make([]string, len(s))
	for i, col := range s {
		switch col.Kind {
		case schema.Booleano:
			if *col.Flag(&rec) {
				row[i] = Sim
			} else {
				row[i] = Nao
			}
		case schema.IDPrimario:
			id := strings.TrimSpace(*col.Text(&rec))
			if cliente.IsLegacyID(id) {
				continue
			}
			row[i] = c.forced(col, id, rec.ID)
		case schema.IDLegado:
			row[i] = c.forced(col, c.legacyID(&rec), rec.ID)
		case schema.Codigo, schema.Data:
			row[i] = c.forced(col, *col.Text(&rec), rec.ID)
		default:
			row[i] = c.plain(col, *col.Text(&rec), rec.ID)
		}
	}
	return row
}

// Decode lê uma linha possivelmente mais curta que o esquema. Nunca falha: células
// ausentes viram "" ou false.
func (c *Codec) Decode(row []string, s schema.Schema) cliente.Record {
	var r cliente.Record
	var primary, legacy string
	for i, col := range s {
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		switch col.Kind {
		case schema.Booleano:
			*col.Flag(&r) = ParseBool(cell)
		case schema.IDPrimario:
			primary = Unmark(strings.TrimSpace(cell))
		case schema.IDLegado:
			legacy = Unmark(strings.TrimSpace(cell))
		default:
			*col.Text(&r) = Unmark(cell)
		}
	}
	if primary != "" {
		r.ID = primary
		r.IDLegado = legacy
	} else {
		// Registro nunca migrado: o timestamp antigo é o próprio ID.
		r.ID = legacy
	}
	return r
}

func (c *Codec) legacyID(r *cliente.Record) string {
	id := strings.TrimSpace(r.ID)
	old := strings.TrimSpace(r.IDLegado)
	if !cliente.IsLegacyID(id) {
		return old
	}
	if old != "" && old != id {
		c.log.Warn("ID legado diverge do ID do registro; gravando o ID",
			zap.String("id", id), zap.String("id_legado", old),
			zap.Error(apperrors.ErrEncodingAmbiguity))
	}
	return id
}

func (c *Codec) forced(col schema.Column, v, id string) string {
	if v == "" {
		return ""
	}
	if strings.HasPrefix(v, TextMarker) {
		c.ambiguous(col, v, id)
	}
	return TextMarker + v
}

func (c *Codec) plain(col schema.Column, v, id string) string {
	if v == "" {
		return ""
	}
	switch v[0] {
	case '\'':
		c.ambiguous(col, v, id)
		return TextMarker + v
	case '=', '+', '-', '@':
		// Seria interpretado como fórmula ou número.
		return TextMarker + v
	}
	if numeric(v) {
		// Telefones e percentuais digitados como número perderiam zeros à esquerda.
		return TextMarker + v
	}
	return v
}

func numeric(v string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	return err == nil
}

func (c *Codec) ambiguous(col schema.Column, v, id string) {
	c.log.Warn("valor já começa com o marcador de texto",
		zap.String("coluna", col.Name), zap.String("id", id), zap.String("valor", v),
		zap.Error(apperrors.ErrEncodingAmbiguity))
}

// Unmark remove um marcador de texto inicial.
func Unmark(v string) string {
	return strings.TrimPrefix(v, TextMarker)
}

// ParseBool aceita as grafias encontradas na planilha: SIM, S, X, TRUE, VERDADEIRO, 1.
func ParseBool(cell string) bool {
	switch foldUpper(Unmark(cell)) {
	case "SIM", "S", "X", "TRUE", "VERDADEIRO", "1", "OK":
		return true
	}
	return false
}

func foldUpper(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = s
	}
	return strings.ToUpper(out)
}
