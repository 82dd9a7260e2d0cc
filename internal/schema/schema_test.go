package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigec/internal/cliente"
)

func TestCurrentLayout(t *testing.T) {
	s := Current()
	require.Len(t, s, 157)

	assert.Equal(t, 0, ColLegacyID)
	assert.Equal(t, 152, ColCriadoEm)
	assert.Equal(t, 153, ColID)
	assert.Equal(t, "NOME DA EMPRESA", s[1].Name)
	assert.Equal(t, "STATUS DO CLIENTE", s[31].Name)
	assert.Equal(t, "SÓCIO 1 NOME", s[32].Name)
	assert.Equal(t, "SÓCIO 10 RESPONSÁVEL LEGAL", s[91].Name)
	assert.Equal(t, "CONTATO 1 NOME", s[92].Name)
	assert.Equal(t, "LOGIN ISS", s[112].Name)
	assert.Equal(t, "SENHA CAGECE", s[141].Name)
	assert.Equal(t, "PROCURAÇÃO RECEITA", s[142].Name)
	assert.Equal(t, "DATA PROCURAÇÃO DET", s[151].Name)
	assert.Equal(t, "EMAIL SECUNDÁRIO", s[156].Name)
	assert.Equal(t, -1, s.IndexOf("ATIVO"))
}

func TestColumnsAreUniqueAndBound(t *testing.T) {
	seen := map[string]bool{}
	for i, c := range Current() {
		assert.False(t, seen[c.Name], "coluna repetida: %s", c.Name)
		seen[c.Name] = true
		if c.Kind == Booleano {
			assert.NotNil(t, c.Flag, "coluna %d sem campo", i)
		} else {
			assert.NotNil(t, c.Text, "coluna %d sem campo", i)
		}
	}
}

// Cada coluna precisa apontar para um campo diferente do cadastro.
func TestColumnsBindDistinctFields(t *testing.T) {
	var r cliente.Record
	texts := map[*string]string{}
	flags := map[*bool]string{}
	for _, c := range Current() {
		if c.Kind == Booleano {
			p := c.Flag(&r)
			require.NotContains(t, flags, p, "%s e %s usam o mesmo campo", c.Name, flags[p])
			flags[p] = c.Name
			continue
		}
		p := c.Text(&r)
		require.NotContains(t, texts, p, "%s e %s usam o mesmo campo", c.Name, texts[p])
		texts[p] = c.Name
	}
}

func TestLetter(t *testing.T) {
	assert.Equal(t, "A", Letter(0))
	assert.Equal(t, "Z", Letter(25))
	assert.Equal(t, "AA", Letter(26))
	assert.Equal(t, "EX", Letter(153))
}
