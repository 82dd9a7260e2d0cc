package cliente

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalIncludesAtivo(t *testing.T) {
	b, err := json.Marshal(Record{ID: "3", StatusCliente: "Ativo"})
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, true, out["ativo"])
	assert.Equal(t, "3", out["id"])
}

func TestUnmarshalAliases(t *testing.T) {
	body := `{
		"nomeEmpresa": "Acme LTDA",
		"cnpj": "01234567000189",
		"codigoFortesCT": "007",
		"codigoFortesFS": "008",
		"ativo": false,
		"socios": [{"nome": "Maria", "cpf": "01234567890", "administrador": true}]
	}`
	var r Record
	require.NoError(t, json.Unmarshal([]byte(body), &r))

	assert.Equal(t, "Acme LTDA", r.NomeEmpresa)
	assert.Equal(t, "01234567000189", r.CpfCnpj)
	assert.Equal(t, "007", r.CodFortesCt)
	assert.Equal(t, "008", r.CodFortesFs)
	assert.Equal(t, StatusInativo, r.StatusCliente)
	assert.Equal(t, "01234567890", r.Socios[0].CPF)
	assert.True(t, r.Socios[0].Administrador)
}

func TestUnmarshalCanonicalNameWins(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"cpfCnpj":"111","cnpj":"222","statusCliente":"ativo","ativo":false}`), &r))
	assert.Equal(t, "111", r.CpfCnpj)
	assert.Equal(t, StatusAtivo, r.StatusCliente)
}

func TestJSONRoundTrip(t *testing.T) {
	in := Record{ID: "9", NomeEmpresa: "X", CT: true, StatusCliente: "ativo"}
	in.Credenciais.ISS = Acesso{Login: "0001", Senha: "s3nha"}
	in.Procuracoes.Caixa = Procuracao{Ativa: true, Data: "01/01/2024"}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	var out Record
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)
}
