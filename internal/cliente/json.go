package cliente

import (
	"encoding/json"
	"strings"
)

// recordJSON evita recursão em MarshalJSON/UnmarshalJSON.
type recordJSON Record

// MarshalJSON acrescenta o campo calculado "ativo".
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		recordJSON
		Ativo bool `json:"ativo"`
	}{recordJSON(r), r.Ativo()})
}

// UnmarshalJSON resolve os nomes alternativos que o front-end e os scripts antigos usam.
// A resolução acontece só aqui; o resto do código conhece um único nome por conceito.
func (r *Record) UnmarshalJSON(data []byte) error {
	aux := struct {
		*recordJSON
		CNPJ           *string `json:"cnpj"`
		CPF            *string `json:"cpf"`
		CodigoFortesCT *string `json:"codigoFortesCT"`
		CodigoFortesFS *string `json:"codigoFortesFS"`
		CodigoFortesPS *string `json:"codigoFortesPS"`
		Ativo          *bool   `json:"ativo"`
	}{recordJSON: (*recordJSON)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	fill := func(dst *string, alias *string) {
		if strings.TrimSpace(*dst) == "" && alias != nil {
			*dst = *alias
		}
	}
	fill(&r.CpfCnpj, aux.CNPJ)
	fill(&r.CpfCnpj, aux.CPF)
	fill(&r.CodFortesCt, aux.CodigoFortesCT)
	fill(&r.CodFortesFs, aux.CodigoFortesFS)
	fill(&r.CodFortesPs, aux.CodigoFortesPS)

	if strings.TrimSpace(r.StatusCliente) == "" && aux.Ativo != nil {
		if *aux.Ativo {
			r.StatusCliente = StatusAtivo
		} else {
			r.StatusCliente = StatusInativo
		}
	}
	return nil
}
