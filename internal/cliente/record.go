// Package cliente define o registro de cliente do escritório e seus invariantes.
package cliente

import "strings"

const (
	MaxSocios   = 10
	MaxContatos = 5

	StatusAtivo   = "ativo"
	StatusInativo = "inativo"
)

// Record é o cadastro completo de um cliente, a unidade de armazenamento.
type Record struct {
	ID       string `json:"id" validate:"omitempty,sigecid"`
	IDLegado string `json:"idLegado,omitempty" validate:"omitempty,isotime"`

	NomeEmpresa         string `json:"nomeEmpresa"`
	RazaoSocialReceita  string `json:"razaoSocialReceita"`
	NomeFantasiaReceita string `json:"nomeFantasiaReceita"`
	CpfCnpj             string `json:"cpfCnpj"`
	Perfil              string `json:"perfil"`
	InscEst             string `json:"inscEst"`
	InscMun             string `json:"inscMun"`
	Estado              string `json:"estado"`
	Cidade              string `json:"cidade"`
	RegimeFederal       string `json:"regimeFederal"`
	RegimeEstadual      string `json:"regimeEstadual"`
	Segmento            string `json:"segmento"`
	Atividade           string `json:"atividade"`

	CT            bool `json:"ct"`
	FS            bool `json:"fs"`
	DP            bool `json:"dp"`
	BPOFinanceiro bool `json:"bpoFinanceiro"`

	ResponsavelServicos string `json:"responsavelServicos"`
	DataInicioServicos  string `json:"dataInicioServicos"`
	CodFortesCt         string `json:"codFortesCt"`
	CodFortesFs         string `json:"codFortesFs"`
	CodFortesPs         string `json:"codFortesPs"`
	CodDominio          string `json:"codDominio"`
	SistemaExterno      string `json:"sistemaExterno"`
	DataAberturaEmpresa string `json:"dataAberturaEmpresa"`

	TelefoneFixo        string `json:"telefoneFixo"`
	TelefoneCelular     string `json:"telefoneCelular"`
	Whatsapp            string `json:"whatsapp"`
	EmailPrincipal      string `json:"emailPrincipal"`
	EmailSecundario     string `json:"emailSecundario"`
	ResponsavelImediato string `json:"responsavelImediato"`

	Socios      [MaxSocios]Socio     `json:"socios"`
	Contatos    [MaxContatos]Contato `json:"contatos"`
	Credenciais Credenciais          `json:"credenciais"`
	Procuracoes Procuracoes          `json:"procuracoes"`

	StatusCliente     string `json:"statusCliente" validate:"omitempty,statuscliente"`
	CriadoEm          string `json:"criadoEm" validate:"omitempty,isotime"`
	UltimaAtualizacao string `json:"ultimaAtualizacao" validate:"omitempty,isotime"`
	Observacoes       string `json:"observacoes"`
}

type Socio struct {
	Nome           string `json:"nome"`
	CPF            string `json:"cpf"`
	DataNascimento string `json:"dataNascimento"`
	Administrador  bool   `json:"administrador"`
	Participacao   string `json:"participacao"`
	RespLegal      bool   `json:"respLegal"`
}

type Contato struct {
	Nome     string `json:"nome"`
	Cargo    string `json:"cargo"`
	Telefone string `json:"telefone"`
	Email    string `json:"email"`
}

// Acesso guarda usuário e senha de um portal externo, em texto puro como na planilha.
type Acesso struct {
	Login string `json:"login"`
	Senha string `json:"senha"`
}

type Credenciais struct {
	ISS                 Acesso `json:"iss"`
	SEFIN               Acesso `json:"sefin"`
	SEUMA               Acesso `json:"seuma"`
	SEMACE              Acesso `json:"semace"`
	ANVISA              Acesso `json:"anvisa"`
	CRF                 Acesso `json:"crf"`
	FAPINSS             Acesso `json:"fapInss"`
	SIEF                Acesso `json:"sief"`
	SPED                Acesso `json:"sped"`
	ConectividadeSocial Acesso `json:"conectividadeSocial"`
	EmpWeb              Acesso `json:"empWeb"`
	DTESefaz            Acesso `json:"dteSefaz"`
	CorpoBombeiros      Acesso `json:"corpoBombeiros"`
	AGEFIS              Acesso `json:"agefis"`
	CAGECE              Acesso `json:"cagece"`
}

type Procuracao struct {
	Ativa bool   `json:"ativa"`
	Data  string `json:"data"`
}

type Procuracoes struct {
	Receita Procuracao `json:"receita"`
	DTe     Procuracao `json:"dte"`
	Caixa   Procuracao `json:"caixa"`
	EmpWeb  Procuracao `json:"empWeb"`
	DET     Procuracao `json:"det"`
}

// Ativo é sempre derivado do status; não existe coluna própria.
func (r *Record) Ativo() bool {
	return strings.EqualFold(strings.TrimSpace(r.StatusCliente), StatusAtivo)
}

// IsEmpty informa se o registro não tem nenhum campo preenchido.
func (r *Record) IsEmpty() bool {
	return *r == Record{}
}
