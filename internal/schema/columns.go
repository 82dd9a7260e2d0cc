package schema

import (
	"fmt"

	"sigec/internal/cliente"
)

type textField func(*cliente.Record) *string

type flagField func(*cliente.Record) *bool

func text(name string, kind Kind, f textField, previous ...string) Column {
	return Column{Name: name, Kind: kind, Previous: previous, Text: f}
}

func flag(name string, f flagField, previous ...string) Column {
	return Column{Name: name, Kind: Booleano, Previous: previous, Flag: f}
}

type portal struct {
	name   string
	acesso func(*cliente.Record) *cliente.Acesso
}

type autoridade struct {
	name       string
	procuracao func(*cliente.Record) *cliente.Procuracao
}

var portais = []portal{
	{"ISS", func(r *cliente.Record) *cliente.Acesso { return &r.Credenciais.ISS }},
	{"SEFIN", func(r *cliente.Record) *cliente.Acesso { return &r.Credenciais.SEFIN }},
	{"SEUMA", func(r *cliente.Record) *cliente.Acesso { return &r.Credenciais.SEUMA }},
	{"SEMACE", func(r *cliente.Record) *cliente.Acesso { return &r.Credenciais.SEMACE }},
	{"ANVISA", func(r *cliente.Record) *cliente.Acesso { return &r.Credenciais.ANVISA }},
	{"CRF", func(r *cliente.Record) *cliente.Acesso { return &r.Credenciais.CRF }},
	{"FAP/INSS", func(r *cliente.Record) *cliente.Acesso { return &r.Credenciais.FAPINSS }},
	{"SIEF", func(r *cliente.Record) *cliente.Acesso { return &r.Credenciais.SIEF }},
	{"SPED", func(r *cliente.Record) *cliente.Acesso { return &r.Credenciais.SPED }},
	{"CONECTIVIDADE SOCIAL", func(r *cliente.Record) *cliente.Acesso { return &r.Credenciais.ConectividadeSocial }},
	{"EMPWEB", func(r *cliente.Record) *cliente.Acesso { return &r.Credenciais.EmpWeb }},
	{"DTE SEFAZ", func(r *cliente.Record) *cliente.Acesso { return &r.Credenciais.DTESefaz }},
	{"CORPO DE BOMBEIROS", func(r *cliente.Record) *cliente.Acesso { return &r.Credenciais.CorpoBombeiros }},
	{"AGEFIS", func(r *cliente.Record) *cliente.Acesso { return &r.Credenciais.AGEFIS }},
	{"CAGECE", func(r *cliente.Record) *cliente.Acesso { return &r.Credenciais.CAGECE }},
}

var autoridades = []autoridade{
	{"RECEITA", func(r *cliente.Record) *cliente.Procuracao { return &r.Procuracoes.Receita }},
	{"DTE", func(r *cliente.Record) *cliente.Procuracao { return &r.Procuracoes.DTe }},
	{"CAIXA", func(r *cliente.Record) *cliente.Procuracao { return &r.Procuracoes.Caixa }},
	{"EMPWEB", func(r *cliente.Record) *cliente.Procuracao { return &r.Procuracoes.EmpWeb }},
	{"DET", func(r *cliente.Record) *cliente.Procuracao { return &r.Procuracoes.DET }},
}

// build monta o layout vigente. A ordem aqui é o formato do arquivo: só acrescente no fim.
func build() Schema {
	s := Schema{
		text("ID LEGADO", IDLegado, func(r *cliente.Record) *string { return &r.IDLegado }, "ID"),
		text("NOME DA EMPRESA", Texto, func(r *cliente.Record) *string { return &r.NomeEmpresa }, "EMPRESA"),
		text("RAZÃO SOCIAL NA RECEITA", Texto, func(r *cliente.Record) *string { return &r.RazaoSocialReceita }, "RAZAO SOCIAL"),
		text("NOME FANTASIA NA RECEITA", Texto, func(r *cliente.Record) *string { return &r.NomeFantasiaReceita }, "NOME FANTASIA"),
		text("CNPJ/CPF", Codigo, func(r *cliente.Record) *string { return &r.CpfCnpj }, "CNPJ", "CPF/CNPJ"),
		text("PERFIL", Texto, func(r *cliente.Record) *string { return &r.Perfil }),
		text("INSCRIÇÃO ESTADUAL", Codigo, func(r *cliente.Record) *string { return &r.InscEst }, "INSC. ESTADUAL"),
		text("INSCRIÇÃO MUNICIPAL", Codigo, func(r *cliente.Record) *string { return &r.InscMun }, "INSC. MUNICIPAL"),
		text("ESTADO", Texto, func(r *cliente.Record) *string { return &r.Estado }, "UF"),
		text("CIDADE", Texto, func(r *cliente.Record) *string { return &r.Cidade }),
		text("REGIME FEDERAL", Texto, func(r *cliente.Record) *string { return &r.RegimeFederal }),
		text("REGIME ESTADUAL", Texto, func(r *cliente.Record) *string { return &r.RegimeEstadual }),
		text("SEGMENTO", Texto, func(r *cliente.Record) *string { return &r.Segmento }),
		text("ATIVIDADE", Texto, func(r *cliente.Record) *string { return &r.Atividade }),
		flag("SERVIÇO CT", func(r *cliente.Record) *bool { return &r.CT }, "CT"),
		flag("SERVIÇO FS", func(r *cliente.Record) *bool { return &r.FS }, "FS"),
		flag("SERVIÇO DP", func(r *cliente.Record) *bool { return &r.DP }, "DP"),
		flag("SERVIÇO BPO FINANCEIRO", func(r *cliente.Record) *bool { return &r.BPOFinanceiro }, "BPO FINANCEIRO"),
		text("RESPONSÁVEL PELOS SERVIÇOS", Texto, func(r *cliente.Record) *string { return &r.ResponsavelServicos }),
		text("DATA INÍCIO DOS SERVIÇOS", Data, func(r *cliente.Record) *string { return &r.DataInicioServicos }),
		text("CÓDIGO FORTES CT", Codigo, func(r *cliente.Record) *string { return &r.CodFortesCt }),
		text("CÓDIGO FORTES FS", Codigo, func(r *cliente.Record) *string { return &r.CodFortesFs }),
		text("CÓDIGO FORTES PS", Codigo, func(r *cliente.Record) *string { return &r.CodFortesPs }),
		text("CÓDIGO DOMÍNIO", Codigo, func(r *cliente.Record) *string { return &r.CodDominio }),
		text("SISTEMA EXTERNO", Texto, func(r *cliente.Record) *string { return &r.SistemaExterno }),
		text("DATA DE ABERTURA", Data, func(r *cliente.Record) *string { return &r.DataAberturaEmpresa }),
		text("TELEFONE FIXO", Texto, func(r *cliente.Record) *string { return &r.TelefoneFixo }),
		text("TELEFONE CELULAR", Texto, func(r *cliente.Record) *string { return &r.TelefoneCelular }, "CELULAR"),
		text("WHATSAPP", Texto, func(r *cliente.Record) *string { return &r.Whatsapp }),
		text("EMAIL PRINCIPAL", Texto, func(r *cliente.Record) *string { return &r.EmailPrincipal }, "EMAIL"),
		text("RESPONSÁVEL IMEDIATO", Texto, func(r *cliente.Record) *string { return &r.ResponsavelImediato }),
		text("STATUS DO CLIENTE", Texto, func(r *cliente.Record) *string { return &r.StatusCliente }, "STATUS"),
	}

	for i := 0; i < cliente.MaxSocios; i++ {
		n := i + 1
		socio := func(r *cliente.Record) *cliente.Socio { return &r.Socios[i] }
		s = append(s,
			text(fmt.Sprintf("SÓCIO %d NOME", n), Texto, func(r *cliente.Record) *string { return &socio(r).Nome }),
			text(fmt.Sprintf("SÓCIO %d CPF", n), Codigo, func(r *cliente.Record) *string { return &socio(r).CPF }),
			text(fmt.Sprintf("SÓCIO %d DATA NASCIMENTO", n), Data, func(r *cliente.Record) *string { return &socio(r).DataNascimento }),
			flag(fmt.Sprintf("SÓCIO %d ADMINISTRADOR", n), func(r *cliente.Record) *bool { return &socio(r).Administrador }),
			text(fmt.Sprintf("SÓCIO %d PARTICIPAÇÃO", n), Texto, func(r *cliente.Record) *string { return &socio(r).Participacao }),
			flag(fmt.Sprintf("SÓCIO %d RESPONSÁVEL LEGAL", n), func(r *cliente.Record) *bool { return &socio(r).RespLegal }),
		)
	}

	for i := 0; i < cliente.MaxContatos; i++ {
		n := i + 1
		contato := func(r *cliente.Record) *cliente.Contato { return &r.Contatos[i] }
		s = append(s,
			text(fmt.Sprintf("CONTATO %d NOME", n), Texto, func(r *cliente.Record) *string { return &contato(r).Nome }),
			text(fmt.Sprintf("CONTATO %d CARGO", n), Texto, func(r *cliente.Record) *string { return &contato(r).Cargo }),
			text(fmt.Sprintf("CONTATO %d TELEFONE", n), Texto, func(r *cliente.Record) *string { return &contato(r).Telefone }),
			text(fmt.Sprintf("CONTATO %d EMAIL", n), Texto, func(r *cliente.Record) *string { return &contato(r).Email }),
		)
	}

	for _, p := range portais {
		acesso := p.acesso
		s = append(s,
			text("LOGIN "+p.name, Codigo, func(r *cliente.Record) *string { return &acesso(r).Login }, "USUARIO "+p.name),
			text("SENHA "+p.name, Codigo, func(r *cliente.Record) *string { return &acesso(r).Senha }),
		)
	}

	for _, a := range autoridades {
		procuracao := a.procuracao
		s = append(s,
			flag("PROCURAÇÃO "+a.name, func(r *cliente.Record) *bool { return &procuracao(r).Ativa }),
			text("DATA PROCURAÇÃO "+a.name, Data, func(r *cliente.Record) *string { return &procuracao(r).Data }),
		)
	}

	// Bloco administrativo. ID entrou depois de CRIADO EM, quando os IDs passaram a ser
	// sequenciais; as colunas seguintes foram acrescentadas em revisões posteriores.
	s = append(s,
		text("CRIADO EM", Data, func(r *cliente.Record) *string { return &r.CriadoEm }, "DATA CRIAÇÃO", "DATA DE CRIAÇÃO"),
		text("ID", IDPrimario, func(r *cliente.Record) *string { return &r.ID }, "ID SEQUENCIAL"),
		text("ÚLTIMA ATUALIZAÇÃO", Data, func(r *cliente.Record) *string { return &r.UltimaAtualizacao }, "ULTIMA ATUALIZACAO"),
		text("OBSERVAÇÕES", Texto, func(r *cliente.Record) *string { return &r.Observacoes }),
		text("EMAIL SECUNDÁRIO", Texto, func(r *cliente.Record) *string { return &r.EmailSecundario }),
	)
	return s
}
