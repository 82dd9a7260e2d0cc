// Package manutencao reúne as correções de dados do cadastro como operações testadas sobre
// o Store, no lugar de scripts avulsos que reimplementam a busca de linhas.
package manutencao

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"sigec/internal/cliente"
	"sigec/internal/codec"
	"sigec/internal/schema"
	"sigec/internal/store"
	"sigec/internal/xlsx"
)

type Manutencao struct {
	store *store.Store
	codec *codec.Codec
	log   *zap.Logger
}

func New(s *store.Store, log *zap.Logger) *Manutencao {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manutencao{store: s, codec: codec.New(log), log: log}
}

// Tipos de problema encontrados pela auditoria.
const (
	IDVazio          = "id-vazio"
	IDInvalido       = "id-invalido"
	IDDuplicado      = "id-duplicado"
	CriadoEmInvalido = "criado-em-invalido"
	Inversao         = "inversao-id-criado-em"
)

type Problem struct {
	Row    int    `json:"linha"`
	ID     string `json:"id"`
	Kind   string `json:"tipo"`
	Detail string `json:"detalhe"`
}

// Audit percorre o cadastro e lista as linhas que violam os invariantes de identificação.
func (m *Manutencao) Audit(ctx context.Context) ([]Problem, error) {
	entries, err := m.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	var problems []Problem
	seen := make(map[string][]int)
	for _, e := range entries {
		r := e.Record
		switch {
		case r.ID == "":
			problems = append(problems, Problem{Row: e.Row, Kind: IDVazio, Detail: "linha sem ID nem ID legado"})
		case swapped(r):
			problems = append(problems, Problem{Row: e.Row, ID: r.ID, Kind: Inversao,
				Detail: fmt.Sprintf("ID %q e CRIADO EM %q parecem trocados", r.ID, r.CriadoEm)})
		case !cliente.IsSequentialID(r.ID) && !cliente.IsLegacyID(r.ID):
			problems = append(problems, Problem{Row: e.Row, ID: r.ID, Kind: IDInvalido,
				Detail: fmt.Sprintf("ID %q não é sequencial nem timestamp", r.ID)})
		}
		if r.CriadoEm != "" && !cliente.IsTimestamp(r.CriadoEm) && !swapped(r) {
			problems = append(problems, Problem{Row: e.Row, ID: r.ID, Kind: CriadoEmInvalido,
				Detail: fmt.Sprintf("CRIADO EM %q não é data", r.CriadoEm)})
		}
		if r.ID != "" {
			seen[r.ID] = append(seen[r.ID], e.Row)
		}
	}
	ids := make([]string, 0, len(seen))
	for id, rows := range seen {
		if len(rows) > 1 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	for _, id := range ids {
		for _, row := range seen[id] {
			problems = append(problems, Problem{Row: row, ID: id, Kind: IDDuplicado,
				Detail: fmt.Sprintf("ID repetido nas linhas %v", seen[id])})
		}
	}
	return problems, nil
}

// RepairSwapped troca ID e CRIADO EM nas linhas em que o ID tem um timestamp e CRIADO EM
// tem um número. Devolve as linhas corrigidas (já com os valores trocados).
func (m *Manutencao) RepairSwapped(ctx context.Context, dryRun bool) ([]store.Entry, error) {
	entries, err := m.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	var fixed []store.Entry
	for _, e := range entries {
		if !swapped(e.Record) {
			continue
		}
		r := e.Record
		r.ID, r.CriadoEm = r.CriadoEm, r.ID
		if !dryRun {
			if err := m.store.Overwrite(ctx, e.Row, r); err != nil {
				return fixed, fmt.Errorf("linha %d: %w", e.Row, err)
			}
		}
		m.log.Info("inversão ID/CRIADO EM corrigida",
			zap.Int("linha", e.Row), zap.String("id", r.ID), zap.Bool("simulacao", dryRun))
		fixed = append(fixed, store.Entry{Row: e.Row, Record: r})
	}
	return fixed, nil
}

type Migration struct {
	Row  int    `json:"linha"`
	From string `json:"de"`
	To   string `json:"para"`
}

// MigrateLegacyIDs dá um ID sequencial a cada cadastro que só tem o ID antigo. O timestamp
// fica em ID LEGADO, então o cadastro continua encontrável pelo ID antigo. Linhas com ID e
// CRIADO EM trocados são puladas: rode RepairSwapped antes.
func (m *Manutencao) MigrateLegacyIDs(ctx context.Context, dryRun bool) ([]Migration, error) {
	entries, err := m.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	next, err := m.store.NextID(ctx)
	if err != nil {
		return nil, err
	}
	n, _ := strconv.ParseInt(next, 10, 64)

	var done []Migration
	for _, e := range entries {
		r := e.Record
		if !cliente.IsLegacyID(r.ID) || r.IDLegado != "" {
			continue
		}
		if swapped(r) {
			m.log.Warn("linha com ID e CRIADO EM trocados não migrada", zap.Int("linha", e.Row))
			continue
		}
		old := r.ID
		r.IDLegado = old
		r.ID = strconv.FormatInt(n, 10)
		if r.CriadoEm == "" {
			r.CriadoEm = old
		}
		if !dryRun {
			if err := m.store.Overwrite(ctx, e.Row, r); err != nil {
				return done, fmt.Errorf("linha %d: %w", e.Row, err)
			}
		}
		m.log.Info("ID legado migrado", zap.Int("linha", e.Row),
			zap.String("de", old), zap.String("para", r.ID), zap.Bool("simulacao", dryRun))
		done = append(done, Migration{Row: e.Row, From: old, To: r.ID})
		n++
	}
	return done, nil
}

// Export escreve todos os cadastros em w como .xlsx e devolve quantos foram exportados.
func (m *Manutencao) Export(ctx context.Context, w io.Writer) (int, error) {
	records, err := m.store.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	s := schema.Current()
	rows := make([][]string, len(records))
	for i := range records {
		rows[i] = m.codec.Encode(&records[i], s)
	}
	if err := xlsx.Export(w, s.Header(), rows); err != nil {
		return 0, err
	}
	return len(records), nil
}

func swapped(r cliente.Record) bool {
	return cliente.IsLegacyID(r.ID) && cliente.IsSequentialID(r.CriadoEm)
}
