// Package store é a porta de entrada do cadastro de clientes: lista, busca, grava e remove
// registros compondo o esquema, o codec e o localizador sobre uma tabela.
//
// Store não faz travamento nem transação. Duas gravações simultâneas do mesmo registro
// competem e a última vence; a alocação de IDs lê o maior ID e depois acrescenta a linha,
// então gravações concorrentes podem gerar IDs repetidos. Quem chama deve serializar as
// gravações (o servidor HTTP usa um mutex). Também não há cache: cada operação lê a tabela.
package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"sigec/internal/apperrors"
	"sigec/internal/cliente"
	"sigec/internal/codec"
	"sigec/internal/locator"
	"sigec/internal/schema"
	"sigec/internal/tabela"
)

type Store struct {
	table  tabela.Table
	schema schema.Schema
	codec  *codec.Codec
	loc    locator.Locator
	log    *zap.Logger
	now    func() time.Time
}

type Option func(*Store)

// WithClock troca o relógio usado em criadoEm e ultimaAtualizacao.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func New(t tabela.Table, opts ...Option) *Store {
	s := &Store{
		table:  t,
		schema: schema.Current(),
		loc:    locator.New(),
		log:    zap.NewNop(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.codec = codec.New(s.log)
	return s
}

// Entry é um cadastro e a linha (1-based) onde ele está.
type Entry struct {
	Row    int
	Record cliente.Record
}

// GetAll devolve todos os cadastros na ordem da tabela, ignorando linhas vazias.
func (s *Store) GetAll(ctx context.Context) ([]cliente.Record, error) {
	entries, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]cliente.Record, len(entries))
	for i, e := range entries {
		out[i] = e.Record
	}
	return out, nil
}

// Snapshot é como GetAll, mas devolve também o número da linha de cada cadastro.
func (s *Store) Snapshot(ctx context.Context) ([]Entry, error) {
	rows, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	var entries []Entry
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		entries = append(entries, Entry{Row: i + 1, Record: s.codec.Decode(rows[i], s.schema)})
	}
	return entries, nil
}

// Get busca um cadastro pelo ID atual ou pelo ID legado.
func (s *Store) Get(ctx context.Context, id string) (cliente.Record, error) {
	rows, err := s.read(ctx)
	if err != nil {
		return cliente.Record{}, err
	}
	n, err := s.loc.Locate(id, rows)
	if err != nil {
		return cliente.Record{}, err
	}
	return s.codec.Decode(rows[n-1], s.schema), nil
}

// Save grava o cadastro e o devolve com o ID preenchido.
//
// Sem ID, recebe o próximo ID sequencial e criadoEm. Com ID, a linha existente é regravada
// inteira, preservando criadoEm e o ID legado gravados (o idLegado recebido é ignorado); um
// ID que não existe na tabela é erro, nunca uma inclusão.
func (s *Store) Save(ctx context.Context, rec cliente.Record) (cliente.Record, error) {
	rows, err := s.read(ctx)
	if err != nil {
		return cliente.Record{}, err
	}
	now := cliente.FormatTimestamp(s.now())
	rec.ID = strings.TrimSpace(rec.ID)

	if rec.ID == "" {
		// ID LEGADO só é gravado pela migração de IDs, nunca na inclusão.
		if strings.TrimSpace(rec.IDLegado) != "" {
			return cliente.Record{}, fmt.Errorf("%w: idLegado não pode ser informado na inclusão", apperrors.ErrInvalidRecord)
		}
		rec.ID = s.nextID(rows)
		rec.CriadoEm = now
		if err := cliente.Validate(&rec); err != nil {
			return cliente.Record{}, err
		}
		if err := s.table.AppendRow(ctx, s.codec.Encode(&rec, s.schema)); err != nil {
			return cliente.Record{}, err
		}
		s.log.Info("cliente incluído", zap.String("id", rec.ID), zap.String("empresa", rec.NomeEmpresa))
		return rec, nil
	}

	n, err := s.loc.Locate(rec.ID, rows)
	if err != nil {
		return cliente.Record{}, fmt.Errorf("edição recusada, nenhum registro novo foi criado: %w", err)
	}
	stored := s.codec.Decode(rows[n-1], s.schema)
	rec.ID = stored.ID
	switch {
	case stored.CriadoEm != "":
		rec.CriadoEm = stored.CriadoEm
	case rec.CriadoEm == "" && cliente.IsLegacyID(stored.ID):
		rec.CriadoEm = stored.ID
	}
	rec.IDLegado = stored.IDLegado
	rec.UltimaAtualizacao = now

	if err := s.Overwrite(ctx, n, rec); err != nil {
		return cliente.Record{}, err
	}
	s.log.Info("cliente atualizado", zap.String("id", rec.ID), zap.Int("linha", n))
	return rec, nil
}

// Overwrite valida o cadastro e regrava a linha row inteira.
func (s *Store) Overwrite(ctx context.Context, row int, rec cliente.Record) error {
	if row <= s.loc.HeaderRows {
		return fmt.Errorf("%w: linha %d é cabeçalho", apperrors.ErrInvalidRecord, row)
	}
	if err := cliente.Validate(&rec); err != nil {
		return err
	}
	return s.table.WriteRange(ctx, row, 0, s.codec.Encode(&rec, s.schema))
}

// Delete remove a linha do cadastro; as linhas seguintes sobem.
func (s *Store) Delete(ctx context.Context, id string) error {
	rows, err := s.read(ctx)
	if err != nil {
		return err
	}
	n, err := s.loc.Locate(id, rows)
	if err != nil {
		return err
	}
	if err := s.table.DeleteRow(ctx, n); err != nil {
		return err
	}
	s.log.Info("cliente removido", zap.String("id", id), zap.Int("linha", n))
	return nil
}

// SoftDelete marca o cadastro como inativo, mantendo a linha.
func (s *Store) SoftDelete(ctx context.Context, id string) (cliente.Record, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return cliente.Record{}, err
	}
	rec.StatusCliente = cliente.StatusInativo
	return s.Save(ctx, rec)
}

// NextID devolve o ID que o próximo cadastro novo receberia.
func (s *Store) NextID(ctx context.Context) (string, error) {
	rows, err := s.read(ctx)
	if err != nil {
		return "", err
	}
	return s.nextID(rows), nil
}

// nextID é o maior ID sequencial da coluna primária mais um. IDs legados não contam.
func (s *Store) nextID(rows [][]string) string {
	var max int64
	for i := s.loc.HeaderRows; i < len(rows); i++ {
		if s.loc.Primary >= len(rows[i]) {
			continue
		}
		if n, ok := cliente.SequentialNumber(codec.Unmark(strings.TrimSpace(rows[i][s.loc.Primary]))); ok && n > max {
			max = n
		}
	}
	return strconv.FormatInt(max+1, 10)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(codec.Unmark(c)) != "" {
			return false
		}
	}
	return true
}
