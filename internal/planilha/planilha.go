// Package planilha implementa tabela.Table sobre uma aba do Google Sheets.
package planilha

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"sigec/internal/apperrors"
	"sigec/internal/schema"
)

// Credentials diz onde procurar a chave da conta de serviço.
type Credentials struct {
	File   string
	Base64 string
}

// Load lê as credenciais: primeiro o arquivo local, depois a variável em base64.
func (c Credentials) Load(log *zap.Logger) ([]byte, error) {
	if c.File != "" {
		if _, err := os.Stat(c.File); err == nil {
			b, err := os.ReadFile(c.File)
			if err != nil {
				return nil, fmt.Errorf("erro ao ler credenciais do arquivo: %w", err)
			}
			log.Info("credenciais encontradas via arquivo local", zap.String("arquivo", c.File))
			return b, nil
		}
	}
	if c.Base64 != "" {
		raw := strings.TrimRight(strings.TrimSpace(c.Base64), "=")
		b, err := base64.RawURLEncoding.DecodeString(raw)
		if err != nil {
			b, err = base64.RawStdEncoding.DecodeString(raw)
		}
		if err != nil {
			return nil, fmt.Errorf("erro ao decodificar credenciais em base64: %w", err)
		}
		log.Info("credenciais encontradas via variável de ambiente (base64)")
		return b, nil
	}
	return nil, errors.New("credenciais de acesso ao Google Sheets não encontradas; verifique credentials.json ou CREDENTIALS_BASE64")
}

// NewService cria o cliente da API com JWT da conta de serviço.
func NewService(ctx context.Context, creds []byte) (*sheets.Service, error) {
	config, err := google.JWTConfigFromJSON(creds, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar config JWT: %w", err)
	}
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar serviço Sheets: %w", err)
	}
	return srv, nil
}

// Sheet é uma aba de uma planilha.
type Sheet struct {
	srv           *sheets.Service
	spreadsheetID string
	aba           string
	log           *zap.Logger
}

func New(srv *sheets.Service, spreadsheetID, aba string, log *zap.Logger) *Sheet {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sheet{
		srv:           srv,
		spreadsheetID: spreadsheetID,
		aba:           aba,
		log:           log.With(zap.String("planilha", spreadsheetID), zap.String("aba", aba)),
	}
}

// Open resolve as credenciais e abre a aba.
func Open(ctx context.Context, creds Credentials, spreadsheetID, aba string, log *zap.Logger) (*Sheet, error) {
	if log == nil {
		log = zap.NewNop()
	}
	b, err := creds.Load(log)
	if err != nil {
		return nil, err
	}
	srv, err := NewService(ctx, b)
	if err != nil {
		return nil, err
	}
	return New(srv, spreadsheetID, aba, log), nil
}

func (s *Sheet) ReadAll(ctx context.Context) ([][]string, error) {
	rng := s.quoted()
	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, rng).
		ValueRenderOption("FORMATTED_VALUE").
		MajorDimension("ROWS").
		Context(ctx).Do()
	if err != nil {
		return nil, s.ioError("ler "+rng, err)
	}
	rows := make([][]string, len(resp.Values))
	for i, r := range resp.Values {
		row := make([]string, len(r))
		for j, v := range r {
			row[j] = fmt.Sprint(v)
		}
		rows[i] = row
	}
	return rows, nil
}

func (s *Sheet) WriteRange(ctx context.Context, row, col int, cells []string) error {
	rng := fmt.Sprintf("%s!%s%d", s.quoted(), schema.Letter(col), row)
	_, err := s.srv.Spreadsheets.Values.Update(s.spreadsheetID, rng, valueRange(cells)).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return s.ioError("gravar "+rng, err)
	}
	return nil
}

func (s *Sheet) AppendRow(ctx context.Context, cells []string) error {
	rng := s.quoted() + "!A1"
	_, err := s.srv.Spreadsheets.Values.Append(s.spreadsheetID, rng, valueRange(cells)).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return s.ioError("acrescentar linha", err)
	}
	return nil
}

func (s *Sheet) DeleteRow(ctx context.Context, row int) error {
	id, _, err := s.properties(ctx)
	if err != nil {
		return err
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    id,
					Dimension:  "ROWS",
					StartIndex: int64(row - 1),
					EndIndex:   int64(row),
				},
			},
		}},
	}
	if _, err := s.srv.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return s.ioError(fmt.Sprintf("remover linha %d", row), err)
	}
	return nil
}

// EnsureColumns acrescenta colunas à grade quando ela é mais estreita que width. As
// células novas já nascem vazias, então as linhas de dados não precisam ser regravadas.
func (s *Sheet) EnsureColumns(ctx context.Context, width int) error {
	id, count, err := s.properties(ctx)
	if err != nil {
		return err
	}
	if count >= int64(width) {
		return nil
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AppendDimension: &sheets.AppendDimensionRequest{
				SheetId:   id,
				Dimension: "COLUMNS",
				Length:    int64(width) - count,
			},
		}},
	}
	if _, err := s.srv.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return s.ioError("expandir colunas", err)
	}
	s.log.Info("colunas acrescentadas à grade", zap.Int64("antes", count), zap.Int("depois", width))
	return nil
}

// properties devolve o gid da aba e o número atual de colunas da grade.
func (s *Sheet) properties(ctx context.Context) (int64, int64, error) {
	resp, err := s.srv.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).Do()
	if err != nil {
		return 0, 0, s.ioError("consultar propriedades", err)
	}
	for _, sh := range resp.Sheets {
		if sh.Properties == nil || sh.Properties.Title != s.aba {
			continue
		}
		var cols int64
		if sh.Properties.GridProperties != nil {
			cols = sh.Properties.GridProperties.ColumnCount
		}
		return sh.Properties.SheetId, cols, nil
	}
	return 0, 0, fmt.Errorf("%w: aba %q não existe na planilha %s", apperrors.ErrIO, s.aba, s.spreadsheetID)
}

func (s *Sheet) quoted() string {
	return "'" + strings.ReplaceAll(s.aba, "'", "''") + "'"
}

func (s *Sheet) ioError(op string, err error) error {
	fields := []zap.Field{zap.String("operacao", op), zap.Error(err)}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		fields = append(fields, zap.Int("status", apiErr.Code))
	}
	s.log.Error("falha na API do Sheets", fields...)
	return fmt.Errorf("%w: %s: %w", apperrors.ErrIO, op, err)
}

func valueRange(cells []string) *sheets.ValueRange {
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return &sheets.ValueRange{Values: [][]interface{}{row}}
}
