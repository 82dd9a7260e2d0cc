package planilha

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"sigec/internal/apperrors"
	"sigec/internal/tabela"
)

var _ tabela.Table = (*Sheet)(nil)

type call struct {
	Method string
	Path   string
	Query  map[string]string
	Body   []byte
}

// fakeSheets simula os endpoints da API v4 usados pelo adaptador.
type fakeSheets struct {
	mu      sync.Mutex
	calls   []call
	respond func(w http.ResponseWriter, c call)
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := call{Method: r.Method, Path: r.URL.Path, Query: map[string]string{}}
	for k := range r.URL.Query() {
		c.Query[k] = r.URL.Query().Get(k)
	}
	if r.Body != nil {
		c.Body, _ = io.ReadAll(r.Body)
	}
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if f.respond != nil {
		f.respond(w, c)
		return
	}
	_, _ = w.Write([]byte(`{}`))
}

func (f *fakeSheets) last() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func newSheet(t *testing.T, f *fakeSheets) *Sheet {
	t.Helper()
	ts := httptest.NewServer(f)
	t.Cleanup(ts.Close)
	srv, err := sheets.NewService(context.Background(),
		option.WithEndpoint(ts.URL+"/"),
		option.WithHTTPClient(ts.Client()))
	require.NoError(t, err)
	return New(srv, "planilha-teste", "Clientes", zap.NewNop())
}

const propriedades = `{"sheets":[
	{"properties":{"sheetId":11,"title":"Outra","gridProperties":{"columnCount":10}}},
	{"properties":{"sheetId":77,"title":"Clientes","gridProperties":{"columnCount":26}}}
]}`

func TestReadAll(t *testing.T) {
	f := &fakeSheets{respond: func(w http.ResponseWriter, c call) {
		_, _ = w.Write([]byte(`{"range":"Clientes!A1:C3","majorDimension":"ROWS",
			"values":[["ID LEGADO","NOME DA EMPRESA"],[],["","Acme",12]]}`))
	}}
	s := newSheet(t, f)

	rows, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"ID LEGADO", "NOME DA EMPRESA"}, {}, {"", "Acme", "12"}}, rows)

	c := f.last()
	assert.Equal(t, http.MethodGet, c.Method)
	assert.True(t, strings.HasSuffix(c.Path, "/v4/spreadsheets/planilha-teste/values/'Clientes'"), c.Path)
	assert.Equal(t, "FORMATTED_VALUE", c.Query["valueRenderOption"])
}

func TestWriteRange(t *testing.T) {
	f := &fakeSheets{}
	s := newSheet(t, f)

	require.NoError(t, s.WriteRange(context.Background(), 2, 153, []string{"'42", ""}))

	c := f.last()
	assert.Equal(t, http.MethodPut, c.Method)
	assert.True(t, strings.HasSuffix(c.Path, "/values/'Clientes'!EX2"), c.Path)
	assert.Equal(t, "USER_ENTERED", c.Query["valueInputOption"])

	var body sheets.ValueRange
	require.NoError(t, json.Unmarshal(c.Body, &body))
	assert.Equal(t, [][]interface{}{{"'42", ""}}, body.Values)
}

func TestAppendRow(t *testing.T) {
	f := &fakeSheets{}
	s := newSheet(t, f)

	require.NoError(t, s.AppendRow(context.Background(), []string{"", "Acme"}))

	c := f.last()
	assert.Equal(t, http.MethodPost, c.Method)
	assert.True(t, strings.HasSuffix(c.Path, "/values/'Clientes'!A1:append"), c.Path)
	assert.Equal(t, "USER_ENTERED", c.Query["valueInputOption"])
	assert.Equal(t, "INSERT_ROWS", c.Query["insertDataOption"])
}

func TestDeleteRow(t *testing.T) {
	f := &fakeSheets{respond: func(w http.ResponseWriter, c call) {
		if c.Method == http.MethodGet {
			_, _ = w.Write([]byte(propriedades))
			return
		}
		_, _ = w.Write([]byte(`{"spreadsheetId":"planilha-teste"}`))
	}}
	s := newSheet(t, f)

	require.NoError(t, s.DeleteRow(context.Background(), 5))

	c := f.last()
	assert.True(t, strings.HasSuffix(c.Path, "/v4/spreadsheets/planilha-teste:batchUpdate"), c.Path)
	var req sheets.BatchUpdateSpreadsheetRequest
	require.NoError(t, json.Unmarshal(c.Body, &req))
	require.Len(t, req.Requests, 1)
	d := req.Requests[0].DeleteDimension
	require.NotNil(t, d)
	assert.Equal(t, int64(77), d.Range.SheetId)
	assert.Equal(t, "ROWS", d.Range.Dimension)
	assert.Equal(t, int64(4), d.Range.StartIndex)
	assert.Equal(t, int64(5), d.Range.EndIndex)
}

func TestEnsureColumns(t *testing.T) {
	f := &fakeSheets{respond: func(w http.ResponseWriter, c call) {
		if c.Method == http.MethodGet {
			_, _ = w.Write([]byte(propriedades))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}}
	s := newSheet(t, f)
	ctx := context.Background()

	require.NoError(t, s.EnsureColumns(ctx, 20))
	assert.Len(t, f.calls, 1, "grade já é larga o bastante")

	require.NoError(t, s.EnsureColumns(ctx, 157))
	c := f.last()
	var req sheets.BatchUpdateSpreadsheetRequest
	require.NoError(t, json.Unmarshal(c.Body, &req))
	a := req.Requests[0].AppendDimension
	require.NotNil(t, a)
	assert.Equal(t, int64(77), a.SheetId)
	assert.Equal(t, "COLUMNS", a.Dimension)
	assert.Equal(t, int64(131), a.Length)
}

func TestMissingTab(t *testing.T) {
	f := &fakeSheets{respond: func(w http.ResponseWriter, c call) {
		_, _ = w.Write([]byte(`{"sheets":[{"properties":{"sheetId":1,"title":"Planilha1"}}]}`))
	}}
	s := newSheet(t, f)

	err := s.DeleteRow(context.Background(), 2)
	assert.ErrorIs(t, err, apperrors.ErrIO)
	assert.Len(t, f.calls, 1)
}

func TestAPIErrorIsIO(t *testing.T) {
	f := &fakeSheets{respond: func(w http.ResponseWriter, c call) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`))
	}}
	s := newSheet(t, f)

	_, err := s.ReadAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrIO)

	var apiErr *googleapi.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Code)

	err = s.WriteRange(context.Background(), 1, 0, []string{"x"})
	assert.ErrorIs(t, err, apperrors.ErrIO)
}

func TestCredentialsLoad(t *testing.T) {
	log := zap.NewNop()
	data := []byte(`{"type":"service_account","client_email":"sigec@projeto.iam.gserviceaccount.com"}`)

	dir := t.TempDir()
	file := filepath.Join(dir, "credentials.json")
	require.NoError(t, os.WriteFile(file, data, 0o600))

	t.Run("arquivo tem prioridade", func(t *testing.T) {
		got, err := Credentials{File: file, Base64: "lixo"}.Load(log)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("base64 url sem padding", func(t *testing.T) {
		enc := base64.RawURLEncoding.EncodeToString(data)
		got, err := Credentials{File: filepath.Join(dir, "nao-existe.json"), Base64: enc}.Load(log)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("base64 padrão com padding", func(t *testing.T) {
		enc := base64.StdEncoding.EncodeToString(data)
		got, err := Credentials{Base64: enc}.Load(log)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("base64 inválido", func(t *testing.T) {
		_, err := Credentials{Base64: "***"}.Load(log)
		assert.Error(t, err)
	})

	t.Run("nenhuma fonte", func(t *testing.T) {
		_, err := Credentials{File: filepath.Join(dir, "nao-existe.json")}.Load(log)
		assert.Error(t, err)
	})
}
