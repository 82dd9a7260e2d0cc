package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendPlanilha = "planilha"
	BackendXLSX     = "xlsx"
	BackendMemoria  = "memoria"
)

type Config struct {
	Backend string

	SpreadsheetID     string
	Aba               string
	CredentialsFile   string
	CredentialsBase64 string
	XLSXPath          string

	Port           string
	FrontendURL    string
	RequestTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// Load lê a configuração do ambiente. Um .env no diretório atual, se existir, é carregado
// antes; variáveis já definidas no ambiente têm precedência.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("erro ao carregar .env: %w", err)
	}

	baseDir, err := os.Getwd()
	if err != nil {
		return Config{}, fmt.Errorf("falha ao obter o diretório de trabalho: %w", err)
	}

	cfg := Config{
		Backend:           strings.ToLower(getEnv("SIGEC_BACKEND", BackendPlanilha)),
		SpreadsheetID:     os.Getenv("SPREADSHEET_ID"),
		Aba:               getEnv("SIGEC_ABA", "Clientes"),
		CredentialsFile:   getEnv("CREDENTIALS_FILE", filepath.Join(baseDir, "credentials.json")),
		CredentialsBase64: os.Getenv("CREDENTIALS_BASE64"),
		XLSXPath:          getEnv("SIGEC_XLSX", filepath.Join(baseDir, "clientes.xlsx")),
		Port:              getEnv("PORT", "10000"),
		FrontendURL:       getEnv("FRONTEND_URL", "*"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
	}

	cfg.RequestTimeout, err = time.ParseDuration(getEnv("REQUEST_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("REQUEST_TIMEOUT inválido: %w", err)
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Backend {
	case BackendPlanilha:
		if c.SpreadsheetID == "" {
			return errors.New("SPREADSHEET_ID é obrigatório com SIGEC_BACKEND=planilha")
		}
	case BackendXLSX, BackendMemoria:
	default:
		return fmt.Errorf("SIGEC_BACKEND desconhecido: %q", c.Backend)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
