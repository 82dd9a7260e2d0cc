// Package httpapi expõe o cadastro de clientes como JSON.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"sigec/internal/apperrors"
	"sigec/internal/cliente"
	"sigec/internal/manutencao"
	"sigec/internal/store"
)

// Response é o envelope das respostas que não trazem dados.
type Response struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ListResponse traz a lista de clientes.
type ListResponse struct {
	Data  []cliente.Record `json:"data"`
	Total int              `json:"total"`
}

type Options struct {
	FrontendURL    string
	RequestTimeout time.Duration
}

type Server struct {
	store   *store.Store
	manut   *manutencao.Manutencao
	log     *zap.Logger
	timeout time.Duration
	origins []string

	// writeMu serializa inclusões, edições e remoções: o Store não tem transação e a
	// alocação de IDs não é atômica.
	writeMu sync.Mutex
}

func NewServer(s *store.Store, m *manutencao.Manutencao, opts Options, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	origins := []string{"*"}
	if opts.FrontendURL != "" && opts.FrontendURL != "*" {
		origins = strings.Split(opts.FrontendURL, ",")
	}
	return &Server{store: s, manut: m, log: log, timeout: opts.RequestTimeout, origins: origins}
}

// Router monta as rotas com os middlewares de log, recuperação e CORS.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
	})
	r.Use(c.Handler)

	r.Get("/health", s.handleHealth)
	r.Route("/clientes", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleSave)
		r.Get("/exportar", s.handleExport)
		r.Get("/{id}", s.handleGet)
		r.Put("/{id}", s.handleUpdate)
		r.Delete("/{id}", s.handleDelete)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{Message: "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	records, err := s.store.GetAll(ctx)
	if err != nil {
		s.writeError(w, "listar clientes", err)
		return
	}

	status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))
	out := make([]cliente.Record, 0, len(records))
	for _, rec := range records {
		switch status {
		case cliente.StatusAtivo:
			if !rec.Ativo() {
				continue
			}
		case cliente.StatusInativo:
			if rec.Ativo() {
				continue
			}
		}
		out = append(out, rec)
	}
	writeJSON(w, http.StatusOK, ListResponse{Data: out, Total: len(out)})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	rec, err := s.store.Get(ctx, idParam(r))
	if err != nil {
		s.writeError(w, "buscar cliente", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleSave inclui (sem id no corpo) ou edita (com id) um cliente.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var rec cliente.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Error: "Formato de requisição JSON inválido."})
		return
	}
	s.save(w, r, rec)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var rec cliente.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Error: "Formato de requisição JSON inválido."})
		return
	}
	rec.ID = idParam(r)
	s.save(w, r, rec)
}

func (s *Server) save(w http.ResponseWriter, r *http.Request, rec cliente.Record) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	created := strings.TrimSpace(rec.ID) == ""

	s.writeMu.Lock()
	saved, err := s.store.Save(ctx, rec)
	s.writeMu.Unlock()
	if err != nil {
		s.writeError(w, "salvar cliente", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, saved)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	id := idParam(r)
	soft, _ := strconv.ParseBool(r.URL.Query().Get("soft"))

	s.writeMu.Lock()
	var err error
	if soft {
		_, err = s.store.SoftDelete(ctx, id)
	} else {
		err = s.store.Delete(ctx, id)
	}
	s.writeMu.Unlock()
	if err != nil {
		s.writeError(w, "remover cliente", err)
		return
	}

	msg := fmt.Sprintf("Cliente %s removido com sucesso.", id)
	if soft {
		msg = fmt.Sprintf("Cliente %s inativado com sucesso.", id)
	}
	writeJSON(w, http.StatusOK, Response{Message: msg})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	var buf bytes.Buffer
	n, err := s.manut.Export(ctx, &buf)
	if err != nil {
		s.writeError(w, "exportar clientes", err)
		return
	}
	s.log.Info("clientes exportados", zap.Int("total", n))

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="clientes.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidRecord):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrSchemaMismatch):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrIO):
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError || status == http.StatusConflict {
		s.log.Error("falha ao "+op, zap.Error(err))
	}
	writeJSON(w, status, Response{Error: err.Error()})
}

func idParam(r *http.Request) string {
	id := chi.URLParam(r, "id")
	if v, err := url.PathUnescape(id); err == nil {
		return v
	}
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
