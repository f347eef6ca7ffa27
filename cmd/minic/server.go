package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gofrs/uuid"
	lru "github.com/hashicorp/golang-lru"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/minic-lang/minic"
	"github.com/minic-lang/minic/errors"
)

// invalidMarker ends the error text of every failed analysis.
const invalidMarker = "❌ invalid"

// maxRequestBytes bounds the size of a request body.
const maxRequestBytes = 1 << 20

type serverConfig struct {
	CacheSize   int
	CORSOrigins []string
	MaxErrors   int
	Logger      zerolog.Logger
}

// server answers analysis requests. Results are cached by source text.
type server struct {
	cfg   serverConfig
	cache *lru.Cache
	log   zerolog.Logger
}

func newServer(cfg serverConfig) (*server, error) {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 1
	}
	cache, err := lru.New(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating result cache: %w", err)
	}
	return &server{cfg: cfg, cache: cache, log: cfg.Logger}, nil
}

func (s *server) routes() http.Handler {
	router := httprouter.New()
	router.POST("/run_code", s.handleRunCode)
	router.GET("/healthz", s.handleHealth)
	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
	})
	return c.Handler(router)
}

type runRequest struct {
	Code string `json:"code"`
	// Lines is the line count of the code as the client's editor shows it,
	// before blank lines were stripped. Zero means unknown.
	Lines int `json:"lines"`
}

type runOutput struct {
	Tokens []tokenRecord `json:"tokens"`
	Status string        `json:"status"`
}

type runResponse struct {
	Output      *runOutput `json:"output,omitempty"`
	Error       string     `json:"error,omitempty"`
	Diagnostics any        `json:"diagnostics,omitempty"`
}

func (s *server) handleRunCode(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	id, err := uuid.NewV4()
	if err != nil {
		s.writeJSON(w, s.log, http.StatusInternalServerError, runResponse{Error: err.Error()})
		return
	}
	log := s.log.With().Str("request_id", id.String()).Logger()
	w.Header().Set("X-Request-Id", id.String())

	var req runRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("bad request")
		s.writeJSON(w, log, http.StatusBadRequest, runResponse{Error: "invalid request: " + err.Error()})
		return
	}

	code, offset := trimBlankLines(req.Code)
	result, cached := s.analyze(r, code, log)
	if result == nil {
		s.writeJSON(w, log, http.StatusServiceUnavailable, runResponse{Error: "request cancelled"})
		return
	}
	log.Info().
		Int("bytes", len(code)).
		Int("line_offset", offset).
		Bool("cached", cached).
		Bool("valid", result.Valid()).
		Int("errors", len(result.Diagnostics)).
		Msg("run_code")

	if result.Valid() {
		s.writeJSON(w, log, http.StatusOK, runResponse{Output: &runOutput{
			Tokens: tokenRecords(result.Tokens, offset),
			Status: "valid",
		}})
		return
	}
	diags := remapDiagnostics(result.Diagnostics, offset, req.Lines)
	resp := runResponse{Error: errorText(diags), Diagnostics: diags}
	if r.URL.Query().Get("format") == "lsp" {
		resp.Diagnostics = lspDiagnostics(diags)
	}
	s.writeJSON(w, log, http.StatusOK, resp)
}

// analyze returns the analysis of code from the cache or by running the
// pipeline. It returns nil if the request was cancelled.
func (s *server) analyze(r *http.Request, code string, log zerolog.Logger) (*minic.Result, bool) {
	if v, ok := s.cache.Get(code); ok {
		return v.(*minic.Result), true
	}
	result, err := minic.Analyze(r.Context(), code,
		minic.WithLogger(log),
		minic.WithMaxErrors(s.cfg.MaxErrors))
	if err != nil {
		log.Warn().Err(err).Msg("analysis cancelled")
		return nil, false
	}
	s.cache.Add(code, result)
	return result, false
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.writeJSON(w, s.log, http.StatusOK, map[string]any{"status": "ok", "cached": s.cache.Len()})
}

func (s *server) writeJSON(w http.ResponseWriter, log zerolog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

// errorText joins the diagnostics into the message shown to users.
func errorText(diags []*errors.Diagnostic) string {
	var b strings.Builder
	for _, d := range diags {
		b.WriteString(d.Error())
		b.WriteString("\n")
	}
	b.WriteString(invalidMarker)
	return b.String()
}
