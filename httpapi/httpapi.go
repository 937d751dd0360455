// Package httpapi exposes the disambiguation engine over plain HTTP+JSON:
// POST /v1/disambiguate scores one target word in context and records the
// result under a decision ID and session ID, POST /v1/process runs the
// whole-sentence anomaly scan and correction pass over free text,
// GET /v1/decisions/{id} replays a previously computed record, and
// GET /v1/sessions/{id}/decisions lists a session's most recent decisions,
// newest first.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/nl-sre/semantico/engine"
	"github.com/nl-sre/semantico/internal/store"
	"github.com/nl-sre/semantico/lexeme"
)

// Server wires the engine and the decision store behind the HTTP surface.
type Server struct {
	engine *engine.Disambiguator
	store  *store.DecisionStore
}

// NewServer builds a Server around d, with a fresh in-memory DecisionStore.
func NewServer(d *engine.Disambiguator) *Server {
	if d == nil {
		log.Fatal("httpapi: Disambiguator is nil in NewServer")
	}
	return &Server{engine: d, store: store.New()}
}

type wordRequest struct {
	Surface string   `json:"surface"`
	Tags    []string `json:"tags,omitempty"`
}

type disambiguateRequest struct {
	Words     []wordRequest `json:"words"`
	Target    int           `json:"target"`
	SessionID string        `json:"session_id,omitempty"`
	Timestamp string        `json:"timestamp,omitempty"`
	Weights   *struct {
		Char    float64 `json:"char"`
		Grammar float64 `json:"grammar"`
		Context float64 `json:"context"`
	} `json:"weights,omitempty"`
}

type disambiguateResponse struct {
	ID         string                  `json:"id"`
	SessionID  string                  `json:"session_id"`
	Timestamp  string                  `json:"timestamp,omitempty"`
	Original   string                  `json:"original"`
	Corrected  string                  `json:"corrected"`
	Confidence float64                 `json:"confidence"`
	Breakdown  engine.Breakdown        `json:"breakdown"`
	Rationale  []engine.RationaleEntry `json:"rationale"`
}

func (s *Server) handleDisambiguate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req disambiguateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	words := make([]lexeme.Word, len(req.Words))
	for i, wr := range req.Words {
		tags := make([]lexeme.POS, 0, len(wr.Tags))
		for _, t := range wr.Tags {
			pos, err := lexeme.ParsePOS(t)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			tags = append(tags, pos)
		}
		words[i] = lexeme.Word{Surface: wr.Surface, Tags: tags}
	}
	sentence := lexeme.Sentence{Words: words}

	weights := engine.DefaultWeights()
	if req.Weights != nil {
		weights = engine.Weights{Char: req.Weights.Char, Grammar: req.Weights.Grammar, Context: req.Weights.Context}
	}

	decision, err := s.engine.Disambiguate(sentence, req.Target, weights)
	if err != nil {
		wrapped := fmt.Errorf("httpapi: disambiguate: %w", err)
		log.Printf("httpapi: %v", wrapped)
		writeError(w, statusFor(err), wrapped.Error())
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "sess_" + uuid.New().String()
	}

	id := "dec_" + uuid.New().String()
	record := store.Record{ID: id, SessionID: sessionID, Timestamp: req.Timestamp, Decision: decision}
	if err := s.store.Put(record); err != nil {
		wrapped := fmt.Errorf("httpapi: store decision: %w", err)
		log.Printf("httpapi: %v", wrapped)
		writeError(w, http.StatusInternalServerError, wrapped.Error())
		return
	}

	writeJSON(w, http.StatusOK, disambiguateResponse{
		ID:         id,
		SessionID:  sessionID,
		Timestamp:  req.Timestamp,
		Original:   decision.Original,
		Corrected:  decision.Corrected,
		Confidence: decision.Confidence,
		Breakdown:  decision.Breakdown,
		Rationale:  decision.Rationale,
	})
}

type processRequest struct {
	Text          string  `json:"text"`
	MinConfidence float64 `json:"min_confidence"`
	Weights       *struct {
		Char    float64 `json:"char"`
		Grammar float64 `json:"grammar"`
		Context float64 `json:"context"`
	} `json:"weights,omitempty"`
}

type processResponse struct {
	Original    string              `json:"original"`
	Corrected   string              `json:"corrected"`
	Confidence  float64             `json:"confidence"`
	Corrections []engine.Correction `json:"corrections"`
}

// handleProcess serves POST /v1/process: the whole-sentence convenience
// wrapper that tokenizes free text, disambiguates every token missing from
// the lexicon, and applies the corrections that clear min_confidence.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.MinConfidence == 0 {
		req.MinConfidence = 0.60
	}

	weights := engine.DefaultWeights()
	if req.Weights != nil {
		weights = engine.Weights{Char: req.Weights.Char, Grammar: req.Weights.Grammar, Context: req.Weights.Context}
	}

	processed, err := s.engine.ProcessSentence(req.Text, weights, req.MinConfidence)
	if err != nil {
		wrapped := fmt.Errorf("httpapi: process: %w", err)
		log.Printf("httpapi: %v", wrapped)
		writeError(w, http.StatusInternalServerError, wrapped.Error())
		return
	}

	writeJSON(w, http.StatusOK, processResponse{
		Original:    processed.Original,
		Corrected:   processed.Corrected,
		Confidence:  processed.Confidence,
		Corrections: processed.Corrections,
	})
}

func (s *Server) handleGetDecision(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/decisions/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing decision id")
		return
	}

	record, err := s.store.Get(id)
	if err != nil {
		wrapped := fmt.Errorf("httpapi: get decision: %w", err)
		log.Printf("httpapi: %v", wrapped)
		writeError(w, http.StatusNotFound, wrapped.Error())
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// handleSessionDecisions serves GET /v1/sessions/{id}/decisions: the most
// recent decisions recorded under a session ID, newest first.
func (s *Server) handleSessionDecisions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/sessions/"), "/decisions")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing session id")
		return
	}

	records, err := s.store.RecentForSession(id, maxSessionDecisionsListed)
	if err != nil {
		wrapped := fmt.Errorf("httpapi: list session decisions: %w", err)
		log.Printf("httpapi: %v", wrapped)
		writeError(w, http.StatusInternalServerError, wrapped.Error())
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// maxSessionDecisionsListed caps how many records handleSessionDecisions
// returns per call.
const maxSessionDecisionsListed = 20

func statusFor(err error) int {
	switch err {
	case engine.ErrInvalidWeights, engine.ErrTargetOutOfRange:
		return http.StatusBadRequest
	case engine.ErrNoCandidates:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// Mux builds the routed handler for the disambiguation HTTP surface.
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/disambiguate", s.handleDisambiguate)
	mux.HandleFunc("/v1/process", s.handleProcess)
	mux.HandleFunc("/v1/decisions/", s.handleGetDecision)
	mux.HandleFunc("/v1/sessions/", s.handleSessionDecisions)
	return mux
}

// RunServer starts the HTTP server on addr (or a dynamic port if addr is
// empty, for tests), wrapped in CORS and h2c to keep the transport shape
// of a Connect-style service without depending on generated code.
func RunServer(d *engine.Disambiguator, addr string) (*http.Server, *sync.WaitGroup, string) {
	svcServer := NewServer(d)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:8081", "http://localhost:3001", "http://localhost:3000", "http://localhost"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"X-CSRF-Token",
			"Authorization",
			"Origin",
		},
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
	})

	var listener net.Listener
	var err error
	var port string

	if addr == "" || strings.HasSuffix(addr, ":0") {
		listener, err = net.Listen("tcp", ":0")
		if err != nil {
			log.Fatalf("httpapi: failed to listen: %v", err)
		}
		port = strconv.Itoa(listener.Addr().(*net.TCPAddr).Port)
	} else {
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Fatalf("httpapi: failed to listen on %s: %v", addr, err)
		}
		port = strconv.Itoa(listener.Addr().(*net.TCPAddr).Port)
	}

	srv := &http.Server{
		Handler: h2c.NewHandler(corsHandler.Handler(svcServer.Mux()), &http2.Server{}),
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("httpapi: server is running on port %s", port)
		if err := srv.Serve(listener); err != http.ErrServerClosed {
			log.Fatalf("httpapi: Serve(): %v", err)
		}
	}()

	return srv, &wg, port
}

// Shutdown gracefully stops srv.
func Shutdown(ctx context.Context, srv *http.Server) error {
	return srv.Shutdown(ctx)
}
