// Package api exposes the reply pipeline over HTTP for the chat UI.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Nackshayan/MultilingualChatAssistant/classifier"
	"github.com/Nackshayan/MultilingualChatAssistant/logger"
	"github.com/Nackshayan/MultilingualChatAssistant/reply"
	"github.com/Nackshayan/MultilingualChatAssistant/types"
)

// Server is a thin HTTP facade over the reply engine.
type Server struct {
	engine *reply.Engine
	chain  *classifier.Chain
	port   int
	server *http.Server
	log    *logger.Logger
}

// NewServer creates the API server. A nil chain falls back to the rules-only
// classifier for the label endpoints.
func NewServer(port int, engine *reply.Engine, chain *classifier.Chain) *Server {
	if chain == nil {
		chain = classifier.Default()
	}
	return &Server{
		engine: engine,
		chain:  chain,
		port:   port,
		log:    logger.GetLogger().WithField("component", "api"),
	}
}

// Start begins serving. It blocks until the listener stops.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/reply", s.handleReply)
	mux.HandleFunc("/api/intent", s.handleIntent)
	mux.HandleFunc("/api/tone", s.handleTone)
	mux.HandleFunc("/healthz", s.handleHealth)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      corsMiddleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	s.log.Infof("api server listening on :%d", s.port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop shuts the listener down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// handleReply runs the full pipeline.
// Body: a ReplyRequest JSON object; a non-JSON body is treated as the user's
// draft reply in English.
func (s *Server) handleReply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requestID := uuid.New().String()
	req := s.parseReplyRequest(r)

	result, err := s.engine.GenerateReply(r.Context(), req)
	if err != nil {
		s.log.WithField("request_id", requestID).Error("reply generation failed", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"requestId": requestID,
			"error":     err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"requestId": requestID,
		"result":    result,
	})
}

// handleIntent labels a single text with its intent.
func (s *Server) handleIntent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	text := parseText(r)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"requestId": uuid.New().String(),
		"intent":    s.chain.ClassifyIntent(r.Context(), text),
	})
}

// handleTone labels a single text with its tone.
func (s *Server) handleTone(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	text := parseText(r)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"requestId": uuid.New().String(),
		"tone":      s.chain.ClassifyTone(r.Context(), text),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// parseReplyRequest reads the body tolerantly: JSON first, plain text as a
// bare draft reply otherwise.
func (s *Server) parseReplyRequest(r *http.Request) types.ReplyRequest {
	raw, _ := io.ReadAll(r.Body)
	_ = r.Body.Close()

	var req types.ReplyRequest
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &req); err != nil || (req.IncomingText == "" && req.UserReply == "") {
			req = types.ReplyRequest{UserReply: strings.TrimSpace(string(raw))}
		}
	}
	req.ToneOverride = types.ParseTone(string(req.ToneOverride))
	return req
}

// parseText accepts {"text": "..."} or a plain text body.
func parseText(r *http.Request) string {
	raw, _ := io.ReadAll(r.Body)
	_ = r.Body.Close()

	var body struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Text != "" {
		return body.Text
	}
	return strings.TrimSpace(string(raw))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
