package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Nackshayan/MultilingualChatAssistant/logger"
	"github.com/Nackshayan/MultilingualChatAssistant/types"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // UI runs on a different origin in development
	},
}

// EventServer broadcasts pipeline run events to connected clients. New
// clients receive a replay of the most recent events.
type EventServer struct {
	hub    *Hub
	port   int
	server *http.Server
	log    *logger.Logger

	bufferMu  sync.RWMutex
	buffer    []*types.RunEvent
	maxBuffer int

	startTime time.Time
	mu        sync.Mutex
}

// NewEventServer creates an event server listening on the given port.
func NewEventServer(port int) *EventServer {
	return &EventServer{
		hub:       NewHub(),
		port:      port,
		log:       logger.GetLogger().WithField("component", "ws-server"),
		buffer:    make([]*types.RunEvent, 0, 100),
		maxBuffer: 100,
		startTime: time.Now(),
	}
}

// Start starts the hub and the HTTP listener.
func (s *EventServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	go s.hub.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      corsMiddleware(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		s.log.Infof("event server listening on :%d", s.port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("event server stopped", err)
		}
	}()

	return nil
}

// Stop closes the HTTP listener.
func (s *EventServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return s.server.Close()
	}
	return nil
}

// BroadcastEvent pushes one run event to every connected client.
func (s *EventServer) BroadcastEvent(event *types.RunEvent) {
	s.addToBuffer(event)

	data, err := event.ToJSON()
	if err != nil {
		s.log.Error("failed to marshal run event", err)
		return
	}
	if err := s.hub.Broadcast(data); err != nil {
		s.log.Warnf("dropping run event: %v", err)
	}
}

// BroadcastStatus pushes a plain status message.
func (s *EventServer) BroadcastStatus(component, message string) {
	s.BroadcastEvent(types.NewRunEvent(types.EventTypeStatus, "", component, message))
}

func (s *EventServer) addToBuffer(event *types.RunEvent) {
	s.bufferMu.Lock()
	defer s.bufferMu.Unlock()

	s.buffer = append(s.buffer, event)
	if len(s.buffer) > s.maxBuffer {
		s.buffer = s.buffer[len(s.buffer)-s.maxBuffer:]
	}
}

func (s *EventServer) replayTo(client *Client) {
	s.bufferMu.RLock()
	events := make([]*types.RunEvent, len(s.buffer))
	copy(events, s.buffer)
	s.bufferMu.RUnlock()

	for _, event := range events {
		if data, err := event.ToJSON(); err == nil {
			select {
			case client.send <- data:
			default:
				// Client's send channel is full, skip
			}
		}
	}
}

func (s *EventServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("failed to upgrade connection", err)
		return
	}

	client := NewClient(s.hub, conn)
	client.hub.register <- client

	s.replayTo(client)

	go client.writePump()
	go client.readPump()
}

func (s *EventServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.bufferMu.RLock()
	buffered := len(s.buffer)
	s.bufferMu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"uptime":    time.Since(s.startTime).Seconds(),
		"buffered":  buffered,
		"timestamp": time.Now().Format(time.RFC3339),
	})
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
