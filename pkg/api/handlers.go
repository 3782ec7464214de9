package api

import (
	"encoding/json"
	"net/http"

	"github.com/geonorge-tools/bakgrunnskart/config"
	"github.com/geonorge-tools/bakgrunnskart/util/log"
)

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "running",
		"version": config.AppVersion,
		"catalog": s.catalog.Version,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleWebSocket upgrades the connection to WebSocket. Clients only read;
// inbound messages are treated as keepalives.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	s.clientsMu.Lock()
	s.clients[conn] = true
	s.clientsMu.Unlock()

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
	}()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

// handleAdd inserts a layer identified by catalog keys into the project.
func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Service string `json:"service"`
		Type    string `json:"type"`
		Variant string `json:"variant"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Service == "" {
		http.Error(w, "Service is required", http.StatusBadRequest)
		return
	}

	if s.catalog.ByID(req.Service) == nil {
		http.Error(w, "Unknown service", http.StatusNotFound)
		return
	}

	if s.onAddLayer == nil {
		log.Println("No AddLayer handler registered")
		http.Error(w, "Feature not available", http.StatusServiceUnavailable)
		return
	}

	if err := s.onAddLayer(req.Service, req.Type, req.Variant); err != nil {
		log.Printf("Failed to add layer: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
