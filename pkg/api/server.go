package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/geonorge-tools/bakgrunnskart/asset"
	"github.com/geonorge-tools/bakgrunnskart/pkg/catalog"
	"github.com/geonorge-tools/bakgrunnskart/util/log"
)

// ListenAddr is the loopback address of the bridge. Companion tooling (the
// browser extension and the audit scripts) hardcode the port.
const ListenAddr = "127.0.0.1:49517"

// AddLayerFunc resolves and inserts a layer from catalog identifiers. The
// variant label may be empty, meaning the offering's first tileset.
type AddLayerFunc func(serviceID, typeKey, variantLabel string) error

// Server is the local REST/WebSocket bridge. It exposes the bundled catalog
// read-only and accepts layer insertions on behalf of external tooling.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	upgrader   websocket.Upgrader

	catalog *catalog.Catalog
	assets  *asset.Manager

	// WebSocket management
	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex

	// Callbacks
	onAddLayer AddLayerFunc
}

// NewServer creates a bridge over the given catalog and asset bundle.
func NewServer(cat *catalog.Catalog, assets *asset.Manager) *Server {
	s := &Server{
		mux: http.NewServeMux(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		catalog: cat,
		assets:  assets,
		clients: make(map[*websocket.Conn]bool),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/health", s.enableCORS(s.handleHealth))
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	s.mux.HandleFunc("/add", s.enableCORS(s.handleAdd))
	s.mux.HandleFunc("/catalog", s.enableCORS(s.handleCatalog))
	s.mux.HandleFunc("/previews/", s.enableCORS(s.handlePreview))
}

// enableCORS adds CORS headers to the handler.
func (s *Server) enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Allow extensions to access localhost
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// SetAddLayerHandler sets the callback for inserting a layer.
func (s *Server) SetAddLayerHandler(handler AddLayerFunc) {
	s.onAddLayer = handler
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the server. Blocking.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    ListenAddr,
		Handler: s.mux,
	}
	return s.httpServer.ListenAndServe()
}

// Stop stops the server.
func (s *Server) Stop() error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(context.Background())
	}
	return nil
}

// BroadcastLayerAdded notifies all connected clients that a layer was
// inserted into the project, whether through the dialog or the bridge.
func (s *Server) BroadcastLayerAdded(serviceID, typeKey, title string) error {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	msg := map[string]string{
		"type":    "layer_added",
		"service": serviceID,
		"kind":    typeKey,
		"title":   title,
	}

	for client := range s.clients {
		err := client.WriteJSON(msg)
		if err != nil {
			log.Printf("Failed to broadcast to client: %v", err)
			client.Close()
			delete(s.clients, client)
		}
	}
	return nil
}
