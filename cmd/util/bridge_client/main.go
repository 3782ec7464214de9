// Exercises the companion bridge of a running instance: fetches the
// catalog, subscribes to layer events and requests one insertion.
//
//	go run ./cmd/util/bridge_client [serviceID]
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"github.com/geonorge-tools/bakgrunnskart/pkg/api"
)

func main() {
	base := "http://" + api.ListenAddr

	resp, err := http.Get(base + "/health")
	if err != nil {
		log.Fatalf("Bridge not reachable on %s: %v", api.ListenAddr, err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	log.Printf("Health: %s", body)

	resp, err = http.Get(base + "/catalog")
	if err != nil {
		log.Fatalf("Catalog fetch failed: %v", err)
	}
	var listing struct {
		Version  string               `json:"version"`
		Services []api.ServiceSummary `json:"services"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		log.Fatalf("Catalog decode failed: %v", err)
	}
	resp.Body.Close()
	log.Printf("Catalog %s with %d services", listing.Version, len(listing.Services))

	serviceID := listing.Services[0].ID
	if len(os.Args) > 1 {
		serviceID = os.Args[1]
	}

	ws, _, err := websocket.DefaultDialer.Dial("ws://"+api.ListenAddr+"/ws", nil)
	if err != nil {
		log.Fatalf("WebSocket dial failed: %v", err)
	}
	defer ws.Close()

	payload, _ := json.Marshal(map[string]string{"service": serviceID})
	resp, err = http.Post(base+"/add", "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("Add request failed: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	log.Printf("Add %s: %d %s", serviceID, resp.StatusCode, body)

	ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := ws.ReadMessage()
	if err != nil {
		log.Fatalf("No layer event received: %v", err)
	}
	fmt.Printf("Event: %s\n", msg)
}
