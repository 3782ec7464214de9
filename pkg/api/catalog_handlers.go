package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/geonorge-tools/bakgrunnskart/pkg/catalog"
)

// ServiceSummary is the catalog listing shape served to bridge clients. The
// full variant parameters stay internal; clients identify a choice by
// service ID, offering key and variant label.
type ServiceSummary struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	PreviewURL  string            `json:"preview_url"`
	Offerings   []OfferingSummary `json:"offerings"`
}

// OfferingSummary is one service type within a ServiceSummary.
type OfferingSummary struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Disabled bool     `json:"disabled,omitempty"`
	Variants []string `json:"variants"`
}

// handleCatalog serves a read-only summary of the bundled catalog.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	out := struct {
		Version  string           `json:"version"`
		Services []ServiceSummary `json:"services"`
	}{Version: s.catalog.Version}

	for i := range s.catalog.Services {
		e := &s.catalog.Services[i]
		summary := ServiceSummary{
			ID:          e.ID,
			Name:        e.Name,
			Description: catalog.StripMarkup(e.Description),
			PreviewURL:  scheme + "://" + r.Host + "/previews/" + e.ID,
		}
		for _, k := range e.OfferingKeys() {
			off := e.Offerings[k]
			sum := OfferingSummary{Key: k, Label: off.Label, Disabled: off.Disabled}
			for _, v := range off.Variants {
				sum.Variants = append(sum.Variants, v.Label)
			}
			summary.Offerings = append(summary.Offerings, sum)
		}
		out.Services = append(out.Services, summary)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// handlePreview serves the bundled preview image of a service.
// Path format: /previews/{serviceID}; ?thumb=1 serves the list thumbnail.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/previews/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "Invalid service ID", http.StatusBadRequest)
		return
	}

	entry := s.catalog.ByID(id)
	if entry == nil {
		http.Error(w, "Unknown service", http.StatusNotFound)
		return
	}

	ref := entry.Preview
	if r.URL.Query().Get("thumb") == "1" && entry.Thumb != "" {
		ref = entry.Thumb
	}

	raw, err := s.assets.GetRawPreview(ref)
	if err != nil {
		http.Error(w, "Preview not available", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "max-age=86400")
	_, _ = w.Write(raw)
}
