package asset

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder

	"fyne.io/fyne/v2"

	"github.com/geonorge-tools/bakgrunnskart/util/log"
)

//go:embed catalog/* previews/* icons/* text/*
var assets embed.FS

// Manager manages the loading of bundled assets.
type Manager struct{}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{}
}

// GetCatalog loads and returns the raw bytes of the bundled service catalog.
func (am *Manager) GetCatalog() ([]byte, error) {
	data, err := assets.ReadFile("catalog/services.json")
	if err != nil {
		log.Println("Error loading catalog:", err)
		return nil, err
	}
	return data, nil
}

// GetPreview loads and returns a bundled preview image by its catalog
// reference (e.g. "previews/topo.png").
func (am *Manager) GetPreview(ref string) (image.Image, error) {
	data, err := assets.ReadFile(ref)
	if err != nil {
		log.Println("Error loading preview:", err)
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Println("Error decoding preview:", err)
		return nil, err
	}

	return img, nil
}

// GetRawPreview loads and returns the raw bytes of a bundled preview image.
func (am *Manager) GetRawPreview(ref string) ([]byte, error) {
	return assets.ReadFile(ref)
}

// GetIcon loads and returns embedded icon asset by name.
func (am *Manager) GetIcon(name string) (fyne.Resource, error) {
	if name == "" {
		return nil, fmt.Errorf("icon name is empty")
	}

	iconData, err := assets.ReadFile("icons/" + name)
	if err != nil {
		log.Println("Error loading icon:", err)
		return nil, err
	}

	return fyne.NewStaticResource(name, iconData), nil
}

// GetText loads and returns embedded text asset by name.
func (am *Manager) GetText(name string) (string, error) {
	textBytes, err := assets.ReadFile("text/" + name)
	if err != nil {
		log.Println("Error loading text:", err)
		return "", err
	}
	return string(textBytes), nil
}
