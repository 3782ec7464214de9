package host

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Layer is a tile layer held by the in-process project.
type Layer struct {
	ID       string
	Title    string
	Provider string
	URI      string
}

// LayerGroup is a named container in the project's layer tree.
type LayerGroup struct {
	name   string
	layers []*Layer
}

// Name returns the group's name.
func (g *LayerGroup) Name() string {
	return g.name
}

// Layers returns the group's layers, top child first.
func (g *LayerGroup) Layers() []*Layer {
	return g.layers
}

// Project is the in-process layer tree standing in for the hosting
// application's project. It implements Host. Only ever touched from the UI
// event loop, so it carries no locking.
type Project struct {
	groups    []*LayerGroup
	listeners []func()
}

// OnChange registers a callback invoked after every layer tree mutation.
func (p *Project) OnChange(fn func()) {
	p.listeners = append(p.listeners, fn)
}

func (p *Project) notify() {
	for _, fn := range p.listeners {
		fn()
	}
}

// NewProject creates an empty project.
func NewProject() *Project {
	return &Project{}
}

// CreateOrGetGroup implements Host.
func (p *Project) CreateOrGetGroup(name string) (Group, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("group name is empty")
	}
	if g := p.Group(name); g != nil {
		return g, nil
	}
	g := &LayerGroup{name: name}
	p.groups = append(p.groups, g)
	p.notify()
	return g, nil
}

// AddLayerToGroup implements Host. Malformed definitions are rejected.
func (p *Project) AddLayerToGroup(group Group, def LayerDefinition) error {
	g, ok := group.(*LayerGroup)
	if !ok || p.Group(g.name) != g {
		return fmt.Errorf("group %q does not belong to this project", group.Name())
	}

	if def.Provider != ProviderRaster && def.Provider != ProviderVectorTile {
		return fmt.Errorf("unknown layer provider %q", def.Provider)
	}
	if !strings.Contains(def.URI, "url=") {
		return fmt.Errorf("layer uri has no url parameter: %q", def.URI)
	}

	title := def.Title
	if title == "" {
		title = "Uten navn"
	}

	layer := &Layer{
		ID:       uuid.NewString(),
		Title:    title,
		Provider: def.Provider,
		URI:      def.URI,
	}
	// new layers go on top
	g.layers = append([]*Layer{layer}, g.layers...)
	p.notify()
	return nil
}

// Group returns the named group, or nil.
func (p *Project) Group(name string) *LayerGroup {
	for _, g := range p.groups {
		if g.name == name {
			return g
		}
	}
	return nil
}

// Groups returns the project's groups in creation order.
func (p *Project) Groups() []*LayerGroup {
	return p.groups
}
