// Package picker implements the basemap picker dialog: searching the
// catalog, choosing a service, offering and tileset variant, and handing the
// confirmed choice to the host adapter.
package picker

import (
	"errors"

	"github.com/geonorge-tools/bakgrunnskart/pkg/catalog"
	"github.com/geonorge-tools/bakgrunnskart/pkg/selection"
)

// LayerAdder inserts a confirmed selection into the host project.
type LayerAdder interface {
	AddLayer(entry *catalog.ServiceEntry, typeKey string, variant *catalog.TilesetVariant) error
}

// Phase of the dialog. Browsing until a confirm succeeds; Confirmed is
// terminal.
type Phase int

// Dialog phases.
const (
	Browsing Phase = iota
	Confirmed
)

// ErrNoSelection is returned when confirm is requested without a complete
// selection. The dialog shows it as an informational notice, not an error.
var ErrNoSelection = errors.New("velg en tjeneste, tjenestetype og tileset først")

// Controller drives the dialog independent of any widget toolkit: the view
// calls in on user events and re-reads the visible entries and selection
// afterwards.
type Controller struct {
	entries []catalog.ServiceEntry
	visible []catalog.ServiceEntry
	sel     *selection.State
	phase   Phase
	adder   LayerAdder
}

// NewController creates a controller over the catalog entries. The first
// entry starts selected, like the dialog opening with the first list row
// highlighted.
func NewController(entries []catalog.ServiceEntry, adder LayerAdder) *Controller {
	c := &Controller{
		entries: entries,
		visible: entries,
		sel:     selection.NewState(),
		adder:   adder,
	}
	if len(entries) > 0 {
		c.sel.SelectService(&c.visible[0])
	}
	return c
}

// Visible returns the entries matching the current query in catalog order.
func (c *Controller) Visible() []catalog.ServiceEntry {
	return c.visible
}

// Phase returns the dialog phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Selection exposes the current selection for the view to render.
func (c *Controller) Selection() *selection.State {
	return c.sel
}

// SelectedEntry returns the currently highlighted service, or nil.
func (c *Controller) SelectedEntry() *catalog.ServiceEntry {
	id := c.sel.ServiceID()
	if id == "" {
		return nil
	}
	for i := range c.visible {
		if c.visible[i].ID == id {
			return &c.visible[i]
		}
	}
	return nil
}

// SelectedIndex returns the index of the highlighted service within the
// visible entries, or -1.
func (c *Controller) SelectedIndex() int {
	id := c.sel.ServiceID()
	for i := range c.visible {
		if c.visible[i].ID == id {
			return i
		}
	}
	return -1
}

// SetQuery re-filters the list. When the highlighted service is filtered
// out, the highlight moves to the first visible entry; when nothing is
// visible, the selection is cleared.
func (c *Controller) SetQuery(query string) {
	c.visible = catalog.Filter(c.entries, query)

	if c.SelectedIndex() >= 0 {
		return
	}
	if len(c.visible) > 0 {
		c.sel.SelectService(&c.visible[0])
		return
	}
	c.sel.Clear()
}

// SelectIndex highlights the visible entry at i. Out-of-range indexes are
// ignored.
func (c *Controller) SelectIndex(i int) {
	if i < 0 || i >= len(c.visible) {
		return
	}
	c.sel.SelectService(&c.visible[i])
}

// SelectOffering switches service type within the current service.
func (c *Controller) SelectOffering(typeKey string) {
	c.sel.SelectOffering(typeKey)
}

// SelectVariant switches tileset variant within the current offering.
func (c *Controller) SelectVariant(label string) {
	c.sel.SelectVariant(label)
}

// CanConfirm reports whether a complete selection exists.
func (c *Controller) CanConfirm() bool {
	_, _, _, ok := c.sel.Current()
	return ok && c.phase == Browsing
}

// Confirm hands the selection to the layer adder. Without a complete
// selection it returns ErrNoSelection and stays in Browsing; a host
// rejection is returned as-is and also keeps the dialog open so the user
// can retry or pick a different tileset. On success the dialog is
// Confirmed.
func (c *Controller) Confirm() error {
	if c.phase == Confirmed {
		return nil
	}

	entry, typeKey, variant, ok := c.sel.Current()
	if !ok {
		return ErrNoSelection
	}

	if err := c.adder.AddLayer(entry, typeKey, variant); err != nil {
		return err
	}

	c.phase = Confirmed
	return nil
}
