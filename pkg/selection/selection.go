// Package selection tracks what the user has highlighted in the picker
// dialog: a service, one of its offerings and one tileset variant. It is
// only ever touched from the UI event loop.
package selection

import "github.com/geonorge-tools/bakgrunnskart/pkg/catalog"

// State is the current picker selection. The zero value means nothing is
// selected. A non-nil variant always belongs to the current offering of the
// current service; the Select* methods enforce that by resetting downstream
// choices whenever an upstream one changes.
type State struct {
	entry   *catalog.ServiceEntry
	typeKey string
	variant *catalog.TilesetVariant
}

// NewState returns an empty selection.
func NewState() *State {
	return &State{}
}

// SelectService makes entry the current service and resets the offering to
// the entry's first enabled one and the variant to that offering's first
// variant. Passing nil clears the selection.
func (s *State) SelectService(entry *catalog.ServiceEntry) {
	s.entry = entry
	s.typeKey = ""
	s.variant = nil
	if entry == nil {
		return
	}

	s.typeKey = entry.FirstEnabledOffering()
	s.resetVariant()
}

// SelectOffering switches to the named offering and resets the variant to
// its first entry. Unknown or disabled offering keys are ignored.
func (s *State) SelectOffering(typeKey string) {
	if s.entry == nil {
		return
	}
	off, ok := s.entry.Offerings[typeKey]
	if !ok || off.Disabled {
		return
	}
	s.typeKey = typeKey
	s.resetVariant()
}

// SelectVariant picks the variant with the given label within the current
// offering. Labels that do not belong to the current offering are silently
// ignored.
func (s *State) SelectVariant(label string) {
	if s.entry == nil || s.typeKey == "" {
		return
	}
	if v := s.entry.VariantByLabel(s.typeKey, label); v != nil {
		s.variant = v
	}
}

// Clear empties the selection.
func (s *State) Clear() {
	s.entry = nil
	s.typeKey = ""
	s.variant = nil
}

// Current returns the selected (service, offering key, variant) triple. ok
// is false until all three are chosen.
func (s *State) Current() (entry *catalog.ServiceEntry, typeKey string, variant *catalog.TilesetVariant, ok bool) {
	if s.entry == nil || s.typeKey == "" || s.variant == nil {
		return nil, "", nil, false
	}
	return s.entry, s.typeKey, s.variant, true
}

// ServiceID returns the id of the selected service, or "".
func (s *State) ServiceID() string {
	if s.entry == nil {
		return ""
	}
	return s.entry.ID
}

// OfferingKey returns the selected offering key, or "".
func (s *State) OfferingKey() string {
	return s.typeKey
}

// VariantLabel returns the selected variant label, or "".
func (s *State) VariantLabel() string {
	if s.variant == nil {
		return ""
	}
	return s.variant.Label
}

func (s *State) resetVariant() {
	s.variant = nil
	if s.typeKey == "" {
		return
	}
	if vs := s.entry.Offerings[s.typeKey].Variants; len(vs) > 0 {
		s.variant = &vs[0]
	}
}
