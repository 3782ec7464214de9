package picker

import "fyne.io/fyne/v2/widget"

// Result is the outcome of a picker dialog, independent of any toolkit's
// dialog-code naming.
type Result int

// Dialog results.
const (
	Cancelled Result = iota
	Accepted
)

// Accepted reports whether the dialog was confirmed.
func (r Result) Accepted() bool {
	return r == Accepted
}

// ButtonRole classifies the dialog's action buttons. Each toolkit binding
// gets one small translation from roles to its native button styling; the
// rest of the picker never sees toolkit enums.
type ButtonRole int

// Button roles.
const (
	RoleConfirm ButtonRole = iota
	RoleDismiss
)

// importance translates a role to the Fyne binding's button importance.
func (r ButtonRole) importance() widget.Importance {
	if r == RoleConfirm {
		return widget.HighImportance
	}
	return widget.MediumImportance
}

// newButton creates an action button for the Fyne binding.
func newButton(label string, role ButtonRole, onTapped func()) *widget.Button {
	b := widget.NewButton(label, onTapped)
	b.Importance = role.importance()
	return b
}
