//go:build darwin

package hotkey

import "golang.design/x/hotkey"

const (
	modPrimary   = hotkey.ModCmd
	modSecondary = hotkey.ModOption
)
