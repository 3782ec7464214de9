//go:build windows

package hotkey

import "golang.design/x/hotkey"

const (
	modPrimary   = hotkey.ModCtrl
	modSecondary = hotkey.ModAlt
)
