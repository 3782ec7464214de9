//go:build !darwin && !windows

package hotkey

import "golang.design/x/hotkey"

const (
	modPrimary   = hotkey.ModCtrl
	modSecondary = hotkey.Mod1
)
