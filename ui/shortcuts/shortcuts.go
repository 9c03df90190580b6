package shortcuts

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// unmodified keys handled by the main window
const (
	KeyToggle = fyne.KeySpace
	KeyLap    = fyne.KeyL
	KeyReset  = fyne.KeyR
)

var (
	ShortcutToggleTheme = desktop.CustomShortcut{KeyName: fyne.KeyT, Modifier: fyne.KeyModifierShortcutDefault}
	ShortcutCloseWindow = desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierShortcutDefault}
)
