package mlkeyboard

import (
	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard/constants"
	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard/layout"
)

// Surface draws the keyboard. Render is called synchronously whenever the visible keys change
// and must finish before it returns.
type Surface interface {
	Render(v View)
	Teardown()
}

// NopSurface is a Surface for headless use.
type NopSurface struct{}

func (NopSurface) Render(View) {}
func (NopSurface) Teardown()   {}

type ControlAction int

const (
	ControlClear ControlAction = iota
	ControlSpeak
)

// Control is one of the keyboard's own buttons, labelled for the current locale.
type Control struct {
	Action ControlAction
	Label  string
}

// LanguageOption is an entry of the language selector.
type LanguageOption struct {
	ID     string
	Name   string
	Active bool
}

// View is everything a Surface needs to draw the keyboard.
// Labels are localized for the current control locale.
type View struct {
	Language      string
	DisplayName   string
	Grid          layout.Grid
	Modifiers     ModifierState
	Languages     []LanguageOption
	LanguageLabel string
	Controls      []Control
}

// IsLatched reports whether key should be drawn as engaged.
func (v View) IsLatched(key constants.KeySymbol) bool {
	switch key {
	case constants.KeyShift:
		return v.Modifiers.ShiftActive
	case constants.KeyCaps:
		return v.Modifiers.CapsLockActive
	}
	return false
}
