package constants

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// KeySymbol is the value carried by a single key of a layout grid.
// It is either a literal glyph inserted verbatim or one of the control tokens below.
type KeySymbol string

// Control tokens. These never vary across languages.
const (
	KeyBackspace KeySymbol = "Backspace"
	KeyTab       KeySymbol = "Tab"
	KeyEnter     KeySymbol = "Enter"
	KeyShift     KeySymbol = "Shift"
	KeyCaps      KeySymbol = "Caps"
	KeyCtrl      KeySymbol = "Ctrl"
	KeyWin       KeySymbol = "Win"
	KeyAlt       KeySymbol = "Alt"
	KeyMenu      KeySymbol = "Menu"
	KeySpace     KeySymbol = "Space"
)

// ControlKeys lists every control token in a stable order.
var ControlKeys = []KeySymbol{
	KeyBackspace,
	KeyTab,
	KeyEnter,
	KeyShift,
	KeyCaps,
	KeyCtrl,
	KeyWin,
	KeyAlt,
	KeyMenu,
	KeySpace,
}

var controlByLowerName = func() map[string]KeySymbol {
	m := make(map[string]KeySymbol, len(ControlKeys))
	for _, k := range ControlKeys {
		m[strings.ToLower(string(k))] = k
	}
	return m
}()

// IsControl reports whether k is one of the fixed control tokens.
func (k KeySymbol) IsControl() bool {
	c, ok := controlByLowerName[strings.ToLower(string(k))]
	return ok && c == k
}

// IsGlyph reports whether k is a printable glyph to be inserted verbatim.
// Malformed UTF-8 and symbols without a single visible rune, such as ESC, are not glyphs.
func (k KeySymbol) IsGlyph() bool {
	if k == "" || k.IsControl() || !utf8.ValidString(string(k)) {
		return false
	}
	for _, r := range string(k) {
		if unicode.IsGraphic(r) {
			return true
		}
	}
	return false
}

// IsModifier reports whether k latches keyboard state instead of editing text.
func (k KeySymbol) IsModifier() bool {
	return k == KeyShift || k == KeyCaps
}

// Whitespace returns the text inserted by the whitespace control keys.
func (k KeySymbol) Whitespace() (string, bool) {
	switch k {
	case KeySpace:
		return " ", true
	case KeyEnter:
		return "\n", true
	case KeyTab:
		return "\t", true
	}
	return "", false
}

func (k KeySymbol) String() string {
	return string(k)
}

// LookupControl resolves a control token by name, ignoring case.
func LookupControl(name string) (KeySymbol, bool) {
	k, ok := controlByLowerName[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// ParseKeySymbol turns user supplied text into a KeySymbol.
// Control token names match case-insensitively, anything else is kept as a glyph.
func ParseKeySymbol(s string) KeySymbol {
	if k, ok := LookupControl(s); ok {
		return k
	}
	return KeySymbol(s)
}
