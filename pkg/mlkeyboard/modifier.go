package mlkeyboard

// ModifierState holds the shift and caps lock latches.
// While caps lock is on, shift mirrors it; only a one-shot shift is released after typing.
type ModifierState struct {
	ShiftActive    bool
	CapsLockActive bool
}

// ToggleShift flips shift and leaves caps lock alone.
func (m *ModifierState) ToggleShift() {
	m.ShiftActive = !m.ShiftActive
}

// ToggleCaps flips caps lock and synchronizes shift to it.
func (m *ModifierState) ToggleCaps() {
	m.CapsLockActive = !m.CapsLockActive
	m.ShiftActive = m.CapsLockActive
}

// AutoRelease drops a one-shot shift after a character was typed.
// It reports whether the state changed.
func (m *ModifierState) AutoRelease() bool {
	if m.ShiftActive && !m.CapsLockActive {
		m.ShiftActive = false
		return true
	}
	return false
}
