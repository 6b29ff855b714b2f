package mlkeyboard

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// EditTarget is the host text field the keyboard types into.
// Selection offsets count runes and satisfy 0 <= start <= end <= rune length of Value.
type EditTarget interface {
	Value() string
	Selection() (start, end int)
	// SetValue replaces the whole value and collapses the selection to cursor.
	SetValue(value string, cursor int)
}

// Focuser is implemented by targets that want to be refocused after every edit.
type Focuser interface {
	Focus()
}

// TextField is an in-memory EditTarget.
type TextField struct {
	value      string
	start, end int
	focused    int
}

// NewTextField returns a field holding value with the cursor at its end.
func NewTextField(value string) *TextField {
	n := utf8.RuneCountInString(value)
	return &TextField{value: value, start: n, end: n}
}

func (f *TextField) Value() string {
	return f.value
}

func (f *TextField) Selection() (int, int) {
	return f.start, f.end
}

func (f *TextField) SetValue(value string, cursor int) {
	f.value = value
	f.Select(cursor, cursor)
}

// Select sets the selection, clamping it to the value.
func (f *TextField) Select(start, end int) {
	f.start, f.end = clampSelection(start, end, utf8.RuneCountInString(f.value))
}

func (f *TextField) Focus() {
	f.focused++
}

// FocusCount reports how many times the field was refocused by the keyboard.
func (f *TextField) FocusCount() int {
	return f.focused
}

func clampSelection(start, end, n int) (int, int) {
	start = min(max(start, 0), n)
	end = min(max(end, 0), n)
	if start > end {
		start, end = end, start
	}
	return start, end
}

// readTarget returns the value and the clamped selection as byte offsets into it.
func readTarget(target EditTarget) (value string, startByte, endByte, start int) {
	value = target.Value()
	start, end := target.Selection()
	start, end = clampSelection(start, end, utf8.RuneCountInString(value))
	return value, byteOffset(value, start), byteOffset(value, end), start
}

// byteOffset converts a rune offset into a byte offset of s.
// Invalid bytes count as one rune each, as in utf8.RuneCountInString.
func byteOffset(s string, runes int) int {
	i := 0
	for n := 0; n < runes && i < len(s); n++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

// Insert replaces the selection of target with text and places the cursor after it.
// Bytes outside the selection are kept as they are, even when they are not valid UTF-8.
// It reports whether target was modified; a nil target is left alone.
func Insert(target EditTarget, text string) bool {
	if target == nil {
		return false
	}

	value, from, to, start := readTarget(target)
	target.SetValue(value[:from]+text+value[to:], start+utf8.RuneCountInString(text))
	return true
}

// DeleteBackward removes the selection, or the grapheme cluster before a collapsed cursor.
// It returns the removed text and whether anything was removed.
func DeleteBackward(target EditTarget) (string, bool) {
	if target == nil {
		return "", false
	}

	value, from, to, start := readTarget(target)
	if from == to {
		if from == 0 {
			return "", false
		}
		from = lastClusterStart(value[:to])
		start = utf8.RuneCountInString(value[:from])
	}

	target.SetValue(value[:from]+value[to:], start)
	return value[from:to], true
}

// ClearTarget empties target and moves the cursor to 0.
func ClearTarget(target EditTarget) bool {
	if target == nil {
		return false
	}
	target.SetValue("", 0)
	return true
}

// lastClusterStart returns the byte offset where the final grapheme cluster of prefix begins.
func lastClusterStart(prefix string) int {
	start, state := 0, -1
	rest := prefix
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		start = len(prefix) - len(rest) - len(cluster)
	}
	return start
}
