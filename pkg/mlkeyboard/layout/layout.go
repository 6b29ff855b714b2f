package layout

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard/constants"
)

var (
	ErrEmptyLayout   = errors.New("layout has no keys")
	ErrShapeMismatch = errors.New("normal and shift grids differ in shape")
)

// Grid is an ordered list of key rows.
type Grid [][]constants.KeySymbol

// Table is the immutable description of one language layout.
// Every key has both a base and a shifted symbol, even when they are identical.
type Table struct {
	Name   string `toml:"name" yaml:"name" json:"name"`
	Locale string `toml:"locale" yaml:"locale" json:"locale"` // BCP-47 tag used for speech, e.g. "hi-IN"
	Normal Grid   `toml:"normal" yaml:"normal" json:"normal"`
	Shift  Grid   `toml:"shift" yaml:"shift" json:"shift"`
}

// Grid returns the shifted or unshifted grid.
func (t Table) Grid(shifted bool) Grid {
	if shifted {
		return t.Shift
	}
	return t.Normal
}

// Key returns the symbol at row, col of the selected grid.
func (t Table) Key(shifted bool, row, col int) (constants.KeySymbol, bool) {
	g := t.Grid(shifted)
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return "", false
	}
	return g[row][col], true
}

// Shape returns the number of keys in each row of the normal grid.
func (t Table) Shape() []int {
	return t.Normal.Shape()
}

// Validate checks that both grids carry keys and share the same row/column shape.
func (t Table) Validate() error {
	if t.Normal.Len() == 0 && t.Shift.Len() == 0 {
		return ErrEmptyLayout
	}

	if len(t.Normal) != len(t.Shift) {
		return fmt.Errorf("%w: %d rows vs %d rows", ErrShapeMismatch, len(t.Normal), len(t.Shift))
	}

	for i := range t.Normal {
		if len(t.Normal[i]) != len(t.Shift[i]) {
			return fmt.Errorf("%w: row %d has %d keys vs %d keys", ErrShapeMismatch, i, len(t.Normal[i]), len(t.Shift[i]))
		}
	}

	return nil
}

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	t.Normal = t.Normal.Clone()
	t.Shift = t.Shift.Clone()
	return t
}

// Len returns the total number of keys in the grid.
func (g Grid) Len() int {
	n := 0
	for _, row := range g {
		n += len(row)
	}
	return n
}

func (g Grid) Shape() []int {
	shape := make([]int, len(g))
	for i, row := range g {
		shape[i] = len(row)
	}
	return shape
}

// Clone returns a copy of g that shares no rows with it.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]constants.KeySymbol(nil), row...)
	}
	return out
}
