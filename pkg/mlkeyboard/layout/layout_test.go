package layout

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard/constants"
)

func sampleTable() Table {
	return Table{
		Name:   "Sample",
		Locale: "en-US",
		Normal: Grid{{"a", "b", constants.KeyBackspace}, {constants.KeyShift, constants.KeySpace}},
		Shift:  Grid{{"A", "B", constants.KeyBackspace}, {constants.KeyShift, constants.KeySpace}},
	}
}

func TestBuiltinLayoutsHaveMatchingShapes(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterBuiltins(r))

	assert.Equal(t, BuiltinIDs, slices.Collect(r.List()))

	for id := range r.List() {
		table, err := r.Get(id)
		require.NoError(t, err)
		assert.Equal(t, table.Normal.Shape(), table.Shift.Shape(), "layout %s", id)
		assert.NotEmpty(t, table.Name, "layout %s", id)
		assert.NotEmpty(t, table.Locale, "layout %s", id)
	}
}

func TestBuiltinEnglishContents(t *testing.T) {
	table, err := Default().Get(DefaultLanguage)
	require.NoError(t, err)

	key, ok := table.Key(false, 1, 1)
	require.True(t, ok)
	assert.Equal(t, constants.KeySymbol("q"), key)

	key, ok = table.Key(true, 1, 1)
	require.True(t, ok)
	assert.Equal(t, constants.KeySymbol("Q"), key)

	key, _ = table.Key(false, 1, 13)
	assert.Equal(t, constants.KeySymbol(`\`), key)

	_, ok = table.Key(false, 9, 0)
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, sampleTable().Validate())

	rows := sampleTable()
	rows.Shift = rows.Shift[:1]
	assert.ErrorIs(t, rows.Validate(), ErrShapeMismatch)

	cols := sampleTable()
	cols.Shift = Grid{{"A", "B"}, {constants.KeyShift, constants.KeySpace}}
	assert.ErrorIs(t, cols.Validate(), ErrShapeMismatch)

	assert.ErrorIs(t, Table{}.Validate(), ErrEmptyLayout)
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("sample")
	assert.ErrorIs(t, err, ErrUnknownLanguage)

	require.NoError(t, r.Register("sample", sampleTable()))
	assert.True(t, r.Has("sample"))

	got, err := r.Get("sample")
	require.NoError(t, err)
	assert.Equal(t, "Sample", got.Name)

	assert.ErrorIs(t, r.Register("", sampleTable()), ErrEmptyID)

	bad := sampleTable()
	bad.Shift = bad.Shift[:1]
	assert.ErrorIs(t, r.Register("bad", bad), ErrShapeMismatch)
	assert.False(t, r.Has("bad"))
}

func TestRegistryOverwriteKeepsOrder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("one", sampleTable()))
	require.NoError(t, r.Register("two", sampleTable()))

	renamed := sampleTable()
	renamed.Name = "Renamed"
	require.NoError(t, r.Register("one", renamed))

	assert.Equal(t, []string{"one", "two"}, slices.Collect(r.List()))
	assert.Equal(t, 2, r.Len())

	got, err := r.Get("one")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
}

func TestRegistryNameDefaultsToID(t *testing.T) {
	r := NewRegistry()
	table := sampleTable()
	table.Name = ""
	require.NoError(t, r.Register("plain", table))

	got, _ := r.Get("plain")
	assert.Equal(t, "plain", got.Name)
}

func TestRegistryCopiesTable(t *testing.T) {
	r := NewRegistry()
	table := sampleTable()
	require.NoError(t, r.Register("sample", table))

	table.Normal[0][0] = "z"

	got, _ := r.Get("sample")
	assert.Equal(t, constants.KeySymbol("a"), got.Normal[0][0])
}

func TestRegistryGetReturnsCopy(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("sample", sampleTable()))

	first, err := r.Get("sample")
	require.NoError(t, err)
	first.Normal[0][0] = "z"
	first.Shift[1] = nil

	second, err := r.Get("sample")
	require.NoError(t, err)
	assert.Equal(t, sampleTable(), second)
}

func TestGridClone(t *testing.T) {
	g := sampleTable().Normal
	c := g.Clone()
	c[0][1] = "y"

	assert.Equal(t, constants.KeySymbol("b"), g[0][1])
	assert.Nil(t, Grid(nil).Clone())
}

func TestListIsRestartableAndStoppable(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("one", sampleTable()))
	require.NoError(t, r.Register("two", sampleTable()))

	seq := r.List()
	assert.Equal(t, []string{"one", "two"}, slices.Collect(seq))
	assert.Equal(t, []string{"one", "two"}, slices.Collect(seq))

	var first []string
	for id := range seq {
		first = append(first, id)
		break
	}
	assert.Equal(t, []string{"one"}, first)
}

func TestLoadFormats(t *testing.T) {
	tomlData := []byte(`
name = "Tiny"
locale = "en-GB"
normal = [["a", "Shift"]]
shift = [["A", "Shift"]]
`)
	table, err := Load(tomlData, "toml")
	require.NoError(t, err)
	assert.Equal(t, "Tiny", table.Name)
	assert.Equal(t, Grid{{"A", constants.KeyShift}}, table.Shift)

	yamlData := []byte(`
name: Tiny
locale: en-GB
normal: [["a", "Shift"]]
shift: [["A", "Shift"]]
`)
	table, err = Load(yamlData, ".yaml")
	require.NoError(t, err)
	assert.Equal(t, "en-GB", table.Locale)

	jsonData := []byte(`{"name":"Tiny","normal":[["a"]],"shift":[["A","B"]]}`)
	_, err = Load(jsonData, "json")
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = Load(tomlData, "ini")
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zulu.toml"), []byte("normal = [[\"z\"]]\nshift = [[\"Z\"]]\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha.json"), []byte(`{"name":"Alpha","normal":[["a"]],"shift":[["A"]]}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	r := NewRegistry()
	ids, err := LoadDir(dir, r)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zulu"}, ids)

	zulu, err := r.Get("zulu")
	require.NoError(t, err)
	assert.Equal(t, "zulu", zulu.Name)
}
