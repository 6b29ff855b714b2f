package layout

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed data/*.toml
var builtinFS embed.FS

// BuiltinIDs lists the layouts shipped with the package, in selector order.
var BuiltinIDs = []string{"english", "hindi", "marathi", "telugu", "tamil", "bengali"}

// DefaultLanguage is the layout used when no language is configured.
const DefaultLanguage = "english"

// UnmarshalFunc decodes layout file contents into v.
type UnmarshalFunc func(data []byte, v interface{}) error

var unmarshalFuncs = map[string]UnmarshalFunc{
	"toml": toml.Unmarshal,
	"yaml": yaml.Unmarshal,
	"yml":  yaml.Unmarshal,
	"json": json.Unmarshal,
}

// Load decodes a layout table from data in the given format ("toml", "yaml", "yml" or "json").
func Load(data []byte, format string) (Table, error) {
	unmarshal, ok := unmarshalFuncs[strings.ToLower(strings.TrimPrefix(format, "."))]
	if !ok {
		return Table{}, fmt.Errorf("unsupported layout format %q", format)
	}

	var t Table
	if err := unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("failed to decode %s layout: %w", format, err)
	}

	if err := t.Validate(); err != nil {
		return Table{}, err
	}

	return t, nil
}

// LoadFile reads a layout file. The layout id is the file name without its extension.
func LoadFile(path string) (string, Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", Table{}, fmt.Errorf("failed to read layout file: %w", err)
	}

	ext := filepath.Ext(path)
	id := strings.TrimSuffix(filepath.Base(path), ext)

	t, err := Load(data, ext)
	if err != nil {
		return "", Table{}, fmt.Errorf("%s: %w", path, err)
	}
	if t.Name == "" {
		t.Name = id
	}
	return id, t, nil
}

// LoadDir registers every layout file found directly inside dir, in file name order.
// Files with unknown extensions are skipped.
func LoadDir(dir string, r *Registry) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(e.Name()), "."))
		if _, ok := unmarshalFuncs[ext]; ok {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var ids []string
	for _, name := range names {
		id, t, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return ids, err
		}
		if err := r.Register(id, t); err != nil {
			return ids, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// RegisterBuiltins adds the embedded layouts to r.
func RegisterBuiltins(r *Registry) error {
	for _, id := range BuiltinIDs {
		data, err := builtinFS.ReadFile("data/" + id + ".toml")
		if err != nil {
			return err
		}

		t, err := Load(data, "toml")
		if err != nil {
			return fmt.Errorf("built-in layout %q: %w", id, err)
		}

		if err := r.Register(id, t); err != nil {
			return err
		}
	}
	return nil
}
