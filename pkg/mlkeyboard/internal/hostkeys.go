package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rivo/uniseg"

	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard/constants"
)

// MappingPathEnvVar names a JSON or TOML file with extra host key names.
const MappingPathEnvVar = "MLKEYBOARD_INPUT_MAPPING_PATH"

var hostKeyBytes []byte

// SetInputMappingBytes installs a JSON mapping that takes precedence over MappingPathEnvVar.
func SetInputMappingBytes(data []byte) {
	hostKeyBytes = data
}

// defaultHostKeys lists, per control, the names X11 keysyms, DOM key values and
// terminals use for it. Names are lower case.
var defaultHostKeys = map[constants.KeySymbol][]string{
	constants.KeyBackspace: {"backspace", "bksp"},
	constants.KeyTab:       {"tab", "iso_left_tab"},
	constants.KeyEnter:     {"return", "enter", "kp_enter"},
	constants.KeyShift:     {"shift", "shift_l", "shift_r"},
	constants.KeyCaps:      {"caps", "caps_lock", "capslock"},
	constants.KeyCtrl:      {"ctrl", "control", "control_l", "control_r"},
	constants.KeyWin:       {"win", "super_l", "super_r", "meta"},
	constants.KeyAlt:       {"alt", "alt_l", "alt_r", "altgraph"},
	constants.KeyMenu:      {"menu", "contextmenu"},
	constants.KeySpace:     {"space"},
}

// HostKeyMap resolves key names reported by the host into keyboard symbols.
// Names match case-insensitively.
type HostKeyMap struct {
	Names map[string]constants.KeySymbol
}

// MappingFile is the on-disk form of a HostKeyMap: host key name to control token.
type MappingFile struct {
	KeyMap map[string]string `json:"key_map" toml:"key_map"`
}

func DefaultHostKeyMap() *HostKeyMap {
	m := &HostKeyMap{Names: make(map[string]constants.KeySymbol)}
	for key, names := range defaultHostKeys {
		for _, name := range names {
			m.Names[name] = key
		}
	}
	return m
}

// GetHostKeyMap returns the mapping from SetInputMappingBytes, else from the
// file named by MappingPathEnvVar, else the defaults. Broken sources are logged and skipped.
func GetHostKeyMap() *HostKeyMap {
	logger := GetInternalLogger()

	if len(hostKeyBytes) > 0 {
		m, err := ParseHostKeyMap(hostKeyBytes, "json")
		if err == nil {
			logger.Debug("Using host key mapping from bytes", "names", len(m.Names))
			return m
		}
		logger.Warn("Ignoring host key mapping bytes", "error", err)
	}

	if path := os.Getenv(MappingPathEnvVar); path != "" {
		m, err := LoadHostKeyMap(path)
		if err == nil {
			logger.Debug("Using host key mapping file", "path", path, "names", len(m.Names))
			return m
		}
		logger.Warn("Ignoring host key mapping file", "path", path, "error", err)
	}

	return DefaultHostKeyMap()
}

// LoadHostKeyMap reads a mapping file. Files ending in .toml are TOML, anything else is JSON.
func LoadHostKeyMap(path string) (*HostKeyMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read host key mapping: %w", err)
	}
	return ParseHostKeyMap(data, mappingFormat(path))
}

// ParseHostKeyMap decodes a mapping and layers it over the defaults.
// Every target must name a control token.
func ParseHostKeyMap(data []byte, format string) (*HostKeyMap, error) {
	var file MappingFile

	var err error
	switch format {
	case "toml":
		err = toml.Unmarshal(data, &file)
	case "json":
		err = json.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("unsupported host key mapping format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode host key mapping: %w", err)
	}

	m := DefaultHostKeyMap()
	for name, target := range file.KeyMap {
		key, ok := constants.LookupControl(target)
		if !ok {
			return nil, fmt.Errorf("host key %q maps to unknown control %q", name, target)
		}
		m.Names[strings.ToLower(name)] = key
	}
	return m, nil
}

// Resolve returns the symbol for a host key name.
// Unmapped names are read as control token names or, failing that, as a literal glyph
// when the name is a single grapheme cluster. Anything else, such as "Escape" or "F1",
// resolves to the empty symbol, which Press ignores.
func (m *HostKeyMap) Resolve(name string) constants.KeySymbol {
	if key, ok := m.Names[strings.ToLower(name)]; ok {
		return key
	}
	if key, ok := constants.LookupControl(name); ok {
		return key
	}
	if uniseg.GraphemeClusterCount(name) == 1 {
		return constants.KeySymbol(name)
	}
	return ""
}

// Save writes the mapping in the format implied by the file extension.
func (m *HostKeyMap) Save(path string) error {
	file := MappingFile{KeyMap: make(map[string]string, len(m.Names))}
	for name, key := range m.Names {
		file.KeyMap[name] = key.String()
	}

	var (
		data []byte
		err  error
	)
	if mappingFormat(path) == "toml" {
		data, err = toml.Marshal(file)
	} else {
		data, err = json.MarshalIndent(file, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode host key mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write host key mapping: %w", err)
	}
	return nil
}

func mappingFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "json"
}
