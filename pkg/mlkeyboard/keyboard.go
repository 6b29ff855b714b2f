package mlkeyboard

import (
	"fmt"
	"iter"
	"log/slog"

	"go.uber.org/atomic"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard/constants"
	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard/i18n"
	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard/internal"
	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard/layout"
)

type Options struct {
	// Language is the layout shown first. Defaults to layout.DefaultLanguage.
	Language string
	// Target receives typed text. It may be nil and bound later with SetTarget.
	Target EditTarget
	// HideControls removes the Clear and Speak buttons from the View.
	HideControls bool

	OnKeyPress       func(key constants.KeySymbol)
	OnLanguageChange func(id string)

	// Surface draws the keyboard. Required; use NopSurface for headless sessions.
	Surface Surface
	// Registry supplies the layouts. Defaults to layout.Default().
	Registry *layout.Registry
	// Speaker reads the target aloud on Speak.
	Speaker Speaker
	// ControlsLocale fixes the language of control labels.
	// When unset the labels follow the speech locale of the active layout.
	ControlsLocale language.Tag
}

// Keyboard is one on-screen keyboard session.
// It is driven by one input event at a time and is not safe for concurrent use,
// except for Destroy and Destroyed.
type Keyboard struct {
	opts       Options
	registry   *layout.Registry
	surface    Surface
	target     EditTarget
	language   string
	table      layout.Table
	modifiers  ModifierState
	mapping    *internal.HostKeyMap
	translator *i18n.I18N
	notifier   notifier
	logger     *slog.Logger

	destroyed atomic.Bool
	keyCount  atomic.Int64
}

// New creates a keyboard session and renders it once.
// It fails with ErrContainerNotFound when no Surface is given and with
// ErrUnknownLanguage when the initial language is not registered.
func New(opts Options) (*Keyboard, error) {
	if opts.Surface == nil {
		return nil, ErrContainerNotFound
	}

	registry := opts.Registry
	if registry == nil {
		registry = layout.Default()
	}

	lang := opts.Language
	if lang == "" {
		lang = layout.DefaultLanguage
	}

	table, err := registry.Get(lang)
	if err != nil {
		return nil, err
	}

	translator, err := i18n.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}

	kb := &Keyboard{
		opts:       opts,
		registry:   registry,
		surface:    opts.Surface,
		target:     opts.Target,
		language:   lang,
		table:      table,
		mapping:    internal.GetHostKeyMap(),
		translator: translator,
		logger:     internal.GetInternalLogger(),
	}

	kb.syncControlsLocale()
	kb.render()
	kb.languageChanged()

	return kb, nil
}

// RegisterLayout adds or replaces a layout in the process-wide registry.
func RegisterLayout(id string, table layout.Table) error {
	return layout.Default().Register(id, table)
}

// Press dispatches one key. Unknown symbols are ignored.
// The keypress notification always precedes any edit or modifier notification.
func (kb *Keyboard) Press(key constants.KeySymbol) error {
	if kb.destroyed.Load() {
		return ErrDestroyed
	}

	kb.keyCount.Inc()
	kb.logger.Debug("Key pressed", "key", string(key), "language", kb.language)

	if kb.opts.OnKeyPress != nil {
		kb.opts.OnKeyPress(key)
	}
	kb.notifier.emit(Event{Type: EventKeyPress, Key: key})

	switch key {
	case constants.KeyBackspace:
		kb.backspace()
		return nil
	case constants.KeyShift:
		kb.modifiers.ToggleShift()
		kb.modifiersChanged()
		return nil
	case constants.KeyCaps:
		kb.modifiers.ToggleCaps()
		kb.modifiersChanged()
		return nil
	case constants.KeyCtrl, constants.KeyWin, constants.KeyAlt, constants.KeyMenu:
		return nil
	}

	text, ok := key.Whitespace()
	if !ok {
		if !key.IsGlyph() {
			return nil
		}
		text = string(key)
	}

	kb.insert(text)
	if kb.modifiers.AutoRelease() {
		kb.modifiersChanged()
	}
	return nil
}

// PressAt presses the key at row, col of the grid currently shown.
func (kb *Keyboard) PressAt(row, col int) error {
	key, ok := kb.table.Key(kb.modifiers.ShiftActive, row, col)
	if !ok {
		return fmt.Errorf("%w: row %d, column %d", ErrNoSuchKey, row, col)
	}
	return kb.Press(key)
}

// PressHostKey presses the key named by the host platform, e.g. "BackSpace" or "Shift_L".
func (kb *Keyboard) PressHostKey(name string) error {
	return kb.Press(kb.mapping.Resolve(name))
}

// SwitchLanguage shows another layout. Shift and caps lock keep their state.
// An unregistered id leaves the session untouched and returns ErrUnknownLanguage.
func (kb *Keyboard) SwitchLanguage(id string) error {
	if kb.destroyed.Load() {
		return ErrDestroyed
	}

	table, err := kb.registry.Get(id)
	if err != nil {
		kb.logger.Warn("Layout not registered", "language", id)
		return err
	}

	kb.language = id
	kb.table = table
	kb.syncControlsLocale()
	kb.render()
	kb.languageChanged()
	return nil
}

// SetTarget binds the field that receives text. Nil unbinds it.
func (kb *Keyboard) SetTarget(target EditTarget) {
	kb.target = target
}

// Clear empties the bound field.
func (kb *Keyboard) Clear() error {
	if kb.destroyed.Load() {
		return ErrDestroyed
	}

	if ClearTarget(kb.target) {
		kb.refocus()
	}
	kb.notifier.emit(Event{Type: EventClear})
	return nil
}

// Speak reads the bound field aloud in the active layout's locale.
// Nothing is spoken when there is no field or it is empty.
func (kb *Keyboard) Speak() error {
	if kb.destroyed.Load() {
		return ErrDestroyed
	}

	if kb.target == nil {
		return nil
	}
	text := kb.target.Value()
	if text == "" {
		return nil
	}

	if kb.opts.Speaker == nil {
		return ErrNoSpeaker
	}

	locale := SpeechLocale(kb.table)
	kb.logger.Debug("Speaking target", "language", kb.language, "locale", locale.String())
	return kb.opts.Speaker.Speak(text, locale)
}

// Activate runs one of the keyboard's own control buttons.
func (kb *Keyboard) Activate(action ControlAction) error {
	switch action {
	case ControlClear:
		return kb.Clear()
	case ControlSpeak:
		return kb.Speak()
	}
	return fmt.Errorf("unknown control action %d", action)
}

// Destroy tears the keyboard down. Later calls are no-ops.
func (kb *Keyboard) Destroy() {
	if !kb.destroyed.CompareAndSwap(false, true) {
		return
	}
	kb.surface.Teardown()
	kb.notifier.reset()
	kb.target = nil
}

func (kb *Keyboard) Destroyed() bool {
	return kb.destroyed.Load()
}

// Subscribe registers fn for every event and returns a function that removes it.
func (kb *Keyboard) Subscribe(fn Listener) func() {
	return kb.notifier.subscribe(fn)
}

func (kb *Keyboard) Language() string {
	return kb.language
}

// Layout returns a copy of the layout shown by the session.
func (kb *Keyboard) Layout() layout.Table {
	return kb.table.Clone()
}

func (kb *Keyboard) Modifiers() ModifierState {
	return kb.modifiers
}

func (kb *Keyboard) Target() EditTarget {
	return kb.target
}

// KeyCount returns how many keys were pressed in this session.
func (kb *Keyboard) KeyCount() int64 {
	return kb.keyCount.Load()
}

// Languages yields the registered layout ids in selector order.
func (kb *Keyboard) Languages() iter.Seq[string] {
	return kb.registry.List()
}

// ActiveGrid returns a copy of the grid matching the current shift state.
func (kb *Keyboard) ActiveGrid() layout.Grid {
	return kb.table.Grid(kb.modifiers.ShiftActive).Clone()
}

// View builds the render model for the current state.
func (kb *Keyboard) View() View {
	v := View{
		Language:      kb.language,
		DisplayName:   kb.table.Name,
		Grid:          kb.ActiveGrid(),
		Modifiers:     kb.modifiers,
		LanguageLabel: kb.translator.Localize(i18n.LanguageLabel, nil),
	}

	for id := range kb.registry.List() {
		t, err := kb.registry.Get(id)
		if err != nil {
			continue
		}
		v.Languages = append(v.Languages, LanguageOption{ID: id, Name: t.Name, Active: id == kb.language})
	}

	if !kb.opts.HideControls {
		v.Controls = []Control{
			{Action: ControlClear, Label: kb.translator.Localize(i18n.ClearLabel, nil)},
			{Action: ControlSpeak, Label: kb.translator.Localize(i18n.SpeakLabel, nil)},
		}
	}

	return v
}

func (kb *Keyboard) insert(text string) {
	if !Insert(kb.target, text) {
		return
	}
	kb.refocus()
	kb.notifier.emit(Event{Type: EventInput, Text: text})
}

func (kb *Keyboard) backspace() {
	deleted, ok := DeleteBackward(kb.target)
	if !ok {
		return
	}
	kb.refocus()
	kb.notifier.emit(Event{Type: EventBackspace, Text: deleted})
}

func (kb *Keyboard) refocus() {
	if f, ok := kb.target.(Focuser); ok {
		f.Focus()
	}
}

func (kb *Keyboard) modifiersChanged() {
	kb.render()
	kb.notifier.emit(Event{Type: EventModifierChange, Modifiers: kb.modifiers})
}

func (kb *Keyboard) languageChanged() {
	if kb.opts.OnLanguageChange != nil {
		kb.opts.OnLanguageChange(kb.language)
	}
	kb.notifier.emit(Event{Type: EventLanguageChange, Language: kb.language})
}

func (kb *Keyboard) syncControlsLocale() {
	if kb.opts.ControlsLocale != language.Und {
		kb.translator.SetLanguage(kb.opts.ControlsLocale)
		return
	}
	kb.translator.SetLanguage(SpeechLocale(kb.table))
}

func (kb *Keyboard) render() {
	kb.surface.Render(kb.View())
}
