package mlkeyboard

import "github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard/constants"

type EventType int

const (
	EventKeyPress EventType = iota
	EventLanguageChange
	EventModifierChange
	EventInput
	EventBackspace
	EventClear
)

func (t EventType) String() string {
	switch t {
	case EventKeyPress:
		return "keypress"
	case EventLanguageChange:
		return "languageChange"
	case EventModifierChange:
		return "modifierChange"
	case EventInput:
		return "input"
	case EventBackspace:
		return "backspace"
	case EventClear:
		return "clear"
	}
	return "unknown"
}

// Event is delivered to subscribers. Only the fields relevant to Type are set:
// Key for keypress, Language for languageChange, Modifiers for modifierChange,
// and Text for input (inserted text) and backspace (removed text).
type Event struct {
	Type      EventType
	Key       constants.KeySymbol
	Language  string
	Text      string
	Modifiers ModifierState
}

// Listener receives keyboard events synchronously, in the order they happen.
type Listener func(Event)

type subscription struct {
	id uint64
	fn Listener
}

type notifier struct {
	subs   []subscription
	nextID uint64
}

func (n *notifier) subscribe(fn Listener) func() {
	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, subscription{id: id, fn: fn})

	return func() {
		for i, s := range n.subs {
			if s.id == id {
				n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

func (n *notifier) emit(e Event) {
	for _, s := range append([]subscription(nil), n.subs...) {
		s.fn(e)
	}
}

func (n *notifier) reset() {
	n.subs = nil
}
