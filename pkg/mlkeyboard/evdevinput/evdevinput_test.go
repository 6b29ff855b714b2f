//go:build linux

package evdevinput

import (
	"context"
	"errors"
	"io"
	"testing"

	evdev "github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard"
	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard/layout"
)

func newKeyboard(t *testing.T, lang string) (*mlkeyboard.Keyboard, *mlkeyboard.TextField) {
	t.Helper()

	registry := layout.NewRegistry()
	require.NoError(t, layout.RegisterBuiltins(registry))

	field := mlkeyboard.NewTextField("")
	kb, err := mlkeyboard.New(mlkeyboard.Options{
		Language: lang,
		Target:   field,
		Surface:  mlkeyboard.NopSurface{},
		Registry: registry,
	})
	require.NoError(t, err)
	return kb, field
}

func key(code evdev.EvCode, value int32) *evdev.InputEvent {
	return &evdev.InputEvent{Type: evdev.EV_KEY, Code: code, Value: value}
}

func tap(codes ...evdev.EvCode) []*evdev.InputEvent {
	var events []*evdev.InputEvent
	for _, c := range codes {
		events = append(events, key(c, valuePress), key(c, 0))
	}
	return events
}

func handleAll(t *testing.T, s *Source, events []*evdev.InputEvent) {
	t.Helper()
	for _, ev := range events {
		require.NoError(t, s.Handle(ev))
	}
}

func TestPhysicalRowsMatchBuiltinShape(t *testing.T) {
	table, err := layout.Default().Get(layout.DefaultLanguage)
	require.NoError(t, err)

	shape := make([]int, len(physicalRows))
	for i, row := range physicalRows {
		shape[i] = len(row)
	}
	assert.Equal(t, table.Shape(), shape)
}

func TestHandleEnglish(t *testing.T) {
	kb, field := newKeyboard(t, "english")
	s := NewSource(kb)

	handleAll(t, s, tap(evdev.KEY_LEFTSHIFT, evdev.KEY_H, evdev.KEY_I, evdev.KEY_SPACE, evdev.KEY_1))
	assert.Equal(t, "Hi 1", field.Value())

	handleAll(t, s, tap(evdev.KEY_BACKSPACE, evdev.KEY_KPENTER))
	assert.Equal(t, "Hi \n", field.Value())
}

func TestHandleFollowsActiveLayout(t *testing.T) {
	kb, field := newKeyboard(t, "hindi")
	s := NewSource(kb)

	handleAll(t, s, tap(evdev.KEY_Q))
	assert.Equal(t, "ौ", field.Value())

	handleAll(t, s, tap(evdev.KEY_RIGHTSHIFT, evdev.KEY_Q))
	assert.Equal(t, "ौऔ", field.Value())
	assert.False(t, kb.Modifiers().ShiftActive)
}

func TestHandleIgnores(t *testing.T) {
	kb, field := newKeyboard(t, "english")
	s := NewSource(kb)

	require.NoError(t, s.Handle(nil))
	require.NoError(t, s.Handle(&evdev.InputEvent{Type: evdev.EV_SYN}))
	require.NoError(t, s.Handle(key(evdev.KEY_A, 0)))
	require.NoError(t, s.Handle(key(evdev.KEY_F1, valuePress)))

	assert.Equal(t, "", field.Value())
	assert.Equal(t, int64(0), kb.KeyCount())
}

func TestHandleRepeat(t *testing.T) {
	kb, field := newKeyboard(t, "english")
	s := NewSource(kb)

	handleAll(t, s, []*evdev.InputEvent{
		key(evdev.KEY_A, valuePress),
		key(evdev.KEY_A, valueRepeat),
		key(evdev.KEY_A, 0),
		key(evdev.KEY_CAPSLOCK, valuePress),
		key(evdev.KEY_CAPSLOCK, valueRepeat),
		key(evdev.KEY_CAPSLOCK, 0),
	})

	assert.Equal(t, "aa", field.Value())
	assert.True(t, kb.Modifiers().CapsLockActive)
}

func TestHandleSmallLayout(t *testing.T) {
	registry := layout.NewRegistry()
	require.NoError(t, registry.Register("tiny", layout.Table{
		Normal: layout.Grid{{"a", "b"}},
		Shift:  layout.Grid{{"A", "B"}},
	}))

	field := mlkeyboard.NewTextField("")
	kb, err := mlkeyboard.New(mlkeyboard.Options{
		Language: "tiny",
		Target:   field,
		Surface:  mlkeyboard.NopSurface{},
		Registry: registry,
	})
	require.NoError(t, err)

	s := NewSource(kb)
	handleAll(t, s, tap(evdev.KEY_1, evdev.KEY_Z, evdev.KEY_GRAVE))
	assert.Equal(t, "ba", field.Value())
}

func TestHandleDestroyed(t *testing.T) {
	kb, _ := newKeyboard(t, "english")
	kb.Destroy()

	err := NewSource(kb).Handle(key(evdev.KEY_A, valuePress))
	require.ErrorIs(t, err, mlkeyboard.ErrDestroyed)
}

type fakeDevice struct {
	events []*evdev.InputEvent
	closed chan struct{}
}

func newFakeDevice(events ...*evdev.InputEvent) *fakeDevice {
	return &fakeDevice{events: events, closed: make(chan struct{})}
}

func (d *fakeDevice) ReadOne() (*evdev.InputEvent, error) {
	if len(d.events) > 0 {
		ev := d.events[0]
		d.events = d.events[1:]
		return ev, nil
	}
	select {
	case <-d.closed:
		return nil, errors.New("device closed")
	default:
		return nil, io.EOF
	}
}

func (d *fakeDevice) Close() error {
	close(d.closed)
	return nil
}

// blockingDevice returns events until drained, then blocks until closed.
type blockingDevice struct {
	*fakeDevice
}

func (d blockingDevice) ReadOne() (*evdev.InputEvent, error) {
	if len(d.events) > 0 {
		return d.fakeDevice.ReadOne()
	}
	<-d.closed
	return nil, errors.New("device closed")
}

func TestRunUntilDeviceFails(t *testing.T) {
	kb, field := newKeyboard(t, "english")

	err := NewSource(kb).Run(context.Background(), newFakeDevice(tap(evdev.KEY_O, evdev.KEY_K)...))
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "ok", field.Value())
}

func TestRunStopsOnCancel(t *testing.T) {
	kb, _ := newKeyboard(t, "english")
	ctx, cancel := context.WithCancel(context.Background())

	dev := blockingDevice{newFakeDevice(tap(evdev.KEY_G)...)}
	result := make(chan error, 1)
	go func() {
		result <- NewSource(kb).Run(ctx, dev)
	}()

	cancel()
	require.ErrorIs(t, <-result, context.Canceled)
}
