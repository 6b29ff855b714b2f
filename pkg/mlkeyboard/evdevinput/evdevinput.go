//go:build linux

// Package evdevinput drives a keyboard session from a Linux input device.
//
// Physical keys are mapped by position: the key that sits where Q sits on a
// US keyboard presses row 1, column 1 of whatever layout is active. A Hindi
// session therefore types ौ for that key, or औ while shift is latched.
package evdevinput

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	evdev "github.com/holoplot/go-evdev"

	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard"
	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard/internal"
)

// Values of EV_KEY events. Zero is a release.
const (
	valuePress  = 1
	valueRepeat = 2
)

// Keyboard is the part of *mlkeyboard.Keyboard a Source drives.
type Keyboard interface {
	PressAt(row, col int) error
	PressHostKey(name string) error
}

// Device is satisfied by *evdev.InputDevice.
type Device interface {
	ReadOne() (*evdev.InputEvent, error)
	Close() error
}

type position struct {
	row, col int
}

// physicalRows is a US keyboard in the row and column order of the built-in layouts.
var physicalRows = [][]evdev.EvCode{
	{evdev.KEY_GRAVE, evdev.KEY_1, evdev.KEY_2, evdev.KEY_3, evdev.KEY_4, evdev.KEY_5, evdev.KEY_6,
		evdev.KEY_7, evdev.KEY_8, evdev.KEY_9, evdev.KEY_0, evdev.KEY_MINUS, evdev.KEY_EQUAL, evdev.KEY_BACKSPACE},
	{evdev.KEY_TAB, evdev.KEY_Q, evdev.KEY_W, evdev.KEY_E, evdev.KEY_R, evdev.KEY_T, evdev.KEY_Y,
		evdev.KEY_U, evdev.KEY_I, evdev.KEY_O, evdev.KEY_P, evdev.KEY_LEFTBRACE, evdev.KEY_RIGHTBRACE, evdev.KEY_BACKSLASH},
	{evdev.KEY_CAPSLOCK, evdev.KEY_A, evdev.KEY_S, evdev.KEY_D, evdev.KEY_F, evdev.KEY_G, evdev.KEY_H,
		evdev.KEY_J, evdev.KEY_K, evdev.KEY_L, evdev.KEY_SEMICOLON, evdev.KEY_APOSTROPHE, evdev.KEY_ENTER},
	{evdev.KEY_LEFTSHIFT, evdev.KEY_Z, evdev.KEY_X, evdev.KEY_C, evdev.KEY_V, evdev.KEY_B, evdev.KEY_N,
		evdev.KEY_M, evdev.KEY_COMMA, evdev.KEY_DOT, evdev.KEY_SLASH, evdev.KEY_RIGHTSHIFT},
	{evdev.KEY_LEFTCTRL, evdev.KEY_LEFTMETA, evdev.KEY_LEFTALT, evdev.KEY_SPACE,
		evdev.KEY_RIGHTALT, evdev.KEY_RIGHTMETA, evdev.KEY_COMPOSE, evdev.KEY_RIGHTCTRL},
}

var positions = func() map[evdev.EvCode]position {
	m := make(map[evdev.EvCode]position)
	for r, row := range physicalRows {
		for c, code := range row {
			m[code] = position{row: r, col: c}
		}
	}
	return m
}()

// offGrid names keys that have no place in the grid but still mean something.
var offGrid = map[evdev.EvCode]string{
	evdev.KEY_KPENTER: "kp_enter",
}

// latching keys toggle state, so holding them down must not repeat.
var latching = map[evdev.EvCode]bool{
	evdev.KEY_LEFTSHIFT:  true,
	evdev.KEY_RIGHTSHIFT: true,
	evdev.KEY_CAPSLOCK:   true,
}

// Source translates input events into key presses.
type Source struct {
	kb     Keyboard
	logger *slog.Logger
}

func NewSource(kb Keyboard) *Source {
	return &Source{kb: kb, logger: internal.GetInternalLogger()}
}

// Handle applies one input event. Key releases and non-key events are ignored.
func (s *Source) Handle(ev *evdev.InputEvent) error {
	if ev == nil || ev.Type != evdev.EV_KEY {
		return nil
	}

	switch ev.Value {
	case valuePress:
	case valueRepeat:
		if latching[ev.Code] {
			return nil
		}
	default:
		return nil
	}

	if pos, ok := positions[ev.Code]; ok {
		err := s.kb.PressAt(pos.row, pos.col)
		if errors.Is(err, mlkeyboard.ErrNoSuchKey) {
			s.logger.Debug("Key outside active layout", "key", evdev.KEYToString[ev.Code])
			return nil
		}
		return err
	}

	if name, ok := offGrid[ev.Code]; ok {
		return s.kb.PressHostKey(name)
	}

	s.logger.Debug("Ignoring key", "key", evdev.KEYToString[ev.Code])
	return nil
}

// Run reads events from dev until ctx is done, the device fails or the keyboard
// is destroyed. The device is closed when ctx is done.
func (s *Source) Run(ctx context.Context, dev Device) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = dev.Close()
		case <-done:
		}
	}()

	for {
		ev, err := dev.ReadOne()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("failed to read input event: %w", err)
		}

		if err := s.Handle(ev); err != nil {
			return err
		}
	}
}
