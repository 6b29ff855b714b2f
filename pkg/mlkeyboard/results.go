package mlkeyboard

import (
	"errors"

	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard/layout"
)

var (
	ErrContainerNotFound = errors.New("keyboard surface not found")
	ErrUnknownLanguage   = layout.ErrUnknownLanguage
	ErrDestroyed         = errors.New("keyboard has been destroyed")
	ErrNoSuchKey         = errors.New("no key at position")
	ErrNoSpeaker         = errors.New("no speech capability configured")
)
