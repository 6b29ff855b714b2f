package mlkeyboard

import (
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard/layout"
)

// DefaultSpeechLocale is used for layouts that do not declare a usable locale.
var DefaultSpeechLocale = language.AmericanEnglish

// Speaker reads text aloud. It is supplied by the host platform.
type Speaker interface {
	Speak(text string, locale language.Tag) error
}

// SpeakerFunc adapts a function to the Speaker interface.
type SpeakerFunc func(text string, locale language.Tag) error

func (f SpeakerFunc) Speak(text string, locale language.Tag) error {
	return f(text, locale)
}

// SpeechLocale returns the speech tag declared by t, or DefaultSpeechLocale.
func SpeechLocale(t layout.Table) language.Tag {
	if t.Locale == "" {
		return DefaultSpeechLocale
	}
	tag, err := language.Parse(t.Locale)
	if err != nil {
		return DefaultSpeechLocale
	}
	return tag
}
