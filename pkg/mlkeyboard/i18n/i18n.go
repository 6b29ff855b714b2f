// Package i18n localizes the labels of the keyboard's own buttons.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Message is an alias for i18n.Message to avoid requiring users to import go-i18n directly
type Message = i18n.Message

var (
	ClearLabel    = &Message{ID: "keyboard_clear", Other: "Clear"}
	SpeakLabel    = &Message{ID: "keyboard_speak", Other: "Speak"}
	LanguageLabel = &Message{ID: "keyboard_language", Other: "Language"}
)

// I18N holds one set of translations and the locale currently preferred.
type I18N struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
}

// MessageFile is a named translation file such as "active.fr.toml".
// The name carries the language and format.
type MessageFile struct {
	Name    string
	Content []byte
}

// New loads the built-in translations and prefers langs in order.
// English is always the last resort.
func New(langs ...language.Tag) (*I18N, error) {
	var files []MessageFile
	err := fs.WalkDir(localeFS, "locales", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := localeFS.ReadFile(path)
		if err != nil {
			return err
		}
		files = append(files, MessageFile{Name: d.Name(), Content: content})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read built-in translations: %w", err)
	}

	return NewFromBytes(files, langs...)
}

// NewFromBytes builds translations from caller supplied TOML, YAML or JSON message files.
func NewFromBytes(messageFiles []MessageFile, langs ...language.Tag) (*I18N, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, file := range messageFiles {
		if _, err := bundle.ParseMessageFileBytes(file.Content, file.Name); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file.Name, err)
		}
	}

	t := &I18N{bundle: bundle}
	t.SetLanguage(langs...)
	return t, nil
}

func (t *I18N) SetLanguage(langs ...language.Tag) {
	codes := make([]string, 0, len(langs)+1)
	for _, lang := range langs {
		codes = append(codes, lang.String())
	}
	t.localizer = i18n.NewLocalizer(t.bundle, append(codes, language.English.String())...)
}

func (t *I18N) SetWithCode(code string) error {
	lang, err := language.Parse(code)
	if err != nil {
		return err
	}
	t.SetLanguage(lang)
	return nil
}

// Languages returns the languages that have translations loaded.
func (t *I18N) Languages() []language.Tag {
	return t.bundle.LanguageTags()
}

// GetString looks a message up by id and returns the id itself when it is unknown.
func (t *I18N) GetString(id string) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return id
	}
	return msg
}

// Localize renders message in the preferred locale, falling back to message.Other.
func (t *I18N) Localize(message *Message, templateData map[string]any) string {
	if message == nil {
		return ""
	}

	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		DefaultMessage: message,
		TemplateData:   templateData,
	})
	if err != nil {
		return message.Other
	}
	return msg
}
