package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestEmbeddedTranslations(t *testing.T) {
	tr, err := New(language.Hindi)
	require.NoError(t, err)

	assert.Equal(t, "साफ़ करें", tr.Localize(ClearLabel, nil))
	assert.Equal(t, "बोलें", tr.Localize(SpeakLabel, nil))
	assert.Len(t, tr.Languages(), 6)
}

func TestFallsBackToEnglish(t *testing.T) {
	tr, err := New(language.Japanese)
	require.NoError(t, err)

	assert.Equal(t, "Clear", tr.Localize(ClearLabel, nil))
	assert.Equal(t, "Speak", tr.GetString("keyboard_speak"))
	assert.Equal(t, "keyboard_missing", tr.GetString("keyboard_missing"))
}

func TestSetWithCode(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)
	assert.Equal(t, "Language", tr.Localize(LanguageLabel, nil))

	require.NoError(t, tr.SetWithCode("ta-IN"))
	assert.Equal(t, "மொழி", tr.Localize(LanguageLabel, nil))

	assert.Error(t, tr.SetWithCode("not a tag!"))
}

func TestNewFromBytes(t *testing.T) {
	tr, err := NewFromBytes([]MessageFile{
		{Name: "active.fr.json", Content: []byte(`{"keyboard_clear": "Effacer"}`)},
		{Name: "active.de.yaml", Content: []byte("keyboard_speak: Sprechen\n")},
	}, language.French)
	require.NoError(t, err)

	assert.Equal(t, "Effacer", tr.Localize(ClearLabel, nil))
	assert.Equal(t, "Speak", tr.Localize(SpeakLabel, nil))
	assert.Equal(t, "", tr.Localize(nil, nil))

	tr.SetLanguage(language.German)
	assert.Equal(t, "Sprechen", tr.Localize(SpeakLabel, nil))
	assert.Equal(t, "Clear", tr.Localize(ClearLabel, nil))
}

func TestNewFromBytesRejectsBrokenFile(t *testing.T) {
	_, err := NewFromBytes([]MessageFile{
		{Name: "active.fr.toml", Content: []byte("keyboard_clear = ")},
	})
	assert.Error(t, err)
}
