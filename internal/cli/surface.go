package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard"
	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard/constants"
)

// Theme holds the styles used to draw key caps.
type Theme struct {
	Title    lipgloss.Style
	Key      lipgloss.Style
	Latched  lipgloss.Style
	Control  lipgloss.Style
	Language lipgloss.Style
	Active   lipgloss.Style
}

func DefaultTheme() Theme {
	key := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#5c6370")).
		Padding(0, 1)

	return Theme{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#61afef")),
		Key:   key,
		Latched: key.
			BorderForeground(lipgloss.Color("#e5c07b")).
			Foreground(lipgloss.Color("#e5c07b")).
			Bold(true),
		Control:  lipgloss.NewStyle().Foreground(lipgloss.Color("#98c379")).Padding(0, 1),
		Language: lipgloss.NewStyle().Foreground(lipgloss.Color("#5c6370")).Padding(0, 1),
		Active:   lipgloss.NewStyle().Foreground(lipgloss.Color("#61afef")).Underline(true).Padding(0, 1),
	}
}

// terminalSurface draws every render of the keyboard to a writer.
type terminalSurface struct {
	out   io.Writer
	theme Theme
}

func newTerminalSurface(out io.Writer) *terminalSurface {
	return &terminalSurface{out: out, theme: DefaultTheme()}
}

func (s *terminalSurface) Render(v mlkeyboard.View) {
	fmt.Fprintln(s.out, RenderView(s.theme, v))
}

func (s *terminalSurface) Teardown() {}

// RenderView lays out the language selector, the key grid and the control buttons.
func RenderView(theme Theme, v mlkeyboard.View) string {
	sections := []string{theme.Title.Render(v.DisplayName)}

	if len(v.Languages) > 0 {
		opts := make([]string, 0, len(v.Languages)+1)
		opts = append(opts, theme.Language.Render(v.LanguageLabel+":"))
		for _, l := range v.Languages {
			if l.Active {
				opts = append(opts, theme.Active.Render(l.ID))
			} else {
				opts = append(opts, theme.Language.Render(l.ID))
			}
		}
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, opts...))
	}

	for _, row := range v.Grid {
		caps := make([]string, 0, len(row))
		for _, key := range row {
			style := theme.Key
			if v.IsLatched(key) {
				style = theme.Latched
			}
			caps = append(caps, style.Render(keyLabel(key)))
		}
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, caps...))
	}

	if len(v.Controls) > 0 {
		labels := make([]string, 0, len(v.Controls))
		for _, c := range v.Controls {
			labels = append(labels, theme.Control.Render("["+c.Label+"]"))
		}
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, labels...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func keyLabel(key constants.KeySymbol) string {
	switch key {
	case constants.KeySpace:
		return strings.Repeat(" ", 12)
	case constants.KeyBackspace:
		return "⌫"
	case constants.KeyEnter:
		return "⏎"
	}
	return key.String()
}
