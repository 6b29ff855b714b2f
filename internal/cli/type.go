package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard"
)

type typeOptions struct {
	text   string
	show   bool
	events bool
	speak  bool
}

func newTypeCmd(a *app) *cobra.Command {
	var opts typeOptions

	cmd := &cobra.Command{
		Use:   "type -- KEY...",
		Short: "Replay key presses into a text field",
		Long: `Replay key presses against an in-memory text field and print the result.

Each KEY is either a glyph typed verbatim or a key name such as Shift,
Caps, BackSpace, Return, space or Tab. Names are matched the way host
keyboard events are.`,
		Example: `  mlkeyboard type -- Shift H i space t h e r e
  mlkeyboard type --language hindi -- क ि BackSpace`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runType(a, cmd.OutOrStdout(), opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.text, "text", "", "initial contents of the field")
	cmd.Flags().BoolVar(&opts.show, "show", false, "draw the keyboard on every change")
	cmd.Flags().BoolVar(&opts.events, "events", false, "print every keyboard event")
	cmd.Flags().BoolVar(&opts.speak, "speak", false, "speak the field once all keys are replayed")
	return cmd
}

func runType(a *app, out io.Writer, opts typeOptions, keys []string) error {
	var surface mlkeyboard.Surface = mlkeyboard.NopSurface{}
	if opts.show {
		surface = newTerminalSurface(out)
	}

	field := mlkeyboard.NewTextField(opts.text)
	kb, err := mlkeyboard.New(mlkeyboard.Options{
		Language: a.cfg.Language,
		Target:   field,
		Surface:  surface,
		Registry: a.registry,
		Speaker: mlkeyboard.SpeakerFunc(func(text string, locale language.Tag) error {
			_, err := fmt.Fprintf(out, "speak [%s]: %s\n", locale, text)
			return err
		}),
	})
	if err != nil {
		return err
	}
	defer kb.Destroy()

	if opts.events {
		kb.Subscribe(func(e mlkeyboard.Event) {
			fmt.Fprintln(out, formatEvent(e))
		})
	}

	for _, key := range keys {
		if err := kb.PressHostKey(key); err != nil {
			return err
		}
	}

	if opts.speak {
		if err := kb.Speak(); err != nil {
			return err
		}
	}

	start, _ := field.Selection()
	fmt.Fprintf(out, "value: %q\n", field.Value())
	fmt.Fprintf(out, "cursor: %d\n", start)
	return nil
}

func formatEvent(e mlkeyboard.Event) string {
	switch e.Type {
	case mlkeyboard.EventKeyPress:
		return fmt.Sprintf("%s %q", e.Type, e.Key)
	case mlkeyboard.EventLanguageChange:
		return fmt.Sprintf("%s %s", e.Type, e.Language)
	case mlkeyboard.EventModifierChange:
		return fmt.Sprintf("%s shift=%t caps=%t", e.Type, e.Modifiers.ShiftActive, e.Modifiers.CapsLockActive)
	}
	return fmt.Sprintf("%s %q", e.Type, e.Text)
}
