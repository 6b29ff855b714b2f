package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard"
	"github.com/BrandonKowalski/mlkeyboard/pkg/mlkeyboard/constants"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		shift    bool
		caps     bool
		controls bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Draw a layout",
		Long: `Draw the key grid of a layout as the on-screen keyboard would show it.

Use --shift or --caps to see the shifted grid with the latched key highlighted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kb, err := mlkeyboard.New(mlkeyboard.Options{
				Language:     a.cfg.Language,
				Surface:      mlkeyboard.NopSurface{},
				Registry:     a.registry,
				HideControls: !controls,
			})
			if err != nil {
				return err
			}
			defer kb.Destroy()

			if caps {
				if err := kb.Press(constants.KeyCaps); err != nil {
					return err
				}
			} else if shift {
				if err := kb.Press(constants.KeyShift); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), RenderView(DefaultTheme(), kb.View()))
			return err
		},
	}

	cmd.Flags().BoolVar(&shift, "shift", false, "show the shifted grid")
	cmd.Flags().BoolVar(&caps, "caps", false, "show the grid with caps lock engaged")
	cmd.Flags().BoolVar(&controls, "controls", true, "show the clear and speak buttons")
	return cmd
}
