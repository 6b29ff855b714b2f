package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type layoutSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Locale string `json:"locale"`
	Rows   int    `json:"rows"`
	Keys   int    `json:"keys"`
}

func newLayoutsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "List registered layouts",
		Long:  `List the built-in layouts plus any loaded from --layouts-dir, in selector order.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var summaries []layoutSummary
			for id := range a.registry.List() {
				t, err := a.registry.Get(id)
				if err != nil {
					return err
				}
				summaries = append(summaries, layoutSummary{
					ID:     id,
					Name:   t.Name,
					Locale: t.Locale,
					Rows:   len(t.Normal),
					Keys:   t.Normal.Len(),
				})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summaries)
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tLOCALE\tROWS\tKEYS")
			for _, s := range summaries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", s.ID, s.Name, s.Locale, s.Rows, s.Keys)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
