package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTabsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tabs",
		Short: "List the tabs with their item counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := app.open("")
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLIBELLÉ\tÉLÉMENTS\tIMPORT\tEXPORT")
			for _, tab := range reg.All() {
				items, err := tab.Store.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("list %s: %w", tab.ID, err)
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", tab.ID, tab.Label, len(items), yesNo(tab.CanImport()), yesNo(tab.CanExport()))
			}
			return tw.Flush()
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "oui"
	}
	return "non"
}
