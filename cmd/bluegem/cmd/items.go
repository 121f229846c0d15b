package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/csbluegem-go/pkg/bluegem"
)

func itemsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List items CSBlueGem tracks",
		Long: "List the Case Hardened items CSBlueGem records sales for. With\n" +
			"--all, also print the accepted currencies, origins, sort keys, and\n" +
			"filter dimensions.",
		Example: `  bluegem items
  bluegem items --all`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if jsonOutput() {
				if all {
					return outputJSON(struct {
						Items      []bluegem.Item       `json:"items"`
						Currencies []bluegem.Currency   `json:"currencies"`
						Origins    []bluegem.Origin     `json:"origins"`
						SortKeys   []bluegem.SortKey    `json:"sort_keys"`
						Filters    []bluegem.FilterType `json:"filters"`
					}{bluegem.Items, bluegem.Currencies, bluegem.Origins, bluegem.SortKeys, bluegem.FilterTypes})
				}
				return outputJSON(bluegem.Items)
			}

			for _, item := range bluegem.Items {
				fmt.Println(item)
			}
			if !all {
				return nil
			}

			printEnumSection("Currencies", bluegem.Currencies)
			printEnumSection("Origins", bluegem.Origins)
			printEnumSection("Sort keys", bluegem.SortKeys)
			printEnumSection("Filter dimensions", bluegem.FilterTypes)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "also list currencies, origins, sort keys, and filters")

	return cmd
}

func printEnumSection[T ~string](title string, members []T) {
	fmt.Printf("\n%s:\n", title)
	for _, m := range members {
		fmt.Printf("  %s\n", string(m))
	}
}
