package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/csbluegem-go/pkg/bluegem"
)

func priceCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pricecheck <item> <pattern> <wear>",
		Short: "Estimate the price of a specific item",
		Long: "Ask CSBlueGem for a price estimate for an item with a given paint\n" +
			"seed and wear. Estimates are in USD.",
		Example: `  bluegem pricecheck "Karambit" 601 0.05
  bluegem pricecheck "M9 Bayonet" 321 0.12 --output json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := bluegem.ParseItem(args[0])
			if err != nil {
				return err
			}
			pattern, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parsing pattern %q: %w", args[1], err)
			}
			wear, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("parsing wear %q: %w", args[2], err)
			}

			c := newClient()
			price, err := c.PriceCheck(cmd.Context(), item, pattern, wear)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(struct {
					Item    bluegem.Item `json:"item"`
					Pattern int          `json:"pattern"`
					Wear    float64      `json:"wear"`
					Price   int          `json:"price"`
				}{item, pattern, wear, price})
			}

			fmt.Printf("%s #%d @ %g: %d USD\n", item, pattern, wear, price)
			return nil
		},
	}
}
