package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/csbluegem-go/pkg/bluegem"
)

func patternDataCmd() *cobra.Command {
	var (
		pattern    int
		sortKey    string
		order      string
		quantity   bool
		limit      int
		offset     int
		filterArgs []string
	)

	cmd := &cobra.Command{
		Use:   "patterndata <item>",
		Short: "Query blue gem pattern measurements",
		Long: "Query per-pattern gem measurements for an item: the blue, purple,\n" +
			"and gold percentages on each side, and contour counts.",
		Example: `  # Bluest playsides first
  bluegem patterndata "AK-47" --sort playside_blue --order DESC --limit 10

  # One specific pattern, with its sale count
  bluegem patterndata "Karambit" --pattern 661 --quantity

  # Patterns with a gold backside
  bluegem patterndata "Five-SeveN" --filter "backside_gold=50:100"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := bluegem.ParseItem(args[0])
			if err != nil {
				return err
			}

			req := bluegem.PatternDataRequest{
				Item:     item,
				Quantity: quantity,
				Limit:    limit,
				Offset:   offset,
			}

			if sortKey != "" {
				if req.Sort, err = bluegem.ParseSortKey(sortKey); err != nil {
					return err
				}
			}
			if order != "" {
				if req.Order, err = bluegem.ParseOrder(order); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("pattern") {
				req.Pattern = &pattern
			}
			if req.Filters, err = parseFilterArgs(filterArgs); err != nil {
				return err
			}

			c := newClient()
			resp, err := c.PatternData(cmd.Context(), req)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}
			if len(resp.Data) == 0 {
				fmt.Println("No pattern data found.")
				return nil
			}

			fmt.Printf("Showing %d of %d patterns\n\n", resp.Meta.Size, resp.Meta.Total)
			return printPatternDataTable(resp.Data)
		},
	}

	cmd.Flags().IntVar(&pattern, "pattern", 0, "exact paint seed")
	cmd.Flags().StringVar(&sortKey, "sort", "", "sort key (pattern, playside_blue, ...)")
	cmd.Flags().StringVar(&order, "order", "", "sort order (ASC, DESC)")
	cmd.Flags().BoolVar(&quantity, "quantity", false, "include per-pattern sale counts")
	cmd.Flags().IntVar(&limit, "limit", 50, "number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "result offset")
	cmd.Flags().StringArrayVar(&filterArgs, "filter", nil, "pattern data filter (dimension=min:max)")

	return cmd
}
