package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/csbluegem-go/pkg/bluegem"
)

func searchCmd() *cobra.Command {
	var (
		itemType   string
		origin     string
		pattern    int
		patterns   []int
		priceMin   float64
		priceMax   float64
		wearMin    float64
		wearMax    float64
		dateMin    string
		dateMax    string
		sortKey    string
		order      string
		limit      int
		offset     int
		withData   bool
		filterArgs []string
	)

	cmd := &cobra.Command{
		Use:   "search <item>",
		Short: "Search blue gem sale history",
		Long: "Search recorded Case Hardened sales for an item, with optional\n" +
			"filters for pattern, price, wear, origin, and date range.",
		Example: `  # Most recent Karambit sales
  bluegem search "Karambit"

  # StatTrak AK-47s under 0.08 wear, priced in euros
  bluegem search "AK-47" --type stattrak --wear-max 0.08 --currency EUR

  # Specific tier 1 patterns only
  bluegem search "Karambit" --patterns 661,670,955 --limit 5

  # Gold-heavy backsides, as JSON
  bluegem search "Five-SeveN" --filter "backside_gold=30:100" --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := bluegem.ParseItem(args[0])
			if err != nil {
				return err
			}
			currency, err := currencyFlag()
			if err != nil {
				return err
			}

			req := bluegem.SearchRequest{
				Item:        item,
				Currency:    currency,
				Limit:       limit,
				Offset:      offset,
				PatternData: withData,
			}

			if itemType != "" {
				if req.Type, err = bluegem.ParseItemType(itemType); err != nil {
					return err
				}
			}
			if origin != "" {
				if req.Origin, err = bluegem.ParseOrigin(origin); err != nil {
					return err
				}
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
			if cmd.Flags().Changed("price-min") {
				req.PriceMin = &priceMin
			}
			if cmd.Flags().Changed("price-max") {
				req.PriceMax = &priceMax
			}
			if cmd.Flags().Changed("wear-min") {
				req.WearMin = &wearMin
			}
			if cmd.Flags().Changed("wear-max") {
				req.WearMax = &wearMax
			}

			if req.DateMin, err = parseDateFlag(dateMin); err != nil {
				return err
			}
			if req.DateMax, err = parseDateFlag(dateMax); err != nil {
				return err
			}
			if req.Filters, err = parseFilterArgs(filterArgs); err != nil {
				return err
			}

			c := newClient()

			var resp *bluegem.SearchResponse
			if len(patterns) > 0 {
				resp, err = c.SearchPatterns(cmd.Context(), req, patterns)
			} else {
				resp, err = c.Search(cmd.Context(), req)
			}
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}
			if len(resp.Sales) == 0 {
				fmt.Println("No sales found.")
				return nil
			}

			fmt.Printf("Showing %d of %d sales\n\n", resp.Meta.Size, resp.Meta.Total)
			return printSalesTable(resp.Sales, resp.Meta.Currency)
		},
	}

	cmd.Flags().StringVar(&itemType, "type", "", "item type (normal, stattrak)")
	cmd.Flags().StringVar(&origin, "origin", "", "marketplace origin (Buff, CSFloat, ...)")
	cmd.Flags().IntVar(&pattern, "pattern", 0, "exact paint seed")
	cmd.Flags().IntSliceVar(&patterns, "patterns", nil, "paint seeds to query in bulk")
	cmd.Flags().Float64Var(&priceMin, "price-min", 0, "minimum price")
	cmd.Flags().Float64Var(&priceMax, "price-max", 0, "maximum price")
	cmd.Flags().Float64Var(&wearMin, "wear-min", 0, "minimum wear")
	cmd.Flags().Float64Var(&wearMax, "wear-max", 0, "maximum wear")
	cmd.Flags().StringVar(&dateMin, "date-min", "", "earliest sale date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dateMax, "date-max", "", "latest sale date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sortKey, "sort", "", "sort key (date, price, wear, pattern)")
	cmd.Flags().StringVar(&order, "order", "", "sort order (ASC, DESC)")
	cmd.Flags().IntVar(&limit, "limit", 50, "number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "result offset")
	cmd.Flags().BoolVar(&withData, "pattern-data", false, "attach pattern measurements to each sale")
	cmd.Flags().StringArrayVar(&filterArgs, "filter", nil, "pattern data filter (dimension=min:max)")

	return cmd
}

func parseDateFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: expected YYYY-MM-DD", s)
	}
	return &t, nil
}

func parseFilterArgs(args []string) ([]bluegem.Filter, error) {
	if len(args) == 0 {
		return nil, nil
	}

	filters := make([]bluegem.Filter, 0, len(args))
	for _, arg := range args {
		name, bounds, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("filter %q must look like dimension=min:max", arg)
		}
		minStr, maxStr, ok := strings.Cut(bounds, ":")
		if !ok {
			return nil, fmt.Errorf("filter %q must look like dimension=min:max", arg)
		}

		ft, err := bluegem.ParseFilterType(name)
		if err != nil {
			return nil, err
		}
		lo, err := strconv.ParseFloat(minStr, 64)
		if err != nil {
			return nil, fmt.Errorf("filter %q: bad minimum %q", arg, minStr)
		}
		hi, err := strconv.ParseFloat(maxStr, 64)
		if err != nil {
			return nil, fmt.Errorf("filter %q: bad maximum %q", arg, maxStr)
		}

		f, err := bluegem.NewFilter(ft, lo, hi)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, nil
}
