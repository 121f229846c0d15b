package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/donaldgifford/csbluegem-go/pkg/bluegem"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printSalesTable(sales []bluegem.Sale, currency bluegem.Currency) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("DATE\tPATTERN\tWEAR\tTYPE\tORIGIN\tPRICE\n")
	for i := range sales {
		s := &sales[i]
		tw.writef("%s\t%d\t%.5f\t%s\t%s\t%d %s\n",
			s.Timestamp.Format("2006-01-02"),
			s.Pattern,
			s.Wear,
			s.Type,
			s.Origin,
			s.Price,
			currency,
		)
	}
	return tw.finish()
}

func printPatternDataTable(data []bluegem.PatternData) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("PATTERN\tPLAY BLUE\tPLAY PURPLE\tPLAY GOLD\tBACK BLUE\tBACK PURPLE\tBACK GOLD\tSALES\n")
	for i := range data {
		d := &data[i]
		tw.writef("%s\t%.1f%%\t%.1f%%\t%.1f%%\t%.1f%%\t%.1f%%\t%.1f%%\t%s\n",
			optionalInt(d.Pattern),
			d.PlaysideBlue,
			d.PlaysidePurple,
			d.PlaysideGold,
			d.BacksideBlue,
			d.BacksidePurple,
			d.BacksideGold,
			optionalInt(d.Quantity),
		)
	}
	return tw.finish()
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
