// Package report renders benchmark results for the console and derives the
// per-algorithm series used for plotting.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/idudko/login-checker/internal/model"
)

// Print writes the block for a single result.
func Print(w io.Writer, r model.Result) error {
	_, err := fmt.Fprintf(w,
		"\n%s\nSize: %d\nAdd time: %.4fs\nAdd comparisons: %s (avg %.1f)\nLookup time: %.4fs\nLookup comparisons: %s (avg %.1f)\n",
		r.Algorithm,
		r.NumLogins,
		r.AddTime.Seconds(),
		Thousands(r.AddComparisons), r.AvgAddComparisons(),
		r.LookupTime.Seconds(),
		Thousands(r.LookupComparisons), r.AvgLookupComparisons(),
	)
	return err
}

// Table writes an aligned summary of every result in the run.
func Table(w io.Writer, run *model.Run) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "algorithm\tsize\tadd (s)\tadd cmp/op\tlookup (s)\tlookup cmp/op\tfound\t")
	for _, r := range run.Results {
		fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.1f\t%.6f\t%.1f\t%d\t\n",
			r.Algorithm, r.NumLogins,
			r.AddTime.Seconds(), r.AvgAddComparisons(),
			r.LookupTime.Seconds(), r.AvgLookupComparisons(),
			r.LookupsFound)
	}
	return tw.Flush()
}

// Thousands formats n with comma separators.
func Thousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
