// Package report renders a comparison outcome as the three plain-text
// sections of the drift report. Rendering is the only place output order is
// fixed: the unique lists sort by full name and the mismatches by the older
// record's full name, so the same inputs always print the same report.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/hpc-tools/moddrift/modules"
)

const timeLayout = "2006-01-02 15:04:05"

var header = color.New(color.Bold)

// Writer renders drift reports for one pair of hosts.
type Writer struct {
	Out io.Writer
	// Host1 and Host2 label the left and right comparison inputs.
	Host1 string
	Host2 string
}

// Render writes the three sections of the report.
func (w *Writer) Render(d modules.Diff) {
	w.section(fmt.Sprintf("Modules present only on %s", w.Host1), len(d.OnlyLeft))
	for _, r := range sortedRecords(d.OnlyLeft) {
		fmt.Fprintf(w.Out, "%s (build: %s)\n", r.FullName, r.BuildTime.Format(timeLayout))
	}

	w.section(fmt.Sprintf("Modules present only on %s", w.Host2), len(d.OnlyRight))
	for _, r := range sortedRecords(d.OnlyRight) {
		fmt.Fprintf(w.Out, "%s (build: %s)\n", r.FullName, r.BuildTime.Format(timeLayout))
	}

	w.section("Modules with different build times", len(d.Mismatched))
	for _, m := range sortedMismatches(d.Mismatched) {
		olderHost, newerHost := w.Host1, w.Host2
		if !m.OlderOnLeft {
			olderHost, newerHost = w.Host2, w.Host1
		}
		fmt.Fprintf(w.Out, "Module: %s\n", m.Older.FullName)
		fmt.Fprintf(w.Out, "  On %s: %s\n", olderHost, m.Older.BuildTime.Format(timeLayout))
		fmt.Fprintf(w.Out, "  On %s: %s\n", newerHost, m.Newer.BuildTime.Format(timeLayout))
		fmt.Fprintf(w.Out, "  Newer version on %s\n\n", newerHost)
	}
}

func (w *Writer) section(title string, count int) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(w.Out, "\n%s\n", rule)
	fmt.Fprintf(w.Out, "%s (%d):\n", header.Sprint(title), count)
	fmt.Fprintf(w.Out, "%s\n", rule)
}

func sortedRecords(recs []modules.Record) []modules.Record {
	out := make([]modules.Record, len(recs))
	copy(out, recs)
	sort.Slice(out, func(i, j int) bool {
		return out[i].FullName < out[j].FullName
	})
	return out
}

func sortedMismatches(pairs []modules.Mismatch) []modules.Mismatch {
	out := make([]modules.Mismatch, len(pairs))
	copy(out, pairs)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Older.FullName != out[j].Older.FullName {
			return out[i].Older.FullName < out[j].Older.FullName
		}
		return out[i].Older.BuildTime.Before(out[j].Older.BuildTime)
	})
	return out
}
