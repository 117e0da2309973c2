package main

import (
	"fmt"
	"io"

	"cminus/internal/driver"
	"cminus/internal/observ"
)

// printTimings writes per-file phase timings and, for several files,
// their sum.
func printTimings(out io.Writer, results []driver.FileResult) {
	if out == nil || len(results) == 0 {
		return
	}
	reports := make([]observ.Report, 0, len(results))
	for _, r := range results {
		if len(r.Timing.Phases) == 0 {
			continue
		}
		fmt.Fprint(out, r.Timing.Summary(r.Path))
		reports = append(reports, r.Timing)
	}
	if len(reports) > 1 {
		fmt.Fprint(out, observ.Sum(reports...).Summary(fmt.Sprintf("%d files", len(reports))))
	}
}
