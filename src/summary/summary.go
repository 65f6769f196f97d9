package summary

import (
	"fmt"
	"io"
	"os"
	"strings"

	"benchmark-observer/src/helpers"
	"benchmark-observer/src/models"
)

// -----------------------------------------------------------------------------

// Format renders the block appended to the summary file.
func Format(s models.MRunSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n========\ntot. exec time on new db: %s\ntot. exec time on old db: %s\n",
		helpers.FormatFloat(s.Counters.TotalExecTimeNew), helpers.FormatFloat(s.Counters.TotalExecTimeOld))
	fmt.Fprintf(&b, "nr calls: %d\n", s.Counters.Calls)
	fmt.Fprintf(&b, "logging started at %s and ended at %s\n", s.StartedAt, s.EndedAt)
	b.WriteString("===\n\n")
	return b.String()
}

// -----------------------------------------------------------------------------

// AppendToFile appends the summary block to path, creating the file if needed.
func AppendToFile(path string, s models.MRunSummary) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return helpers.NewWriteFailure(fmt.Sprintf("failed to open summary file '%s'", path), err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, Format(s)); err != nil {
		return helpers.NewWriteFailure(fmt.Sprintf("failed to append summary to '%s'", path), err)
	}
	return nil
}

// -----------------------------------------------------------------------------

// Print writes the console variant, which also reports client disconnects.
func Print(w io.Writer, s models.MRunSummary) {
	fmt.Fprintf(w, "\n\n========\ntot. exec time on new db: %s\ntot. exec time on old db: %s\n",
		helpers.FormatFloat(s.Counters.TotalExecTimeNew), helpers.FormatFloat(s.Counters.TotalExecTimeOld))
	fmt.Fprintf(w, "nr calls: %d\n", s.Counters.Calls)
	fmt.Fprintf(w, "nr exceptions: %d\n", s.Counters.ClientDisconnects)
	fmt.Fprintf(w, "logging started at %s and ended at %s\n", s.StartedAt, s.EndedAt)
}
