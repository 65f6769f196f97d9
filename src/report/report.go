package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"benchmark-observer/src/helpers"
	"benchmark-observer/src/models"
	"benchmark-observer/src/network"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

// WriteCounters renders the running totals as a two-column table.
func WriteCounters(w io.Writer, c network.CountersResponse) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Counter", "Value"})
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)

	t.Append([]string{"tot. exec time on new db", helpers.FormatFloat(c.Counters.TotalExecTimeNew)})
	t.Append([]string{"tot. exec time on old db", helpers.FormatFloat(c.Counters.TotalExecTimeOld)})
	t.Append([]string{"nr calls", humanize.Comma(c.Counters.Calls)})
	t.Append([]string{"nr exceptions", humanize.Comma(c.Counters.ClientDisconnects)})
	t.Append([]string{"classification errors", humanize.Comma(c.Errors)})
	t.Append([]string{"recent records", strconv.Itoa(c.Recent.Count)})
	t.Append([]string{"recent factor mean", humanize.FormatFloat("#,###.##", c.Recent.MeanFactor)})
	t.Append([]string{"recent factor std", humanize.FormatFloat("#,###.##", c.Recent.StdFactor)})
	t.Render()
}

// WriteRecords renders stored records newest first; ages are relative to now.
func WriteRecords(w io.Writer, rows []models.MStoredRecord, now time.Time) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"ID", "Age", "Bucket", "Realslow", "Factor", "Old(s)", "New(s)", "Method", "URL", "Size", "Client"})
	t.SetAutoWrapText(false)
	t.SetRowLine(false)

	for _, r := range rows {
		realslow := ""
		if r.RealSlow {
			realslow = "yes"
		}
		t.Append([]string{
			strconv.FormatInt(r.ID, 10),
			humanize.RelTime(r.CreatedAt, now, "ago", "from now"),
			string(r.Bucket),
			realslow,
			fmt.Sprintf("%.2f", r.PerfFactor),
			helpers.FormatFloat(r.OriginalExecTime),
			helpers.FormatFloat(r.NewExecTime),
			r.RequestMethod,
			r.RequestURL,
			humanize.Bytes(uint64(max(r.RequestSize, 0))),
			r.ClientHost,
		})
	}
	t.Render()
}
