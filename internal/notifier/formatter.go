package notifier

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"TickerDump/internal/dumper"
)

// FormatRunReport renders the outcome of a scheduled refresh as a Telegram HTML message.
func FormatRunReport(results []*dumper.Result, runErr error, took time.Duration) string {
	var b strings.Builder

	if runErr != nil {
		b.WriteString("❌ <b>TickerDump refresh failed</b>\n\n")
	} else {
		b.WriteString("✅ <b>TickerDump refresh done</b>\n\n")
	}

	files, size := 0, 0
	for _, r := range results {
		if r == nil {
			continue
		}
		n := 0
		for _, e := range r.Entries {
			n += e.Bytes
		}
		files += len(r.Entries)
		size += n
		fmt.Fprintf(&b, "%s: %d files (%s)\n", html.EscapeString(r.Job), len(r.Entries), humanize.Bytes(uint64(n)))
	}
	fmt.Fprintf(&b, "\nTotal: %d files, %s in %s\n", files, humanize.Bytes(uint64(size)), took.Round(time.Second))

	if runErr != nil {
		var terr *dumper.TickerError
		if errors.As(runErr, &terr) {
			fmt.Fprintf(&b, "Stopped at <code>%s</code> (#%d) in job %s\n",
				html.EscapeString(terr.Ticker), terr.Index, html.EscapeString(terr.Job))
		}
		fmt.Fprintf(&b, "\n<pre>%s</pre>", html.EscapeString(runErr.Error()))
	}
	return b.String()
}
