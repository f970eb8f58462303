package render

import (
	"fmt"
	"io"

	"ranked-report/internal/collector"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

// Table writes the records as a text table followed by a summary line.
func Table(w io.Writer, report *collector.Report) error {
	fmt.Fprintf(w, "%s (%s) - %d of %d matches\n",
		report.Player.Identity, report.Region(), len(report.Records), len(report.MatchIDs))

	table := tablewriter.NewTable(w)
	table.Header("Match", "Champion", "Result", "K/D/A", "KDA", "Gold/min", "Damage", "Lane")

	for _, record := range report.Records {
		if err := table.Append([]string{
			record.MatchID,
			record.Champion,
			formatWin(record.Win),
			fmt.Sprintf("%d/%d/%d", record.Kills, record.Deaths, record.Assists),
			formatFloat(record.KDA),
			formatFloat(record.GoldPerMin),
			humanize.Comma(int64(record.Damage)),
			record.Lane,
		}); err != nil {
			return err
		}
	}

	if err := table.Render(); err != nil {
		return err
	}

	summary := report.Summary()
	_, err := fmt.Fprintf(w, "%dW %dL (%s%%)  avg KDA %s  avg gold/min %s  avg damage %s  failed %d  skipped %d\n",
		summary.Wins,
		summary.Losses,
		formatFloat(summary.WinRate),
		formatFloat(summary.AvgKDA),
		formatFloat(summary.AvgGoldPerMin),
		humanize.Comma(int64(summary.AvgDamage)),
		summary.Failed,
		summary.Skipped)

	return err
}
