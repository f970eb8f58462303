package render

import (
	"encoding/csv"
	"io"
	"strconv"

	"ranked-report/internal/collector"
)

var csvHeader = []string{"match_id", "champion", "win", "kills", "deaths", "assists", "kda", "gold_per_min", "damage", "lane"}

// CSV writes one row per record with a header row.
func CSV(w io.Writer, report *collector.Report) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, record := range report.Records {
		if err := writer.Write([]string{
			record.MatchID,
			record.Champion,
			strconv.FormatBool(record.Win),
			strconv.Itoa(record.Kills),
			strconv.Itoa(record.Deaths),
			strconv.Itoa(record.Assists),
			formatFloat(record.KDA),
			formatFloat(record.GoldPerMin),
			strconv.Itoa(record.Damage),
			record.Lane,
		}); err != nil {
			return err
		}
	}

	writer.Flush()

	return writer.Error()
}
