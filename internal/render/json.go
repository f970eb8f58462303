package render

import (
	"io"

	"ranked-report/internal/collector"

	"github.com/goccy/go-json"
)

type failedMatch struct {
	MatchID string `json:"match_id"`
	Error   string `json:"error"`
}

type document struct {
	RunID   string                       `json:"run_id"`
	RiotID  string                       `json:"riot_id"`
	Region  string                       `json:"region"`
	PUUID   string                       `json:"puuid"`
	Summary collector.Summary            `json:"summary"`
	Matches []collector.MatchStatsRecord `json:"matches"`
	Failed  []failedMatch                `json:"failed"`
	Skipped []string                     `json:"skipped"`
}

func newDocument(report *collector.Report) document {
	doc := document{
		RunID:   report.RunID.String(),
		RiotID:  report.Player.Identity.String(),
		Region:  report.Region().String(),
		PUUID:   report.Player.PUUID,
		Summary: report.Summary(),
		Matches: report.Records,
		Failed:  make([]failedMatch, 0, len(report.Failures)),
		Skipped: report.Skipped,
	}

	if doc.Matches == nil {
		doc.Matches = []collector.MatchStatsRecord{}
	}
	if doc.Skipped == nil {
		doc.Skipped = []string{}
	}

	for _, failure := range report.Failures {
		doc.Failed = append(doc.Failed, failedMatch{MatchID: failure.MatchID, Error: failure.Err.Error()})
	}

	return doc
}

// JSON writes the report as an indented JSON document.
func JSON(w io.Writer, report *collector.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(newDocument(report))
}
