package export_test

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ranked-report/internal/collector"
	"ranked-report/internal/export"
	"ranked-report/internal/riot"

	"github.com/goccy/go-json"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
)

func testReport() *collector.Report {
	return &collector.Report{
		RunID: uuid.Must(uuid.NewV4()),
		Player: collector.PlayerID{
			PUUID:    "P1",
			Identity: collector.PlayerIdentity{GameName: "Foo Bar", TagLine: "EUW", Region: riot.Europe},
		},
		Records: []collector.MatchStatsRecord{
			{MatchID: "M1", Champion: "Ahri", Win: true, Kills: 5, Assists: 3, KDA: 8, Damage: 20000, Lane: "MIDDLE"},
			{MatchID: "M3", Champion: "Lux", Kills: 4, Deaths: 2, Assists: 6, KDA: 5, Damage: 9000, Lane: "BOTTOM"},
		},
		StartedAt: time.Date(2024, 5, 1, 13, 4, 5, 0, time.UTC),
	}
}

func readLines(t *testing.T, r io.Reader) []export.Line {
	t.Helper()

	var lines []export.Line
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		var line export.Line
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	require.NoError(t, scanner.Err())

	return lines
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, 5, 1, 13, 4, 5, 0, time.UTC)
	require.Equal(t, "report_Foo_Bar_EUW_2024-05-01_13-04-05.jsonl", export.FileName("Foo Bar#EUW", at, false))
	require.Equal(t, "report_Foo_123_2024-05-01_13-04-05.jsonl.gz", export.FileName("Foo#123", at, true))
}

func TestWriteReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	report := testReport()

	path, err := export.WriteReport(dir, report, false)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "report_Foo_Bar_EUW_2024-05-01_13-04-05.jsonl"), path)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	lines := readLines(t, file)
	require.Len(t, lines, 2)
	require.Equal(t, report.RunID.String(), lines[0].RunID)
	require.Equal(t, "Foo Bar#EUW", lines[0].RiotID)
	require.Equal(t, "europe", lines[0].Region)
	require.Equal(t, report.Records[0], lines[0].MatchStatsRecord)
	require.Equal(t, "M3", lines[1].MatchID)
}

func TestWriteReport_Compressed(t *testing.T) {
	dir := t.TempDir()

	path, err := export.WriteReport(dir, testReport(), true)
	require.NoError(t, err)
	require.Equal(t, ".gz", filepath.Ext(path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	gz, err := gzip.NewReader(file)
	require.NoError(t, err)
	defer gz.Close()

	lines := readLines(t, gz)
	require.Len(t, lines, 2)
	require.Equal(t, "Ahri", lines[0].Champion)
}

func TestWriteReport_NoRecords(t *testing.T) {
	dir := t.TempDir()
	report := testReport()
	report.Records = nil

	path, err := export.WriteReport(dir, report, false)
	require.NoError(t, err)
	require.Empty(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestWriter_EmptyFileRemoved(t *testing.T) {
	dir := t.TempDir()

	w, err := export.Create(dir, "empty.jsonl", false)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.Empty(t, w.Path())

	_, err = os.Stat(filepath.Join(dir, "empty.jsonl"))
	require.True(t, os.IsNotExist(err))

	require.ErrorIs(t, w.WriteLine(map[string]int{"a": 1}), export.ErrClosed)
	require.NoError(t, w.Close(), "close is idempotent")
}
