package collector

import (
	"math"

	"ranked-report/internal/riot"
)

// MatchStatsRecord is one report row: the target player's performance in a
// single match
type MatchStatsRecord struct {
	MatchID    string  `json:"match_id"`
	Champion   string  `json:"champion"`
	Win        bool    `json:"win"`
	Kills      int     `json:"kills"`
	Deaths     int     `json:"deaths"`
	Assists    int     `json:"assists"`
	KDA        float64 `json:"kda"`
	GoldPerMin float64 `json:"gold_per_min"`
	Damage     int     `json:"damage"`
	Lane       string  `json:"lane"`
}

// KDA returns (kills+assists)/deaths rounded to two decimals. Deaths are
// floored at one, so a deathless game scores kills+assists.
func KDA(kills, deaths, assists int) float64 {
	deaths = max(deaths, 1)
	return math.Round(float64(kills+assists)/float64(deaths)*100) / 100
}

// Project extracts the record of the player with puuid from every match.
// Matches the player does not appear in are left out of the records and
// their IDs returned as skipped. Project does no I/O.
func Project(matches []*riot.MatchResponse, puuid string) (records []MatchStatsRecord, skipped []string) {
	records = make([]MatchStatsRecord, 0, len(matches))

	for _, match := range matches {
		if match == nil {
			continue
		}

		record, ok := projectMatch(match, puuid)
		if !ok {
			skipped = append(skipped, match.Metadata.MatchID)
			continue
		}
		records = append(records, record)
	}

	return records, skipped
}

func projectMatch(match *riot.MatchResponse, puuid string) (MatchStatsRecord, bool) {
	p := match.FindParticipant(puuid)
	if p == nil {
		return MatchStatsRecord{}, false
	}

	var goldPerMin float64
	if p.Challenges != nil {
		goldPerMin = p.Challenges.GoldPerMinute
	}

	return MatchStatsRecord{
		MatchID:    match.Metadata.MatchID,
		Champion:   p.ChampionName,
		Win:        p.Win,
		Kills:      p.Kills,
		Deaths:     p.Deaths,
		Assists:    p.Assists,
		KDA:        KDA(p.Kills, p.Deaths, p.Assists),
		GoldPerMin: goldPerMin,
		Damage:     p.TotalDamageDealtToChampions,
		Lane:       p.Lane,
	}, true
}
