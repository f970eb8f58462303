package collector

import "math"

// Summary aggregates the records of a report
type Summary struct {
	Games         int     `json:"games"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinRate       float64 `json:"win_rate"` // percent
	AvgKDA        float64 `json:"avg_kda"`
	AvgGoldPerMin float64 `json:"avg_gold_per_min"`
	AvgDamage     float64 `json:"avg_damage"`
	Failed        int     `json:"failed"`
	Skipped       int     `json:"skipped"`
}

// Summary computes aggregate stats over the report's records
func (r *Report) Summary() Summary {
	s := Summary{
		Games:   len(r.Records),
		Failed:  len(r.Failures),
		Skipped: len(r.Skipped),
	}
	if s.Games == 0 {
		return s
	}

	var kda, gold, damage float64
	for _, record := range r.Records {
		if record.Win {
			s.Wins++
		}
		kda += record.KDA
		gold += record.GoldPerMin
		damage += float64(record.Damage)
	}

	games := float64(s.Games)
	s.Losses = s.Games - s.Wins
	s.WinRate = round2(float64(s.Wins) / games * 100)
	s.AvgKDA = round2(kda / games)
	s.AvgGoldPerMin = round2(gold / games)
	s.AvgDamage = round2(damage / games)

	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
