package collector

import (
	"testing"

	"ranked-report/internal/riot"

	"github.com/stretchr/testify/require"
)

func TestKDA(t *testing.T) {
	cases := []struct {
		name                   string
		kills, deaths, assists int
		want                   float64
	}{
		{"deathless floors to one", 5, 0, 3, 8.0},
		{"even split", 4, 2, 6, 5.0},
		{"rounds to two places", 1, 3, 1, 0.67},
		{"all zero", 0, 0, 0, 0},
		{"single death", 2, 1, 0, 2.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, tc.want, KDA(tc.kills, tc.deaths, tc.assists), 1e-9)
		})
	}
}

func TestProject(t *testing.T) {
	matches := []*riot.MatchResponse{
		newMatch("EUW1_1", "P1", participantStats{kills: 5, deaths: 0, assists: 3, champion: "Ahri", win: true, gold: ptr(412.5)}),
		newMatch("EUW1_2", "P1", participantStats{kills: 4, deaths: 2, assists: 6, champion: "Lux"}),
	}

	records, skipped := Project(matches, "P1")
	require.Empty(t, skipped)
	require.Len(t, records, 2)

	require.Equal(t, MatchStatsRecord{
		MatchID:    "EUW1_1",
		Champion:   "Ahri",
		Win:        true,
		Kills:      5,
		Deaths:     0,
		Assists:    3,
		KDA:        8.0,
		GoldPerMin: 412.5,
		Damage:     20000,
		Lane:       "MIDDLE",
	}, records[0])

	require.Equal(t, "EUW1_2", records[1].MatchID)
	require.InDelta(t, 5.0, records[1].KDA, 1e-9)
	require.False(t, records[1].Win)
}

func TestProject_GoldPerMinDefaultsToZero(t *testing.T) {
	match := newMatch("EUW1_1", "P1", participantStats{kills: 1, deaths: 1, assists: 1, champion: "Ahri"})
	require.Nil(t, match.Info.Participants[2].Challenges)

	records, _ := Project([]*riot.MatchResponse{match}, "P1")
	require.Len(t, records, 1)
	require.Zero(t, records[0].GoldPerMin)

	// Challenges present but without goldPerMinute
	match.Info.Participants[2].Challenges = &riot.ParticipantChallenges{KillParticipation: 0.5}
	records, _ = Project([]*riot.MatchResponse{match}, "P1")
	require.Zero(t, records[0].GoldPerMin)
}

func TestProject_SkipsMatchWithoutPlayer(t *testing.T) {
	stranger := newMatch("EUW1_9", "", participantStats{})
	require.Len(t, stranger.Info.Participants, 10)

	records, skipped := Project([]*riot.MatchResponse{stranger}, "P1")
	require.Empty(t, records)
	require.Equal(t, []string{"EUW1_9"}, skipped)
}

func TestProject_KeepsInputOrderAndIgnoresNil(t *testing.T) {
	matches := []*riot.MatchResponse{
		newMatch("EUW1_3", "P1", participantStats{champion: "Ahri"}),
		nil,
		newMatch("EUW1_2", "", participantStats{}),
		newMatch("EUW1_1", "P1", participantStats{champion: "Lux"}),
	}

	records, skipped := Project(matches, "P1")
	require.Equal(t, []string{"EUW1_2"}, skipped)
	require.Len(t, records, 2)
	require.Equal(t, "EUW1_3", records[0].MatchID)
	require.Equal(t, "EUW1_1", records[1].MatchID)
}

func TestProject_Empty(t *testing.T) {
	records, skipped := Project(nil, "P1")
	require.Empty(t, records)
	require.Empty(t, skipped)
}
