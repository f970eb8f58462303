package riot

// AccountResponse represents the response from /riot/account/v1/accounts/by-riot-id
type AccountResponse struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// MatchIDsQuery holds the query parameters of /lol/match/v5/matches/by-puuid/{puuid}/ids
type MatchIDsQuery struct {
	Type  string `url:"type,omitempty"` // ranked, normal, tourney, tutorial
	Start int    `url:"start"`
	Count int    `url:"count"`
}

// MatchResponse represents the response from /lol/match/v5/matches/{matchId}
type MatchResponse struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	DataVersion  string   `json:"dataVersion"`
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"` // PUUIDs
}

type MatchInfo struct {
	GameCreation int64              `json:"gameCreation"`
	GameDuration int64              `json:"gameDuration"`
	GameMode     string             `json:"gameMode"`
	GameVersion  string             `json:"gameVersion"`
	QueueID      int                `json:"queueId"`
	Participants []MatchParticipant `json:"participants"`
}

type MatchParticipant struct {
	ParticipantID  int    `json:"participantId"`
	PUUID          string `json:"puuid"`
	RiotIdGameName string `json:"riotIdGameName"`
	RiotIdTagline  string `json:"riotIdTagline"`
	ChampionID     int    `json:"championId"`
	ChampionName   string `json:"championName"`
	Lane           string `json:"lane"`         // TOP, JUNGLE, MIDDLE, BOTTOM, NONE
	TeamPosition   string `json:"teamPosition"` // TOP, JUNGLE, MIDDLE, BOTTOM, UTILITY
	Win            bool   `json:"win"`

	Kills   int `json:"kills"`
	Deaths  int `json:"deaths"`
	Assists int `json:"assists"`

	GoldEarned                  int `json:"goldEarned"`
	TotalDamageDealtToChampions int `json:"totalDamageDealtToChampions"`

	// Challenges is missing on older matches and some game modes
	Challenges *ParticipantChallenges `json:"challenges,omitempty"`
}

// ParticipantChallenges holds the subset of the challenge metrics we read
type ParticipantChallenges struct {
	GoldPerMinute     float64 `json:"goldPerMinute"`
	DamagePerMinute   float64 `json:"damagePerMinute"`
	KDA               float64 `json:"kda"`
	KillParticipation float64 `json:"killParticipation"`
}

// FindParticipant returns the participant with the given PUUID, or nil
func (m *MatchResponse) FindParticipant(puuid string) *MatchParticipant {
	for i := range m.Info.Participants {
		if m.Info.Participants[i].PUUID == puuid {
			return &m.Info.Participants[i]
		}
	}
	return nil
}

// errorBody is the error envelope returned by the Riot API
type errorBody struct {
	Status struct {
		Message    string `json:"message"`
		StatusCode int    `json:"status_code"`
	} `json:"status"`
}
