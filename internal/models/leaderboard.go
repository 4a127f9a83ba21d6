package models

// GroupStats is one leaderboard group (a player or a champion) as aggregated
// from persisted performances.
type GroupStats struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	Games    int     `json:"games"`
	KDA      float64 `json:"kda"`
	WinRate  float64 `json:"wr"`
	RawScore float64 `json:"raw_score"`
}

type LeaderboardEntry struct {
	GroupStats
	Penalty       float64 `json:"penalty"`
	AdjustedScore float64 `json:"score"`
}

type Leaderboard struct {
	Rows     []LeaderboardEntry `json:"rows"`
	AvgGames float64            `json:"avg_games"`
}
