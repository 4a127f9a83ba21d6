package models

import "time"

type Match struct {
	ID           int           `json:"id" db:"id"`
	GameID       string        `json:"game_id" db:"game_id"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	Performances []Performance `json:"performances,omitempty"`
}

type Performance struct {
	ID         int      `json:"id" db:"id"`
	MatchID    int      `json:"match_id" db:"match_id"`
	Slot       int      `json:"slot" db:"slot"`
	Team       Team     `json:"team" db:"team"`
	PUUID      string   `json:"puuid" db:"puuid"`
	Name       string   `json:"name" db:"name"`
	Tag        *string  `json:"tag" db:"tag"`
	Champion   string   `json:"champion" db:"champion"`
	Role       Role     `json:"role" db:"role"`
	Kills      *int     `json:"kills" db:"kills"`
	Deaths     *int     `json:"deaths" db:"deaths"`
	Assists    *int     `json:"assists" db:"assists"`
	CSM        *float64 `json:"csm" db:"csm"`
	GPM        *float64 `json:"gpm" db:"gpm"`
	DPM        *float64 `json:"dpm" db:"dpm"`
	KP         *float64 `json:"kp" db:"kp"`
	Vision     *float64 `json:"vision" db:"vision"`
	Objectives *float64 `json:"objectives" db:"objectives"`
	Win        bool     `json:"win" db:"win"`
	Score      float64  `json:"perf_score" db:"perf_score"`
}
