package telemetry

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Candidate field names in priority order. Camel case keys come from the
// match-v5 style documents, upper snake case keys from raw ROFL stats.
var (
	gameIDFields   = []string{"gameId", "matchId", "game_id"}
	durationFields = []string{"gameDuration"}
	lengthMSFields = []string{"gameLength"}

	killsFields       = []string{"kills", "CHAMPIONS_KILLED"}
	deathsFields      = []string{"deaths", "NUM_DEATHS"}
	assistsFields     = []string{"assists", "ASSISTS"}
	minionsFields     = []string{"totalMinionsKilled", "MINIONS_KILLED"}
	neutralFields     = []string{"neutralMinionsKilled", "NEUTRAL_MINIONS_KILLED"}
	goldFields        = []string{"goldEarned", "GOLD_EARNED"}
	damageFields      = []string{"totalDamageDealtToChampions", "TOTAL_DAMAGE_DEALT_TO_CHAMPIONS"}
	objectiveFields   = []string{"damageDealtToObjectives", "TOTAL_DAMAGE_DEALT_TO_OBJECTIVES"}
	visionFields      = []string{"visionScore", "VISION_SCORE"}
	winFields         = []string{"win", "WIN"}
	nameFields        = []string{"riotIdGameName", "RIOT_ID_GAME_NAME", "riotId", "summonerName", "NAME"}
	tagFields         = []string{"riotIdTagline", "riotIdTagLine", "RIOT_ID_TAG_LINE"}
	championFields    = []string{"championName", "SKIN", "champion"}
	positionFields    = []string{"teamPosition", "TEAM_POSITION", "individualPosition", "INDIVIDUAL_POSITION", "position", "role"}
	puuidFields       = []string{"puuid", "PUUID"}
	participantsLists = []string{"participants", "players"}
	statsWrappers     = []string{"statsJson", "stats", "info", "metadata"}
	headerWrappers    = []string{"metadata", "info"}
)

// firstPresent returns the value of the first candidate key holding a non-null
// value.
func firstPresent(obj map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func lookupString(obj map[string]any, keys []string) string {
	for _, k := range keys {
		switch v := obj[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case json.Number:
			return v.String()
		}
	}
	return ""
}

// lookupNumber returns nil when the field is absent or not numeric.
func lookupNumber(obj map[string]any, keys []string) *float64 {
	v, ok := firstPresent(obj, keys)
	if !ok {
		return nil
	}
	var f float64
	switch t := v.(type) {
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func lookupInt(obj map[string]any, keys []string) *int {
	f := lookupNumber(obj, keys)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

func lookupBool(obj map[string]any, keys []string) bool {
	v, ok := firstPresent(obj, keys)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "win", "true", "1":
			return true
		}
	case json.Number:
		return t.String() == "1"
	}
	return false
}
