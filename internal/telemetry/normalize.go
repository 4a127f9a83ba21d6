package telemetry

import (
	"fmt"
	"math"

	"keema/internal/models"
)

// Normalize turns the participants of a parsed match into performance rows
// with team, role, raw counts and per-minute rates filled in. Scores are left
// at zero. The first half of the roster is BLUE, the second half RED.
func Normalize(match *ParsedMatch) ([]models.Performance, error) {
	n := len(match.Participants)
	if n == 0 || n%2 != 0 {
		return nil, fmt.Errorf("%w: %d participants", models.ErrInvalidRoster, n)
	}

	minutes := gameMinutes(match.DurationSeconds)
	half := n / 2

	perfs := make([]models.Performance, 0, n)
	teamKills := make(map[models.Team]int, 2)

	for i, obj := range match.Participants {
		team := models.TeamBlue
		if i >= half {
			team = models.TeamRed
		}

		p := models.Performance{
			Slot:     i,
			Team:     team,
			PUUID:    lookupString(obj, puuidFields),
			Name:     displayName(obj),
			Tag:      tagLine(obj),
			Champion: lookupString(obj, championFields),
			Role:     models.ParseRole(lookupString(obj, positionFields)),
			Kills:    lookupInt(obj, killsFields),
			Deaths:   lookupInt(obj, deathsFields),
			Assists:  lookupInt(obj, assistsFields),
			Vision:   lookupNumber(obj, visionFields),
			Win:      lookupBool(obj, winFields),
		}

		p.CSM = perMinute(creepScore(obj), minutes)
		p.GPM = perMinute(lookupNumber(obj, goldFields), minutes)
		p.DPM = perMinute(lookupNumber(obj, damageFields), minutes)
		p.Objectives = perMinute(lookupNumber(obj, objectiveFields), minutes)

		if p.Kills != nil {
			teamKills[team] += *p.Kills
		}
		perfs = append(perfs, p)
	}

	for i := range perfs {
		perfs[i].KP = KillParticipation(perfs[i].Kills, perfs[i].Assists, teamKills[perfs[i].Team])
	}

	return perfs, nil
}

// gameMinutes floors the duration to whole minutes, never below one.
func gameMinutes(durationSeconds float64) float64 {
	return math.Max(1, math.Floor(durationSeconds/60))
}

func perMinute(total *float64, minutes float64) *float64 {
	if total == nil {
		return nil
	}
	v := *total / minutes
	return &v
}

func creepScore(obj map[string]any) *float64 {
	minions := lookupNumber(obj, minionsFields)
	neutral := lookupNumber(obj, neutralFields)
	if minions == nil && neutral == nil {
		return nil
	}
	var cs float64
	if minions != nil {
		cs += *minions
	}
	if neutral != nil {
		cs += *neutral
	}
	return &cs
}

// KillParticipation is the share of the team's kills the player took part in,
// as a percentage. It is undefined when the team has no kills.
func KillParticipation(kills, assists *int, teamKills int) *float64 {
	if kills == nil || assists == nil || teamKills == 0 {
		return nil
	}
	kp := float64(*kills+*assists) * 100 / float64(teamKills)
	return &kp
}
