package models

import "strings"

type Role string

const (
	RoleTop     Role = "TOP"
	RoleJungle  Role = "JUNGLE"
	RoleMid     Role = "MID"
	RoleADC     Role = "ADC"
	RoleSupport Role = "SUPPORT"
)

var Roles = []Role{RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport}

// replay files use the client's position names
var roleAliases = map[string]Role{
	"TOP":     RoleTop,
	"JUNGLE":  RoleJungle,
	"JG":      RoleJungle,
	"MID":     RoleMid,
	"MIDDLE":  RoleMid,
	"ADC":     RoleADC,
	"BOTTOM":  RoleADC,
	"BOT":     RoleADC,
	"CARRY":   RoleADC,
	"SUPPORT": RoleSupport,
	"UTILITY": RoleSupport,
	"SUP":     RoleSupport,
}

// ParseRole maps a raw position value to a Role. Empty and unrecognised values
// resolve to TOP.
func ParseRole(raw string) Role {
	if r, ok := roleAliases[strings.ToUpper(strings.TrimSpace(raw))]; ok {
		return r
	}
	return RoleTop
}

type Team string

const (
	TeamBlue Team = "BLUE"
	TeamRed  Team = "RED"
)

type Stat string

const (
	StatKDA        Stat = "kda"
	StatCSM        Stat = "csm"
	StatGPM        Stat = "gpm"
	StatDPM        Stat = "dpm"
	StatKP         Stat = "kp"
	StatVision     Stat = "vision"
	StatObjectives Stat = "objectives"
)

var Stats = []Stat{StatKDA, StatCSM, StatGPM, StatDPM, StatKP, StatVision, StatObjectives}
