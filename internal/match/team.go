package match

import "strings"

// Team is one of the fixed set of teams a match is played between. The zero
// value is TeamRed.
type Team int

const (
	TeamRed Team = iota
	TeamBlue
	TeamGreen
	TeamYellow
)

// teamCount is the size of the fixed team enumeration.
const teamCount = 4

type teamInfo struct {
	name    string
	display string
	color   string // legacy chat color code, kept for client formatting
}

var teamTable = [teamCount]teamInfo{
	TeamRed:    {"red", "Red", "§c"},
	TeamBlue:   {"blue", "Blue", "§9"},
	TeamGreen:  {"green", "Green", "§a"},
	TeamYellow: {"yellow", "Yellow", "§e"},
}

// Teams returns every team in registry order. Round-robin assignment walks
// this slice.
func Teams() []Team {
	return []Team{TeamRed, TeamBlue, TeamGreen, TeamYellow}
}

func (t Team) String() string {
	if t < 0 || int(t) >= teamCount {
		return "unknown"
	}
	return teamTable[t].name
}

// DisplayName returns the human-facing team name.
func (t Team) DisplayName() string {
	if t < 0 || int(t) >= teamCount {
		return "Unknown"
	}
	return teamTable[t].display
}

// Color returns the chat color code used when formatting team text.
func (t Team) Color() string {
	if t < 0 || int(t) >= teamCount {
		return "§f"
	}
	return teamTable[t].color
}

// ParseTeam resolves a team from human input, case-insensitively. This is the
// only place string lookup happens; everything internal passes Team values.
func ParseTeam(s string) (Team, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, info := range teamTable {
		if info.name == s {
			return Team(i), true
		}
	}
	return 0, false
}
