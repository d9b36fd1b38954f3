package models

// TeamSpawn binds a team name to its base spawn point inside the arena.
type TeamSpawn struct {
	Team  string   `json:"team"`
	Spawn Location `json:"spawn"`
}

// MatchConfig is the persisted configuration record for one arena. It is
// loaded through the database layer at construction time and re-read only via
// an explicit reload, never implicitly on field access.
type MatchConfig struct {
	World      string      `json:"world"`
	MinPlayers int         `json:"min_players"`
	MaxPlayers int         `json:"max_players"`
	Lobby      Location    `json:"lobby"`
	Spectator  Location    `json:"spectator"`
	Teams      []TeamSpawn `json:"teams"`
}

// SpawnFor returns the configured spawn for a team name, if present.
func (c *MatchConfig) SpawnFor(team string) (Location, bool) {
	for _, ts := range c.Teams {
		if ts.Team == team {
			return ts.Spawn, true
		}
	}
	return Location{}, false
}
