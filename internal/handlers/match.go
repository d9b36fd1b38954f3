package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"bedwars/internal/match"
	"bedwars/internal/models"
)

// matchSummary is the read-only projection exposed over the API.
type matchSummary struct {
	ID      uuid.UUID           `json:"id"`
	Name    string              `json:"name"`
	World   string              `json:"world"`
	Phase   string              `json:"phase"`
	Players int                 `json:"players"`
	Elapsed int64               `json:"elapsed_ms"`
	Beds    map[string]bool     `json:"beds"`
	Roster  map[string][]string `json:"roster"`
}

func summarize(m *match.Match) matchSummary {
	roster := make(map[string][]string)
	for team, ids := range m.Roster() {
		for _, id := range ids {
			roster[team.String()] = append(roster[team.String()], id.String())
		}
	}
	beds := make(map[string]bool)
	for team, alive := range m.BedsAlive() {
		beds[team.String()] = alive
	}
	return matchSummary{
		ID:      m.ID,
		Name:    m.Name,
		World:   m.World(),
		Phase:   m.Phase().String(),
		Players: len(m.PlayersInGame()),
		Elapsed: m.Elapsed().Milliseconds(),
		Beds:    beds,
		Roster:  roster,
	}
}

// findMatch resolves the ?name= query parameter to a match.
func (s *MatchServer) findMatch(w http.ResponseWriter, r *http.Request) (*match.Match, bool) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "missing name", http.StatusBadRequest)
		return nil, false
	}
	m, ok := s.Registry.GetByName(name)
	if !ok {
		http.Error(w, "no such match", http.StatusNotFound)
		return nil, false
	}
	return m, true
}

// ListMatchesHandler returns every registered match.
func (s *MatchServer) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var out []matchSummary
		for _, m := range s.Registry.Matches() {
			out = append(out, summarize(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// MatchInfoHandler returns one match's state.
func (s *MatchServer) MatchInfoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, ok := s.findMatch(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, summarize(m))
	}
}

type resultResponse struct {
	Result  string `json:"result"`
	Message string `json:"message"`
	OK      bool   `json:"ok"`
}

func writeResult(w http.ResponseWriter, res match.Result) {
	status := http.StatusOK
	if !res.Ok() {
		status = http.StatusConflict
	}
	writeJSON(w, status, resultResponse{
		Result:  res.Message(),
		Message: res.Message(),
		OK:      res.Ok(),
	})
}

// JoinMatchHandler admits the authenticated player into a match lobby.
func (s *MatchServer) JoinMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, ok := requirePlayer(w, r)
		if !ok {
			return
		}
		playerID, err := uuid.Parse(sub)
		if err != nil {
			http.Error(w, "invalid player id in token", http.StatusBadRequest)
			return
		}
		m, ok := s.findMatch(w, r)
		if !ok {
			return
		}
		if other, in := s.Registry.MatchOf(playerID); in && other != m {
			http.Error(w, "already in another match", http.StatusConflict)
			return
		}
		writeResult(w, m.AddPlayer(playerID))
	}
}

// LeaveMatchHandler removes the authenticated player from whatever match
// they are in.
func (s *MatchServer) LeaveMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, ok := requirePlayer(w, r)
		if !ok {
			return
		}
		playerID, err := uuid.Parse(sub)
		if err != nil {
			http.Error(w, "invalid player id in token", http.StatusBadRequest)
			return
		}
		m, in := s.Registry.MatchOf(playerID)
		if !in {
			http.Error(w, "not in a match", http.StatusNotFound)
			return
		}
		m.LeavePlayer(playerID, true)
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// StartMatchHandler arms the start countdown. Admin only; ?force=true waives
// the minimum player requirement.
func (s *MatchServer) StartMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}
		m, ok := s.findMatch(w, r)
		if !ok {
			return
		}
		force := r.URL.Query().Get("force") == "true"
		writeResult(w, m.TryStart(force))
	}
}

// StopMatchHandler force-stops a match. Admin only.
func (s *MatchServer) StopMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}
		m, ok := s.findMatch(w, r)
		if !ok {
			return
		}
		m.ForceStop(nil)
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// ReloadConfigHandler re-reads a match's configuration record. Admin only.
func (s *MatchServer) ReloadConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}
		m, ok := s.findMatch(w, r)
		if !ok {
			return
		}
		if err := m.ReloadConfig(); err != nil {
			s.Logger.WithError(err).Warn("config reload failed")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// SaveSnapshotHandler captures a match's world as the new pristine snapshot.
// Admin only; rejected while the match is running.
func (s *MatchServer) SaveSnapshotHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}
		m, ok := s.findMatch(w, r)
		if !ok {
			return
		}
		if m.IsRunning() {
			writeResult(w, match.ResultGameRunning)
			return
		}
		if m.Phase() == match.PhaseRegenerating {
			writeResult(w, match.ResultRegeneratingWorld)
			return
		}
		if err := s.Resetter.SaveSnapshot(m.World()); err != nil {
			s.Logger.WithError(err).Error("snapshot save failed")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// hostEvent is a gameplay event reported by the arena host: bed breaks,
// eliminations, block placements.
type hostEvent struct {
	Type     string          `json:"type"`
	Player   *uuid.UUID      `json:"player,omitempty"`
	Attacker *uuid.UUID      `json:"attacker,omitempty"`
	Team     string          `json:"team,omitempty"`
	Dropped  []models.Item   `json:"dropped,omitempty"`
	Block    models.BlockPos `json:"block,omitempty"`
}

// HostEventHandler ingests gameplay events from the arena host. Admin token
// required since these drive match state.
func (s *MatchServer) HostEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}
		m, ok := s.findMatch(w, r)
		if !ok {
			return
		}
		var ev hostEvent
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			http.Error(w, "bad event payload", http.StatusBadRequest)
			return
		}
		switch ev.Type {
		case "bed_destroyed":
			team, ok := match.ParseTeam(ev.Team)
			if !ok {
				http.Error(w, "unknown team", http.StatusBadRequest)
				return
			}
			m.OnObjectiveDestroyed(team, ev.Attacker)
		case "player_eliminated":
			if ev.Player == nil {
				http.Error(w, "missing player", http.StatusBadRequest)
				return
			}
			m.OnPlayerEliminated(*ev.Player, ev.Dropped)
		case "block_placed":
			m.RecordPlacedBlock(ev.Block)
		case "sweep":
			m.Update()
		default:
			http.Error(w, "unknown event type", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}
