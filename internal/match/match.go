package match

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bedwars/internal/models"
)

// Phase is the match lifecycle state.
type Phase int32

const (
	PhaseLobby Phase = iota
	PhaseStarting
	PhaseStarted
	PhaseRegenerating
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseStarting:
		return "starting"
	case PhaseStarted:
		return "started"
	case PhaseRegenerating:
		return "regenerating_world"
	default:
		return "unknown"
	}
}

// Running reports whether the phase counts as an active game for admission
// and world-exclusivity checks.
func (p Phase) Running() bool {
	return p == PhaseStarting || p == PhaseStarted
}

const (
	startCountdownSeconds   = 10
	respawnCountdownSeconds = 5
)

// Match owns the full mutable state of one arena's game: phase, rosters,
// countdowns, bed status, and timers. All mutation happens under mu; timer
// callbacks re-acquire it and re-validate state before acting. Collaborator
// fields are set once at wiring time, before the match handles any traffic.
type Match struct {
	ID   uuid.UUID
	Name string

	// worldName is the arena identity, fixed at construction. Config
	// reloads may change spawn points and limits but never the world.
	worldName string

	mu        sync.Mutex
	phase     atomic.Int32 // mirrors the locked phase for lock-free reads
	countdown int
	startedAt time.Time
	lobby     map[uuid.UUID]struct{}
	teams     map[Team]map[uuid.UUID]struct{}
	// roundPlayers is everyone who entered the round at start time. The
	// recorded result lists these, not just whoever was left at the end.
	roundPlayers []uuid.UUID
	beds         map[Team]bool
	placed       map[models.BlockPos]struct{}
	preJoin      map[uuid.UUID]models.PlayerState
	cfg          models.MatchConfig

	startTask    *ticker
	respawnTasks map[uuid.UUID]*ticker

	// TickInterval is the countdown tick period. Overridden in tests.
	TickInterval time.Duration

	Players  PlayerService
	Worlds   Resetter
	Configs  ConfigStore
	Spawners SpawnerService

	// WorldBusyFn answers whether another running match occupies this
	// match's world. Set by the Registry when the match is added.
	WorldBusyFn func() bool
	// CapacityFn is an external admission check (party size). A false
	// return rejects the join with TooManyPlayers.
	CapacityFn func(id uuid.UUID) bool
	// JournalFn receives lifecycle events. Must not call back into the match.
	JournalFn func(ev Event)
	// ScoreboardFn is notified after state changes so display subsystems can
	// refresh. Must not call back into the match.
	ScoreboardFn func(*Match)
	// RecordResultFn persists a finished round's outcome. Invoked on its own
	// goroutine.
	RecordResultFn func(winner Team, winnerPlayer uuid.UUID, duration time.Duration, participants []uuid.UUID)

	Log *logrus.Logger
}

// NewMatch builds a match in the Lobby phase for one arena configuration.
func NewMatch(name string, cfg models.MatchConfig) *Match {
	id, _ := uuid.NewRandom()
	m := &Match{
		ID:           id,
		Name:         name,
		worldName:    cfg.World,
		lobby:        make(map[uuid.UUID]struct{}),
		teams:        make(map[Team]map[uuid.UUID]struct{}),
		beds:         make(map[Team]bool),
		placed:       make(map[models.BlockPos]struct{}),
		preJoin:      make(map[uuid.UUID]models.PlayerState),
		respawnTasks: make(map[uuid.UUID]*ticker),
		cfg:          cfg,
		TickInterval: time.Second,
		Log:          logrus.StandardLogger(),
	}
	m.phase.Store(int32(PhaseLobby))
	return m
}

// Phase returns the current lifecycle phase without taking the match lock.
func (m *Match) Phase() Phase {
	return Phase(m.phase.Load())
}

// IsRunning reports whether the match is in Starting or Started.
func (m *Match) IsRunning() bool {
	return m.Phase().Running()
}

// World returns the arena world backing this match. Lock-free: the world
// identity never changes after construction, so the registry can consult it
// without risking lock-order inversion with the match mutex.
func (m *Match) World() string {
	return m.worldName
}

// Config returns a copy of the loaded configuration record.
func (m *Match) Config() models.MatchConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg
}

// ReloadConfig re-reads the arena's configuration record from the store.
// External edits take effect from the next operation onward.
func (m *Match) ReloadConfig() error {
	if m.Configs == nil {
		return nil
	}
	cfg, err := m.Configs.LoadMatchConfig(m.World())
	if err != nil {
		return fmt.Errorf("reload config for %q: %w", m.Name, err)
	}
	m.mu.Lock()
	m.cfg = *cfg
	m.cfg.World = m.worldName // arena identity is fixed
	m.mu.Unlock()
	return nil
}

func (m *Match) setPhaseLocked(p Phase) {
	m.phase.Store(int32(p))
}

func (m *Match) phaseLocked() Phase {
	return Phase(m.phase.Load())
}

// TryStart begins the start countdown. With force set, the minimum player
// requirement is waived.
func (m *Match) TryStart(force bool) Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tryStartLocked(force)
}

func (m *Match) tryStartLocked(force bool) Result {
	if r := m.canStartLocked(force); r != ResultSuccess {
		return r
	}
	m.cancelStartTaskLocked()
	m.setPhaseLocked(PhaseStarting)
	m.countdown = startCountdownSeconds
	m.Log.WithField("match", m.Name).Info("match is starting")
	m.notifyScoreboard()
	m.startTask = startTicker(m.tickInterval(), m.startTick)
	return ResultSuccess
}

func (m *Match) canStartLocked(force bool) Result {
	m.updateLocked()
	if m.phaseLocked().Running() {
		return ResultGameRunning
	}
	if m.WorldBusyFn != nil && m.WorldBusyFn() {
		return ResultGameInWorld
	}
	if !force && len(m.lobby) < m.cfg.MinPlayers {
		return ResultNotEnoughPlayers
	}
	if m.phaseLocked() == PhaseRegenerating {
		return ResultRegeneratingWorld
	}
	return ResultSuccess
}

// startTick drives the start countdown. State is re-checked under the lock
// every tick: the match may have been force-stopped or the countdown
// cancelled between arming and firing.
func (m *Match) startTick(self *ticker) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phaseLocked() != PhaseStarting || m.startTask != self {
		return false
	}
	if m.countdown < 1 {
		m.startTask = nil
		m.startedLocked()
		return false
	}
	m.broadcastLocked(fmt.Sprintf("Starting in %d", m.countdown))
	m.notifyScoreboard()
	m.countdown--
	return true
}

// startedLocked transitions Starting -> Started: team assignment, bed setup,
// spawn teleports, and starting kits.
func (m *Match) startedLocked() {
	order := make([]uuid.UUID, 0, len(m.lobby))
	for id := range m.lobby {
		order = append(order, id)
	}
	rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	teams := Teams()
	for i, id := range order {
		team := teams[i%len(teams)]
		if m.teams[team] == nil {
			m.teams[team] = make(map[uuid.UUID]struct{})
		}
		m.teams[team][id] = struct{}{}
	}
	m.lobby = make(map[uuid.UUID]struct{})
	m.roundPlayers = append([]uuid.UUID(nil), order...)

	for _, ts := range m.cfg.Teams {
		if team, ok := ParseTeam(ts.Team); ok {
			m.beds[team] = true
		}
	}
	for team := range m.teams {
		m.beds[team] = true
	}

	for team, roster := range m.teams {
		spawn, ok := m.cfg.SpawnFor(team.String())
		if !ok {
			m.Log.WithFields(logrus.Fields{"match": m.Name, "team": team}).
				Warn("no spawn configured for team")
			continue
		}
		for id := range roster {
			m.players().Teleport(id, spawn)
		}
	}

	m.setPhaseLocked(PhaseStarted)
	m.startedAt = time.Now()
	m.notifyScoreboard()
	if m.Spawners != nil {
		m.Spawners.Start()
	}
	for team, roster := range m.teams {
		for id := range roster {
			m.giveKitLocked(id, team, nil)
		}
	}
	m.broadcastLocked("The game started!")
	m.journal(Event{Type: EventMatchStart})
	m.Log.WithField("match", m.Name).Info("match started")
}

// Update is the idempotent consistency sweep, safe to call after any external
// event. It prunes disconnected players, converts empty rosters into bed
// destruction, and detects win or abandonment.
func (m *Match) Update() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateLocked()
}

func (m *Match) updateLocked() {
	switch m.phaseLocked() {
	case PhaseStarting:
		if len(m.lobby) >= m.cfg.MinPlayers {
			return
		}
		m.setPhaseLocked(PhaseLobby)
		m.cancelStartTaskLocked()
		m.notifyScoreboard()
		return
	case PhaseStarted:
	default:
		return
	}

	teamList := make([]Team, 0, len(m.teams))
	for team := range m.teams {
		teamList = append(teamList, team)
	}
	for _, team := range teamList {
		roster := m.teams[team]
		for id := range roster {
			if !m.players().IsOnline(id) {
				delete(roster, id)
			}
		}
		if m.beds[team] && len(roster) == 0 {
			m.bedDestroyedLocked(team, nil)
			if m.phaseLocked() != PhaseStarted {
				return
			}
		}
	}

	// Empty-match check must precede the sole-survivor check.
	in := m.playersInGameLocked()
	if len(in) == 0 {
		m.forceStopLocked(nil)
		return
	}
	if len(in) == 1 {
		winner := in[0]
		if team, ok := m.teamOfLocked(winner); ok {
			m.stopLocked(winner, team)
		}
	}
}

// AddPlayer admits a player into the waiting lobby, capturing their pre-join
// state first so it can be restored on exit. Reaching the minimum player
// count triggers a best-effort start.
func (m *Match) AddPlayer(id uuid.UUID) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p := m.phaseLocked(); p != PhaseLobby && p != PhaseStarting {
		if p.Running() {
			return ResultGameRunning
		}
		return ResultGameStopped
	}
	// A repeated join is a no-op. Re-capturing the snapshot here would
	// overwrite the real pre-join state with the lobby point.
	if _, ok := m.lobby[id]; ok {
		return ResultSuccess
	}
	if len(m.lobby) >= m.cfg.MaxPlayers {
		return ResultTooManyPlayers
	}
	if m.CapacityFn != nil && !m.CapacityFn(id) {
		return ResultTooManyPlayers
	}

	if st, ok := m.players().State(id); ok {
		snap := st.Clone()
		m.preJoin[id] = snap
		if m.Configs != nil {
			go func() {
				if err := m.Configs.SavePlayerSnapshot(m.ID, snap); err != nil {
					m.Log.WithError(err).Warn("failed to persist pre-join snapshot")
				}
			}()
		}
	}

	m.lobby[id] = struct{}{}
	m.players().SetGameMode(id, models.ModeSurvival)
	m.players().ClearInventory(id)
	m.players().Teleport(id, m.cfg.Lobby)
	m.broadcastLocked(fmt.Sprintf("%s has joined the game! %d/%d",
		m.players().Name(id), len(m.lobby), m.cfg.MaxPlayers))
	pid := id
	m.journal(Event{Type: EventPlayerJoin, Player: &pid})
	m.notifyScoreboard()

	if len(m.lobby) >= m.cfg.MinPlayers {
		m.tryStartLocked(false) // best-effort; the join itself succeeded
	}
	return ResultSuccess
}

// LeavePlayer removes a player from the lobby or their roster and restores
// their pre-join state. With triggerUpdate set, a consistency sweep runs
// synchronously afterwards, so a caller observing the leave has already
// observed any consequent bed destruction or forced stop.
func (m *Match) LeavePlayer(id uuid.UUID, triggerUpdate bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaveLocked(id, triggerUpdate)
}

func (m *Match) leaveLocked(id uuid.UUID, triggerUpdate bool) {
	m.restoreLocked(id)

	switch m.phaseLocked() {
	case PhaseLobby, PhaseStarting:
		if _, ok := m.lobby[id]; !ok {
			return
		}
		delete(m.lobby, id)
		m.notifyScoreboard()
		m.broadcastLocked(fmt.Sprintf("%s has left the game! %d/%d",
			m.players().Name(id), len(m.lobby), m.cfg.MaxPlayers))
		pid := id
		m.journal(Event{Type: EventPlayerLeave, Player: &pid})
		if len(m.lobby) < m.cfg.MinPlayers && m.phaseLocked() == PhaseStarting {
			m.cancelStartTaskLocked()
			m.setPhaseLocked(PhaseLobby)
			m.broadcastLocked("Cancelled - not enough players to start!")
		}
	case PhaseStarted:
		team, ok := m.teamOfLocked(id)
		if !ok {
			return
		}
		delete(m.teams[team], id)
		m.cancelRespawnLocked(id)
		m.notifyScoreboard()
		m.broadcastLocked(fmt.Sprintf("%s has left the game!", m.players().Name(id)))
		pid := id
		m.journal(Event{Type: EventPlayerLeave, Player: &pid, Team: team.String()})
		if triggerUpdate {
			m.updateLocked()
		}
	}
}

// restoreLocked puts the player back into their captured pre-join state.
func (m *Match) restoreLocked(id uuid.UUID) {
	st, ok := m.preJoin[id]
	if !ok {
		return
	}
	m.players().Restore(id, st)
	delete(m.preJoin, id)
	if m.Configs != nil {
		go func() {
			if err := m.Configs.DeletePlayerSnapshot(m.ID, id); err != nil {
				m.Log.WithError(err).Warn("failed to delete persisted snapshot")
			}
		}()
	}
}

// OnObjectiveDestroyed marks a team's bed as destroyed. Idempotent: a second
// call for the same team is a no-op. attacker is nil for environmental
// destruction (e.g. the whole team disconnected).
func (m *Match) OnObjectiveDestroyed(team Team, attacker *uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bedDestroyedLocked(team, attacker)
}

func (m *Match) bedDestroyedLocked(team Team, attacker *uuid.UUID) {
	if !m.beds[team] {
		return
	}
	m.beds[team] = false
	m.notifyScoreboard()
	for id := range m.teams[team] {
		m.players().ShowTitle(id, Title{
			Title:    "BED DESTROYED!",
			Subtitle: "You will no longer respawn!",
			Stay:     3 * time.Second,
		})
	}
	if attacker == nil {
		m.broadcastLocked(fmt.Sprintf("BED DESTRUCTION > %s's bed was destroyed!",
			team.DisplayName()))
	} else {
		m.broadcastLocked(fmt.Sprintf("BED DESTRUCTION > %s's bed was destroyed by %s!",
			team.DisplayName(), m.players().Name(*attacker)))
	}
	m.journal(Event{Type: EventBedDestroyed, Team: team.String(), Player: attacker})
	m.updateLocked()
}

// OnPlayerEliminated handles a death. Players whose bed is gone leave
// permanently; everyone else spectates for five seconds and respawns at their
// team base with a kit seeded from what they dropped.
func (m *Match) OnPlayerEliminated(id uuid.UUID, dropped []models.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()

	team, ok := m.teamOfLocked(id)
	if !ok {
		return
	}
	if !m.beds[team] {
		m.leaveLocked(id, true)
		return
	}

	m.players().ClearInventory(id)
	m.players().SetGameMode(id, models.ModeSpectator)
	m.players().Teleport(id, m.cfg.Spectator)
	m.cancelRespawnLocked(id)

	remaining := respawnCountdownSeconds
	m.showRespawnTitle(id, remaining)
	remaining--
	m.respawnTasks[id] = startTicker(m.tickInterval(), func(self *ticker) bool {
		return m.respawnTick(id, team, dropped, &remaining, self)
	})
}

func (m *Match) respawnTick(id uuid.UUID, team Team, dropped []models.Item, remaining *int, self *ticker) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phaseLocked() != PhaseStarted || m.respawnTasks[id] != self {
		return false
	}
	if _, onTeam := m.teams[team][id]; !onTeam {
		delete(m.respawnTasks, id)
		return false
	}
	if *remaining <= 0 {
		delete(m.respawnTasks, id)
		if spawn, ok := m.cfg.SpawnFor(team.String()); ok {
			m.players().Teleport(id, spawn)
		}
		m.players().SetGameMode(id, models.ModeSurvival)
		m.players().ShowTitle(id, Title{Title: "Respawned!", Stay: 2 * time.Second})
		m.giveKitLocked(id, team, dropped)
		return false
	}
	m.showRespawnTitle(id, *remaining)
	*remaining--
	return true
}

func (m *Match) showRespawnTitle(id uuid.UUID, seconds int) {
	m.players().ShowTitle(id, Title{
		Title:    "You died!",
		Subtitle: fmt.Sprintf("Respawning in %d", seconds),
		Stay:     1250 * time.Millisecond,
	})
}

func (m *Match) giveKitLocked(id uuid.UUID, team Team, dropped []models.Item) {
	m.players().ClearInventory(id)
	m.players().Give(id, RespawnKit(team, dropped))
}

// stopLocked announces the winner, records the result, and force-stops.
func (m *Match) stopLocked(winner uuid.UUID, team Team) {
	duration := time.Since(m.startedAt)
	participants := append([]uuid.UUID(nil), m.roundPlayers...)
	m.broadcastLocked(fmt.Sprintf("%s has won BedWars!", m.players().Name(winner)))
	wid := winner
	m.journal(Event{Type: EventMatchWin, Player: &wid, Team: team.String()})
	if m.RecordResultFn != nil {
		go m.RecordResultFn(team, winner, duration, participants)
	}
	m.forceStopLocked(nil)
}

// ForceStop tears down the current round regardless of phase, restores every
// in-match player, and kicks off the world reset pipeline. onDone runs after
// the arena is back in Lobby.
func (m *Match) ForceStop(onDone func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forceStopLocked(onDone)
}

func (m *Match) forceStopLocked(onDone func()) {
	for _, id := range m.playersInGameLocked() {
		m.leaveLocked(id, false)
	}
	// Stale timers must die before state is cleared; a surviving tick could
	// otherwise resurrect an emptied roster.
	m.cancelStartTaskLocked()
	for id, t := range m.respawnTasks {
		t.Cancel()
		delete(m.respawnTasks, id)
	}
	for id := range m.preJoin {
		m.restoreLocked(id)
	}
	m.lobby = make(map[uuid.UUID]struct{})
	m.teams = make(map[Team]map[uuid.UUID]struct{})
	m.roundPlayers = nil
	m.beds = make(map[Team]bool)
	m.placed = make(map[models.BlockPos]struct{})
	m.preJoin = make(map[uuid.UUID]models.PlayerState)
	m.startedAt = time.Time{}
	m.countdown = 0
	if m.Spawners != nil {
		m.Spawners.Reset()
	}
	m.setPhaseLocked(PhaseRegenerating)
	m.journal(Event{Type: EventMatchStop})
	m.notifyScoreboard()

	if m.Worlds == nil {
		m.setPhaseLocked(PhaseLobby)
		if onDone != nil {
			onDone()
		}
		return
	}

	m.Log.WithField("match", m.Name).Info("regenerating world")
	m.Worlds.Regenerate(m.cfg.World, func(err error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if err != nil {
			// Left in Regenerating deliberately: the stuck state is
			// observable for operator intervention.
			m.Log.WithError(err).WithField("match", m.Name).
				Error("world regeneration failed")
			return
		}
		m.setPhaseLocked(PhaseLobby)
		m.journal(Event{Type: EventWorldReset})
		m.notifyScoreboard()
		m.Log.WithField("match", m.Name).Info("world regenerated")
		if onDone != nil {
			onDone()
		}
	})
}

// RecordPlacedBlock tracks a block placed during the round for rollback
// bookkeeping, supplementary to the full snapshot restore.
func (m *Match) RecordPlacedBlock(pos models.BlockPos) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phaseLocked() == PhaseStarted {
		m.placed[pos] = struct{}{}
	}
}

// WasPlaced reports whether a block position was placed during this round.
func (m *Match) WasPlaced(pos models.BlockPos) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.placed[pos]
	return ok
}

// --- read-only queries ---

// Countdown returns the seconds remaining in the start countdown.
func (m *Match) Countdown() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countdown
}

// Elapsed returns how long the current round has been running.
func (m *Match) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.startedAt.IsZero() {
		return 0
	}
	return time.Since(m.startedAt)
}

// Roster returns a copy of the team membership map.
func (m *Match) Roster() map[Team][]uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[Team][]uuid.UUID, len(m.teams))
	for team, roster := range m.teams {
		ids := make([]uuid.UUID, 0, len(roster))
		for id := range roster {
			ids = append(ids, id)
		}
		out[team] = ids
	}
	return out
}

// BedsAlive returns a copy of the per-team objective status.
func (m *Match) BedsAlive() map[Team]bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[Team]bool, len(m.beds))
	for team, alive := range m.beds {
		out[team] = alive
	}
	return out
}

// PlayersInGame returns every player currently in the match: the lobby set
// pre-start, the combined rosters mid-round, nothing while regenerating.
func (m *Match) PlayersInGame() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playersInGameLocked()
}

func (m *Match) playersInGameLocked() []uuid.UUID {
	switch m.phaseLocked() {
	case PhaseLobby, PhaseStarting:
		out := make([]uuid.UUID, 0, len(m.lobby))
		for id := range m.lobby {
			out = append(out, id)
		}
		return out
	case PhaseStarted:
		var out []uuid.UUID
		for _, roster := range m.teams {
			for id := range roster {
				out = append(out, id)
			}
		}
		return out
	default:
		return nil
	}
}

// TeamOf returns the team a player is assigned to, if any.
func (m *Match) TeamOf(id uuid.UUID) (Team, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.teamOfLocked(id)
}

func (m *Match) teamOfLocked(id uuid.UUID) (Team, bool) {
	for team, roster := range m.teams {
		if _, ok := roster[id]; ok {
			return team, true
		}
	}
	return 0, false
}

// HasPlayer reports whether the player is anywhere in this match.
func (m *Match) HasPlayer(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lobby[id]; ok {
		return true
	}
	_, ok := m.teamOfLocked(id)
	return ok
}

// --- internals ---

// broadcastLocked sends a message to everyone currently in the match.
func (m *Match) broadcastLocked(text string) {
	for _, id := range m.playersInGameLocked() {
		m.players().Message(id, text)
	}
}

func (m *Match) cancelStartTaskLocked() {
	if m.startTask != nil {
		m.startTask.Cancel()
		m.startTask = nil
	}
}

func (m *Match) cancelRespawnLocked(id uuid.UUID) {
	if t, ok := m.respawnTasks[id]; ok {
		t.Cancel()
		delete(m.respawnTasks, id)
	}
}

func (m *Match) notifyScoreboard() {
	if m.ScoreboardFn != nil {
		m.ScoreboardFn(m)
	}
}

func (m *Match) tickInterval() time.Duration {
	if m.TickInterval > 0 {
		return m.TickInterval
	}
	return time.Second
}

func (m *Match) players() PlayerService {
	if m.Players != nil {
		return m.Players
	}
	return nopPlayers{}
}

// nopPlayers lets a match run headless (tests, tooling) without a session
// layer attached.
type nopPlayers struct{}

func (nopPlayers) IsOnline(uuid.UUID) bool                    { return false }
func (nopPlayers) Name(id uuid.UUID) string                   { return id.String() }
func (nopPlayers) State(uuid.UUID) (models.PlayerState, bool) { return models.PlayerState{}, false }
func (nopPlayers) Restore(uuid.UUID, models.PlayerState)      {}
func (nopPlayers) Teleport(uuid.UUID, models.Location)        {}
func (nopPlayers) SetGameMode(uuid.UUID, models.GameMode)     {}
func (nopPlayers) ClearInventory(uuid.UUID)                   {}
func (nopPlayers) Give(uuid.UUID, []models.Item)              {}
func (nopPlayers) Message(uuid.UUID, string)                  {}
func (nopPlayers) ShowTitle(uuid.UUID, Title)                 {}
