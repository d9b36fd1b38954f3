// internal/match/match_test.go
package match

import (
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bedwars/internal/models"
)

// fakePlayers records every directive the controller issues so tests can
// assert on broadcasts, teleports, and mode changes without a session layer.
type fakePlayers struct {
	mu        sync.Mutex
	offline   map[uuid.UUID]bool
	states    map[uuid.UUID]models.PlayerState
	messages  map[uuid.UUID][]string
	titles    map[uuid.UUID][]Title
	teleports map[uuid.UUID][]models.Location
	modes     map[uuid.UUID][]models.GameMode
	gives     map[uuid.UUID][][]models.Item
	restored  map[uuid.UUID]models.PlayerState
}

func newFakePlayers() *fakePlayers {
	return &fakePlayers{
		offline:   make(map[uuid.UUID]bool),
		states:    make(map[uuid.UUID]models.PlayerState),
		messages:  make(map[uuid.UUID][]string),
		titles:    make(map[uuid.UUID][]Title),
		teleports: make(map[uuid.UUID][]models.Location),
		modes:     make(map[uuid.UUID][]models.GameMode),
		gives:     make(map[uuid.UUID][][]models.Item),
		restored:  make(map[uuid.UUID]models.PlayerState),
	}
}

func (f *fakePlayers) setOffline(id uuid.UUID, off bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offline[id] = off
}

func (f *fakePlayers) IsOnline(id uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.offline[id]
}

func (f *fakePlayers) Name(id uuid.UUID) string { return id.String()[:8] }

func (f *fakePlayers) State(id uuid.UUID) (models.PlayerState, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.states[id]
	return st, ok
}

func (f *fakePlayers) Restore(id uuid.UUID, st models.PlayerState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restored[id] = st
}

func (f *fakePlayers) Teleport(id uuid.UUID, loc models.Location) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teleports[id] = append(f.teleports[id], loc)
}

func (f *fakePlayers) SetGameMode(id uuid.UUID, mode models.GameMode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.modes[id] = append(f.modes[id], mode)
}

func (f *fakePlayers) ClearInventory(id uuid.UUID) {}

func (f *fakePlayers) Give(id uuid.UUID, items []models.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gives[id] = append(f.gives[id], items)
}

func (f *fakePlayers) Message(id uuid.UUID, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[id] = append(f.messages[id], text)
}

func (f *fakePlayers) ShowTitle(id uuid.UUID, t Title) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titles[id] = append(f.titles[id], t)
}

func (f *fakePlayers) messagesContaining(id uuid.UUID, substr string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, msg := range f.messages[id] {
		if strings.Contains(msg, substr) {
			n++
		}
	}
	return n
}

func (f *fakePlayers) messagesEqual(id uuid.UUID, text string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, msg := range f.messages[id] {
		if msg == text {
			n++
		}
	}
	return n
}

func (f *fakePlayers) lastMode(id uuid.UUID) (models.GameMode, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	modes := f.modes[id]
	if len(modes) == 0 {
		return "", false
	}
	return modes[len(modes)-1], true
}

func (f *fakePlayers) giveCount(id uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.gives[id])
}

func (f *fakePlayers) restoredState(id uuid.UUID) (models.PlayerState, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.restored[id]
	return st, ok
}

// fakeResetter completes synchronously on its own goroutine, like the real
// pipeline but without the filesystem.
type fakeResetter struct {
	mu    sync.Mutex
	calls []string
	fail  error
}

func (f *fakeResetter) Regenerate(world string, done func(error)) {
	f.mu.Lock()
	f.calls = append(f.calls, world)
	err := f.fail
	f.mu.Unlock()
	go done(err)
}

func (f *fakeResetter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func testConfig() models.MatchConfig {
	loc := func(x float64) models.Location {
		return models.Location{World: "arena1", X: x, Y: 64, Z: 0}
	}
	return models.MatchConfig{
		World:      "arena1",
		MinPlayers: 2,
		MaxPlayers: 8,
		Lobby:      loc(0),
		Spectator:  loc(100),
		Teams: []models.TeamSpawn{
			{Team: "red", Spawn: loc(10)},
			{Team: "blue", Spawn: loc(20)},
			{Team: "green", Spawn: loc(30)},
			{Team: "yellow", Spawn: loc(40)},
		},
	}
}

// setupMatch builds a match over fakes with a fast tick for countdown tests.
func setupMatch(t *testing.T) (*Match, *fakePlayers) {
	t.Helper()
	fp := newFakePlayers()
	m := NewMatch("arena1", testConfig())
	m.Players = fp
	m.TickInterval = 2 * time.Millisecond
	return m, fp
}

func addPlayers(t *testing.T, m *Match, n int) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
		require.Equal(t, ResultSuccess, m.AddPlayer(ids[i]))
	}
	return ids
}

func waitForPhase(t *testing.T, m *Match, p Phase) {
	t.Helper()
	require.Eventually(t, func() bool {
		return m.Phase() == p
	}, 2*time.Second, time.Millisecond, "expected phase %v, still %v", p, m.Phase())
}

func TestAddPlayerLobbyAdmission(t *testing.T) {
	m, fp := setupMatch(t)

	id := uuid.New()
	require.Equal(t, ResultSuccess, m.AddPlayer(id))
	assert.Equal(t, PhaseLobby, m.Phase(), "one player is below the minimum")
	assert.True(t, m.HasPlayer(id))
	assert.Len(t, m.PlayersInGame(), 1)
	assert.Equal(t, 1, fp.messagesContaining(id, "has joined the game! 1/8"))
}

func TestAddPlayerLimits(t *testing.T) {
	cfg := testConfig()
	cfg.MinPlayers = 9 // keep the lobby from auto-starting
	m := NewMatch("arena1", cfg)
	m.Players = newFakePlayers()

	addPlayers(t, m, 8)
	assert.Equal(t, ResultTooManyPlayers, m.AddPlayer(uuid.New()))

	m2, _ := setupMatch(t)
	m2.CapacityFn = func(uuid.UUID) bool { return false }
	assert.Equal(t, ResultTooManyPlayers, m2.AddPlayer(uuid.New()))
}

func TestReachingMinimumArmsCountdown(t *testing.T) {
	m, _ := setupMatch(t)
	m.TickInterval = time.Hour // freeze the countdown mid-test

	addPlayers(t, m, 2)
	assert.Equal(t, PhaseStarting, m.Phase())
	assert.Equal(t, 10, m.Countdown())
}

func TestStartWhileRunningIsRejected(t *testing.T) {
	m, _ := setupMatch(t)
	m.TickInterval = time.Hour

	addPlayers(t, m, 2)
	require.Equal(t, PhaseStarting, m.Phase())

	r := m.TryStart(false)
	assert.Equal(t, ResultGameRunning, r)
	assert.Equal(t, "The game is currently running!", r.Message())

	id := uuid.New()
	assert.Equal(t, ResultGameRunning, m.AddPlayer(id))
	assert.False(t, m.HasPlayer(id))
}

func TestStartBelowMinimumRequiresForce(t *testing.T) {
	m, _ := setupMatch(t)
	m.TickInterval = time.Hour

	addPlayers(t, m, 1)
	assert.Equal(t, ResultNotEnoughPlayers, m.TryStart(false))
	assert.Equal(t, PhaseLobby, m.Phase())

	assert.Equal(t, ResultSuccess, m.TryStart(true))
	assert.Equal(t, PhaseStarting, m.Phase())
}

func TestCountdownRunsToStart(t *testing.T) {
	m, fp := setupMatch(t)

	ids := addPlayers(t, m, 2)
	waitForPhase(t, m, PhaseStarted)

	// Ten announcements, 10 down to 1, then the start message.
	for i := 10; i >= 1; i-- {
		assert.Equal(t, 1, fp.messagesEqual(ids[0], "Starting in "+strconv.Itoa(i)),
			"countdown announcement for %d", i)
	}
	assert.Equal(t, 1, fp.messagesContaining(ids[0], "The game started!"))
}

func TestCountdownCancelledWhenLobbyShrinks(t *testing.T) {
	m, fp := setupMatch(t)
	m.TickInterval = time.Hour

	ids := addPlayers(t, m, 2)
	require.Equal(t, PhaseStarting, m.Phase())

	m.LeavePlayer(ids[1], true)
	assert.Equal(t, PhaseLobby, m.Phase())
	assert.Equal(t, 1, fp.messagesContaining(ids[0], "Cancelled - not enough players to start!"))

	// Rejoining re-arms a fresh countdown.
	require.Equal(t, ResultSuccess, m.AddPlayer(ids[1]))
	assert.Equal(t, PhaseStarting, m.Phase())
	assert.Equal(t, 10, m.Countdown())
}

func TestTeamAssignmentIsBalanced(t *testing.T) {
	m, _ := setupMatch(t)

	addPlayers(t, m, 6)
	waitForPhase(t, m, PhaseStarted)

	roster := m.Roster()
	total := 0
	for team, ids := range roster {
		assert.LessOrEqual(t, len(ids), 2, "team %v over-filled", team)
		assert.GreaterOrEqual(t, len(ids), 1, "team %v empty", team)
		total += len(ids)
	}
	assert.Equal(t, 6, total)

	for team, alive := range m.BedsAlive() {
		assert.True(t, alive, "team %v bed should start alive", team)
	}
}

func TestBedDestructionIsIdempotent(t *testing.T) {
	m, fp := setupMatch(t)

	ids := addPlayers(t, m, 4)
	waitForPhase(t, m, PhaseStarted)

	roster := m.Roster()
	var victim Team
	var victimID uuid.UUID
	var attackerID uuid.UUID
	for team, members := range roster {
		if len(members) > 0 && victimID == uuid.Nil {
			victim = team
			victimID = members[0]
		} else if len(members) > 0 {
			attackerID = members[0]
		}
	}
	require.NotEqual(t, uuid.Nil, victimID)
	require.NotEqual(t, uuid.Nil, attackerID)

	m.OnObjectiveDestroyed(victim, &attackerID)
	m.OnObjectiveDestroyed(victim, &attackerID)

	assert.False(t, m.BedsAlive()[victim])
	assert.Equal(t, 1, fp.messagesContaining(ids[0], "bed was destroyed by"),
		"second destruction must not re-broadcast")

	fp.mu.Lock()
	titles := len(fp.titles[victimID])
	fp.mu.Unlock()
	assert.Equal(t, 1, titles, "victim sees one BED DESTROYED title")
}

func TestEliminationWithBedSchedulesRespawn(t *testing.T) {
	m, fp := setupMatch(t)

	addPlayers(t, m, 4)
	waitForPhase(t, m, PhaseStarted)

	roster := m.Roster()
	var id uuid.UUID
	var team Team
	for tm, members := range roster {
		if len(members) > 0 {
			team = tm
			id = members[0]
			break
		}
	}

	before := fp.giveCount(id)
	dropped := []models.Item{{Type: "IRON_BOOTS", Count: 1}}
	m.OnPlayerEliminated(id, dropped)

	mode, ok := fp.lastMode(id)
	require.True(t, ok)
	assert.Equal(t, models.ModeSpectator, mode)

	require.Eventually(t, func() bool {
		mode, _ := fp.lastMode(id)
		return mode == models.ModeSurvival
	}, 2*time.Second, time.Millisecond, "player should respawn")

	assert.Equal(t, before+1, fp.giveCount(id), "respawn grants one kit")
	fp.mu.Lock()
	kit := fp.gives[id][len(fp.gives[id])-1]
	fp.mu.Unlock()
	assert.Contains(t, kit, models.Item{Type: "IRON_LEGGINGS", Count: 1})
	_, stillOn := m.TeamOf(id)
	assert.True(t, stillOn, "respawned player stays on team %v", team)
}

func TestEliminationWithoutBedIsFinal(t *testing.T) {
	m, _ := setupMatch(t)

	addPlayers(t, m, 4)
	waitForPhase(t, m, PhaseStarted)

	roster := m.Roster()
	var id uuid.UUID
	var team Team
	for tm, members := range roster {
		if len(members) > 0 {
			team = tm
			id = members[0]
			break
		}
	}

	m.OnObjectiveDestroyed(team, nil)
	m.OnPlayerEliminated(id, nil)

	assert.False(t, m.HasPlayer(id), "no bed means permanent elimination")
}

func TestSoleSurvivorWins(t *testing.T) {
	m, fp := setupMatch(t)

	ids := addPlayers(t, m, 2)
	waitForPhase(t, m, PhaseStarted)

	m.LeavePlayer(ids[0], true)

	// No world resetter wired, so the match settles straight back to Lobby.
	waitForPhase(t, m, PhaseLobby)
	assert.Equal(t, 1, fp.messagesContaining(ids[1], "has won BedWars!"))
	assert.Empty(t, m.PlayersInGame())
}

func TestDisconnectSweepDestroysBedAndEndsMatch(t *testing.T) {
	m, fp := setupMatch(t)

	ids := addPlayers(t, m, 2)
	waitForPhase(t, m, PhaseStarted)

	lonely := ids[0]
	survivor := ids[1]
	fp.setOffline(lonely, true)

	m.Update()

	waitForPhase(t, m, PhaseLobby)
	assert.Equal(t, 1, fp.messagesContaining(survivor, "bed was destroyed!"),
		"the abandoned team's bed breaks unattributed")
	assert.Equal(t, 1, fp.messagesContaining(survivor, "has won BedWars!"))
}

func TestForceStopDuringCountdown(t *testing.T) {
	m, _ := setupMatch(t)
	m.TickInterval = time.Hour

	ids := addPlayers(t, m, 2)
	require.Equal(t, PhaseStarting, m.Phase())

	done := make(chan struct{})
	m.ForceStop(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("onDone never fired")
	}
	assert.Equal(t, PhaseLobby, m.Phase())
	assert.Empty(t, m.PlayersInGame())
	assert.Equal(t, 0, m.Countdown())
	for _, id := range ids {
		assert.False(t, m.HasPlayer(id))
	}
}

func TestForceStopTriggersWorldReset(t *testing.T) {
	m, _ := setupMatch(t)
	fr := &fakeResetter{}
	m.Worlds = fr

	addPlayers(t, m, 2)
	waitForPhase(t, m, PhaseStarted)

	m.ForceStop(nil)
	waitForPhase(t, m, PhaseLobby)
	assert.Equal(t, 1, fr.callCount())
}

func TestFailedResetLeavesMatchRegenerating(t *testing.T) {
	m, _ := setupMatch(t)
	fr := &fakeResetter{fail: assert.AnError}
	m.Worlds = fr

	addPlayers(t, m, 2)
	waitForPhase(t, m, PhaseStarted)

	m.ForceStop(nil)
	require.Eventually(t, func() bool { return fr.callCount() == 1 },
		time.Second, time.Millisecond)
	// The stuck phase is deliberate; joining and starting stay rejected.
	assert.Equal(t, PhaseRegenerating, m.Phase())
	assert.Equal(t, ResultGameStopped, m.AddPlayer(uuid.New()))
	assert.Equal(t, ResultRegeneratingWorld, m.TryStart(true))
}

func TestPreJoinStateRestoredOnLeave(t *testing.T) {
	m, fp := setupMatch(t)
	m.TickInterval = time.Hour

	id := uuid.New()
	orig := models.PlayerState{
		ID:        id,
		Location:  models.Location{World: "hub", X: 1, Y: 2, Z: 3},
		GameMode:  models.ModeSurvival,
		Inventory: []models.Item{{Type: "DIAMOND_SWORD", Count: 1}},
	}
	fp.mu.Lock()
	fp.states[id] = orig
	fp.mu.Unlock()

	require.Equal(t, ResultSuccess, m.AddPlayer(id))
	m.LeavePlayer(id, true)

	got, ok := fp.restoredState(id)
	require.True(t, ok, "leaving must restore the captured state")
	assert.Equal(t, orig.Location, got.Location)
	assert.Equal(t, orig.Inventory, got.Inventory)
}

func TestDuplicateJoinKeepsPreJoinSnapshot(t *testing.T) {
	m, fp := setupMatch(t)
	m.TickInterval = time.Hour

	id := uuid.New()
	orig := models.PlayerState{
		ID:       id,
		Location: models.Location{World: "hub", X: 1, Y: 2, Z: 3},
		GameMode: models.ModeSurvival,
	}
	fp.mu.Lock()
	fp.states[id] = orig
	fp.mu.Unlock()

	require.Equal(t, ResultSuccess, m.AddPlayer(id))

	// The session layer now reports the lobby point as the current state.
	// A repeated join must not re-capture it over the real snapshot.
	fp.mu.Lock()
	fp.states[id] = models.PlayerState{ID: id, Location: m.Config().Lobby}
	fp.mu.Unlock()

	assert.Equal(t, ResultSuccess, m.AddPlayer(id))
	assert.Len(t, m.PlayersInGame(), 1, "repeated join does not duplicate the player")
	assert.Equal(t, 1, fp.messagesContaining(id, "has joined the game!"),
		"repeated join does not re-broadcast")

	m.LeavePlayer(id, true)
	got, ok := fp.restoredState(id)
	require.True(t, ok)
	assert.Equal(t, orig.Location, got.Location, "the first capture survives")
}

func TestRecordedResultListsAllRoundParticipants(t *testing.T) {
	m, _ := setupMatch(t)

	recorded := make(chan []uuid.UUID, 1)
	m.RecordResultFn = func(winner Team, winnerPlayer uuid.UUID, duration time.Duration, participants []uuid.UUID) {
		recorded <- participants
	}

	ids := addPlayers(t, m, 4)
	waitForPhase(t, m, PhaseStarted)

	// Everyone but one leaves; the result still names the whole round.
	for _, id := range ids[:3] {
		m.LeavePlayer(id, true)
	}
	waitForPhase(t, m, PhaseLobby)

	select {
	case participants := <-recorded:
		assert.ElementsMatch(t, ids, participants)
	case <-time.After(time.Second):
		t.Fatal("result was never recorded")
	}
}

func TestPlacedBlocksTrackedOnlyWhileStarted(t *testing.T) {
	m, _ := setupMatch(t)
	pos := models.BlockPos{World: "arena1", X: 5, Y: 70, Z: 5}

	m.RecordPlacedBlock(pos)
	assert.False(t, m.WasPlaced(pos), "lobby placements are not round state")

	addPlayers(t, m, 2)
	waitForPhase(t, m, PhaseStarted)

	m.RecordPlacedBlock(pos)
	assert.True(t, m.WasPlaced(pos))

	m.ForceStop(nil)
	waitForPhase(t, m, PhaseLobby)
	assert.False(t, m.WasPlaced(pos), "round state clears on stop")
}

func TestJournalEmitsLifecycleEvents(t *testing.T) {
	m, _ := setupMatch(t)

	var mu sync.Mutex
	var types []EventType
	m.JournalFn = func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		types = append(types, ev.Type)
		assert.Equal(t, m.ID, ev.MatchID)
		assert.Equal(t, "arena1", ev.World)
		assert.NotZero(t, ev.Timestamp)
	}

	ids := addPlayers(t, m, 2)
	waitForPhase(t, m, PhaseStarted)
	m.LeavePlayer(ids[0], true)
	waitForPhase(t, m, PhaseLobby)

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, types, EventPlayerJoin)
	assert.Contains(t, types, EventMatchStart)
	assert.Contains(t, types, EventMatchWin)
	assert.Contains(t, types, EventMatchStop)
}
