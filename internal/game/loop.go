package game

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"tilecaster/internal/input"
	"tilecaster/internal/world"
)

const InputChanSize = 256

// GameState is a snapshot sent to each session for rendering.
type GameState struct {
	Players []PlayerSnapshot
	World   *World
	Tick    uint64
}

// Player returns the snapshot for id, if present.
func (s GameState) Player(id string) (PlayerSnapshot, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerSnapshot{}, false
}

// RenderChan is the per-session channel that receives game state snapshots.
type RenderChan chan GameState

// LoopConfig controls the pace of the loop and how input is held.
type LoopConfig struct {
	TickRate   int
	HoldFrames int
	Tuning     Tuning
}

// GameLoop is the central game loop singleton.
type GameLoop struct {
	world     *World
	cfg       LoopConfig
	inputCh   chan InputEvent
	tickCount uint64

	mu          sync.RWMutex
	players     map[string]*Player
	renderChans map[string]RenderChan
	spectators  map[string]RenderChan
	saved       map[string]world.Pose // keyed by username

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewGameLoop creates and returns a new game loop.
func NewGameLoop(w *World, cfg LoopConfig) *GameLoop {
	if cfg.TickRate < 1 {
		cfg.TickRate = DefaultTickRate
	}
	return &GameLoop{
		world:       w,
		cfg:         cfg,
		inputCh:     make(chan InputEvent, InputChanSize),
		players:     make(map[string]*Player),
		renderChans: make(map[string]RenderChan),
		spectators:  make(map[string]RenderChan),
		saved:       make(map[string]world.Pose),
		stopCh:      make(chan struct{}),
	}
}

// World returns the world the loop simulates.
func (gl *GameLoop) World() *World {
	return gl.world
}

// TickRate returns the configured ticks per second.
func (gl *GameLoop) TickRate() int {
	return gl.cfg.TickRate
}

// InputChan returns the shared input channel for sessions to send events.
func (gl *GameLoop) InputChan() chan<- InputEvent {
	return gl.inputCh
}

// AddPlayer registers a player using their username as identity.
// If the username was seen before, the last pose is restored.
// Returns the effective player ID and the render channel.
func (gl *GameLoop) AddPlayer(name string) (string, RenderChan) {
	gl.mu.Lock()
	defer gl.mu.Unlock()

	// If this username is already online, add a suffix
	id := name
	if _, online := gl.players[id]; online {
		id = name + "_" + uuid.NewString()[:8]
	}

	pose, ok := gl.saved[name]
	if !ok {
		pose = gl.world.SpawnPoint()
	}

	gl.players[id] = &Player{
		ID:   id,
		Name: name,
		Pose: pose,
		hold: input.NewHoldTracker(gl.cfg.HoldFrames),
	}
	ch := make(RenderChan, 2)
	gl.renderChans[id] = ch
	return id, ch
}

// RemovePlayer saves the player's pose and unregisters them.
func (gl *GameLoop) RemovePlayer(id string) {
	gl.mu.Lock()
	defer gl.mu.Unlock()

	if p, ok := gl.players[id]; ok {
		gl.saved[p.Name] = p.Pose
		delete(gl.players, id)
	}
	if ch, ok := gl.renderChans[id]; ok {
		close(ch)
		delete(gl.renderChans, id)
	}
}

// Spectate registers a read-only observer that receives every state snapshot.
// The returned id is passed to Unspectate.
func (gl *GameLoop) Spectate() (string, RenderChan) {
	gl.mu.Lock()
	defer gl.mu.Unlock()

	id := uuid.NewString()
	ch := make(RenderChan, 2)
	gl.spectators[id] = ch
	return id, ch
}

// Unspectate removes an observer and closes its channel.
func (gl *GameLoop) Unspectate(id string) {
	gl.mu.Lock()
	defer gl.mu.Unlock()

	if ch, ok := gl.spectators[id]; ok {
		close(ch)
		delete(gl.spectators, id)
	}
}

// Players returns snapshots of all connected players ordered by ID.
func (gl *GameLoop) Players() []PlayerSnapshot {
	gl.mu.RLock()
	defer gl.mu.RUnlock()
	return gl.snapshotLocked()
}

// Player returns the snapshot of one player.
func (gl *GameLoop) Player(id string) (PlayerSnapshot, bool) {
	gl.mu.RLock()
	defer gl.mu.RUnlock()
	p, ok := gl.players[id]
	if !ok {
		return PlayerSnapshot{}, false
	}
	return p.Snapshot(), true
}

// Run starts the game loop. Blocks until Stop is called.
func (gl *GameLoop) Run() {
	ticker := time.NewTicker(TickInterval(gl.cfg.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-gl.stopCh:
			return
		case <-ticker.C:
			gl.tick()
		}
	}
}

// Stop shuts down the game loop. Safe to call more than once.
func (gl *GameLoop) Stop() {
	gl.stopOnce.Do(func() { close(gl.stopCh) })
}

func (gl *GameLoop) tick() {
	gl.mu.Lock()

	// Drain all pending input events
drain:
	for {
		select {
		case ev := <-gl.inputCh:
			if p, ok := gl.players[ev.PlayerID]; ok {
				p.hold.Press(ev.Binding)
			}
		default:
			break drain
		}
	}

	gl.tickCount++
	for _, p := range gl.players {
		var outcome Outcome
		p.Pose, outcome = Step(p.Pose, p.hold.Frame(), gl.world.Room, gl.cfg.Tuning)
		p.LastOutcome = outcome
		if outcome.Changed() {
			p.Steps++
		}
	}

	state := GameState{
		Players: gl.snapshotLocked(),
		World:   gl.world,
		Tick:    gl.tickCount,
	}
	gl.mu.Unlock()

	gl.mu.RLock()
	defer gl.mu.RUnlock()
	// Non-blocking send to each render channel
	for _, ch := range gl.renderChans {
		publish(ch, state)
	}
	for _, ch := range gl.spectators {
		publish(ch, state)
	}
}

func publish(ch RenderChan, state GameState) {
	select {
	case ch <- state:
	default:
		// Drop frame for slow client
	}
}

func (gl *GameLoop) snapshotLocked() []PlayerSnapshot {
	out := make([]PlayerSnapshot, 0, len(gl.players))
	for _, p := range gl.players {
		out = append(out, p.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
