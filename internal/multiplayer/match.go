package multiplayer

import (
	"context"
	"sync"
	"time"

	"github.com/ringside-tui/ringside/internal/core"
)

// OnlineGame is the interface that games must implement to support online multiplayer.
type OnlineGame interface {
	// Reset initializes the game state.
	Reset(cfg core.RuntimeConfig)

	// StepMulti advances the game by one tick using input from both players.
	StepMulti(input core.MultiInputFrame) core.StepResult

	// Snapshot returns the current game state for the sessions to draw.
	Snapshot() GameSnapshot

	// IsGameOver returns true if the game has ended.
	IsGameOver() bool

	// Winner returns the winning player (Player1/Player2) or 0 if no winner yet.
	Winner() PlayerID

	// Score1 returns Player 1's score.
	Score1() int

	// Score2 returns Player 2's score.
	Score2() int
}

// MatchResult contains the outcome of a completed match.
type MatchResult struct {
	MatchID MatchID
	Reason  MatchEndReason
	Winner  PlayerID
	Score1  int
	Score2  int
	Ticks   uint64
}

// OnlineMatch is the authoritative simulation of one online bout. Only the
// Run goroutine touches the game.
type OnlineMatch struct {
	id     MatchID
	code   string
	gameID string
	game   OnlineGame

	sessions [2]SessionHandle // indexed by PlayerID-1
	names    [2]string

	// Input handling
	inputMu   sync.Mutex
	pending   [2]core.InputFrame
	inputChan chan playerInput

	// Match state
	tick     uint64
	tickRate int
	done     chan struct{}
	doneOnce sync.Once

	// Disconnect handling
	disconnectChan chan SessionID
}

type playerInput struct {
	player PlayerID
	input  core.InputFrame
}

// NewOnlineMatch creates a new online match.
func NewOnlineMatch(
	id MatchID,
	code string,
	gameID string,
	game OnlineGame,
	p1Session, p2Session SessionHandle,
	tickRate int,
) *OnlineMatch {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &OnlineMatch{
		id:             id,
		code:           code,
		gameID:         gameID,
		game:           game,
		sessions:       [2]SessionHandle{p1Session, p2Session},
		pending:        [2]core.InputFrame{core.NewInputFrame(), core.NewInputFrame()},
		inputChan:      make(chan playerInput, 64),
		tickRate:       tickRate,
		done:           make(chan struct{}),
		disconnectChan: make(chan SessionID, 2),
	}
}

// ID returns the match identifier.
func (m *OnlineMatch) ID() MatchID {
	return m.id
}

// Code returns the join code used to create this match.
func (m *OnlineMatch) Code() string {
	return m.code
}

// GameID returns the game identifier.
func (m *OnlineMatch) GameID() string {
	return m.gameID
}

// Session returns the session playing the given side.
func (m *OnlineMatch) Session(p PlayerID) SessionHandle {
	if p != Player1 && p != Player2 {
		return nil
	}
	return m.sessions[p-1]
}

// SetNames records the display names of both sides.
func (m *OnlineMatch) SetNames(p1, p2 string) {
	m.names = [2]string{p1, p2}
}

// Names returns the display names of both sides.
func (m *OnlineMatch) Names() [2]string {
	return m.names
}

// SendInput sends player input to the match.
// Non-blocking, uses a buffered channel.
func (m *OnlineMatch) SendInput(player PlayerID, input core.InputFrame) {
	if player != Player1 && player != Player2 {
		return
	}
	select {
	case m.inputChan <- playerInput{player: player, input: input}:
	default:
		// Channel full, drop input (rare under normal conditions)
	}
}

// PlayerDisconnected signals that a player has disconnected.
func (m *OnlineMatch) PlayerDisconnected(sessionID SessionID) {
	select {
	case m.disconnectChan <- sessionID:
	default:
	}
}

// Run drives the match at its tick rate until the game ends, a player
// disconnects, ctx is cancelled or Stop is called. onComplete is called for
// the first two.
func (m *OnlineMatch) Run(ctx context.Context, onComplete func(MatchResult)) {
	defer m.Stop()

	ticker := time.NewTicker(time.Second / time.Duration(m.tickRate))
	defer ticker.Stop()

	go m.monitorSessions()

	for {
		select {
		case <-ticker.C:
			if result, over := m.runTick(); over {
				if onComplete != nil {
					onComplete(result)
				}
				return
			}

		case sessionID := <-m.disconnectChan:
			if onComplete != nil {
				onComplete(m.disconnectResult(sessionID))
			}
			return

		case <-ctx.Done():
			return

		case <-m.done:
			return
		}
	}
}

func (m *OnlineMatch) runTick() (MatchResult, bool) {
	input := m.takeInputs()

	m.game.StepMulti(input)
	m.tick++

	evt := SnapshotEvent{
		MatchID:  m.id,
		Tick:     m.tick,
		Snapshot: m.game.Snapshot(),
	}
	for _, s := range m.sessions {
		s.Send(evt)
	}

	if !m.game.IsGameOver() {
		return MatchResult{}, false
	}
	return MatchResult{
		MatchID: m.id,
		Reason:  MatchEndReasonCompleted,
		Winner:  m.game.Winner(),
		Score1:  m.game.Score1(),
		Score2:  m.game.Score2(),
		Ticks:   m.tick,
	}, true
}

// takeInputs drains queued inputs and hands out everything that arrived
// since the last tick, in arrival order per player.
func (m *OnlineMatch) takeInputs() core.MultiInputFrame {
	m.inputMu.Lock()
	defer m.inputMu.Unlock()

drain:
	for {
		select {
		case pi := <-m.inputChan:
			m.pending[pi.player-1].Merge(pi.input)
		default:
			break drain
		}
	}

	multi := core.NewMultiInputFrame()
	multi.SetPlayer(Player1, m.pending[0].Clone())
	multi.SetPlayer(Player2, m.pending[1].Clone())
	m.pending[0].Clear()
	m.pending[1].Clear()
	return multi
}

func (m *OnlineMatch) disconnectResult(sessionID SessionID) MatchResult {
	winner := Player1
	if sessionID == m.sessions[0].ID() {
		winner = Player2
	}
	return MatchResult{
		MatchID: m.id,
		Reason:  MatchEndReasonDisconnect,
		Winner:  winner,
		Score1:  m.game.Score1(),
		Score2:  m.game.Score2(),
		Ticks:   m.tick,
	}
}

func (m *OnlineMatch) monitorSessions() {
	select {
	case <-m.sessions[0].Done():
		m.PlayerDisconnected(m.sessions[0].ID())
	case <-m.sessions[1].Done():
		m.PlayerDisconnected(m.sessions[1].ID())
	case <-m.done:
	}
}

// Stop ends the match loop without reporting a result. Safe to call more
// than once.
func (m *OnlineMatch) Stop() {
	m.doneOnce.Do(func() {
		close(m.done)
	})
}

// Done is closed once the match loop has stopped.
func (m *OnlineMatch) Done() <-chan struct{} {
	return m.done
}
