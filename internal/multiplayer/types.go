// Package multiplayer runs head-to-head bouts between two remote sessions:
// lobbies with join codes, an authoritative match loop at a fixed tick rate,
// and transport-neutral session handles.
package multiplayer

import (
	"github.com/google/uuid"

	"github.com/ringside-tui/ringside/internal/core"
)

// PlayerID is an alias to core.PlayerID for convenience.
// Player1 is the lobby host, Player2 the joiner.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// SessionID uniquely identifies a player's session (e.g., SSH connection).
type SessionID string

// MatchID uniquely identifies an online match.
type MatchID string

// NewMatchID returns a fresh random match identifier.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// Short returns the first block of the ID, enough for logs and the HUD.
func (id MatchID) Short() string {
	s := string(id)
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
