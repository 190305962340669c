package multiplayer

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ringside-tui/ringside/internal/core"
)

type fakeSnapshot struct{ tick int }

func (fakeSnapshot) IsGameSnapshot() {}

// fakeGame ends after a fixed number of steps with Player1 ahead.
type fakeGame struct {
	mu     sync.Mutex
	steps  int
	endAt  int
	inputs []core.MultiInputFrame
}

func (g *fakeGame) Reset(core.RuntimeConfig) {}

func (g *fakeGame) StepMulti(in core.MultiInputFrame) core.StepResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.steps++
	g.inputs = append(g.inputs, in)
	return core.StepResult{}
}

func (g *fakeGame) Snapshot() GameSnapshot { return fakeSnapshot{tick: g.steps} }

func (g *fakeGame) IsGameOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.endAt > 0 && g.steps >= g.endAt
}

func (g *fakeGame) Winner() PlayerID {
	if g.IsGameOver() {
		return Player1
	}
	return 0
}

func (g *fakeGame) Score1() int { return 2 }
func (g *fakeGame) Score2() int { return 1 }

type fakeSaver struct {
	results chan MatchResultData
}

func (s *fakeSaver) SaveMatchResult(r MatchResultData) error {
	s.results <- r
	return nil
}

func waitFor[T SessionEvent](t *testing.T, s *ChannelSession) T {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case evt := <-s.Events():
			if v, ok := evt.(T); ok {
				return v
			}
		case <-timeout:
			var zero T
			t.Fatalf("timed out waiting for %T", zero)
			return zero
		}
	}
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestChannelSessionDropsOldest(t *testing.T) {
	s := NewChannelSession("s1", 2)
	s.Send(LobbyErrorEvent{Message: "1"})
	s.Send(LobbyErrorEvent{Message: "2"})
	s.Send(LobbyErrorEvent{Message: "3"})

	got := []string{
		(<-s.Events()).(LobbyErrorEvent).Message,
		(<-s.Events()).(LobbyErrorEvent).Message,
	}
	if got[0] != "2" || got[1] != "3" {
		t.Errorf("expected oldest dropped, got %v", got)
	}
}

func TestChannelSessionClose(t *testing.T) {
	s := NewChannelSession("s1", 4)
	s.Close()
	s.Close()

	select {
	case <-s.Done():
	default:
		t.Fatal("done should be closed")
	}

	s.Send(LobbyErrorEvent{})
	if len(s.Events()) != 0 {
		t.Error("closed session should not queue events")
	}
}

func TestSessionRegistry(t *testing.T) {
	r := NewSessionRegistry()
	r.Register(NewChannelSession("a", 1))
	r.Register(NewChannelSession("b", 1))
	if r.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", r.Count())
	}
	if _, ok := r.Get("a"); !ok {
		t.Error("expected session a")
	}
	r.Unregister("a")
	if _, ok := r.Get("a"); ok {
		t.Error("session a should be gone")
	}
}

func TestOnlineMatchTakeInputsKeepsOrder(t *testing.T) {
	m := NewOnlineMatch("m", "CODE", "boxing_duel", &fakeGame{},
		NewChannelSession("s1", 4), NewChannelSession("s2", 4), 60)

	m.SendInput(Player1, frame(core.ActionLeft))
	m.SendInput(Player2, frame(core.ActionPunch))
	m.SendInput(Player1, frame(core.ActionReleaseLeft, core.ActionRight))
	m.SendInput(PlayerID(7), frame(core.ActionQuit))

	in := m.takeInputs()
	want := []core.Action{core.ActionLeft, core.ActionReleaseLeft, core.ActionRight}
	got := in.Player1().Ordered()
	if len(got) != len(want) {
		t.Fatalf("P1 actions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("P1 action %d = %v, want %v", i, got[i], want[i])
		}
	}
	if !in.Player2().Has(core.ActionPunch) {
		t.Error("P2 punch missing")
	}

	next := m.takeInputs()
	if !next.Player1().Empty() || !next.Player2().Empty() {
		t.Error("inputs should be consumed once")
	}
}

func TestOnlineMatchRunCompletes(t *testing.T) {
	s1, s2 := NewChannelSession("s1", 64), NewChannelSession("s2", 64)
	m := NewOnlineMatch("m", "CODE", "boxing_duel", &fakeGame{endAt: 3}, s1, s2, 1000)

	results := make(chan MatchResult, 1)
	go m.Run(t.Context(), func(r MatchResult) { results <- r })

	select {
	case r := <-results:
		if r.Reason != MatchEndReasonCompleted || r.Winner != Player1 || r.Ticks != 3 {
			t.Errorf("unexpected result %+v", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("match did not finish")
	}

	snap := waitFor[SnapshotEvent](t, s2)
	if snap.MatchID != "m" || snap.Tick != 1 {
		t.Errorf("unexpected first snapshot %+v", snap)
	}
}

func TestOnlineMatchDisconnect(t *testing.T) {
	s1, s2 := NewChannelSession("s1", 64), NewChannelSession("s2", 64)
	m := NewOnlineMatch("m", "CODE", "boxing_duel", &fakeGame{}, s1, s2, 100)

	results := make(chan MatchResult, 1)
	go m.Run(t.Context(), func(r MatchResult) { results <- r })
	s2.Close()

	select {
	case r := <-results:
		if r.Reason != MatchEndReasonDisconnect || r.Winner != Player1 {
			t.Errorf("unexpected result %+v", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("disconnect not noticed")
	}
	<-m.Done()
}

func newTestCoordinator(t *testing.T, game func() OnlineGame) (*Coordinator, *SessionRegistry) {
	t.Helper()
	reg := NewSessionRegistry()
	cfg := DefaultCoordinatorConfig()
	cfg.TickRate = 500
	factory := func(gameID string, _ core.RuntimeConfig) (OnlineGame, error) {
		if gameID != "boxing_duel" {
			return nil, errors.New("unknown game")
		}
		return game(), nil
	}
	c := NewCoordinator(cfg, factory, reg)
	c.Start()
	t.Cleanup(c.Stop)
	return c, reg
}

func TestCoordinatorLobbyToMatch(t *testing.T) {
	c, reg := newTestCoordinator(t, func() OnlineGame { return &fakeGame{endAt: 5} })
	saver := &fakeSaver{results: make(chan MatchResultData, 1)}
	c.SetResultSaver(saver)

	host, guest := NewChannelSession("host", 256), NewChannelSession("guest", 256)
	reg.Register(host)
	reg.Register(guest)

	c.Send(CreateLobbyMsg{SessionID: "host", GameID: "boxing_duel", Name: "ANA"})
	created := waitFor[LobbyCreatedEvent](t, host)
	if len(created.Code) != 6 {
		t.Fatalf("unexpected code %q", created.Code)
	}

	c.Send(JoinLobbyMsg{SessionID: "guest", Code: strings.ToLower(created.Code), Name: "BEN"})

	joined := waitFor[LobbyJoinedEvent](t, guest)
	if joined.Side != Player2 || joined.OpponentName != "ANA" {
		t.Errorf("unexpected join event %+v", joined)
	}
	started := waitFor[MatchStartedEvent](t, host)
	if started.Side != Player1 || started.Names != [2]string{"ANA", "BEN"} {
		t.Errorf("unexpected start event %+v", started)
	}

	ended := waitFor[MatchEndedEvent](t, guest)
	if ended.Reason != MatchEndReasonCompleted || ended.Winner != Player1 {
		t.Errorf("unexpected end event %+v", ended)
	}

	select {
	case r := <-saver.results:
		if r.WinnerSession != "host" || r.Score1 != 2 || r.EndReason != "completed" {
			t.Errorf("unexpected saved result %+v", r)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("result not saved")
	}
}

func TestCoordinatorJoinErrors(t *testing.T) {
	c, reg := newTestCoordinator(t, func() OnlineGame { return &fakeGame{} })
	host := NewChannelSession("host", 16)
	reg.Register(host)

	c.Send(JoinLobbyMsg{SessionID: "host", Code: "ZZZZZZ"})
	if got := waitFor[LobbyErrorEvent](t, host); got.Message != "Lobby not found" {
		t.Errorf("unexpected error %q", got.Message)
	}

	c.Send(CreateLobbyMsg{SessionID: "host", GameID: "boxing_duel"})
	waitFor[LobbyCreatedEvent](t, host)

	c.Send(CreateLobbyMsg{SessionID: "host", GameID: "boxing_duel"})
	if got := waitFor[LobbyErrorEvent](t, host); got.Message != "Already in a lobby" {
		t.Errorf("unexpected error %q", got.Message)
	}
}

func TestCoordinatorUnknownGame(t *testing.T) {
	c, reg := newTestCoordinator(t, func() OnlineGame { return &fakeGame{} })
	host, guest := NewChannelSession("host", 16), NewChannelSession("guest", 16)
	reg.Register(host)
	reg.Register(guest)

	c.Send(CreateLobbyMsg{SessionID: "host", GameID: "pinball"})
	created := waitFor[LobbyCreatedEvent](t, host)
	c.Send(JoinLobbyMsg{SessionID: "guest", Code: created.Code})

	if got := waitFor[LobbyErrorEvent](t, guest); got.Message != "Failed to create game" {
		t.Errorf("unexpected error %q", got.Message)
	}
	if c.LobbyCount() != 0 || c.MatchCount() != 0 {
		t.Error("failed lobby should be removed")
	}
}

func TestCoordinatorExpiresLobbies(t *testing.T) {
	reg := NewSessionRegistry()
	c := NewCoordinator(DefaultCoordinatorConfig(), nil, reg)
	host := NewChannelSession("host", 16)
	reg.Register(host)

	c.handleCreateLobby(CreateLobbyMsg{SessionID: "host", GameID: "boxing_duel"})
	if c.LobbyCount() != 1 {
		t.Fatal("lobby not created")
	}

	c.cleanupExpiredLobbies(time.Now())
	if c.LobbyCount() != 1 {
		t.Fatal("fresh lobby should not expire")
	}

	c.cleanupExpiredLobbies(time.Now().Add(time.Hour))
	if c.LobbyCount() != 0 {
		t.Error("old lobby should expire")
	}
	if got := waitFor[LobbyErrorEvent](t, host); got.Message != "Lobby expired" {
		t.Errorf("unexpected message %q", got.Message)
	}
}

func TestCoordinatorHostDisconnectClosesLobby(t *testing.T) {
	reg := NewSessionRegistry()
	c := NewCoordinator(DefaultCoordinatorConfig(), nil, reg)
	host := NewChannelSession("host", 16)
	reg.Register(host)

	c.handleCreateLobby(CreateLobbyMsg{SessionID: "host", GameID: "boxing_duel"})
	c.handleSessionDisconnected(SessionDisconnectedMsg{SessionID: "host"})
	if c.LobbyCount() != 0 {
		t.Error("lobby should close when the host leaves")
	}
}

func TestGenerateJoinCode(t *testing.T) {
	for range 50 {
		code := generateJoinCode()
		if len(code) != 6 {
			t.Fatalf("code %q is not 6 characters", code)
		}
		for _, r := range code {
			if !strings.ContainsRune("ABCDEFGHIJKLMNOPQRSTUVWXYZ234567", r) {
				t.Fatalf("code %q has unexpected rune %q", code, r)
			}
		}
	}
}

func TestMatchIDShort(t *testing.T) {
	id := NewMatchID()
	if len(id.Short()) != 8 {
		t.Errorf("Short() = %q", id.Short())
	}
	if MatchID("abc").Short() != "abc" {
		t.Error("short ids should be returned whole")
	}
}
