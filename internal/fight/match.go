package fight

import "math"

// Phase is the round-local state.
type Phase int

const (
	Starting Phase = iota
	InProgress
	Ending
)

func (p Phase) String() string {
	switch p {
	case Starting:
		return "starting"
	case InProgress:
		return "in progress"
	case Ending:
		return "ending"
	}
	return "unknown"
}

// Status is the match-local state. GameOver is terminal.
type Status int

const (
	Running Status = iota
	GameOver
)

func (s Status) String() string {
	if s == GameOver {
		return "game over"
	}
	return "running"
}

// Match owns both fighters and the round controller. It is the single
// mutator of everything it holds; callers interact only through Apply,
// Update and Snapshot.
type Match struct {
	rules    Rules
	fighters [2]Fighter
	resolver Resolver

	round     int
	phase     Phase
	phaseTime float64
	clock     float64
	wins      int
	losses    int
	status    Status

	last    RoundResult
	hasLast bool
}

// NewMatch sets up a match and readies round one.
func NewMatch(rules Rules, names [2]string) *Match {
	m := &Match{
		rules:    rules,
		resolver: Resolver{Reach: rules.Reach, Strength: rules.HitStrength},
	}
	for side := range m.fighters {
		m.fighters[side] = newFighter(names[side], rules.Fighter)
	}
	m.Start()
	return m
}

// Start resets the tallies and readies round one.
func (m *Match) Start() {
	m.wins, m.losses = 0, 0
	m.status = Running
	m.round = 1
	m.last, m.hasLast = RoundResult{}, false
	m.startRound()
}

func (m *Match) startRound() Event {
	m.phase = Starting
	m.phaseTime = 0
	m.clock = m.rules.RoundTime
	for side := range m.fighters {
		m.fighters[side].ready(m.rules.Starts[side])
	}
	m.faceOff()
	return RoundStarted{Round: m.round}
}

// Apply hands an intent to one fighter. Intents that begin movement are
// dropped unless the fight is on; releases, blocks and attacks always pass
// through and the fighter decides.
func (m *Match) Apply(side Side, in Intent) {
	if side != SidePlayer && side != SideOpponent {
		return
	}
	if in.Starts() && m.phase != InProgress {
		return
	}
	m.fighters[side].apply(in)
}

// Update advances the match by dt seconds and returns what happened.
func (m *Match) Update(dt float64) []Event {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return nil
	}

	var events []Event

	// (1) phase timers and transitions
	switch m.phase {
	case Starting:
		if m.phaseTime >= m.rules.StartDelay {
			m.phase = InProgress
			m.phaseTime = 0
			events = append(events, FightStarted{Round: m.round})
		} else {
			m.phaseTime += dt
		}
	case InProgress:
		m.phaseTime += dt
	case Ending:
		if m.status == Running && m.phaseTime >= m.rules.EndDelay {
			if m.decided() {
				m.status = GameOver
				winner, _ := m.Winner()
				events = append(events, MatchOver{Winner: winner, Wins: m.wins, Losses: m.losses})
			} else {
				m.round++
				events = append(events, m.startRound())
			}
		} else {
			m.phaseTime += dt
		}
	}

	// (2) fighter timers and movement, then turn to face each other
	for side := range m.fighters {
		m.fighters[side].update(dt)
	}
	m.faceOff()
	// (3) keep both fighters inside the ropes
	for side := range m.fighters {
		f := &m.fighters[side]
		f.pos = m.rules.Ring.Clamp(f.pos)
	}

	if m.phase != InProgress {
		return events
	}

	// (4) round clock and hits, only while the bell is live
	m.clock -= dt
	for _, h := range m.resolver.Resolve(&m.fighters) {
		events = append(events, HitLanded{Hit: h, DefenderLife: m.fighters[h.Attacker.Other()].life})
	}

	// (5) knock-outs first, then the clock
	playerDown := m.fighters[SidePlayer].state == Lose
	opponentDown := m.fighters[SideOpponent].state == Lose
	switch {
	case playerDown && opponentDown:
		events = append(events, m.endRound(m.rules.TieBreak, DoubleKnockOut))
	case playerDown:
		events = append(events, m.endRound(SideOpponent, KnockOut))
	case opponentDown:
		events = append(events, m.endRound(SidePlayer, KnockOut))
	case m.clock <= 0:
		m.clock = 0
		events = append(events, m.endRound(m.onPoints(), Decision))
	}
	return events
}

// faceOff turns the fighters toward each other.
func (m *Match) faceOff() {
	p, o := &m.fighters[SidePlayer], &m.fighters[SideOpponent]
	if p.pos.X <= o.pos.X {
		p.face(1)
		o.face(-1)
	} else {
		p.face(-1)
		o.face(1)
	}
}

// onPoints picks the fighter with more life left; equal life goes to the
// tie-break side.
func (m *Match) onPoints() Side {
	p, o := m.fighters[SidePlayer].life, m.fighters[SideOpponent].life
	switch {
	case p > o:
		return SidePlayer
	case o > p:
		return SideOpponent
	}
	return m.rules.TieBreak
}

func (m *Match) endRound(winner Side, reason Reason) Event {
	lives := [2]float64{m.fighters[SidePlayer].life, m.fighters[SideOpponent].life}
	m.fighters[winner].win()
	m.fighters[winner.Other()].lose()
	if winner == SidePlayer {
		m.wins++
	} else {
		m.losses++
	}

	m.phase = Ending
	m.phaseTime = 0
	m.last = RoundResult{
		Round:  m.round,
		Winner: winner,
		Reason: reason,
		Lives:  lives,
		Wins:   m.wins,
		Losses: m.losses,
	}
	m.hasLast = true
	return RoundEnded{Result: m.last}
}

func (m *Match) decided() bool {
	return m.wins > m.rules.MaxRounds/2 || m.losses > m.rules.MaxRounds/2
}

// Winner returns the side that took the match once it is over.
func (m *Match) Winner() (Side, bool) {
	if !m.decided() {
		return SidePlayer, false
	}
	if m.wins > m.losses {
		return SidePlayer, true
	}
	return SideOpponent, true
}

// Over reports whether the match reached GameOver.
func (m *Match) Over() bool {
	return m.status == GameOver
}

// Rules returns the rules the match was built with.
func (m *Match) Rules() Rules {
	return m.rules
}

// Round returns the current round number, starting at 1.
func (m *Match) Round() int {
	return m.round
}

// Tally returns the player's round wins and losses.
func (m *Match) Tally() (wins, losses int) {
	return m.wins, m.losses
}

// Snapshot copies out the current state.
func (m *Match) Snapshot() Snapshot {
	s := Snapshot{
		Round:        m.round,
		MaxRounds:    m.rules.MaxRounds,
		Phase:        m.phase,
		PhaseTime:    m.phaseTime,
		Clock:        m.clock,
		Wins:         m.wins,
		Losses:       m.losses,
		Status:       m.status,
		StartDelay:   m.rules.StartDelay,
		CriticalTime: m.rules.CriticalTime,
		Last:         m.last,
		HasLast:      m.hasLast,
	}
	for side := range m.fighters {
		s.Fighters[side] = m.fighters[side].snapshot()
	}
	return s
}
