package fight

// Event is something that happened during a Match.Update call.
type Event interface {
	fightEvent()
}

// Reason says how a round was decided.
type Reason int

const (
	Decision Reason = iota // clock ran out
	KnockOut
	DoubleKnockOut // both fighters dropped on the same tick
)

func (r Reason) String() string {
	switch r {
	case KnockOut:
		return "KO"
	case DoubleKnockOut:
		return "double KO"
	default:
		return "decision"
	}
}

// RoundResult is the outcome of one round.
type RoundResult struct {
	Round  int
	Winner Side
	Reason Reason
	Lives  [2]float64 // life left on each side when the round ended
	Wins   int        // player tally after this round
	Losses int
}

// RoundStarted fires when fighters are readied for a new round.
type RoundStarted struct {
	Round int
}

// FightStarted fires when the intro ends and blows can land.
type FightStarted struct {
	Round int
}

// HitLanded fires for every blow that connected.
type HitLanded struct {
	Hit
	DefenderLife float64
}

// RoundEnded fires when a round is decided.
type RoundEnded struct {
	Result RoundResult
}

// MatchOver fires once, when the match reaches its terminal state.
type MatchOver struct {
	Winner Side
	Wins   int
	Losses int
}

func (RoundStarted) fightEvent() {}
func (FightStarted) fightEvent() {}
func (HitLanded) fightEvent()    {}
func (RoundEnded) fightEvent()   {}
func (MatchOver) fightEvent()    {}
