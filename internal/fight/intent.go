package fight

// Intent is a discrete command for one fighter.
type Intent int

const (
	NoIntent Intent = iota
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	StopLeft
	StopRight
	StopUp
	StopDown
	BlockBegin
	BlockEnd
	ThrowPunch
	ThrowKick
)

var intentNames = map[Intent]string{
	NoIntent:   "none",
	MoveLeft:   "move-left",
	MoveRight:  "move-right",
	MoveUp:     "move-up",
	MoveDown:   "move-down",
	StopLeft:   "stop-left",
	StopRight:  "stop-right",
	StopUp:     "stop-up",
	StopDown:   "stop-down",
	BlockBegin: "block-begin",
	BlockEnd:   "block-end",
	ThrowPunch: "punch",
	ThrowKick:  "kick",
}

func (i Intent) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}

// Starts reports whether the intent begins movement.
// The match drops these outside the fighting phase.
func (i Intent) Starts() bool {
	switch i {
	case MoveLeft, MoveRight, MoveUp, MoveDown:
		return true
	}
	return false
}
