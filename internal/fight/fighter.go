package fight

import "github.com/ringside-tui/ringside/internal/core"

// Active window of an attack, as fractions of its animation.
const (
	activeFrom = 0.33
	activeTo   = 0.66
)

// Fighter is one combatant's state machine. Fighters live inside a Match
// and are only mutated through it.
type Fighter struct {
	name   string
	tuning Tuning

	state     State
	stateTime float64
	life      float64
	pos       core.Vec2
	dx, dy    int // held movement, each in {-1, 0, 1}
	facing    int // +1 right, -1 left
	contact   bool
}

func newFighter(name string, tuning Tuning) Fighter {
	return Fighter{name: name, tuning: tuning, life: tuning.MaxLife, facing: 1}
}

// ready puts the fighter back at its corner for a new round.
func (f *Fighter) ready(start core.Vec2) {
	f.state = Idle
	f.stateTime = 0
	f.pos = start
	f.life = f.tuning.MaxLife
	f.contact = false
	f.dx, f.dy = 0, 0
}

// enter is the only place state changes.
func (f *Fighter) enter(s State) {
	f.state = s
	f.stateTime = 0
	if s.Attacking() {
		f.contact = false
	}
}

func (f *Fighter) moving() bool {
	return f.dx != 0 || f.dy != 0
}

// settle returns to Walk or Idle depending on held movement.
func (f *Fighter) settle() {
	if f.moving() {
		f.enter(Walk)
	} else {
		f.enter(Idle)
	}
}

// apply consumes one intent. Intents that make no sense in the current
// state are dropped.
func (f *Fighter) apply(in Intent) {
	switch in {
	case MoveLeft:
		f.setMovement(-1, f.dy)
	case MoveRight:
		f.setMovement(1, f.dy)
	case MoveUp:
		f.setMovement(f.dx, 1)
	case MoveDown:
		f.setMovement(f.dx, -1)
	case StopLeft:
		if f.dx == -1 {
			f.setMovement(0, f.dy)
		}
	case StopRight:
		if f.dx == 1 {
			f.setMovement(0, f.dy)
		}
	case StopUp:
		if f.dy == 1 {
			f.setMovement(f.dx, 0)
		}
	case StopDown:
		if f.dy == -1 {
			f.setMovement(f.dx, 0)
		}
	case BlockBegin:
		if f.state.Free() {
			f.enter(Block)
		}
	case BlockEnd:
		if f.state == Block {
			f.settle()
		}
	case ThrowPunch:
		if f.state.Free() {
			f.enter(Punch)
		}
	case ThrowKick:
		if f.state.Free() {
			f.enter(Kick)
		}
	}
}

func (f *Fighter) setMovement(dx, dy int) {
	f.dx, f.dy = dx, dy
	switch {
	case f.state == Idle && f.moving():
		f.enter(Walk)
	case f.state == Walk && !f.moving():
		f.enter(Idle)
	}
}

// update advances timers, walks, and ends finished attacks and hurt reactions.
func (f *Fighter) update(dt float64) {
	f.stateTime += dt

	switch {
	case f.state == Walk:
		step := f.tuning.Speed * dt
		f.pos = f.pos.Add(core.V(float64(f.dx)*step, float64(f.dy)*step))
	case f.state.Timed() && f.stateTime >= f.tuning.Animations.Duration(f.state):
		f.settle()
	}
}

// hit applies damage and returns how much life was actually lost and
// whether the fighter went down.
func (f *Fighter) hit(damage float64) (dealt float64, down bool) {
	switch f.state {
	case Hurt, Win, Lose:
		return 0, false
	}

	if f.state == Block {
		damage *= f.tuning.BlockFactor
	}
	before := f.life
	f.life -= damage

	if f.life <= 0 {
		f.life = 0
		f.enter(Lose)
		return before, true
	}
	if f.state != Block {
		f.enter(Hurt)
	}
	return damage, false
}

func (f *Fighter) win() {
	if f.state.Terminal() {
		return
	}
	f.enter(Win)
}

func (f *Fighter) lose() {
	if f.state.Terminal() {
		return
	}
	f.life = 0
	f.enter(Lose)
}

// attackActive reports whether the current punch or kick can still land.
func (f *Fighter) attackActive() bool {
	if !f.state.Attacking() || f.contact {
		return false
	}
	d := f.tuning.Animations.Duration(f.state)
	return f.stateTime > activeFrom*d && f.stateTime < activeTo*d
}

func (f *Fighter) makeContact() {
	f.contact = true
}

func (f *Fighter) face(dir int) {
	f.facing = dir
}

func (f *Fighter) snapshot() FighterSnapshot {
	return FighterSnapshot{
		Name:      f.name,
		State:     f.state,
		StateTime: f.stateTime,
		Frame:     frameAt(f.state, f.stateTime, f.tuning.Animations),
		Position:  f.pos,
		Facing:    f.facing,
		Life:      f.life,
		MaxLife:   f.tuning.MaxLife,
		Blocking:  f.state == Block,
		Active:    f.attackActive(),
	}
}

// frameAt picks the animation frame for time t in state s. Looping states
// wrap around; timed and terminal states hold their last frame.
func frameAt(s State, t float64, anims Animations) int {
	d := anims.Duration(s)
	if d <= 0 || t <= 0 {
		return 0
	}
	n := int(t / (d / Frames))
	if s.Timed() || s.Terminal() {
		return min(n, Frames-1)
	}
	return n % Frames
}
