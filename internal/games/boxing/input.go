package boxing

import (
	"github.com/ringside-tui/ringside/internal/core"
	"github.com/ringside-tui/ringside/internal/fight"
)

var intents = map[core.Action]fight.Intent{
	core.ActionLeft:         fight.MoveLeft,
	core.ActionRight:        fight.MoveRight,
	core.ActionUp:           fight.MoveUp,
	core.ActionDown:         fight.MoveDown,
	core.ActionReleaseLeft:  fight.StopLeft,
	core.ActionReleaseRight: fight.StopRight,
	core.ActionReleaseUp:    fight.StopUp,
	core.ActionReleaseDown:  fight.StopDown,
	core.ActionBlock:        fight.BlockBegin,
	core.ActionReleaseBlock: fight.BlockEnd,
	core.ActionPunch:        fight.ThrowPunch,
	core.ActionKick:         fight.ThrowKick,
}

// IntentFor maps a platform action to a fighter intent.
func IntentFor(a core.Action) (fight.Intent, bool) {
	it, ok := intents[a]
	return it, ok
}

// applyInput hands one corner's actions to the match in the order they arrived.
func (g *Game) applyInput(side fight.Side, in core.InputFrame) {
	for _, a := range in.Ordered() {
		if it, ok := intents[a]; ok {
			g.match.Apply(side, it)
		}
	}
}
