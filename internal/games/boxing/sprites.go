package boxing

import "github.com/ringside-tui/ringside/internal/fight"

// Sprite rows are drawn facing right with column 2 on the fighter's
// position; rows may reach past column 4 toward the opponent.
const (
	spriteH      = 3
	spriteCenter = 2
)

type sprite [spriteH]string

// sprites holds the poses for each state. A state's frames are spread
// evenly over its poses.
var sprites = map[fight.State][]sprite{
	fight.Idle: {
		{"  o  ", " /|> ", " / \\ "},
		{"  o  ", " (|> ", " / \\ "},
	},
	fight.Walk: {
		{"  o  ", " /|> ", " / | "},
		{"  o  ", " /|> ", " | \\ "},
	},
	fight.Block: {
		{"  o] ", " /|] ", " / \\ "},
	},
	fight.Punch: {
		{"  o  ", " /|> ", " / \\ "},
		{"  o  ", " /|-@", " / \\ "},
		{"  o  ", " /|--@", " / \\ "},
		{"  o  ", " /|-@", " / \\ "},
	},
	fight.Kick: {
		{"  o  ", " /|> ", " /\\  "},
		{"  o  ", " /|> ", " / -@"},
		{"  o  ", " /|> ", " / --@"},
		{"  o  ", " /|> ", " /\\  "},
	},
	fight.Hurt: {
		{" o   ", " <|\\ ", " / \\ "},
		{"  o  ", " <|\\ ", " / \\ "},
	},
	fight.Win: {
		{" \\o/ ", "  |  ", " / \\ "},
		{"  o/ ", " /|  ", " / \\ "},
	},
	fight.Lose: {
		{"  o  ", " /|\\ ", " / \\ "},
		{"     ", " \\o  ", "  |\\_"},
		{"     ", "     ", "o__/_"},
	},
}

var mirrored = map[rune]rune{
	'/': '\\', '\\': '/',
	'<': '>', '>': '<',
	'(': ')', ')': '(',
	'[': ']', ']': '[',
}

// poseFor picks the pose for a state and animation frame.
func poseFor(state fight.State, frame int) sprite {
	poses, ok := sprites[state]
	if !ok || len(poses) == 0 {
		poses = sprites[fight.Idle]
	}
	frame = min(max(frame, 0), fight.Frames-1)
	return poses[frame*len(poses)/fight.Frames]
}

// mirror flips a rune for a fighter facing left.
func mirror(r rune, facing int) rune {
	if facing >= 0 {
		return r
	}
	if m, ok := mirrored[r]; ok {
		return m
	}
	return r
}
