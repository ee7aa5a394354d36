package game

import "github.com/Noxitanius/govoxel/world"

// Command is a deferred world edit. Commands are queued while processing
// input and drained at the end of the tick.
type Command struct {
	Kind    CommandKind
	X, Y, Z int
	Block   world.Block
}

// CommandKind selects the edit a Command performs.
type CommandKind uint8

const (
	// CommandBreak removes the block at the command coordinates.
	CommandBreak CommandKind = iota
	// CommandPlace sets the command's block at the command coordinates.
	CommandPlace
)
