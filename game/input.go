package game

// InputState is the per-tick input sample. Held keys stay true for as long
// as the key is down; one-shot actions fire once and are reset with
// ClearOneShots after the tick consumed them.
type InputState struct {
	// One-shot actions.
	BreakBlock      bool
	PlaceBlock      bool
	Jump            bool
	ToggleMouseLock bool

	// Held keys.
	MoveFwd   bool
	MoveBack  bool
	MoveLeft  bool
	MoveRight bool
}

// ClearOneShots resets the one-shot actions, leaving held keys untouched.
// Call it after every tick.
func (s *InputState) ClearOneShots() {
	s.BreakBlock = false
	s.PlaceBlock = false
	s.Jump = false
	s.ToggleMouseLock = false
}
