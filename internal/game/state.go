package game

// FootstepPlayer plays the footstep sound. *sfx.Footsteps implements it.
type FootstepPlayer interface {
	Play() error
}

// State is the per-run game state carried from frame to frame.
type State struct {
	Won    bool
	Stride float64 // distance walked between footstep sounds
	Walked float64 // distance walked since the last footstep
}

// Walk adds distance to the footstep counter and plays a step once a full stride is
// covered. The counter resets only when the sound actually started, so a failing
// player retries on the next move.
func (s *State) Walk(distance float64, steps FootstepPlayer) bool {
	if distance <= 0 {
		return false
	}
	s.Walked += distance
	if s.Walked < s.Stride || steps == nil {
		return false
	}
	if err := steps.Play(); err != nil {
		return false
	}
	s.Walked = 0
	return true
}
