package game

import (
	"math"
	"mazecaster/internal/config"
	"mazecaster/internal/mathutil"
	"mazecaster/internal/world"
)

// Controls is one frame of player intent.
type Controls struct {
	Turn  float64   // radians; positive turns clockwise on screen
	Steps []float64 // signed distances along the heading, each collision-checked on its own
}

// KeyboardState is the set of movement keys held this frame.
type KeyboardState struct {
	W, S, A, D            bool
	Up, Down, Left, Right bool
}

// GamepadState is one pad's input this frame. D-pad fields are edge-triggered.
type GamepadState struct {
	DPadUp, DPadDown, DPadLeft, DPadRight bool
	StickX, StickY                        float64 // StickY is negative when pushed up
}

// BuildControls combines keyboard, mouse and gamepads into one frame of intent.
// Letter keys and arrow keys are separate bindings, so holding both moves twice.
func BuildControls(cfg *config.Config, kb KeyboardState, mouseDX float64, pads []GamepadState) Controls {
	var c Controls
	move := cfg.GetMoveSpeed()
	rot := cfg.GetRotSpeed()

	for _, pair := range [][2]bool{{kb.A, kb.D}, {kb.Left, kb.Right}} {
		if pair[0] {
			c.Turn -= rot
		}
		if pair[1] {
			c.Turn += rot
		}
	}
	for _, pair := range [][2]bool{{kb.W, kb.S}, {kb.Up, kb.Down}} {
		if pair[0] {
			c.Steps = append(c.Steps, move)
		}
		if pair[1] {
			c.Steps = append(c.Steps, -move)
		}
	}

	c.Turn += mouseDX * cfg.GetMouseSensitivity()

	padMove := cfg.Movement.GamepadMoveSpeed
	padRot := cfg.GetGamepadRotSpeed()
	dead := cfg.Movement.GamepadDeadZone
	for _, pad := range pads {
		if pad.DPadLeft {
			c.Turn -= padRot
		}
		if pad.DPadRight {
			c.Turn += padRot
		}
		if pad.DPadUp {
			c.Steps = append(c.Steps, padMove)
		}
		if pad.DPadDown {
			c.Steps = append(c.Steps, -padMove)
		}
		sx := mathutil.ClampFloat(pad.StickX, -1, 1)
		sy := mathutil.ClampFloat(pad.StickY, -1, 1)
		if math.Abs(sx) > dead {
			c.Turn += sx * padRot
		}
		if math.Abs(sy) > dead {
			c.Steps = append(c.Steps, -sy*padMove)
		}
	}
	return c
}

// Step moves the player dist units along its heading when the destination cell is
// open. Pushing into the goal cell wins the maze. It returns the distance travelled.
func Step(p *world.Player, maze world.Maze, blockSize, dist float64, state *State) float64 {
	fx, fy := p.Forward()
	nx, ny := p.X+fx*dist, p.Y+fy*dist
	cx, cy := world.CellAtPoint(nx, ny, blockSize)

	if maze.IsGoal(cx, cy) {
		state.Won = true
	}
	if maze.IsBlocked(cx, cy) {
		return 0
	}
	p.X, p.Y = nx, ny
	return math.Abs(dist)
}

// Advance applies one frame of controls: turn first, then each step in order.
// A won game ignores further input.
func Advance(p *world.Player, maze world.Maze, blockSize float64, c Controls, state *State, steps FootstepPlayer) {
	if state.Won {
		return
	}
	p.Angle = mathutil.NormalizeAngle(p.Angle + c.Turn)

	walked := 0.0
	for _, d := range c.Steps {
		walked += Step(p, maze, blockSize, d, state)
		if state.Won {
			break
		}
	}
	state.Walk(walked, steps)
}
