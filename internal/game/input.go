package game

import (
	"log"
	"mazecaster/internal/game/keytracker"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Actions are the edge-triggered commands of one frame.
type Actions struct {
	ToggleMode bool
	ToggleHUD  bool
	Quit       bool
}

// InputHandler polls keyboard, mouse and gamepads once per frame.
type InputHandler struct {
	game *Game

	modeKeyTracker keytracker.KeyStateTracker
	hudKeyTracker  keytracker.KeyStateTracker
	quitKeyTracker keytracker.KeyStateTracker

	lastCursorX int
	cursorKnown bool
	gamepads    []ebiten.GamepadID
	padBuf      []GamepadState
}

// NewInputHandler creates a new input handler
func NewInputHandler(game *Game) *InputHandler {
	return &InputHandler{game: game}
}

// Poll reads this frame's input.
func (ih *InputHandler) Poll() (Controls, Actions) {
	actions := Actions{
		ToggleMode: ih.modeKeyTracker.IsKeyJustPressed(ebiten.KeyM),
		ToggleHUD:  ih.hudKeyTracker.IsKeyJustPressed(ebiten.KeyTab),
		Quit:       ih.quitKeyTracker.IsKeyJustPressed(ebiten.KeyEscape),
	}

	kb := KeyboardState{
		W:     ebiten.IsKeyPressed(ebiten.KeyW),
		S:     ebiten.IsKeyPressed(ebiten.KeyS),
		A:     ebiten.IsKeyPressed(ebiten.KeyA),
		D:     ebiten.IsKeyPressed(ebiten.KeyD),
		Up:    ebiten.IsKeyPressed(ebiten.KeyUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyDown),
		Left:  ebiten.IsKeyPressed(ebiten.KeyLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyRight),
	}

	return BuildControls(ih.game.config, kb, ih.mouseDelta(), ih.pollGamepads()), actions
}

// mouseDelta returns the horizontal cursor movement since the last frame.
// The first frame only records the position.
func (ih *InputHandler) mouseDelta() float64 {
	x, _ := ebiten.CursorPosition()
	if !ih.cursorKnown {
		ih.lastCursorX, ih.cursorKnown = x, true
		return 0
	}
	dx := x - ih.lastCursorX
	ih.lastCursorX = x
	return float64(dx)
}

func (ih *InputHandler) pollGamepads() []GamepadState {
	for _, id := range inpututil.AppendJustConnectedGamepadIDs(nil) {
		log.Printf("[Input] Gamepad %d connected: %s", id, ebiten.GamepadName(id))
		ih.gamepads = append(ih.gamepads, id)
	}
	kept := ih.gamepads[:0]
	for _, id := range ih.gamepads {
		if inpututil.IsGamepadJustDisconnected(id) {
			log.Printf("[Input] Gamepad %d disconnected", id)
			continue
		}
		kept = append(kept, id)
	}
	ih.gamepads = kept

	ih.padBuf = ih.padBuf[:0]
	for _, id := range ih.gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		ih.padBuf = append(ih.padBuf, GamepadState{
			DPadUp:    inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftTop),
			DPadDown:  inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftBottom),
			DPadLeft:  inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftLeft),
			DPadRight: inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonLeftRight),
			StickX:    ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
			StickY:    ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
		})
	}
	return ih.padBuf
}
