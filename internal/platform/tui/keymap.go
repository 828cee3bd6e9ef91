package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bomber-legend/internal/core"
)

// DefaultHoldWindow is how long a key press counts as held. Terminals only
// report presses, so a key stays down while auto-repeat keeps refreshing it.
const DefaultHoldWindow = 200 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ", "x":
		return core.ActionFire, false
	case "enter":
		return core.ActionConfirm, false
	case "b":
		return core.ActionBack, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionLeaderboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "l":
		return MenuActionLeaderboard
	}
	return MenuActionNone
}

// oneShot actions fire on a single tick rather than being held.
var oneShot = map[core.Action]bool{
	core.ActionPause:   true,
	core.ActionRestart: true,
	core.ActionConfirm: true,
	core.ActionBack:    true,
}

// HeldKeys turns a stream of key presses into per-tick held state.
// Movement and fire stay held for the hold window after their last press;
// one-shot actions are reported by exactly one Frame call.
type HeldKeys struct {
	mu      sync.Mutex
	window  time.Duration
	now     func() time.Time
	pressed map[core.Action]time.Time
	pending map[core.Action]bool
}

// NewHeldKeys creates a tracker. A zero window uses DefaultHoldWindow and a
// nil now uses time.Now.
func NewHeldKeys(window time.Duration, now func() time.Time) *HeldKeys {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	if now == nil {
		now = time.Now
	}
	return &HeldKeys{
		window:  window,
		now:     now,
		pressed: make(map[core.Action]time.Time),
		pending: make(map[core.Action]bool),
	}
}

// Press records a key press.
func (h *HeldKeys) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if oneShot[a] {
		h.pending[a] = true
		return
	}
	h.pressed[a] = h.now()
}

// Held implements core.Controls.
func (h *HeldKeys) Held(a core.Action) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.heldLocked(a, h.now())
}

func (h *HeldKeys) heldLocked(a core.Action, now time.Time) bool {
	if h.pending[a] {
		return true
	}
	t, ok := h.pressed[a]
	return ok && now.Sub(t) < h.window
}

// Frame snapshots the held actions for one tick and consumes pending
// one-shot actions. Expired presses are forgotten.
func (h *HeldKeys) Frame() core.InputFrame {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	frame := core.NewInputFrame()
	for a, t := range h.pressed {
		if now.Sub(t) < h.window {
			frame.Set(a)
		} else {
			delete(h.pressed, a)
		}
	}
	for a := range h.pending {
		frame.Set(a)
		delete(h.pending, a)
	}
	return frame
}

// Release forgets every held and pending action.
func (h *HeldKeys) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.pressed)
	clear(h.pending)
}
