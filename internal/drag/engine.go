package drag

import (
	"log/slog"
	"math"

	"fyne.io/fyne/v2"
)

// DefaultActivationDistance is the pointer travel required before a press
// becomes a drag; shorter gestures are clicks.
const DefaultActivationDistance float32 = 10

// Reorderer receives the single reorder produced by a completed drag
type Reorderer interface {
	Reorder(from, to string) bool
}

// HitTester maps an absolute position to the key of the item under it
type HitTester func(at fyne.Position) (key string, ok bool)

// Phase of the current gesture
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePressed
	PhaseDragging
)

// String returns a readable phase name
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePressed:
		return "pressed"
	case PhaseDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Engine turns press/move/release sequences over rendered items into exactly
// one reorder. Only one gesture is tracked at a time.
type Engine struct {
	target    Reorderer
	hitTest   HitTester
	threshold float32

	phase   Phase
	origin  fyne.Position
	current fyne.Position
	fromKey string

	onDragChanged func(key string, dragging bool)
}

// NewEngine creates a drag engine with the default activation distance
func NewEngine(target Reorderer, hitTest HitTester) *Engine {
	return &Engine{
		target:    target,
		hitTest:   hitTest,
		threshold: DefaultActivationDistance,
	}
}

// SetDragCallback sets a callback fired when a drag starts or ends, for visual feedback
func (e *Engine) SetDragCallback(callback func(key string, dragging bool)) {
	e.onDragChanged = callback
}

// Press starts tracking a gesture on key. A press while another gesture is
// live is ignored and reported as false.
func (e *Engine) Press(key string, at fyne.Position) bool {
	if e.phase != PhaseIdle {
		slog.Warn("drag press ignored, gesture already active", "key", key, "active", e.fromKey, "phase", e.phase)
		return false
	}
	e.phase = PhasePressed
	e.fromKey = key
	e.origin = at
	e.current = at
	return true
}

// Move updates the pointer position; crossing the threshold starts the drag
func (e *Engine) Move(at fyne.Position) {
	if e.phase == PhaseIdle {
		return
	}
	e.current = at
	if e.phase == PhasePressed && distance(e.origin, at) > e.threshold {
		e.phase = PhaseDragging
		slog.Debug("drag started", "key", e.fromKey)
		e.notifyDrag(e.fromKey, true)
	}
}

// Release ends the gesture at the given position. If a drag was recognized
// and the position is over a different item, one reorder is issued.
func (e *Engine) Release(at fyne.Position) (from, to string, reordered bool) {
	if e.phase == PhaseIdle {
		return "", "", false
	}
	e.Move(at)

	wasDragging := e.phase == PhaseDragging
	from = e.fromKey
	e.reset()

	if !wasDragging {
		return "", "", false
	}
	e.notifyDrag(from, false)

	if e.hitTest == nil {
		return "", "", false
	}
	to, ok := e.hitTest(at)
	if !ok || to == from {
		slog.Debug("drag released without target", "key", from, "over", to)
		return "", "", false
	}

	reordered = e.target.Reorder(from, to)
	return from, to, reordered
}

// Cancel abandons the current gesture without reordering
func (e *Engine) Cancel() {
	if e.phase == PhaseIdle {
		return
	}
	wasDragging := e.phase == PhaseDragging
	key := e.fromKey
	e.reset()
	if wasDragging {
		e.notifyDrag(key, false)
	}
}

// Active reports whether a gesture is being tracked
func (e *Engine) Active() bool {
	return e.phase != PhaseIdle
}

// Dragging reports whether the activation distance was exceeded
func (e *Engine) Dragging() bool {
	return e.phase == PhaseDragging
}

// Phase returns the current gesture phase
func (e *Engine) Phase() Phase {
	return e.phase
}

// Current returns the last known pointer position of the gesture
func (e *Engine) Current() fyne.Position {
	return e.current
}

// Key returns the key of the item being pressed or dragged
func (e *Engine) Key() string {
	return e.fromKey
}

func (e *Engine) reset() {
	e.phase = PhaseIdle
	e.fromKey = ""
	e.origin = fyne.Position{}
	e.current = fyne.Position{}
}

func (e *Engine) notifyDrag(key string, dragging bool) {
	if e.onDragChanged != nil {
		e.onDragChanged(key, dragging)
	}
}

func distance(a, b fyne.Position) float32 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return float32(math.Hypot(dx, dy))
}
