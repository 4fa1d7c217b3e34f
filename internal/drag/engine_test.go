package drag

import (
	"testing"

	"fyne.io/fyne/v2"
)

type recordingReorderer struct {
	calls [][2]string
}

func (r *recordingReorderer) Reorder(from, to string) bool {
	r.calls = append(r.calls, [2]string{from, to})
	return true
}

// gridHitTest lays out keys as 100x100 cells in one row starting at the origin
func gridHitTest(keys ...string) HitTester {
	return func(at fyne.Position) (string, bool) {
		if at.Y < 0 || at.Y >= 100 || at.X < 0 {
			return "", false
		}
		i := int(at.X / 100)
		if i >= len(keys) {
			return "", false
		}
		return keys[i], true
	}
}

func TestEngine_DragReorders(t *testing.T) {
	r := &recordingReorderer{}
	e := NewEngine(r, gridHitTest("A", "B", "C", "D"))

	e.Press("A", fyne.NewPos(50, 50))
	e.Move(fyne.NewPos(120, 50))
	from, to, ok := e.Release(fyne.NewPos(250, 50))

	if !ok || from != "A" || to != "C" {
		t.Errorf("Release() = (%s, %s, %v), expected (A, C, true)", from, to, ok)
	}
	if len(r.calls) != 1 || r.calls[0] != [2]string{"A", "C"} {
		t.Errorf("Expected exactly one Reorder(A, C), got %v", r.calls)
	}
	if e.Active() {
		t.Error("Engine should be idle after release")
	}
}

func TestEngine_BelowThresholdIsClick(t *testing.T) {
	r := &recordingReorderer{}
	e := NewEngine(r, gridHitTest("A", "B"))

	e.Press("A", fyne.NewPos(95, 50))
	e.Move(fyne.NewPos(101, 50)) // 6 units, over B but below threshold
	_, _, ok := e.Release(fyne.NewPos(101, 50))

	if ok || len(r.calls) != 0 {
		t.Errorf("Expected no reorder for a click, got %v", r.calls)
	}
}

func TestEngine_ThresholdBoundary(t *testing.T) {
	tests := []struct {
		name     string
		dx       float32
		dragging bool
	}{
		{"exactly threshold", DefaultActivationDistance, false},
		{"just past threshold", DefaultActivationDistance + 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(&recordingReorderer{}, nil)
			e.Press("A", fyne.NewPos(0, 0))
			e.Move(fyne.NewPos(tt.dx, 0))

			if e.Dragging() != tt.dragging {
				t.Errorf("Dragging() = %v after %.1f units, expected %v", e.Dragging(), tt.dx, tt.dragging)
			}
		})
	}
}

func TestEngine_ReleaseNoTarget(t *testing.T) {
	tests := []struct {
		name    string
		release fyne.Position
	}{
		{"same item", fyne.NewPos(80, 50)},
		{"outside list", fyne.NewPos(50, 500)},
		{"past last item", fyne.NewPos(950, 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recordingReorderer{}
			e := NewEngine(r, gridHitTest("A", "B"))

			e.Press("A", fyne.NewPos(10, 50))
			e.Move(fyne.NewPos(40, 50))
			if _, _, ok := e.Release(tt.release); ok {
				t.Error("Expected no reorder")
			}
			if len(r.calls) != 0 {
				t.Errorf("Expected no Reorder calls, got %v", r.calls)
			}
		})
	}
}

func TestEngine_SecondPressIgnored(t *testing.T) {
	r := &recordingReorderer{}
	e := NewEngine(r, gridHitTest("A", "B", "C"))

	if !e.Press("A", fyne.NewPos(50, 50)) {
		t.Fatal("First press should be accepted")
	}
	if e.Press("B", fyne.NewPos(150, 50)) {
		t.Error("Second press during an active gesture should be ignored")
	}
	if e.Key() != "A" {
		t.Errorf("Active gesture key changed to %s", e.Key())
	}

	e.Move(fyne.NewPos(250, 50))
	e.Release(fyne.NewPos(250, 50))

	if len(r.calls) != 1 || r.calls[0] != [2]string{"A", "C"} {
		t.Errorf("Expected Reorder(A, C), got %v", r.calls)
	}
}

func TestEngine_Cancel(t *testing.T) {
	r := &recordingReorderer{}
	e := NewEngine(r, gridHitTest("A", "B"))

	var events []bool
	e.SetDragCallback(func(key string, dragging bool) {
		events = append(events, dragging)
	})

	e.Press("A", fyne.NewPos(10, 10))
	e.Move(fyne.NewPos(150, 10))
	e.Cancel()

	if e.Active() {
		t.Error("Engine should be idle after cancel")
	}
	if _, _, ok := e.Release(fyne.NewPos(150, 10)); ok {
		t.Error("Release after cancel must not reorder")
	}
	if len(events) != 2 || !events[0] || events[1] {
		t.Errorf("Expected drag start then end callbacks, got %v", events)
	}
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{PhaseIdle, "idle"},
		{PhasePressed, "pressed"},
		{PhaseDragging, "dragging"},
		{Phase(99), "unknown"},
	}

	for _, tt := range tests {
		if tt.phase.String() != tt.expected {
			t.Errorf("Phase(%d).String() = %s, expected %s", tt.phase, tt.phase.String(), tt.expected)
		}
	}
}
