package mapedit

// syntheticKind is the kind of an injected input event.
type syntheticKind uint8

const (
	syntheticEnter syntheticKind = iota
	syntheticDown
	syntheticMove
	syntheticUp
	syntheticWheel
)

// syntheticEvent is one queued input event in client coordinates.
type syntheticEvent struct {
	kind   syntheticKind
	x, y   float64
	button MouseButton
	deltaY float64
}

// InjectEnter queues a pointer-enter event at the given client coordinates.
// Queued events are consumed one per Update, through the same handlers as
// real input.
func (e *Editor) InjectEnter(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticEnter, x: x, y: y})
}

// InjectPress queues a button press.
func (e *Editor) InjectPress(x, y float64, button MouseButton) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticDown, x: x, y: y, button: button})
}

// InjectMove queues a pointer move.
func (e *Editor) InjectMove(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticMove, x: x, y: y})
}

// InjectRelease queues a button release.
func (e *Editor) InjectRelease(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticUp, x: x, y: y})
}

// InjectWheel queues a wheel event.
func (e *Editor) InjectWheel(x, y, deltaY float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: syntheticWheel, x: x, y: y, deltaY: deltaY})
}

// InjectDrag queues a full drag with button: press at (fromX, fromY),
// frames-2 linearly interpolated moves, a move to (toX, toY) and a release
// there. The sequence consumes frames+1 updates; frames is at least 2.
func (e *Editor) InjectDrag(fromX, fromY, toX, toY float64, button MouseButton, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectPress(fromX, fromY, button)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		e.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	// The final move lands the gesture on the target before release.
	e.InjectMove(toX, toY)
	e.InjectRelease(toX, toY)
}

// Injecting reports whether synthetic input is queued or a script is still
// running. Hosts skip real pointer input while it is.
func (e *Editor) Injecting() bool {
	return len(e.injectQueue) > 0 || (e.script != nil && !e.script.Done())
}

// processInjected pops one queued event and dispatches it.
func (e *Editor) processInjected() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	ev := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	p := PointerEvent{X: ev.x, Y: ev.y, Button: ev.button}
	switch ev.kind {
	case syntheticEnter:
		e.PointerEnter(p)
	case syntheticDown:
		e.PointerDown(p)
	case syntheticMove:
		e.PointerMove(p)
	case syntheticUp:
		e.PointerUp(p)
	case syntheticWheel:
		e.Wheel(WheelEvent{X: ev.x, Y: ev.y, DeltaY: ev.deltaY})
	}
	return true
}
