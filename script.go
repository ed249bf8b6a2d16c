package mapedit

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in a gesture script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Button string  `json:"button,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty"`
	Index  int     `json:"index,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type gestureScript struct {
	Steps []scriptStep `json:"steps"`
}

// GestureScript sequences injected input across frames for automated
// editor tests. Attach it with Editor.SetGestureScript.
//
// Supported actions: "enter", "press", "move", "release", "drag", "wheel",
// "select" (palette index), "tab" (tab index) and "wait" (frames).
type GestureScript struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadGestureScript parses a JSON gesture script.
func LoadGestureScript(jsonData []byte) (*GestureScript, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("mapedit: parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("mapedit: parse gesture script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "enter", "press", "move", "release", "drag", "wheel", "select", "tab", "wait":
		default:
			return nil, fmt.Errorf("mapedit: parse gesture script: step %d: unknown action %q", i, st.Action)
		}
		if _, err := parseButton(st.Button); err != nil {
			return nil, fmt.Errorf("mapedit: parse gesture script: step %d: %w", i, err)
		}
	}
	return &GestureScript{steps: script.Steps}, nil
}

// SetGestureScript attaches s to the editor. Each Update runs the script
// before dispatching queued input. Pass nil to detach.
func (e *Editor) SetGestureScript(s *GestureScript) {
	e.script = s
}

// Done reports whether every step has been executed.
func (s *GestureScript) Done() bool {
	return s.done
}

func parseButton(name string) (MouseButton, error) {
	switch name {
	case "", "left":
		return MouseButtonLeft, nil
	case "middle":
		return MouseButtonMiddle, nil
	case "right":
		return MouseButtonRight, nil
	default:
		return 0, fmt.Errorf("unknown button %q", name)
	}
}

// step advances the script by one frame.
func (s *GestureScript) step(e *Editor) {
	if s.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(e.injectQueue) > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++
	button, _ := parseButton(st.Button)

	switch st.Action {
	case "enter":
		e.InjectEnter(st.X, st.Y)
	case "press":
		e.InjectPress(st.X, st.Y, button)
	case "move":
		e.InjectMove(st.X, st.Y)
	case "release":
		e.InjectRelease(st.X, st.Y)
	case "drag":
		e.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, button, st.Frames)
	case "wheel":
		e.InjectWheel(st.X, st.Y, st.DeltaY)
	case "select":
		_ = e.SelectTexture(st.Index)
	case "tab":
		_ = e.SelectTab(st.Index)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && len(e.injectQueue) == 0 {
		s.done = true
	}
}
