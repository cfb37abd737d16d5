package pie

import (
	"encoding/json"
)

// Script actions understood by TestRunner.
const (
	actionClick      = "click"      // x, y, optional ctrl
	actionMove       = "move"       // x, y
	actionWait       = "wait"       // frames
	actionScreenshot = "screenshot" // label
)

type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Ctrl   bool    `json:"ctrl,omitempty"`
}

// TestRunner replays a scripted sequence of pointer input and screenshots,
// one step per frame, so chart interactions can be checked visually without
// a person at the mouse. A script looks like:
//
//	{"steps": [
//	  {"action": "click", "x": 120, "y": 40, "ctrl": true},
//	  {"action": "wait", "frames": 30},
//	  {"action": "screenshot", "label": "two selected"}
//	]}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON script. Scripts without steps or with an
// unknown action are rejected with an ErrCodeInvalidConfig error.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script struct {
		Steps []testStep `json:"steps"`
	}
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, Wrap(ErrCodeInvalidConfig, err, "parse test script")
	}
	if len(script.Steps) == 0 {
		return nil, NewError(ErrCodeInvalidConfig, "test script has no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case actionClick, actionMove, actionWait, actionScreenshot:
		default:
			return nil, NewError(ErrCodeInvalidConfig, "test script step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner to s. It advances at the start of every
// Scene.Update, ahead of pointer processing.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether every step has run and its input was delivered.
func (r *TestRunner) Done() bool {
	return r.done
}

func (r *TestRunner) step(s *Scene) {
	switch {
	case r.done, len(s.injectQueue) > 0:
		return
	case r.waitCount > 0:
		r.waitCount--
		return
	case r.cursor == len(r.steps):
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	switch st.Action {
	case actionClick:
		mods := KeyModifiers(0)
		if st.Ctrl {
			mods = ModCtrl
		}
		s.InjectClickWithModifiers(st.X, st.Y, mods)
	case actionMove:
		s.InjectMove(st.X, st.Y)
	case actionWait:
		// The current frame is the first one waited.
		r.waitCount = max(st.Frames-1, 0)
	case actionScreenshot:
		s.Screenshot(st.Label)
	}

	r.done = r.cursor == len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0
}
