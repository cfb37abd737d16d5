package pie

import (
	"time"

	"github.com/tanema/gween/ease"
)

// DefaultEntryDuration is the length of the entry sweep.
const DefaultEntryDuration = 10 * time.Second

// entryState holds the angles a slice is currently drawn at.
type entryState struct {
	start, end float64
}

// AnimationController plays the entry sweep: every slice starts as a full
// disc and eases to its own angles. It only changes what is drawn (and hit
// tested); layout data is never touched. A new Render disposes the slice
// nodes, which stops their tweens.
type AnimationController struct {
	renderer *SliceRenderer
	groups   []*TweenGroup
	ease     ease.TweenFunc
}

// NewAnimationController creates a controller that redraws through r.
func NewAnimationController(r *SliceRenderer) *AnimationController {
	return &AnimationController{renderer: r, ease: ease.InOutCubic}
}

// Animate starts the sweep for slices over duration. A zero duration leaves
// the slices at their final angles.
func (a *AnimationController) Animate(slices []*RenderedSlice, duration time.Duration) {
	a.groups = a.groups[:0]
	if duration <= 0 {
		return
	}
	d := float32(duration.Seconds())
	for _, rs := range slices {
		st := &entryState{}
		g := NewTweenGroup(rs.Wedge, d, a.ease).
			Add(&st.start, 0, rs.Slice.StartAngle).
			Add(&st.end, FullTurn, rs.Slice.EndAngle)
		g.OnApply = func() {
			a.renderer.SetArcAngles(rs, st.start, st.end)
		}
		a.renderer.SetArcAngles(rs, st.start, st.end)
		a.groups = append(a.groups, g)
	}
}

// Update advances every tween by dt seconds.
func (a *AnimationController) Update(dt float32) {
	running := a.groups[:0]
	for _, g := range a.groups {
		g.Update(dt)
		if !g.Done {
			running = append(running, g)
		}
	}
	clear(a.groups[len(running):])
	a.groups = running
}

// Running reports whether any slice is still sweeping.
func (a *AnimationController) Running() bool {
	return len(a.groups) > 0
}

// Finish jumps every slice to its final angles.
func (a *AnimationController) Finish() {
	for _, g := range a.groups {
		g.Finish()
	}
	clear(a.groups)
	a.groups = a.groups[:0]
}
