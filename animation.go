package pie

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates any number of float64 fields together over one
// duration and easing. Call Update(dt) each frame. When every tween has
// finished, each field is set to its exact float64 target (gween works in
// float32). If the target node is disposed, the group stops immediately
// without writing.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens   []*gween.Tween
	fields   []*float64
	ends     []float64
	duration float32
	fn       ease.TweenFunc
	target   *Node

	// OnApply, if set, runs after every Update that wrote values.
	OnApply func()

	Done bool
}

// NewTweenGroup creates an empty group bound to target. A nil target is
// allowed for fields that live outside the scene graph.
func NewTweenGroup(target *Node, duration float32, fn ease.TweenFunc) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	return &TweenGroup{target: target, duration: duration, fn: fn}
}

// Add animates *field from `from` to `to`. *field is set to `from` at once.
func (g *TweenGroup) Add(field *float64, from, to float64) *TweenGroup {
	*field = from
	g.tweens = append(g.tweens, gween.New(float32(from), float32(to), g.duration, g.fn))
	g.fields = append(g.fields, field)
	g.ends = append(g.ends, to)
	return g
}

// Update advances all tweens by dt seconds, writes values to the fields, and
// marks the target dirty.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i, tw := range g.tweens {
		val, finished := tw.Update(dt)
		if finished {
			*g.fields[i] = g.ends[i]
		} else {
			*g.fields[i] = float64(val)
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
	if g.OnApply != nil {
		g.OnApply()
	}
}

// Finish jumps every field to its target and marks the group done.
func (g *TweenGroup) Finish() {
	if g.Done {
		return
	}
	for i, f := range g.fields {
		*f = g.ends[i]
	}
	g.Done = true
	if g.target != nil && !g.target.IsDisposed() {
		g.target.MarkDirty()
		if g.OnApply != nil {
			g.OnApply()
		}
	}
}
