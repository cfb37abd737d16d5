// Package pie is an interactive pie chart visual drawn with [Ebitengine].
//
// A host hands the visual tabular data (one category column, one value
// column) and a viewport. The visual turns it into a view model, lays the
// values out as angular spans of a full turn, draws one wedge and one label
// per slice, sweeps the slices in on first draw, and turns clicks into
// selection requests against the host.
//
// # Quick start
//
//	scene := pie.NewScene()
//	v, err := pie.NewVisual(pie.ConstructorOptions{Host: h, Scene: scene})
//	if err != nil {
//		return err
//	}
//	err = v.Update(pie.UpdateOptions{
//		DataViews: views,
//		Viewport:  pie.Viewport{Width: 640, Height: 480},
//	})
//	...
//	pie.Run(scene, pie.RunConfig{Title: "Sales", Width: 640, Height: 480})
//
// The host package provides a ready-made [Host] with a generated palette,
// in-memory selection and overlay tooltips.
//
// # Pipeline
//
// [BuildViewModel] normalizes the data view into [SliceRecord] values.
// [Layout] assigns each record a start and end angle, clockwise from 12
// o'clock. [Arc] flattens a slice into a polygon for drawing and into an
// SVG path for [RenderSVG]. [SliceRenderer] owns the surface and redraws it
// from scratch on every update. [InteractionController] and
// [AnimationController] drive selection opacity and the entry sweep.
//
// # Scene graph
//
// Drawing goes through a small retained scene graph. Every visual element
// is a [Node]; nodes form a tree rooted at [Scene.Root] and inherit their
// parent's transform and alpha. [Scene.Draw] flattens the tree into render
// commands, sorts them by layer and tree order, and submits them to the
// screen. Hit testing runs against world coordinates and clicks bubble from
// the hit node to its ancestors and then to scene handlers, unless a
// handler calls [ClickContext.StopPropagation].
//
// All Scene, Node and Visual methods must be called from the goroutine that
// runs the game loop. Selection results produced on other goroutines are
// delivered through channels and applied on the next frame.
//
// [Ebitengine]: https://ebitengine.org
package pie
