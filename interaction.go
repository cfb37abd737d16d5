package pie

import (
	"github.com/charmbracelet/log"
)

// pendingSelection is a selection request whose result has not arrived yet.
type pendingSelection struct {
	ch      <-chan SelectionResult
	clicked *RenderedSlice // nil for clears
	seq     uint64         // update the request was made under
}

// InteractionController turns slice clicks into selection requests and
// applies the results to slice opacity. Results are only applied from Poll,
// on the scene's goroutine.
type InteractionController struct {
	manager  SelectionManager
	tooltips TooltipService
	logger   *log.Logger

	solid       float64
	transparent float64

	slices  []*RenderedSlice
	seq     uint64
	hostSeq uint64
	pending []pendingSelection
}

// NewInteractionController creates a controller. manager and tooltips may be
// nil, which disables selection and tooltips respectively.
func NewInteractionController(manager SelectionManager, tooltips TooltipService, cfg Config, logger *log.Logger) *InteractionController {
	return &InteractionController{
		manager:     manager,
		tooltips:    tooltips,
		logger:      loggerOrDefault(logger),
		solid:       cfg.SolidOpacity,
		transparent: cfg.TransparentOpacity,
	}
}

// Attach binds click handlers and tooltips to freshly rendered slices. seq
// is the update sequence number they were rendered under; results of
// requests made under an older sequence are discarded.
func (c *InteractionController) Attach(slices []*RenderedSlice, seq uint64) {
	c.slices = slices
	c.seq = seq
	for _, rs := range slices {
		rs.Node.OnClick = func(ctx ClickContext) {
			if ctx.Button != MouseButtonLeft {
				return
			}
			ctx.StopPropagation()
			c.selectSlice(rs, ctx.Modifiers&(ModCtrl|ModMeta) != 0)
		}
	}
	// An empty set still goes to the service so it can drop a tooltip left
	// over from slices that were just disposed.
	if c.tooltips != nil {
		c.tooltips.AddTooltip(slices, TooltipData, tooltipIdentity, true)
	}
}

// TooltipData returns the tooltip lines for a record: its category, its raw
// value and its color.
func TooltipData(rec SliceRecord) []TooltipItem {
	return []TooltipItem{{
		DisplayName: rec.Category,
		Value:       FormatRaw(rec.Value),
		Color:       rec.Color,
	}}
}

func tooltipIdentity(rec SliceRecord) SelectionID {
	return rec.SelectionID
}

// Slices returns the slices currently attached.
func (c *InteractionController) Slices() []*RenderedSlice {
	return c.slices
}

// Pending returns the number of selection requests awaiting a result.
func (c *InteractionController) Pending() int {
	return len(c.pending)
}

func (c *InteractionController) selectSlice(rs *RenderedSlice, multi bool) {
	if c.manager == nil {
		return
	}
	ch := c.manager.Select(rs.Record().SelectionID, multi)
	c.pending = append(c.pending, pendingSelection{ch: ch, clicked: rs, seq: c.seq})
}

// ClearSelection asks the selection manager to clear the selection. The
// result is applied by Poll like any other.
func (c *InteractionController) ClearSelection() {
	if c.manager == nil {
		return
	}
	c.pending = append(c.pending, pendingSelection{ch: c.manager.Clear(), seq: c.seq})
}

// Poll applies every selection result that has arrived, in request order,
// without blocking. It returns the number of results consumed.
func (c *InteractionController) Poll() int {
	consumed := 0
	kept := c.pending[:0]
	for _, p := range c.pending {
		select {
		case res, ok := <-p.ch:
			consumed++
			if !ok {
				c.logger.Debug("selection channel closed without a result")
				continue
			}
			c.apply(p, res)
		default:
			kept = append(kept, p)
		}
	}
	clear(c.pending[len(kept):])
	c.pending = kept
	return consumed
}

func (c *InteractionController) apply(p pendingSelection, res SelectionResult) {
	if p.seq != c.seq {
		c.logger.Debug("dropping stale selection result", "requested", p.seq, "current", c.seq)
		return
	}
	if res.Err != nil {
		c.logger.Debug("selection rejected", "err", Wrap(ErrCodeSelection, res.Err, "select"))
		return
	}
	if res.Seq != 0 {
		if res.Seq < c.hostSeq {
			c.logger.Debug("dropping out-of-order selection result", "seq", res.Seq, "last", c.hostSeq)
			return
		}
		c.hostSeq = res.Seq
	}
	c.applyIDs(res.IDs, p.clicked)
}

// ApplySelection sets opacity from a selection the host changed on its own,
// e.g. from another visual.
func (c *InteractionController) ApplySelection(ids []SelectionID) {
	c.applyIDs(ids, nil)
}

// applyIDs dims every slice when ids is non-empty, then restores the
// selected slices and the clicked one. An empty set restores all slices.
func (c *InteractionController) applyIDs(ids []SelectionID, clicked *RenderedSlice) {
	if len(ids) == 0 {
		for _, rs := range c.slices {
			rs.SetOpacity(c.solid)
		}
		return
	}
	for _, rs := range c.slices {
		if rs == clicked || containsID(ids, rs.Record().SelectionID) {
			rs.SetOpacity(c.solid)
		} else {
			rs.SetOpacity(c.transparent)
		}
	}
}
