// Package host provides an in-process implementation of the services a pie
// visual needs from its host: a category palette, selection identities, a
// selection manager and tooltips.
package host

import (
	"github.com/phanxgames/pie"
)

// Host bundles the in-process services.
type Host struct {
	palette   *Palette
	ids       *IDBuilder
	selection *SelectionManager
	tooltips  *TooltipService
}

var _ pie.Host = (*Host)(nil)

// Options configure New.
type Options struct {
	// Palette overrides the first generated colors.
	Palette []string
	// Font is used for tooltips. Nil disables tooltips.
	Font *pie.Font
	// Selection options, e.g. WithDelay.
	Selection []SelectionOption
}

// New builds a host whose tooltips draw into scene.
func New(scene *pie.Scene, opts Options) (*Host, error) {
	p, err := NewPalette(opts.Palette)
	if err != nil {
		return nil, err
	}
	h := &Host{
		palette:   p,
		ids:       NewIDBuilder(),
		selection: NewSelectionManager(opts.Selection...),
	}
	if opts.Font != nil && scene != nil {
		h.tooltips = NewTooltipService(scene, opts.Font)
	}
	return h, nil
}

func (h *Host) Palette() pie.Palette                       { return h.palette }
func (h *Host) SelectionIDBuilder() pie.SelectionIDBuilder { return h.ids }
func (h *Host) SelectionManager() pie.SelectionManager     { return h.selection }

// TooltipService returns nil when the host was built without a font.
func (h *Host) TooltipService() pie.TooltipService {
	if h.tooltips == nil {
		return nil
	}
	return h.tooltips
}

// Selection returns the concrete selection manager.
func (h *Host) Selection() *SelectionManager { return h.selection }

// Tooltips returns the concrete tooltip service, or nil.
func (h *Host) Tooltips() *TooltipService { return h.tooltips }
