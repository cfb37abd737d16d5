package pie

// Palette resolves a display color for a category. Implementations must be
// deterministic for the same category within a session.
type Palette interface {
	Color(category string) (string, error)
}

// SelectionID is an opaque identity token owned by the host. The visual only
// stores it, compares it and hands it back.
type SelectionID interface {
	Key() string
	Equals(other SelectionID) bool
}

// SelectionIDBuilder binds identities to rows of the category column.
type SelectionIDBuilder interface {
	WithCategory(column CategoryColumn, index int) SelectionIDBuilder
	CreateSelectionID() (SelectionID, error)
}

// SelectionResult is the outcome of a selection request: the set of
// currently selected identities, or an error when the host rejected it.
// Seq is assigned by the selection manager and increases with each accepted
// change; results with a lower Seq than one already applied are ignored.
type SelectionResult struct {
	IDs []SelectionID
	Err error
	Seq uint64
}

// SelectionManager owns the host's selection state. Each call returns a
// channel that delivers exactly one result, possibly from another goroutine.
type SelectionManager interface {
	Select(id SelectionID, multi bool) <-chan SelectionResult
	Clear() <-chan SelectionResult
}

// TooltipItem is one line of a tooltip.
type TooltipItem struct {
	DisplayName string
	Value       string
	Color       string
}

// TooltipService shows tooltips for rendered slices. When reselect is true
// the service keeps showing the tooltip across redraws for the slice with
// the same identity.
type TooltipService interface {
	AddTooltip(
		targets []*RenderedSlice,
		data func(SliceRecord) []TooltipItem,
		identity func(SliceRecord) SelectionID,
		reselect bool,
	)
}

// Host bundles the services a Visual consumes.
type Host interface {
	Palette() Palette
	SelectionIDBuilder() SelectionIDBuilder
	SelectionManager() SelectionManager
	TooltipService() TooltipService
}

// containsID reports whether ids holds an identity equal to id.
func containsID(ids []SelectionID, id SelectionID) bool {
	if id == nil {
		return false
	}
	for _, other := range ids {
		if other != nil && id.Equals(other) {
			return true
		}
	}
	return false
}
