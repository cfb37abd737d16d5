package pie

import (
	"errors"
	"fmt"
)

type fakePalette struct {
	colors map[string]string
	calls  int
	err    error
}

func (p *fakePalette) Color(category string) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	if c, ok := p.colors[category]; ok {
		return c, nil
	}
	return "#336699", nil
}

type fakeID string

func (id fakeID) Key() string { return string(id) }

func (id fakeID) Equals(other SelectionID) bool {
	o, ok := other.(fakeID)
	return ok && o == id
}

type fakeIDBuilder struct {
	index  int
	failAt int
}

func (b *fakeIDBuilder) WithCategory(_ CategoryColumn, index int) SelectionIDBuilder {
	return &fakeIDBuilder{index: index, failAt: b.failAt}
}

func (b *fakeIDBuilder) CreateSelectionID() (SelectionID, error) {
	if b.failAt > 0 && b.index == b.failAt {
		return nil, errors.New("no identity")
	}
	return fakeID(fmt.Sprintf("row-%d", b.index)), nil
}

type selectCall struct {
	id    SelectionID
	multi bool
	clear bool
}

// fakeSelectionManager records requests and hands back channels the test
// resolves by hand.
type fakeSelectionManager struct {
	calls []selectCall
	chans []chan SelectionResult
}

func (m *fakeSelectionManager) request(c selectCall) <-chan SelectionResult {
	ch := make(chan SelectionResult, 1)
	m.calls = append(m.calls, c)
	m.chans = append(m.chans, ch)
	return ch
}

func (m *fakeSelectionManager) Select(id SelectionID, multi bool) <-chan SelectionResult {
	return m.request(selectCall{id: id, multi: multi})
}

func (m *fakeSelectionManager) Clear() <-chan SelectionResult {
	return m.request(selectCall{clear: true})
}

func (m *fakeSelectionManager) resolve(i int, res SelectionResult) {
	m.chans[i] <- res
}

type fakeTooltips struct {
	targets  []*RenderedSlice
	reselect bool
	calls    int
	data     func(SliceRecord) []TooltipItem
}

func (f *fakeTooltips) AddTooltip(targets []*RenderedSlice, data func(SliceRecord) []TooltipItem, _ func(SliceRecord) SelectionID, reselect bool) {
	f.calls++
	f.targets = targets
	f.data = data
	f.reselect = reselect
}

type fakeHost struct {
	palette  *fakePalette
	ids      *fakeIDBuilder
	manager  *fakeSelectionManager
	tooltips *fakeTooltips
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		palette:  &fakePalette{colors: map[string]string{}},
		ids:      &fakeIDBuilder{},
		manager:  &fakeSelectionManager{},
		tooltips: &fakeTooltips{},
	}
}

func (h *fakeHost) Palette() Palette                       { return h.palette }
func (h *fakeHost) SelectionIDBuilder() SelectionIDBuilder { return h.ids }
func (h *fakeHost) SelectionManager() SelectionManager     { return h.manager }
func (h *fakeHost) TooltipService() TooltipService         { return h.tooltips }

// categorical builds a single-view update from parallel columns.
func categorical(categories []any, values []any) []DataView {
	return []DataView{{Categorical: &Categorical{
		Categories: []CategoryColumn{{Source: &ColumnSource{DisplayName: "Region", QueryName: "Sales.Region"}, Values: categories}},
		Values:     []ValueColumn{{Source: &ColumnSource{DisplayName: "Sales"}, Values: values}},
	}}}
}
