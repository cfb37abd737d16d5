package host

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phanxgames/pie"
)

// namespace scopes selection identities generated by this package.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("github.com/phanxgames/pie/host"))

// ID is a selection identity derived from a column and a row.
type ID struct {
	key string
}

// Key returns the identity's stable string form.
func (id ID) Key() string { return id.key }

// Equals reports whether other names the same row.
func (id ID) Equals(other pie.SelectionID) bool {
	return other != nil && other.Key() == id.key
}

func (id ID) String() string { return id.key }

// ErrNoCategory is returned by CreateSelectionID before WithCategory.
var ErrNoCategory = errors.New("host: selection id has no category")

// IDBuilder derives deterministic UUIDv5 identities from the category
// column's query name, the row index and the category value. It is
// immutable; WithCategory returns a new builder.
type IDBuilder struct {
	column string
	index  int
	value  any
	set    bool
}

// NewIDBuilder returns an empty builder.
func NewIDBuilder() *IDBuilder {
	return &IDBuilder{}
}

// WithCategory binds the builder to one row of column.
func (b *IDBuilder) WithCategory(column pie.CategoryColumn, index int) pie.SelectionIDBuilder {
	nb := &IDBuilder{index: index, set: true}
	if column.Source != nil {
		nb.column = column.Source.QueryName
		if nb.column == "" {
			nb.column = column.Source.DisplayName
		}
	}
	if index >= 0 && index < len(column.Values) {
		nb.value = column.Values[index]
	}
	return nb
}

// CreateSelectionID returns the identity for the bound row.
func (b *IDBuilder) CreateSelectionID() (pie.SelectionID, error) {
	if !b.set {
		return nil, ErrNoCategory
	}
	name := fmt.Sprintf("%s\x00%d\x00%v", b.column, b.index, b.value)
	return ID{key: uuid.NewSHA1(namespace, []byte(name)).String()}, nil
}

// SelectionOption configures a SelectionManager.
type SelectionOption func(*SelectionManager)

// WithDelay delivers every result from a new goroutine after d.
func WithDelay(d time.Duration) SelectionOption {
	return func(m *SelectionManager) {
		m.async = true
		m.delay = d
	}
}

// WithReject makes Select fail for identities where fn returns an error.
// The selection state is left unchanged.
func WithReject(fn func(pie.SelectionID) error) SelectionOption {
	return func(m *SelectionManager) { m.reject = fn }
}

// SelectionManager keeps the selected identities in memory.
//
// Select without multi selects only id, or clears the selection when id is
// already the only selected identity. Select with multi toggles id and keeps
// the rest. Every state change bumps a sequence number that is stamped on the
// result, so a consumer can spot results delivered out of order.
type SelectionManager struct {
	mu       sync.Mutex
	selected []pie.SelectionID
	seq      uint64

	async  bool
	delay  time.Duration
	reject func(pie.SelectionID) error

	listeners []func([]pie.SelectionID)
}

// NewSelectionManager returns a manager with an empty selection.
func NewSelectionManager(opts ...SelectionOption) *SelectionManager {
	m := &SelectionManager{}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Select changes the selection and returns the new state.
func (m *SelectionManager) Select(id pie.SelectionID, multi bool) <-chan pie.SelectionResult {
	m.mu.Lock()
	var res pie.SelectionResult
	switch {
	case id == nil:
		res.Err = errors.New("host: select nil id")
	case m.reject != nil:
		res.Err = m.reject(id)
	}
	if res.Err == nil {
		m.selected = toggle(m.selected, id, multi)
		m.seq++
	}
	res.IDs = slices.Clone(m.selected)
	res.Seq = m.seq
	listeners := m.listeners
	m.mu.Unlock()

	if res.Err == nil {
		notify(listeners, res.IDs)
	}
	return m.deliver(res)
}

// Clear empties the selection.
func (m *SelectionManager) Clear() <-chan pie.SelectionResult {
	m.mu.Lock()
	m.selected = nil
	m.seq++
	res := pie.SelectionResult{Seq: m.seq}
	listeners := m.listeners
	m.mu.Unlock()

	notify(listeners, nil)
	return m.deliver(res)
}

// Selected returns a copy of the current selection.
func (m *SelectionManager) Selected() []pie.SelectionID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.selected)
}

// OnChange registers fn to run after every accepted change, on the
// goroutine that made it.
func (m *SelectionManager) OnChange(fn func([]pie.SelectionID)) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

func (m *SelectionManager) deliver(res pie.SelectionResult) <-chan pie.SelectionResult {
	ch := make(chan pie.SelectionResult, 1)
	if !m.async {
		ch <- res
		return ch
	}
	go func() {
		if m.delay > 0 {
			time.Sleep(m.delay)
		}
		ch <- res
	}()
	return ch
}

func toggle(selected []pie.SelectionID, id pie.SelectionID, multi bool) []pie.SelectionID {
	i := slices.IndexFunc(selected, id.Equals)
	if !multi {
		if i >= 0 && len(selected) == 1 {
			return nil
		}
		return []pie.SelectionID{id}
	}
	if i >= 0 {
		return slices.Delete(slices.Clone(selected), i, i+1)
	}
	return append(slices.Clone(selected), id)
}

func notify(listeners []func([]pie.SelectionID), ids []pie.SelectionID) {
	for _, fn := range listeners {
		fn(slices.Clone(ids))
	}
}
