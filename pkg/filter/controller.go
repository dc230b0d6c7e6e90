package filter

import (
	"slices"
	"sync"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/types"
)

// Snapshot is a filter state together with the visible list computed from
// it. Visible is shared between readers and must not be modified.
type Snapshot struct {
	Generation uint64
	State      types.FilterState
	Changed    types.Dimension
	Visible    []types.ProductRecord
}

type Listener func(Snapshot)

// Controller owns the filter state of one catalog view. Every mutation
// recomputes the visible list before it returns, and state and list are
// always published together.
type Controller struct {
	mu        sync.RWMutex
	catalog   *catalog.Catalog
	current   Snapshot
	listeners map[int]Listener
	nextId    int
}

func NewController(c *catalog.Catalog, initial types.FilterState) *Controller {
	return &Controller{
		catalog: c,
		current: Snapshot{
			State:   initial,
			Visible: ComputeVisible(c, initial),
		},
		listeners: make(map[int]Listener),
	}
}

func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

func (c *Controller) State() types.FilterState {
	return c.Snapshot().State
}

// Visible returns a copy of the current visible list.
func (c *Controller) Visible() []types.ProductRecord {
	return slices.Clone(c.Snapshot().Visible)
}

// OnChange registers fn to be called after every recompute. The returned
// func removes it again. Listeners run outside the lock, so concurrent
// mutations may deliver snapshots out of Generation order.
func (c *Controller) OnChange(fn Listener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextId
	c.nextId++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *Controller) update(changed types.Dimension, fn func(state *types.FilterState)) Snapshot {
	c.mu.Lock()
	next := c.current.State
	fn(&next)
	snap := Snapshot{
		Generation: c.current.Generation + 1,
		State:      next,
		Changed:    changed,
		Visible:    ComputeVisible(c.catalog, next),
	}
	c.current = snap
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, c.listeners[id])
	}
	c.mu.Unlock()

	stateChanges.WithLabelValues(string(changed)).Inc()
	visibleItems.Observe(float64(len(snap.Visible)))
	for _, l := range listeners {
		l(snap)
	}
	return snap
}

func checkbox(value string, checked bool) string {
	if checked {
		return value
	}
	return ""
}

// SetPriceSort mirrors the price checkboxes: checking one selects it,
// unchecking clears the price sort.
func (c *Controller) SetPriceSort(value types.PriceSort, checked bool) Snapshot {
	return c.update(types.DimensionPrice, func(s *types.FilterState) {
		s.PriceSort = types.PriceSort(checkbox(string(value), checked))
	})
}

func (c *Controller) SetSize(value string, checked bool) Snapshot {
	return c.update(types.DimensionSize, func(s *types.FilterState) {
		s.Size = checkbox(value, checked)
	})
}

func (c *Controller) SetBrand(value string, checked bool) Snapshot {
	return c.update(types.DimensionBrand, func(s *types.FilterState) {
		s.Brand = checkbox(value, checked)
	})
}

func (c *Controller) SetIdealFor(value string, checked bool) Snapshot {
	return c.update(types.DimensionIdealFor, func(s *types.FilterState) {
		s.IdealFor = checkbox(value, checked)
	})
}

func (c *Controller) SetSearch(text string) Snapshot {
	return c.update(types.DimensionSearch, func(s *types.FilterState) {
		s.Search = text
	})
}

// ClearAll resets price, size, brand and ideal-for. The search text stays.
func (c *Controller) ClearAll() Snapshot {
	return c.update(types.DimensionAll, func(s *types.FilterState) {
		*s = s.Cleared()
	})
}

// Toggle applies a checkbox click for dim, checking value unless it is
// already the selected one.
func (c *Controller) Toggle(dim types.Dimension, value string) Snapshot {
	state := c.State()
	switch dim {
	case types.DimensionPrice:
		return c.SetPriceSort(types.PriceSort(value), string(state.PriceSort) != value)
	case types.DimensionSize:
		return c.SetSize(value, state.Size != value)
	case types.DimensionBrand:
		return c.SetBrand(value, state.Brand != value)
	case types.DimensionIdealFor:
		return c.SetIdealFor(value, state.IdealFor != value)
	}
	return c.Snapshot()
}
