package filter

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/types"
)

// Stage is one narrowing step of the pipeline.
type Stage struct {
	Dimension types.Dimension
	Active    func(state types.FilterState) bool
	Match     func(state types.FilterState, record *types.ProductRecord) bool
}

// Stages run in this order after the price sort.
var Stages = []Stage{
	{
		Dimension: types.DimensionIdealFor,
		Active:    func(s types.FilterState) bool { return s.IdealFor != "" },
		Match: func(s types.FilterState, r *types.ProductRecord) bool {
			return r.IdealFor == s.IdealFor
		},
	},
	{
		Dimension: types.DimensionBrand,
		Active:    func(s types.FilterState) bool { return s.Brand != "" },
		Match: func(s types.FilterState, r *types.ProductRecord) bool {
			return r.ProductBrand == s.Brand
		},
	},
	{
		Dimension: types.DimensionSize,
		Active:    func(s types.FilterState) bool { return s.Size != "" },
		Match: func(s types.FilterState, r *types.ProductRecord) bool {
			size, ok := r.Size()
			return ok && size == s.Size
		},
	},
	{
		Dimension: types.DimensionSearch,
		Active:    func(s types.FilterState) bool { return s.Search != "" },
		Match: func(s types.FilterState, r *types.ProductRecord) bool {
			return strings.Contains(strings.ToLower(r.Titles.Title), strings.ToLower(s.Search))
		},
	},
}

// ComputeVisible derives the displayed products from the catalog: sort by
// price first, then keep the records matching every active filter. The
// catalog is not modified and the result is a new slice.
func ComputeVisible(c *catalog.Catalog, state types.FilterState) []types.ProductRecord {
	return run(slices.Collect(c.All()), state)
}

// Apply is ComputeVisible for a plain slice, records is left untouched.
func Apply(records []types.ProductRecord, state types.FilterState) []types.ProductRecord {
	return run(slices.Clone(records), state)
}

func run(owned []types.ProductRecord, state types.FilterState) []types.ProductRecord {
	s := time.Now()
	if owned == nil {
		owned = []types.ProductRecord{}
	}
	sortByPrice(owned, state.PriceSort)
	ret := owned
	for i := range Stages {
		if Stages[i].Active(state) {
			ret = keep(ret, state, Stages[i].Match)
		}
	}
	filterRuns.Inc()
	filterDuration.Observe(time.Since(s).Seconds())
	return ret
}

func keep(records []types.ProductRecord, state types.FilterState, match func(types.FilterState, *types.ProductRecord) bool) []types.ProductRecord {
	ret := make([]types.ProductRecord, 0, len(records))
	for i := range records {
		if match(state, &records[i]) {
			ret = append(ret, records[i])
		}
	}
	return ret
}

// sortPrice is the sort key. Prices without a leading digit sort as 0.
func sortPrice(r *types.ProductRecord) int64 {
	v, _ := r.Price()
	return v
}

// sortByPrice orders records in place. Equal prices keep their relative
// order, and with no (or an unknown) price sort nothing moves.
func sortByPrice(records []types.ProductRecord, sort types.PriceSort) {
	dir := 0
	switch sort {
	case types.PriceSortLowToHigh:
		dir = 1
	case types.PriceSortHighToLow:
		dir = -1
	}
	if dir == 0 {
		return
	}
	slices.SortStableFunc(records, func(a, b types.ProductRecord) int {
		return dir * cmp.Compare(sortPrice(&a), sortPrice(&b))
	})
}

type StageResult struct {
	Dimension types.Dimension `json:"dimension"`
	Remaining int             `json:"remaining"`
}

// Trace runs the active stages one by one and reports how many products are
// left after each, starting with the full catalog under DimensionPrice.
func Trace(c *catalog.Catalog, state types.FilterState) []StageResult {
	records := slices.Collect(c.All())
	ret := []StageResult{{Dimension: types.DimensionPrice, Remaining: len(records)}}
	for i := range Stages {
		if !Stages[i].Active(state) {
			continue
		}
		records = keep(records, state, Stages[i].Match)
		ret = append(ret, StageResult{Dimension: Stages[i].Dimension, Remaining: len(records)})
	}
	return ret
}

// EmptiedBy returns the first active dimension that left no products.
func EmptiedBy(c *catalog.Catalog, state types.FilterState) (types.Dimension, bool) {
	trace := Trace(c, state)
	if trace[0].Remaining == 0 {
		return "", false
	}
	for _, r := range trace[1:] {
		if r.Remaining == 0 {
			return r.Dimension, true
		}
	}
	return "", false
}
