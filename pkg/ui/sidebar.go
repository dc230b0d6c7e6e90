package ui

import (
	"github.com/matst80/slask-catalog/pkg/config"
	"github.com/matst80/slask-catalog/pkg/types"
)

type entryKind int

const (
	entryClear entryKind = iota
	entryHeader
	entryOption
)

// entry is one row of the filter sidebar.
type entry struct {
	kind      entryKind
	dimension types.Dimension
	title     string
	value     string
}

func (e entry) selectable() bool {
	return e.kind != entryHeader
}

func (e entry) checked(state types.FilterState) bool {
	if e.kind != entryOption {
		return false
	}
	switch e.dimension {
	case types.DimensionPrice:
		return string(state.PriceSort) == e.value
	case types.DimensionSize:
		return state.Size == e.value
	case types.DimensionBrand:
		return state.Brand == e.value
	case types.DimensionIdealFor:
		return state.IdealFor == e.value
	}
	return false
}

func buildEntries(cfg config.Config, brands []string) []entry {
	ret := []entry{{kind: entryClear, dimension: types.DimensionAll, title: "Clear All Filters"}}
	ret = append(ret, entry{kind: entryHeader, title: "Prices"})
	for _, o := range cfg.PriceSorts {
		ret = append(ret, entry{kind: entryOption, dimension: types.DimensionPrice, title: o.Title, value: o.Value})
	}
	ret = append(ret, entry{kind: entryHeader, title: "Sizes"})
	for _, s := range cfg.Sizes {
		ret = append(ret, entry{kind: entryOption, dimension: types.DimensionSize, title: s, value: s})
	}
	ret = append(ret, entry{kind: entryHeader, title: "Brands"})
	for _, b := range brands {
		ret = append(ret, entry{kind: entryOption, dimension: types.DimensionBrand, title: b, value: b})
	}
	ret = append(ret, entry{kind: entryHeader, title: "Ideal for"})
	for _, o := range cfg.IdealFor {
		ret = append(ret, entry{kind: entryOption, dimension: types.DimensionIdealFor, title: o.Title, value: o.Value})
	}
	return ret
}

// nextSelectable walks from i in direction step and stays put at the ends.
func nextSelectable(entries []entry, i, step int) int {
	for j := i + step; j >= 0 && j < len(entries); j += step {
		if entries[j].selectable() {
			return j
		}
	}
	return i
}
