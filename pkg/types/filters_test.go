package types

import (
	"errors"
	"net/url"
	"slices"
	"testing"
)

func TestFilterStateQueryRoundTrip(t *testing.T) {
	state := FilterState{
		PriceSort: PriceSortHighToLow,
		Size:      "XL",
		Brand:     "Nike",
		IdealFor:  "MEN",
		Search:    "red shoe",
	}
	got, err := FilterStateFromQuery(state.Query())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != state {
		t.Errorf("Expected %+v, got %+v", state, got)
	}
}

func TestFilterStateQueryOmitsEmpty(t *testing.T) {
	q := FilterState{Brand: "Nike"}.Query()
	if len(q) != 1 || q.Get("brand") != "Nike" {
		t.Errorf("Expected only brand in query, got %v", q)
	}
	if (FilterState{}).String() != "" {
		t.Errorf("Expected empty state to encode as empty string")
	}
}

func TestParseFilterState(t *testing.T) {
	state, err := ParseFilterState("sort=lowToHigh&brand=Nike&unknown=1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if state.PriceSort != PriceSortLowToHigh || state.Brand != "Nike" {
		t.Errorf("Unexpected state %+v", state)
	}
}

func TestFilterStateFromQueryRejectsUnknownSort(t *testing.T) {
	_, err := FilterStateFromQuery(url.Values{"sort": {"popular"}})
	if !errors.Is(err, ErrUnknownPriceSort) {
		t.Errorf("Expected ErrUnknownPriceSort, got %v", err)
	}
}

func TestFilterStateActive(t *testing.T) {
	if !(FilterState{}).IsEmpty() {
		t.Errorf("Expected zero state to be empty")
	}
	state := FilterState{PriceSort: PriceSortLowToHigh, Size: "M", Search: "x"}
	expected := []Dimension{DimensionPrice, DimensionSize, DimensionSearch}
	if !slices.Equal(state.Active(), expected) {
		t.Errorf("Expected %v, got %v", expected, state.Active())
	}
}

func TestFilterStateClearedKeepsSearch(t *testing.T) {
	state := FilterState{PriceSort: PriceSortLowToHigh, Size: "M", Brand: "Nike", IdealFor: "MEN", Search: "shoe"}
	cleared := state.Cleared()
	if cleared != (FilterState{Search: "shoe"}) {
		t.Errorf("Expected only search to remain, got %+v", cleared)
	}
}
