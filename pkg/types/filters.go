package types

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/gorilla/schema"
)

type PriceSort string

const (
	PriceSortNone      PriceSort = ""
	PriceSortLowToHigh PriceSort = "lowToHigh"
	PriceSortHighToLow PriceSort = "highToLow"
)

var ErrUnknownPriceSort = errors.New("unknown price sort")

func ParsePriceSort(value string) (PriceSort, error) {
	switch PriceSort(value) {
	case PriceSortNone, PriceSortLowToHigh, PriceSortHighToLow:
		return PriceSort(value), nil
	}
	return PriceSortNone, fmt.Errorf("%w: %q", ErrUnknownPriceSort, value)
}

// FilterState holds the five filter dimensions of the catalog page. An
// empty field means the dimension is not filtered.
type FilterState struct {
	PriceSort PriceSort `json:"sort,omitempty"`
	Size      string    `json:"size,omitempty"`
	Brand     string    `json:"brand,omitempty"`
	IdealFor  string    `json:"idealFor,omitempty"`
	Search    string    `json:"q,omitempty"`
}

type Dimension string

const (
	DimensionPrice    Dimension = "price"
	DimensionSize     Dimension = "size"
	DimensionBrand    Dimension = "brand"
	DimensionIdealFor Dimension = "idealFor"
	DimensionSearch   Dimension = "search"
	// DimensionAll marks a clear-all of the checkbox dimensions
	DimensionAll Dimension = "all"
)

// Active lists the dimensions with a value, in pipeline order.
func (f FilterState) Active() []Dimension {
	ret := make([]Dimension, 0, 5)
	if f.PriceSort != PriceSortNone {
		ret = append(ret, DimensionPrice)
	}
	if f.IdealFor != "" {
		ret = append(ret, DimensionIdealFor)
	}
	if f.Brand != "" {
		ret = append(ret, DimensionBrand)
	}
	if f.Size != "" {
		ret = append(ret, DimensionSize)
	}
	if f.Search != "" {
		ret = append(ret, DimensionSearch)
	}
	return ret
}

func (f FilterState) IsEmpty() bool {
	return f == FilterState{}
}

// Cleared resets the checkbox dimensions. The search text is kept, the
// catalog page never cleared it together with the checkboxes.
func (f FilterState) Cleared() FilterState {
	return FilterState{Search: f.Search}
}

type filterQuery struct {
	Sort     string `schema:"sort,omitempty"`
	Size     string `schema:"size,omitempty"`
	Brand    string `schema:"brand,omitempty"`
	IdealFor string `schema:"idealFor,omitempty"`
	Query    string `schema:"q,omitempty"`
}

var decoder = schema.NewDecoder()
var encoder = schema.NewEncoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

func FilterStateFromQuery(query url.Values) (FilterState, error) {
	q := filterQuery{}
	if err := decoder.Decode(&q, query); err != nil {
		return FilterState{}, err
	}
	sort, err := ParsePriceSort(q.Sort)
	if err != nil {
		return FilterState{}, err
	}
	return FilterState{
		PriceSort: sort,
		Size:      q.Size,
		Brand:     q.Brand,
		IdealFor:  q.IdealFor,
		Search:    q.Query,
	}, nil
}

// ParseFilterState reads a query string like "sort=lowToHigh&brand=Nike".
func ParseFilterState(raw string) (FilterState, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return FilterState{}, err
	}
	return FilterStateFromQuery(values)
}

func (f FilterState) Query() url.Values {
	values := url.Values{}
	q := filterQuery{
		Sort:     string(f.PriceSort),
		Size:     f.Size,
		Brand:    f.Brand,
		IdealFor: f.IdealFor,
		Query:    f.Search,
	}
	_ = encoder.Encode(&q, values) // string fields only
	return values
}

func (f FilterState) String() string {
	return f.Query().Encode()
}
