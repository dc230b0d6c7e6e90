package catalog

import (
	"errors"
	"iter"
	"slices"

	"github.com/matst80/slask-catalog/pkg/types"
)

var ErrNotFound = errors.New("product not found")

// Catalog is the full product dataset. It is built once and never changes,
// every accessor hands out copies.
type Catalog struct {
	records []types.ProductRecord
	byId    map[types.ProductId]int
	brands  []string
}

func New(records []types.ProductRecord) *Catalog {
	c := &Catalog{
		records: slices.Clone(records),
		byId:    make(map[types.ProductId]int, len(records)),
	}
	if c.records == nil {
		c.records = []types.ProductRecord{}
	}
	for i, record := range c.records {
		if _, ok := c.byId[record.Id]; !ok {
			c.byId[record.Id] = i
		}
	}
	c.brands = DistinctBrands(c.All())
	return c
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// All yields the records in load order.
func (c *Catalog) All() iter.Seq[types.ProductRecord] {
	return func(yield func(types.ProductRecord) bool) {
		if c == nil {
			return
		}
		for i := range c.records {
			if !yield(c.records[i]) {
				return
			}
		}
	}
}

func (c *Catalog) Records() []types.ProductRecord {
	if c == nil {
		return []types.ProductRecord{}
	}
	return slices.Clone(c.records)
}

func (c *Catalog) Get(id types.ProductId) (types.ProductRecord, error) {
	if c != nil {
		if i, ok := c.byId[id]; ok {
			return c.records[i], nil
		}
	}
	return types.ProductRecord{}, ErrNotFound
}

// Brands is the brand index computed when the catalog was built.
func (c *Catalog) Brands() []string {
	if c == nil {
		return []string{}
	}
	return slices.Clone(c.brands)
}
