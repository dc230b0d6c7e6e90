package catalog

import (
	"iter"

	"github.com/matst80/slask-catalog/pkg/types"
)

// DistinctBrands returns every brand label once, in the order it is first
// seen. Records without a brand are skipped.
func DistinctBrands(records iter.Seq[types.ProductRecord]) []string {
	seen := make(map[string]struct{})
	ret := make([]string, 0)
	for record := range records {
		if record.ProductBrand == "" {
			continue
		}
		if _, ok := seen[record.ProductBrand]; ok {
			continue
		}
		seen[record.ProductBrand] = struct{}{}
		ret = append(ret, record.ProductBrand)
	}
	return ret
}
