package filter

import (
	"testing"

	dto "github.com/prometheus/client_model/go"

	"github.com/matst80/slask-catalog/pkg/types"
)

func visibleObservations(t *testing.T) uint64 {
	t.Helper()
	m := &dto.Metric{}
	if err := visibleItems.Write(m); err != nil {
		t.Fatal(err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestVisibleItemsObservedPerControllerChange(t *testing.T) {
	c := testCatalog()
	before := visibleObservations(t)

	ComputeVisible(c, types.FilterState{Brand: "Puma"})
	Apply(c.Records(), types.FilterState{})
	if got := visibleObservations(t); got != before {
		t.Errorf("Expected pipeline runs not to observe, got %d new", got-before)
	}

	ctrl := NewController(c, types.FilterState{})
	ctrl.SetBrand("Puma", true)
	ctrl.ClearAll()
	if got := visibleObservations(t); got != before+2 {
		t.Errorf("Expected 2 observations, got %d", got-before)
	}
}
