package tracking

import (
	"sync"

	"github.com/matst80/slask-catalog/pkg/filter"
	"github.com/matst80/slask-catalog/pkg/types"
)

// Attach reports every recompute of ctrl as a filter event for sessionId.
// Snapshots older than the last reported one are dropped, so events keep
// Generation order under concurrent mutations.
func Attach(ctrl *filter.Controller, trk types.Tracking, sessionId string) func() {
	if trk == nil {
		return func() {}
	}
	total := ctrl.Catalog().Len()
	mu := sync.Mutex{}
	var last uint64
	return ctrl.OnChange(func(s filter.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		if s.Generation <= last {
			return
		}
		last = s.Generation
		trk.TrackFilter(types.FilterEvent{
			SessionId:  sessionId,
			Generation: s.Generation,
			State:      s.State,
			Changed:    s.Changed,
			Visible:    len(s.Visible),
			Total:      total,
		})
	})
}
