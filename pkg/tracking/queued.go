package tracking

import (
	"net/http"
	"time"

	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/types"
)

// QueuedTracking hands filter events to the wrapped tracking from a
// background queue so recomputes never wait on the broker.
type QueuedTracking struct {
	inner types.Tracking
	queue *common.QueueHandler[types.FilterEvent]
}

func NewQueuedTracking(inner types.Tracking, interval time.Duration) *QueuedTracking {
	return &QueuedTracking{
		inner: inner,
		queue: common.NewQueueHandler(func(items []types.FilterEvent) {
			for _, e := range items {
				inner.TrackFilter(e)
			}
		}, 64, interval),
	}
}

func (q *QueuedTracking) TrackSession(sessionId string, r *http.Request) {
	q.inner.TrackSession(sessionId, r)
}

func (q *QueuedTracking) TrackFilter(event types.FilterEvent) {
	q.queue.Add(event)
}

// Close sends the queued events and closes the wrapped tracking.
func (q *QueuedTracking) Close() error {
	q.queue.Close()
	return q.inner.Close()
}
