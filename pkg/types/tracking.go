package types

import (
	"net/http"
)

// FilterEvent is reported every time the visible list of a session is
// recomputed.
type FilterEvent struct {
	SessionId  string      `json:"session_id"`
	Generation uint64      `json:"generation"`
	State      FilterState `json:"state"`
	Changed    Dimension   `json:"changed,omitempty"`
	Visible    int         `json:"visible"`
	Total      int         `json:"total"`
}

type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackFilter(event FilterEvent)
	Close() error
}
