package common

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/matst80/slask-catalog/pkg/types"
)

const sessionCookie = "sid"

func NewSessionId() string {
	return uuid.New().String()
}

func setSessionCookie(w http.ResponseWriter, sessionId string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sessionId,
		SameSite: http.SameSiteNoneMode,
		Secure:   true,
		HttpOnly: true,
		MaxAge:   2592000,
		Path:     "/",
	})
}

// HandleSessionCookie returns the session id of the request, creating a new
// session (and reporting it to tracking) when the cookie is missing or invalid.
func HandleSessionCookie(trk types.Tracking, w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err == nil {
		if _, parseErr := uuid.Parse(c.Value); parseErr == nil {
			return c.Value
		}
	}
	sessionId := NewSessionId()
	if trk != nil {
		go trk.TrackSession(sessionId, r.Clone(r.Context()))
	}
	setSessionCookie(w, sessionId)
	return sessionId
}
