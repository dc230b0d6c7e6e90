package common

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
)

func TestJsonHandlerSetsSessionCookie(t *testing.T) {
	var seen string
	h := JsonHandler(nil, func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
		seen = sessionId
		return enc.Encode(map[string]string{"ok": "yes"})
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/brands", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("Expected uuid session id, got %q", seen)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sid" || cookies[0].Value != seen {
		t.Errorf("Expected sid cookie, got %v", cookies)
	}
	if rec.Header().Get("Content-Type") != "application/json; charset=UTF-8" {
		t.Errorf("Unexpected content type %s", rec.Header().Get("Content-Type"))
	}
}

func TestJsonHandlerReusesSession(t *testing.T) {
	id := NewSessionId()
	var seen string
	h := JsonHandler(nil, func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
		seen = sessionId
		return nil
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: id})
	rec := httptest.NewRecorder()
	h(rec, req)
	if seen != id {
		t.Errorf("Expected session %s, got %s", id, seen)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Errorf("Expected no new cookie")
	}
}

func TestJsonHandlerErrorStatus(t *testing.T) {
	h := JsonHandler(nil, func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
		return WithStatus(http.StatusNotFound, errors.New("missing"))
	})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}

	h = JsonHandler(nil, func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
		return errors.New("boom")
	})
	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}
}

func TestOptions(t *testing.T) {
	called := false
	h := JsonHandler(nil, func(w http.ResponseWriter, r *http.Request, sessionId string, enc jsoncompat.Encoder) error {
		called = true
		return nil
	})
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://shop.local")
	rec := httptest.NewRecorder()
	h(rec, req)
	if called {
		t.Errorf("Expected preflight not to reach the handler")
	}
	if rec.Code != http.StatusAccepted || rec.Header().Get("Access-Control-Allow-Origin") != "http://shop.local" {
		t.Errorf("Unexpected preflight response %d %v", rec.Code, rec.Header())
	}
}

func TestLoadTimeoutConfig(t *testing.T) {
	t.Setenv("READ_TIMEOUT", "42")
	t.Setenv("WRITE_TIMEOUT", "nope")
	cfg := LoadTimeoutConfig(DefaultTimeouts())
	if cfg.Read.Seconds() != 42 {
		t.Errorf("Expected 42s read timeout, got %v", cfg.Read)
	}
	if cfg.Write != DefaultTimeouts().Write {
		t.Errorf("Expected default write timeout, got %v", cfg.Write)
	}
	srv := NewServerWithTimeouts(":0", http.NotFoundHandler(), cfg)
	if srv.ReadTimeout != cfg.Read || srv.Addr != ":0" {
		t.Errorf("Unexpected server %+v", srv)
	}
}
