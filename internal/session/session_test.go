//go:build integration

package session

import (
	"go-mini-sites/internal/config"
	"go-mini-sites/internal/data"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNew_SQLiteStorePersistsValues(t *testing.T) {
	db, err := data.NewDB(config.DBConfig{Driver: data.DriverSQLite, DSN: "file::memory:"})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer db.Close()
	if err := data.Migrate(db, data.DriverSQLite); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := config.SessionConfig{CookieName: "visitor", Lifetime: time.Hour, IdleTimeout: 10 * time.Minute}
	sm, err := New(cfg, db, data.DriverSQLite, false)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if sm.Lifetime != time.Hour || sm.IdleTimeout != 10*time.Minute {
		t.Errorf("expiry policy not applied: lifetime=%v idle=%v", sm.Lifetime, sm.IdleTimeout)
	}

	handler := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			sm.Put(r.Context(), KeyStoredPosts, "[1]")
			return
		}
		w.Write([]byte(sm.GetString(r.Context(), KeyStoredPosts)))
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	var cookie *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == "visitor" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("expected session cookie 'visitor' to be set")
	}
	if cookie.SameSite != http.SameSiteLaxMode || !cookie.HttpOnly {
		t.Errorf("unexpected cookie attributes: %+v", cookie)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Body.String() != "[1]" {
		t.Errorf("expected stored value '[1]', got %q", rr.Body.String())
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	if _, err := New(config.SessionConfig{}, nil, "postgres", false); err == nil {
		t.Error("expected an error for an unsupported driver")
	}
}
