package session

import (
	"context"
	"fmt"
	"go-mini-sites/internal/config"
	"net/http"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/jmoiron/sqlx"
)

// Session keys shared by the sites.
const (
	KeyStoredPosts    = "stored_posts"
	KeyFavoriteReview = "favorite_review"
)

// Manager is an interface that abstracts the session management implementation.
// This allows for easier testing and dependency injection.
type Manager interface {
	LoadAndSave(next http.Handler) http.Handler
	Get(ctx context.Context, key string) interface{}
	Put(ctx context.Context, key string, val interface{})
	Exists(ctx context.Context, key string) bool
	GetString(ctx context.Context, key string) string
	PopString(ctx context.Context, key string) string
	Destroy(ctx context.Context) error
	Remove(ctx context.Context, key string)
}

var _ Manager = (*scs.SessionManager)(nil)

// New builds a session manager persisted in the application database.
// The store follows the database driver; expiry is the configured absolute
// lifetime or idle timeout, whichever comes first.
func New(cfg config.SessionConfig, db *sqlx.DB, driver string, secure bool) (*scs.SessionManager, error) {
	sm := scs.New()
	switch driver {
	case "sqlite3", "":
		sm.Store = sqlite3store.NewWithCleanupInterval(db.DB, cfg.CleanupInterval)
	case "mysql":
		sm.Store = mysqlstore.NewWithCleanupInterval(db.DB, cfg.CleanupInterval)
	default:
		return nil, fmt.Errorf("no session store for driver %q", driver)
	}

	if cfg.Lifetime > 0 {
		sm.Lifetime = cfg.Lifetime
	}
	sm.IdleTimeout = cfg.IdleTimeout
	if cfg.CookieName != "" {
		sm.Cookie.Name = cfg.CookieName
	}
	sm.Cookie.HttpOnly = true
	sm.Cookie.Persist = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = secure
	return sm, nil
}
