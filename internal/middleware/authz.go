package middleware

import (
	"go-mini-sites/internal/auth"
	"go-mini-sites/internal/logger"
	"net/http"

	"github.com/casbin/casbin/v2"
)

// Authorizer checks every request against the visitor policy. There are no
// accounts, so the subject is always auth.Visitor.
func Authorizer(e casbin.IEnforcer, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := e.Enforce(auth.Visitor, r.URL.Path, r.Method)
			if err != nil {
				log.Error(err, "Authorization check failed")
				http.Error(w, "Authorization error", http.StatusInternalServerError)
				return
			}
			if !allowed {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
