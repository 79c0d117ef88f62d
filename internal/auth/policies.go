package auth

import (
	"fmt"
	"go-mini-sites/internal/logger"

	"github.com/casbin/casbin/v2"
)

// DefaultPolicies lets visitors read every page and submit only the forms
// the sites offer.
var DefaultPolicies = [][]string{
	{Visitor, "/*", "GET"},
	{Visitor, "/*", "HEAD"},
	{Visitor, "/post/:slug", "POST"},
	{Visitor, "/read-later", "POST"},
	{Visitor, "/reviews/", "POST"},
	{Visitor, "/reviews/all-reviews/favorite", "POST"},
}

// SeedDefaultPolicies adds any default policy that is missing. Existing
// rules are left alone, so it is safe to run on every start.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")
	added := 0
	for _, p := range DefaultPolicies {
		if has, _ := e.HasPolicy(p); has {
			continue
		}
		if _, err := e.AddPolicy(p); err != nil {
			log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			continue
		}
		added++
	}
	log.Info(fmt.Sprintf("Policy seeding complete, %d added.", added))
}
