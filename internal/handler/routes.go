package handler

import (
	"go-mini-sites/internal/logger"
	"go-mini-sites/internal/metrics"
	"go-mini-sites/internal/middleware"
	"go-mini-sites/internal/session"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the per-site handlers mounted by NewRouter.
type Handlers struct {
	Blog       *BlogHandler
	Reviews    *ReviewHandler
	Books      *BookHandler
	Challenges *ChallengeHandler
	Seo        *SeoHandler
}

// RouterDeps are the cross-cutting pieces the router wires around handlers.
type RouterDeps struct {
	Sessions  session.Manager
	Authz     func(http.Handler) http.Handler
	RateLimit func(http.Handler) http.Handler
	Errors    func(middleware.AppHandler) http.Handler
	Log       logger.Logger
}

// NewRouter creates and configures a new chi router.
func NewRouter(h Handlers, deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	e := deps.Errors
	limit := deps.RateLimit
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}

	r.NotFound(e(func(w http.ResponseWriter, r *http.Request) *middleware.AppError {
		return middleware.NotFound(nil, "Page not found")
	}).ServeHTTP)

	// Operational and SEO routes need no session.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/robots.txt", h.Seo.robotsHandler)
	r.Get("/sitemap.xml", h.Seo.sitemapHandler)

	r.Group(func(r chi.Router) {
		r.Use(deps.Sessions.LoadAndSave)
		if deps.Authz != nil {
			r.Use(deps.Authz)
		}

		r.Method(http.MethodGet, "/", e(h.Blog.startingPage))
		r.Method(http.MethodGet, "/posts", e(h.Blog.allPosts))
		r.Method(http.MethodGet, "/post/{slug}", e(h.Blog.postDetail))
		r.With(limit).Method(http.MethodPost, "/post/{slug}", e(h.Blog.addComment))
		r.Method(http.MethodGet, "/read-later", e(h.Blog.readLater))
		r.With(limit).Method(http.MethodPost, "/read-later", e(h.Blog.toggleReadLater))

		r.Route("/reviews", func(r chi.Router) {
			r.Method(http.MethodGet, "/", e(h.Reviews.form))
			r.With(limit).Method(http.MethodPost, "/", e(h.Reviews.submit))
			r.Method(http.MethodGet, "/thank-you", e(h.Reviews.thankYou))
			r.Method(http.MethodGet, "/all-reviews", e(h.Reviews.list))
			r.With(limit).Method(http.MethodPost, "/all-reviews/favorite", e(h.Reviews.markFavorite))
			r.Method(http.MethodGet, "/all-reviews/{id}", e(h.Reviews.detail))
		})

		r.Route("/books", func(r chi.Router) {
			r.Method(http.MethodGet, "/", e(h.Books.index))
			r.Method(http.MethodGet, "/{slug}", e(h.Books.detail))
		})

		r.Route("/challenges", func(r chi.Router) {
			r.Method(http.MethodGet, "/", e(h.Challenges.index))
			r.Method(http.MethodGet, "/{month}", e(h.Challenges.month))
		})
	})

	return r
}
