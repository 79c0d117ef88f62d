package handler

import (
	"bytes"
	"errors"
	"go-mini-sites/internal/data"
	"go-mini-sites/internal/middleware"
	"go-mini-sites/internal/view"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// render writes a page with the given status. The page is executed before
// anything is written so a template failure still produces a clean 500.
func render(w http.ResponseWriter, v *view.View, status int, name string, data map[string]interface{}) *middleware.AppError {
	var buf bytes.Buffer
	if err := v.Render(&buf, name, data); err != nil {
		return middleware.Internal(err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
	return nil
}

// lookupError maps a service error to a 404 for missing records and a 500
// for anything else.
func lookupError(err error, notFound string) *middleware.AppError {
	if errors.Is(err, data.ErrNotFound) {
		return middleware.NotFound(err, notFound)
	}
	return middleware.Internal(err)
}

// parseID reads a positive integer identifier.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}

// safeNext returns next when it is a path on this site, fallback otherwise.
func safeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return next
}
