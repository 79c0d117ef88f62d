package handler

import (
	"encoding/xml"
	"fmt"
	"go-mini-sites/internal/service"
	"net/http"
	"strings"
)

// SeoHandler holds dependencies for SEO-related handlers.
type SeoHandler struct {
	blog    service.BlogServicer
	books   service.BookServicer
	baseURL string
}

// NewSeoHandler creates a new SeoHandler. baseURL prefixes every sitemap
// location, e.g. "https://example.com".
func NewSeoHandler(bs service.BlogServicer, books service.BookServicer, baseURL string) *SeoHandler {
	return &SeoHandler{blog: bs, books: books, baseURL: strings.TrimRight(baseURL, "/")}
}

// robotsHandler serves a static robots.txt file.
func (h *SeoHandler) robotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "User-agent: *")
	fmt.Fprintln(w, "Allow: /")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Sitemap: %s/sitemap.xml\n", h.baseURL)
}

const sitemapDateFormat = "2006-01-02"

type sitemapURL struct {
	XMLName xml.Name `xml:"url"`
	Loc     string   `xml:"loc"`
	LastMod string   `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// sitemapHandler generates and serves a dynamic sitemap.xml covering the
// fixed landing pages, every blog post and every book.
func (h *SeoHandler) sitemapHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := h.blog.AllPosts(r.Context())
	if err != nil {
		http.Error(w, "Failed to retrieve posts for sitemap", http.StatusInternalServerError)
		return
	}
	index, err := h.books.Index(r.Context())
	if err != nil {
		http.Error(w, "Failed to retrieve books for sitemap", http.StatusInternalServerError)
		return
	}

	sitemap := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, path := range []string{"/", "/posts", "/books/", "/reviews/", "/challenges/"} {
		sitemap.URLs = append(sitemap.URLs, sitemapURL{Loc: h.baseURL + path})
	}
	for _, p := range posts {
		sitemap.URLs = append(sitemap.URLs, sitemapURL{
			Loc:     h.baseURL + "/post/" + p.Slug,
			LastMod: p.Date.Format(sitemapDateFormat),
		})
	}
	for _, b := range index.Books {
		sitemap.URLs = append(sitemap.URLs, sitemapURL{Loc: h.baseURL + "/books/" + b.Slug})
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write([]byte(xml.Header))
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(sitemap); err != nil {
		http.Error(w, "Failed to generate sitemap XML", http.StatusInternalServerError)
		return
	}
}
