package handler

import (
	"fmt"
	"go-mini-sites/internal/logger"
	"go-mini-sites/internal/metrics"
	"go-mini-sites/internal/middleware"
	"go-mini-sites/internal/service"
	"go-mini-sites/internal/session"
	"go-mini-sites/internal/togglelist"
	"go-mini-sites/internal/validation"
	"go-mini-sites/internal/view"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// BlogHandler serves the blog, its comments and the read-later list.
type BlogHandler struct {
	blog     service.BlogServicer
	sessions session.Manager
	view     *view.View
	log      logger.Logger
}

// NewBlogHandler creates a new BlogHandler with the given dependencies.
func NewBlogHandler(bs service.BlogServicer, sm session.Manager, v *view.View, log logger.Logger) *BlogHandler {
	return &BlogHandler{blog: bs, sessions: sm, view: v, log: log}
}

func (h *BlogHandler) storedPosts() *togglelist.List {
	return togglelist.NewList(h.sessions, session.KeyStoredPosts)
}

// startingPage shows the latest posts.
func (h *BlogHandler) startingPage(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	posts, err := h.blog.StartingPage(r.Context())
	if err != nil {
		return middleware.Internal(err)
	}
	return render(w, h.view, http.StatusOK, "blog_index.html", map[string]interface{}{"Posts": posts})
}

// allPosts lists every post, newest first.
func (h *BlogHandler) allPosts(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	posts, err := h.blog.AllPosts(r.Context())
	if err != nil {
		return middleware.Internal(err)
	}
	return render(w, h.view, http.StatusOK, "posts.html", map[string]interface{}{"Posts": posts})
}

// postDetail shows a post with its comments and an empty comment form.
func (h *BlogHandler) postDetail(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.renderPost(w, r, http.StatusOK, url.Values{}, validation.Errors{})
}

func (h *BlogHandler) renderPost(w http.ResponseWriter, r *http.Request, status int, values url.Values, errs validation.Errors) *middleware.AppError {
	detail, err := h.blog.PostDetail(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		return lookupError(err, "Post not found")
	}
	data := map[string]interface{}{
		"Post":          detail.Post,
		"Tags":          detail.Tags,
		"Comments":      detail.Comments,
		"SavedForLater": h.storedPosts().Contains(r.Context(), detail.Post.ID),
		"Values":        values,
		"Errors":        errs,
	}
	return render(w, h.view, status, "post_detail.html", data)
}

// addComment stores a comment and redirects back to the post. An invalid
// form re-renders the post with the submitted values and field errors.
func (h *BlogHandler) addComment(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := r.ParseForm(); err != nil {
		return middleware.BadRequest(err, "Malformed form submission")
	}
	slug := chi.URLParam(r, "slug")
	form := service.CommentForm{
		UserName:  r.PostForm.Get("user_name"),
		UserEmail: r.PostForm.Get("user_email"),
		Text:      r.PostForm.Get("text"),
	}

	if _, err := h.blog.AddComment(r.Context(), slug, form); err != nil {
		if errs, ok := validation.AsErrors(err); ok {
			metrics.RecordSubmission("comment", false)
			return h.renderPost(w, r, http.StatusUnprocessableEntity, r.PostForm, errs)
		}
		return lookupError(err, "Post not found")
	}

	metrics.RecordSubmission("comment", true)
	http.Redirect(w, r, "/post/"+slug, http.StatusSeeOther)
	return nil
}

// readLater shows the posts stored in the visitor's session. IDs whose post
// has since been deleted are dropped from the session.
func (h *BlogHandler) readLater(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	list := h.storedPosts()
	ids := list.Items(r.Context())

	posts, err := h.blog.PostsByIDs(r.Context(), ids)
	if err != nil {
		return middleware.Internal(err)
	}
	if len(posts) < len(ids) {
		found := make(map[int64]bool, len(posts))
		for _, p := range posts {
			found[p.ID] = true
		}
		list.Retain(r.Context(), func(id int64) bool { return found[id] })
		metrics.RecordToggle(list.Key(), "pruned")
		h.log.Debug(fmt.Sprintf("Pruned %d stale ids from %s", len(ids)-len(posts), list.Key()))
	}

	data := map[string]interface{}{
		"Posts":    posts,
		"HasPosts": len(posts) > 0,
	}
	return render(w, h.view, http.StatusOK, "read_later.html", data)
}

// toggleReadLater adds post_id to the read-later list, or removes it when
// already present.
func (h *BlogHandler) toggleReadLater(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := parseID(r.FormValue("post_id"))
	if err != nil {
		return middleware.BadRequest(err, "Invalid post id")
	}

	list := h.storedPosts()
	action := "removed"
	if list.Toggle(r.Context(), id) {
		action = "added"
	}
	metrics.RecordToggle(list.Key(), action)

	http.Redirect(w, r, safeNext(r.FormValue("next"), "/"), http.StatusSeeOther)
	return nil
}
