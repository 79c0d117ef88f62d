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
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ReviewHandler serves the feedback site.
type ReviewHandler struct {
	reviews  service.ReviewServicer
	sessions session.Manager
	view     *view.View
	log      logger.Logger
}

// NewReviewHandler creates a new ReviewHandler with the given dependencies.
func NewReviewHandler(rs service.ReviewServicer, sm session.Manager, v *view.View, log logger.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: rs, sessions: sm, view: v, log: log}
}

func (h *ReviewHandler) favorite() *togglelist.Slot {
	return togglelist.NewSlot(h.sessions, session.KeyFavoriteReview)
}

func (h *ReviewHandler) form(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return h.renderForm(w, http.StatusOK, url.Values{}, validation.Errors{})
}

func (h *ReviewHandler) renderForm(w http.ResponseWriter, status int, values url.Values, errs validation.Errors) *middleware.AppError {
	return render(w, h.view, status, "review_form.html", map[string]interface{}{
		"Values": values,
		"Errors": errs,
	})
}

// submit stores a review and redirects to the thank-you page.
func (h *ReviewHandler) submit(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := r.ParseForm(); err != nil {
		return middleware.BadRequest(err, "Malformed form submission")
	}
	form := service.ReviewForm{
		UserName:   r.PostForm.Get("user_name"),
		ReviewText: r.PostForm.Get("review_text"),
	}
	if rating, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("rating"))); err == nil {
		form.Rating = &rating
	}

	review, err := h.reviews.Submit(r.Context(), form)
	if err != nil {
		if errs, ok := validation.AsErrors(err); ok {
			metrics.RecordSubmission("review", false)
			return h.renderForm(w, http.StatusUnprocessableEntity, r.PostForm, errs)
		}
		return middleware.Internal(err)
	}

	metrics.RecordSubmission("review", true)
	h.log.Debug(fmt.Sprintf("Stored review %d", review.ID))
	http.Redirect(w, r, "/reviews/thank-you", http.StatusSeeOther)
	return nil
}

func (h *ReviewHandler) thankYou(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return render(w, h.view, http.StatusOK, "thank_you.html", nil)
}

func (h *ReviewHandler) list(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	reviews, err := h.reviews.List(r.Context())
	if err != nil {
		return middleware.Internal(err)
	}
	return render(w, h.view, http.StatusOK, "reviews_list.html", map[string]interface{}{"Reviews": reviews})
}

// detail shows one review and whether it is the visitor's favorite.
func (h *ReviewHandler) detail(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		return middleware.NotFound(err, "Review not found")
	}
	review, err := h.reviews.Get(r.Context(), id)
	if err != nil {
		return lookupError(err, "Review not found")
	}
	return render(w, h.view, http.StatusOK, "review_detail.html", map[string]interface{}{
		"Review":     review,
		"IsFavorite": h.favorite().Is(r.Context(), review.ID),
	})
}

// markFavorite remembers review_id as the visitor's single favorite.
func (h *ReviewHandler) markFavorite(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, err := parseID(r.FormValue("review_id"))
	if err != nil {
		return middleware.BadRequest(err, "Invalid review id")
	}
	slot := h.favorite()
	slot.Set(r.Context(), id)
	metrics.RecordToggle(slot.Key(), "set")

	http.Redirect(w, r, fmt.Sprintf("/reviews/all-reviews/%d", id), http.StatusSeeOther)
	return nil
}
