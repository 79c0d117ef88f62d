package handler

import (
	"go-mini-sites/internal/middleware"
	"go-mini-sites/internal/service"
	"go-mini-sites/internal/view"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ChallengeHandler serves the monthly challenges.
type ChallengeHandler struct {
	challenges service.ChallengeServicer
	view       *view.View
}

// NewChallengeHandler creates a new ChallengeHandler.
func NewChallengeHandler(cs service.ChallengeServicer, v *view.View) *ChallengeHandler {
	return &ChallengeHandler{challenges: cs, view: v}
}

func (h *ChallengeHandler) index(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	return render(w, h.view, http.StatusOK, "challenges_index.html", map[string]interface{}{
		"Months": h.challenges.Months(),
	})
}

// month shows a month's challenge. A month number redirects to the named
// month's page.
func (h *ChallengeHandler) month(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	month := chi.URLParam(r, "month")

	if n, err := strconv.Atoi(month); err == nil {
		c, err := h.challenges.ByNumber(n)
		if err != nil {
			return middleware.NotFound(err, "Invalid Month")
		}
		http.Redirect(w, r, "/challenges/"+c.Month, http.StatusFound)
		return nil
	}

	c, err := h.challenges.ByName(month)
	if err != nil {
		return middleware.NotFound(err, "This month is not supported")
	}
	return render(w, h.view, http.StatusOK, "challenge.html", map[string]interface{}{"Challenge": c})
}
