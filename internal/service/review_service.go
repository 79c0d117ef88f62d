package service

import (
	"context"
	"go-mini-sites/internal/data"
	"go-mini-sites/internal/validation"
)

// ReviewRepository defines the database operations for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *data.Review) error
	List(ctx context.Context) ([]*data.Review, error)
	GetByID(ctx context.Context, id int64) (*data.Review, error)
}

// ReviewServicer defines the interface the feedback handlers use.
type ReviewServicer interface {
	Submit(ctx context.Context, form ReviewForm) (*data.Review, error)
	List(ctx context.Context) ([]*data.Review, error)
	Get(ctx context.Context, id int64) (*data.Review, error)
}

// ReviewForm is the feedback form. Rating is nil when the submitted value
// was missing or not a whole number.
type ReviewForm struct {
	UserName   string `form:"user_name" validate:"required,max=100"`
	ReviewText string `form:"review_text" validate:"required,max=200"`
	Rating     *int   `form:"rating" validate:"required,gte=0,lte=5"`
}

// ReviewService handles visitor feedback.
type ReviewService struct {
	repo ReviewRepository
}

// NewReviewService creates a ReviewService.
func NewReviewService(repo ReviewRepository) *ReviewService {
	return &ReviewService{repo: repo}
}

// Submit validates the form and stores the review. Validation failures are
// returned as validation.Errors and nothing is written.
func (s *ReviewService) Submit(ctx context.Context, form ReviewForm) (*data.Review, error) {
	if err := validation.Struct(form); err != nil {
		return nil, err
	}
	review := &data.Review{
		UserName:   form.UserName,
		ReviewText: form.ReviewText,
		Rating:     *form.Rating,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// List returns every review.
func (s *ReviewService) List(ctx context.Context) ([]*data.Review, error) {
	return s.repo.List(ctx)
}

// Get returns a single review.
func (s *ReviewService) Get(ctx context.Context, id int64) (*data.Review, error) {
	return s.repo.GetByID(ctx, id)
}
