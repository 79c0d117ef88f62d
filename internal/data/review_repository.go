package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLReviewRepository stores visitor feedback.
type SQLReviewRepository struct {
	db *sqlx.DB
}

// NewSQLReviewRepository creates a new SQLReviewRepository.
func NewSQLReviewRepository(db *sqlx.DB) *SQLReviewRepository {
	return &SQLReviewRepository{db: db}
}

// Create inserts a review and sets its ID.
func (r *SQLReviewRepository) Create(ctx context.Context, review *Review) error {
	query := `INSERT INTO reviews (user_name, review_text, rating) VALUES (:user_name, :review_text, :rating)`
	res, err := r.db.NamedExecContext(ctx, query, review)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read review id: %w", err)
	}
	review.ID = id
	return nil
}

// List returns every review in insertion order.
func (r *SQLReviewRepository) List(ctx context.Context) ([]*Review, error) {
	var reviews []*Review
	if err := r.db.SelectContext(ctx, &reviews, `SELECT id, user_name, review_text, rating FROM reviews ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// GetByID retrieves a review by its primary key.
func (r *SQLReviewRepository) GetByID(ctx context.Context, id int64) (*Review, error) {
	var review Review
	query := `SELECT id, user_name, review_text, rating FROM reviews WHERE id = ?`
	if err := r.db.GetContext(ctx, &review, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("review with id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get review by id: %w", err)
	}
	return &review, nil
}
