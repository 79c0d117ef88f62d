package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLBookRepository stores bookstore listings using sqlx.
type SQLBookRepository struct {
	db *sqlx.DB
}

// NewSQLBookRepository creates a new SQLBookRepository.
func NewSQLBookRepository(db *sqlx.DB) *SQLBookRepository {
	return &SQLBookRepository{db: db}
}

// ListByRatingDesc returns all books, best rated first.
func (r *SQLBookRepository) ListByRatingDesc(ctx context.Context) ([]*Book, error) {
	var books []*Book
	query := `SELECT id, title, author, rating, is_best_selling, slug FROM books ORDER BY rating DESC, id`
	if err := r.db.SelectContext(ctx, &books, query); err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// Stats returns the number of books and their average rating.
// AVG over an empty table is NULL, which leaves AverageRating nil.
func (r *SQLBookRepository) Stats(ctx context.Context) (*BookStats, error) {
	var stats BookStats
	query := `SELECT COUNT(*) AS total, AVG(rating) AS average_rating FROM books`
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to compute book stats: %w", err)
	}
	return &stats, nil
}

// GetBySlug retrieves a single book by its slug.
func (r *SQLBookRepository) GetBySlug(ctx context.Context, slug string) (*Book, error) {
	var book Book
	query := `SELECT id, title, author, rating, is_best_selling, slug FROM books WHERE slug = ?`
	if err := r.db.GetContext(ctx, &book, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("book with slug '%s': %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get book by slug: %w", err)
	}
	return &book, nil
}

// Create inserts a book and sets its ID.
func (r *SQLBookRepository) Create(ctx context.Context, book *Book) error {
	query := `INSERT INTO books (title, author, rating, is_best_selling, slug) VALUES (:title, :author, :rating, :is_best_selling, :slug)`
	res, err := r.db.NamedExecContext(ctx, query, book)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read book id: %w", err)
	}
	book.ID = id
	return nil
}
