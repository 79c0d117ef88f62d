package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLCommentRepository stores comments on blog posts.
type SQLCommentRepository struct {
	db *sqlx.DB
}

// NewSQLCommentRepository creates a new SQLCommentRepository.
func NewSQLCommentRepository(db *sqlx.DB) *SQLCommentRepository {
	return &SQLCommentRepository{db: db}
}

// Create inserts a comment and sets its ID.
func (r *SQLCommentRepository) Create(ctx context.Context, comment *Comment) error {
	query := `INSERT INTO comments (user_name, user_email, text, post_id) VALUES (:user_name, :user_email, :text, :post_id)`
	res, err := r.db.NamedExecContext(ctx, query, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read comment id: %w", err)
	}
	comment.ID = id
	return nil
}

// ListForPost returns a post's comments, newest first.
func (r *SQLCommentRepository) ListForPost(ctx context.Context, postID int64) ([]*Comment, error) {
	var comments []*Comment
	query := `SELECT id, user_name, user_email, text, post_id FROM comments WHERE post_id = ? ORDER BY id DESC`
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
