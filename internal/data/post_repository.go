package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const postColumns = `p.id, p.title, p.excerpt, p.image_name, p.post_date, p.slug, p.content, p.author_id,
	a.first_name AS author_first_name, a.last_name AS author_last_name, a.email AS author_email`

const postFrom = ` FROM posts p LEFT JOIN authors a ON a.id = p.author_id`

// SQLPostRepository stores blog posts, their authors and tags.
type SQLPostRepository struct {
	db *sqlx.DB
}

// NewSQLPostRepository creates a new SQLPostRepository.
func NewSQLPostRepository(db *sqlx.DB) *SQLPostRepository {
	return &SQLPostRepository{db: db}
}

// Latest returns the n most recently dated posts.
func (r *SQLPostRepository) Latest(ctx context.Context, n int) ([]*Post, error) {
	var posts []*Post
	query := `SELECT ` + postColumns + postFrom + ` ORDER BY p.post_date DESC, p.id DESC LIMIT ?`
	if err := r.db.SelectContext(ctx, &posts, query, n); err != nil {
		return nil, fmt.Errorf("failed to get latest posts: %w", err)
	}
	return posts, nil
}

// ListByDateDesc returns every post, newest first.
func (r *SQLPostRepository) ListByDateDesc(ctx context.Context) ([]*Post, error) {
	var posts []*Post
	query := `SELECT ` + postColumns + postFrom + ` ORDER BY p.post_date DESC, p.id DESC`
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// GetBySlug retrieves a single post by its slug.
func (r *SQLPostRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	var post Post
	query := `SELECT ` + postColumns + postFrom + ` WHERE p.slug = ?`
	if err := r.db.GetContext(ctx, &post, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post with slug '%s': %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}
	return &post, nil
}

// GetByIDs returns the posts whose IDs are in ids, in no particular order.
// IDs without a matching row are silently absent from the result.
func (r *SQLPostRepository) GetByIDs(ctx context.Context, ids []int64) ([]*Post, error) {
	if len(ids) == 0 {
		return []*Post{}, nil
	}
	query, args, err := sqlx.In(`SELECT `+postColumns+postFrom+` WHERE p.id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build posts by id query: %w", err)
	}
	var posts []*Post
	if err := r.db.SelectContext(ctx, &posts, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get posts by id: %w", err)
	}
	return posts, nil
}

// TagsForPost returns the tags linked to a post, ordered by caption.
func (r *SQLPostRepository) TagsForPost(ctx context.Context, postID int64) ([]*Tag, error) {
	var tags []*Tag
	query := `SELECT t.id, t.caption FROM tags t JOIN post_tags pt ON pt.tag_id = t.id WHERE pt.post_id = ? ORDER BY t.caption`
	if err := r.db.SelectContext(ctx, &tags, query, postID); err != nil {
		return nil, fmt.Errorf("failed to get tags for post: %w", err)
	}
	return tags, nil
}

// Create inserts a post stamped with the current time and links it to tagIDs
// in a single transaction.
func (r *SQLPostRepository) Create(ctx context.Context, post *Post, tagIDs []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	post.Date = time.Now().UTC().Truncate(time.Second)
	query := `INSERT INTO posts (title, excerpt, image_name, post_date, slug, content, author_id)
		VALUES (:title, :excerpt, :image_name, :post_date, :slug, :content, :author_id)`
	res, err := tx.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read post id: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO post_tags (post_id, tag_id) VALUES (?, ?)`, id, tagID); err != nil {
			return fmt.Errorf("failed to link tag %d: %w", tagID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit post: %w", err)
	}
	post.ID = id
	return nil
}

// Delete removes a post by its ID. Its comments and tag links go with it.
func (r *SQLPostRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("post with id %d: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of posts.
func (r *SQLPostRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM posts`); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return n, nil
}

// CreateAuthor inserts an author and sets its ID.
func (r *SQLPostRepository) CreateAuthor(ctx context.Context, author *Author) error {
	query := `INSERT INTO authors (first_name, last_name, email) VALUES (:first_name, :last_name, :email)`
	res, err := r.db.NamedExecContext(ctx, query, author)
	if err != nil {
		return fmt.Errorf("failed to create author: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read author id: %w", err)
	}
	author.ID = id
	return nil
}

// CreateTag inserts a tag and sets its ID.
func (r *SQLPostRepository) CreateTag(ctx context.Context, tag *Tag) error {
	res, err := r.db.NamedExecContext(ctx, `INSERT INTO tags (caption) VALUES (:caption)`, tag)
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read tag id: %w", err)
	}
	tag.ID = id
	return nil
}
