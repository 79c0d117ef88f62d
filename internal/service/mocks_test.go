//go:build unit

package service

import (
	"context"
	"fmt"
	"go-mini-sites/internal/data"
	"time"
)

// mockBookRepository is a mock implementation of the BookRepository interface.
type mockBookRepository struct {
	books       []*data.Book
	statsCalled int
	created     []*data.Book
	errToReturn error
}

var _ BookRepository = (*mockBookRepository)(nil)

func (m *mockBookRepository) ListByRatingDesc(ctx context.Context) ([]*data.Book, error) {
	return m.books, m.errToReturn
}

func (m *mockBookRepository) Stats(ctx context.Context) (*data.BookStats, error) {
	m.statsCalled++
	if m.errToReturn != nil {
		return nil, m.errToReturn
	}
	stats := &data.BookStats{Total: len(m.books)}
	if len(m.books) > 0 {
		sum := 0
		for _, b := range m.books {
			sum += b.Rating
		}
		avg := float64(sum) / float64(len(m.books))
		stats.AverageRating = &avg
	}
	return stats, nil
}

func (m *mockBookRepository) GetBySlug(ctx context.Context, slug string) (*data.Book, error) {
	for _, b := range m.books {
		if b.Slug == slug {
			return b, nil
		}
	}
	return nil, fmt.Errorf("book %s: %w", slug, data.ErrNotFound)
}

func (m *mockBookRepository) Create(ctx context.Context, book *data.Book) error {
	if m.errToReturn != nil {
		return m.errToReturn
	}
	book.ID = int64(len(m.books) + 1)
	m.books = append(m.books, book)
	m.created = append(m.created, book)
	return nil
}

// mapCache is an in-memory SummaryCache.
type mapCache struct {
	values  map[string]interface{}
	deletes int
}

var _ SummaryCache = (*mapCache)(nil)

func newMapCache() *mapCache { return &mapCache{values: make(map[string]interface{})} }

func (c *mapCache) GetJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	*(dst.(*data.BookStats)) = v.(data.BookStats)
	return true, nil
}

func (c *mapCache) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	c.values[key] = *(v.(*data.BookStats))
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	c.deletes++
	delete(c.values, key)
	return nil
}

// mockReviewRepository is a mock implementation of the ReviewRepository interface.
type mockReviewRepository struct {
	reviews []*data.Review
}

var _ ReviewRepository = (*mockReviewRepository)(nil)

func (m *mockReviewRepository) Create(ctx context.Context, review *data.Review) error {
	review.ID = int64(len(m.reviews) + 1)
	m.reviews = append(m.reviews, review)
	return nil
}

func (m *mockReviewRepository) List(ctx context.Context) ([]*data.Review, error) {
	return m.reviews, nil
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id int64) (*data.Review, error) {
	for _, r := range m.reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("review %d: %w", id, data.ErrNotFound)
}

// mockPostRepository is a mock implementation of the PostRepository interface.
type mockPostRepository struct {
	posts       []*data.Post
	tags        map[int64][]*data.Tag
	authors     []*data.Author
	createdTags []*data.Tag
	lastTagIDs  []int64
}

var _ PostRepository = (*mockPostRepository)(nil)

func (m *mockPostRepository) Latest(ctx context.Context, n int) ([]*data.Post, error) {
	if n > len(m.posts) {
		n = len(m.posts)
	}
	return m.posts[:n], nil
}

func (m *mockPostRepository) ListByDateDesc(ctx context.Context) ([]*data.Post, error) {
	return m.posts, nil
}

func (m *mockPostRepository) GetBySlug(ctx context.Context, slug string) (*data.Post, error) {
	for _, p := range m.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, fmt.Errorf("post %s: %w", slug, data.ErrNotFound)
}

func (m *mockPostRepository) GetByIDs(ctx context.Context, ids []int64) ([]*data.Post, error) {
	var out []*data.Post
	// Reverse order on purpose: callers must not rely on repository ordering.
	for i := len(m.posts) - 1; i >= 0; i-- {
		for _, id := range ids {
			if m.posts[i].ID == id {
				out = append(out, m.posts[i])
			}
		}
	}
	return out, nil
}

func (m *mockPostRepository) TagsForPost(ctx context.Context, postID int64) ([]*data.Tag, error) {
	return m.tags[postID], nil
}

func (m *mockPostRepository) Create(ctx context.Context, post *data.Post, tagIDs []int64) error {
	post.ID = int64(len(m.posts) + 1)
	m.posts = append(m.posts, post)
	m.lastTagIDs = tagIDs
	return nil
}

func (m *mockPostRepository) Count(ctx context.Context) (int, error) {
	return len(m.posts), nil
}

func (m *mockPostRepository) CreateAuthor(ctx context.Context, author *data.Author) error {
	author.ID = int64(len(m.authors) + 1)
	m.authors = append(m.authors, author)
	return nil
}

func (m *mockPostRepository) CreateTag(ctx context.Context, tag *data.Tag) error {
	tag.ID = int64(len(m.createdTags) + 1)
	m.createdTags = append(m.createdTags, tag)
	return nil
}

// mockCommentRepository is a mock implementation of the CommentRepository interface.
type mockCommentRepository struct {
	comments []*data.Comment
}

var _ CommentRepository = (*mockCommentRepository)(nil)

func (m *mockCommentRepository) Create(ctx context.Context, comment *data.Comment) error {
	comment.ID = int64(len(m.comments) + 1)
	m.comments = append(m.comments, comment)
	return nil
}

func (m *mockCommentRepository) ListForPost(ctx context.Context, postID int64) ([]*data.Comment, error) {
	var out []*data.Comment
	for _, c := range m.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}
