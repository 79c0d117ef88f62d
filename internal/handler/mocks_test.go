//go:build unit

package handler

import (
	"context"
	"fmt"
	"go-mini-sites/internal/data"
	"go-mini-sites/internal/service"
	"go-mini-sites/internal/session"
	"go-mini-sites/internal/validation"
	"net/http"
)

// fakeSessions is a session.Manager holding a single visitor's values.
type fakeSessions struct {
	values map[string]interface{}
}

var _ session.Manager = (*fakeSessions)(nil)

func newFakeSessions() *fakeSessions {
	return &fakeSessions{values: make(map[string]interface{})}
}

func (f *fakeSessions) LoadAndSave(next http.Handler) http.Handler { return next }
func (f *fakeSessions) Get(ctx context.Context, key string) interface{} {
	return f.values[key]
}
func (f *fakeSessions) Put(ctx context.Context, key string, val interface{}) {
	f.values[key] = val
}
func (f *fakeSessions) Exists(ctx context.Context, key string) bool {
	_, ok := f.values[key]
	return ok
}
func (f *fakeSessions) GetString(ctx context.Context, key string) string {
	s, _ := f.values[key].(string)
	return s
}
func (f *fakeSessions) PopString(ctx context.Context, key string) string {
	s := f.GetString(ctx, key)
	delete(f.values, key)
	return s
}
func (f *fakeSessions) Destroy(ctx context.Context) error {
	f.values = make(map[string]interface{})
	return nil
}
func (f *fakeSessions) Remove(ctx context.Context, key string) { delete(f.values, key) }

// mockBlogService is a mock implementation of service.BlogServicer.
type mockBlogService struct {
	posts    []*data.Post
	comments []*data.Comment
}

var _ service.BlogServicer = (*mockBlogService)(nil)

func (m *mockBlogService) StartingPage(ctx context.Context) ([]*data.Post, error) {
	if len(m.posts) > service.StartingPageSize {
		return m.posts[:service.StartingPageSize], nil
	}
	return m.posts, nil
}

func (m *mockBlogService) AllPosts(ctx context.Context) ([]*data.Post, error) {
	return m.posts, nil
}

func (m *mockBlogService) find(slug string) (*data.Post, error) {
	for _, p := range m.posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, fmt.Errorf("post %s: %w", slug, data.ErrNotFound)
}

func (m *mockBlogService) PostDetail(ctx context.Context, slug string) (*service.PostDetail, error) {
	p, err := m.find(slug)
	if err != nil {
		return nil, err
	}
	var comments []*data.Comment
	for _, c := range m.comments {
		if c.PostID == p.ID {
			comments = append(comments, c)
		}
	}
	return &service.PostDetail{Post: p, Comments: comments}, nil
}

func (m *mockBlogService) AddComment(ctx context.Context, slug string, form service.CommentForm) (*data.Comment, error) {
	p, err := m.find(slug)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(form); err != nil {
		return nil, err
	}
	c := &data.Comment{ID: int64(len(m.comments) + 1), UserName: form.UserName, UserEmail: form.UserEmail, Text: form.Text, PostID: p.ID}
	m.comments = append(m.comments, c)
	return c, nil
}

func (m *mockBlogService) PostsByIDs(ctx context.Context, ids []int64) ([]*data.Post, error) {
	var out []*data.Post
	for _, id := range ids {
		for _, p := range m.posts {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

// mockReviewService is a mock implementation of service.ReviewServicer.
type mockReviewService struct {
	reviews []*data.Review
}

var _ service.ReviewServicer = (*mockReviewService)(nil)

func (m *mockReviewService) Submit(ctx context.Context, form service.ReviewForm) (*data.Review, error) {
	if err := validation.Struct(form); err != nil {
		return nil, err
	}
	r := &data.Review{ID: int64(len(m.reviews) + 1), UserName: form.UserName, ReviewText: form.ReviewText, Rating: *form.Rating}
	m.reviews = append(m.reviews, r)
	return r, nil
}

func (m *mockReviewService) List(ctx context.Context) ([]*data.Review, error) {
	return m.reviews, nil
}

func (m *mockReviewService) Get(ctx context.Context, id int64) (*data.Review, error) {
	for _, r := range m.reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("review %d: %w", id, data.ErrNotFound)
}

// mockBookService is a mock implementation of service.BookServicer.
type mockBookService struct {
	books []*data.Book
}

var _ service.BookServicer = (*mockBookService)(nil)

func (m *mockBookService) Index(ctx context.Context) (*service.BookIndex, error) {
	index := &service.BookIndex{Books: m.books, Total: len(m.books)}
	if len(m.books) > 0 {
		sum := 0
		for _, b := range m.books {
			sum += b.Rating
		}
		avg := float64(sum) / float64(len(m.books))
		index.AverageRating = &avg
	}
	return index, nil
}

func (m *mockBookService) Detail(ctx context.Context, slug string) (*data.Book, error) {
	for _, b := range m.books {
		if b.Slug == slug {
			return b, nil
		}
	}
	return nil, fmt.Errorf("book %s: %w", slug, data.ErrNotFound)
}

func (m *mockBookService) CreateBook(ctx context.Context, in service.BookInput) (*data.Book, error) {
	b := &data.Book{ID: int64(len(m.books) + 1), Title: in.Title, Rating: in.Rating, Slug: service.Slugify(in.Title)}
	m.books = append(m.books, b)
	return b, nil
}
