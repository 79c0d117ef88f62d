package service

import (
	"context"
	"go-mini-sites/internal/data"
	"go-mini-sites/internal/validation"
	"time"
)

const bookStatsCacheKey = "books:stats"

// BookRepository defines the database operations the bookstore needs.
type BookRepository interface {
	ListByRatingDesc(ctx context.Context) ([]*data.Book, error)
	Stats(ctx context.Context) (*data.BookStats, error)
	GetBySlug(ctx context.Context, slug string) (*data.Book, error)
	Create(ctx context.Context, book *data.Book) error
}

// SummaryCache stores computed summaries for a short time.
type SummaryCache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// BookServicer defines the interface the bookstore handlers use.
type BookServicer interface {
	Index(ctx context.Context) (*BookIndex, error)
	Detail(ctx context.Context, slug string) (*data.Book, error)
	CreateBook(ctx context.Context, in BookInput) (*data.Book, error)
}

// BookIndex is everything shown on the bookstore landing page.
type BookIndex struct {
	Books         []*data.Book
	Total         int
	AverageRating *float64
}

// BookInput carries the fields needed to list a new book.
type BookInput struct {
	Title         string `form:"title" validate:"required,max=50"`
	Author        string `form:"author" validate:"max=100"`
	Rating        int    `form:"rating" validate:"gte=1,lte=5"`
	IsBestSelling bool   `form:"is_best_selling"`
}

// BookService provides the bookstore listing.
type BookService struct {
	repo  BookRepository
	cache SummaryCache
	ttl   time.Duration
}

// NewBookService creates a BookService. A nil cache disables summary caching.
func NewBookService(repo BookRepository, cache SummaryCache, ttl time.Duration) *BookService {
	return &BookService{repo: repo, cache: cache, ttl: ttl}
}

// Index lists every book by rating with the total count and average rating.
func (s *BookService) Index(ctx context.Context) (*BookIndex, error) {
	books, err := s.repo.ListByRatingDesc(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.stats(ctx)
	if err != nil {
		return nil, err
	}
	return &BookIndex{Books: books, Total: stats.Total, AverageRating: stats.AverageRating}, nil
}

func (s *BookService) stats(ctx context.Context) (*data.BookStats, error) {
	if s.cache != nil {
		var cached data.BookStats
		if hit, err := s.cache.GetJSON(ctx, bookStatsCacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil && s.ttl > 0 {
		// A failed cache write only costs a recomputation next time.
		_ = s.cache.SetJSON(ctx, bookStatsCacheKey, stats, s.ttl)
	}
	return stats, nil
}

// Detail returns a single book by slug.
func (s *BookService) Detail(ctx context.Context, slug string) (*data.Book, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// CreateBook validates and stores a book, deriving its slug from the title.
func (s *BookService) CreateBook(ctx context.Context, in BookInput) (*data.Book, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	slug := Slugify(in.Title)
	if slug == "" {
		return nil, validation.Errors{"title": "must contain letters or digits"}
	}
	book := &data.Book{
		Title:         in.Title,
		Author:        in.Author,
		Rating:        in.Rating,
		IsBestSelling: in.IsBestSelling,
		Slug:          slug,
	}
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, bookStatsCacheKey)
	}
	return book, nil
}
