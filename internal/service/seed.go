package service

import (
	"context"
	"fmt"
	"go-mini-sites/internal/logger"
)

// Seeder loads demo content into empty tables.
type Seeder struct {
	books *BookService
	blog  *BlogService
	log   logger.Logger
}

// NewSeeder creates a Seeder.
func NewSeeder(books *BookService, blog *BlogService, log logger.Logger) *Seeder {
	return &Seeder{books: books, blog: blog, log: log}
}

// Run inserts demo books and posts. Each table is only seeded when empty,
// so running it on every start is safe.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedBooks(ctx); err != nil {
		return fmt.Errorf("seed books: %w", err)
	}
	if err := s.seedPosts(ctx); err != nil {
		return fmt.Errorf("seed posts: %w", err)
	}
	return nil
}

func (s *Seeder) seedBooks(ctx context.Context) error {
	index, err := s.books.Index(ctx)
	if err != nil {
		return err
	}
	if index.Total > 0 {
		return nil
	}
	books := []BookInput{
		{Title: "Harry Potter 1", Author: "J.K. Rowling", Rating: 5, IsBestSelling: true},
		{Title: "Lord of the Rings", Author: "J.R.R. Tolkien", Rating: 4, IsBestSelling: true},
		{Title: "My Story", Author: "Max Schwarz", Rating: 2},
	}
	for _, b := range books {
		if _, err := s.books.CreateBook(ctx, b); err != nil {
			return err
		}
	}
	s.log.Info(fmt.Sprintf("Seeded %d books", len(books)))
	return nil
}

func (s *Seeder) seedPosts(ctx context.Context) error {
	n, err := s.blog.PostCount(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	author, err := s.blog.CreateAuthor(ctx, AuthorInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	if err != nil {
		return err
	}
	var tagIDs []int64
	for _, caption := range []string{"nature", "coding", "travel"} {
		tag, err := s.blog.CreateTag(ctx, TagInput{Caption: caption})
		if err != nil {
			return err
		}
		tagIDs = append(tagIDs, tag.ID)
	}

	posts := []PostInput{
		{
			Title:   "Mountain Hiking",
			Excerpt: "There's nothing like the views you get when hiking in the mountains!",
			Content: "## Up high\n\nThe air is thin and the views are **wide**. Pack water.",
			TagIDs:  []int64{tagIDs[0], tagIDs[2]},
		},
		{
			Title:   "Programming Is Fun",
			Excerpt: "Did you ever spend hours searching that one error in your code?",
			Content: "Finding the bug took hours.\n\n```go\nfmt.Println(\"fixed\")\n```",
			TagIDs:  []int64{tagIDs[1]},
		},
		{
			Title:   "Into the Woods",
			Excerpt: "Nature is amazing! The amount of inspiration I get when walking in nature is incredible!",
			Content: "Walking among the trees clears the head. Try it *without* a phone.",
			TagIDs:  []int64{tagIDs[0]},
		},
	}
	for _, p := range posts {
		p.AuthorID = &author.ID
		if _, err := s.blog.CreatePost(ctx, p); err != nil {
			return err
		}
	}
	s.log.Info(fmt.Sprintf("Seeded %d posts", len(posts)))
	return nil
}
