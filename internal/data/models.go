package data

import (
	"errors"
	"html/template"
	"time"
)

// ErrNotFound is returned by repositories when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

// Book is a single bookstore listing.
type Book struct {
	ID            int64  `db:"id"`
	Title         string `db:"title"`
	Author        string `db:"author"`
	Rating        int    `db:"rating"`
	IsBestSelling bool   `db:"is_best_selling"`
	Slug          string `db:"slug"`
}

// BookStats is the aggregate shown on the bookstore index.
// AverageRating is nil when there are no books.
type BookStats struct {
	Total         int      `db:"total" json:"total"`
	AverageRating *float64 `db:"average_rating" json:"average_rating"`
}

// Review is a piece of visitor feedback.
type Review struct {
	ID         int64  `db:"id"`
	UserName   string `db:"user_name"`
	ReviewText string `db:"review_text"`
	Rating     int    `db:"rating"`
}

// Author writes blog posts.
type Author struct {
	ID        int64  `db:"id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
}

// FullName returns the author's first and last name joined by a space.
func (a Author) FullName() string {
	return a.FirstName + " " + a.LastName
}

// Tag labels posts.
type Tag struct {
	ID      int64  `db:"id"`
	Caption string `db:"caption"`
}

// Post is a blog post. Author fields are filled by a LEFT JOIN and are
// empty when the author has been deleted.
type Post struct {
	ID          int64         `db:"id"`
	Title       string        `db:"title"`
	Excerpt     string        `db:"excerpt"`
	ImageName   *string       `db:"image_name"`
	Date        time.Time     `db:"post_date"`
	Slug        string        `db:"slug"`
	Content     string        `db:"content"`
	AuthorID    *int64        `db:"author_id"`
	AuthorFirst *string       `db:"author_first_name"`
	AuthorLast  *string       `db:"author_last_name"`
	AuthorEmail *string       `db:"author_email"`
	HTMLContent template.HTML `db:"-"`
}

// AuthorName returns the joined author name, or "" for an orphaned post.
func (p Post) AuthorName() string {
	if p.AuthorFirst == nil || p.AuthorLast == nil {
		return ""
	}
	return Author{FirstName: *p.AuthorFirst, LastName: *p.AuthorLast}.FullName()
}

// Comment is a visitor comment attached to exactly one post.
type Comment struct {
	ID        int64  `db:"id"`
	UserName  string `db:"user_name"`
	UserEmail string `db:"user_email"`
	Text      string `db:"text"`
	PostID    int64  `db:"post_id"`
}
