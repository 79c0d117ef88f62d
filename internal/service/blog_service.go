package service

import (
	"context"
	"go-mini-sites/internal/data"
	"go-mini-sites/internal/validation"
)

// StartingPageSize is how many posts the blog's starting page shows.
const StartingPageSize = 3

// PostRepository defines the database operations for posts, authors and tags.
type PostRepository interface {
	Latest(ctx context.Context, n int) ([]*data.Post, error)
	ListByDateDesc(ctx context.Context) ([]*data.Post, error)
	GetBySlug(ctx context.Context, slug string) (*data.Post, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*data.Post, error)
	TagsForPost(ctx context.Context, postID int64) ([]*data.Tag, error)
	Create(ctx context.Context, post *data.Post, tagIDs []int64) error
	Count(ctx context.Context) (int, error)
	CreateAuthor(ctx context.Context, author *data.Author) error
	CreateTag(ctx context.Context, tag *data.Tag) error
}

// CommentRepository defines the database operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *data.Comment) error
	ListForPost(ctx context.Context, postID int64) ([]*data.Comment, error)
}

// BlogServicer defines the interface the blog handlers use.
type BlogServicer interface {
	StartingPage(ctx context.Context) ([]*data.Post, error)
	AllPosts(ctx context.Context) ([]*data.Post, error)
	PostDetail(ctx context.Context, slug string) (*PostDetail, error)
	AddComment(ctx context.Context, slug string, form CommentForm) (*data.Comment, error)
	PostsByIDs(ctx context.Context, ids []int64) ([]*data.Post, error)
}

// PostDetail is a post with everything its page shows.
type PostDetail struct {
	Post     *data.Post
	Tags     []*data.Tag
	Comments []*data.Comment
}

// CommentForm is the comment form shown under each post.
type CommentForm struct {
	UserName  string `form:"user_name" validate:"required,max=120"`
	UserEmail string `form:"user_email" validate:"required,email"`
	Text      string `form:"text" validate:"required,max=400"`
}

// PostInput carries the fields for writing a new post.
type PostInput struct {
	Title     string  `form:"title" validate:"required,max=150"`
	Excerpt   string  `form:"excerpt" validate:"required,max=200"`
	Content   string  `form:"content" validate:"required,min=10"`
	ImageName *string `form:"image_name" validate:"omitempty,max=100"`
	AuthorID  *int64  `form:"author_id"`
	TagIDs    []int64 `form:"tags"`
}

// AuthorInput carries the fields for a new author.
type AuthorInput struct {
	FirstName string `form:"first_name" validate:"required,max=100"`
	LastName  string `form:"last_name" validate:"required,max=100"`
	Email     string `form:"email" validate:"required,email"`
}

// TagInput carries the fields for a new tag.
type TagInput struct {
	Caption string `form:"caption" validate:"required,max=20"`
}

// BlogService provides the blog's posts and comments.
type BlogService struct {
	posts    PostRepository
	comments CommentRepository
	renderer *ContentRenderer
}

// NewBlogService creates a BlogService.
func NewBlogService(posts PostRepository, comments CommentRepository, renderer *ContentRenderer) *BlogService {
	return &BlogService{posts: posts, comments: comments, renderer: renderer}
}

// StartingPage returns the most recent posts.
func (s *BlogService) StartingPage(ctx context.Context) ([]*data.Post, error) {
	return s.posts.Latest(ctx, StartingPageSize)
}

// AllPosts returns every post, newest first.
func (s *BlogService) AllPosts(ctx context.Context) ([]*data.Post, error) {
	return s.posts.ListByDateDesc(ctx)
}

// PostDetail loads a post by slug with its tags, comments and rendered body.
func (s *BlogService) PostDetail(ctx context.Context, slug string) (*PostDetail, error) {
	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	tags, err := s.posts.TagsForPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListForPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	post.HTMLContent = s.renderer.Render(post.Content)
	return &PostDetail{Post: post, Tags: tags, Comments: comments}, nil
}

// AddComment attaches a comment to the post with the given slug. An unknown
// slug yields data.ErrNotFound; an invalid form yields validation.Errors.
// Either way nothing is stored.
func (s *BlogService) AddComment(ctx context.Context, slug string, form CommentForm) (*data.Comment, error) {
	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(form); err != nil {
		return nil, err
	}
	comment := &data.Comment{
		UserName:  form.UserName,
		UserEmail: form.UserEmail,
		Text:      form.Text,
		PostID:    post.ID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// PostsByIDs returns the posts for ids in the order given. IDs whose post no
// longer exists are skipped.
func (s *BlogService) PostsByIDs(ctx context.Context, ids []int64) ([]*data.Post, error) {
	found, err := s.posts.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*data.Post, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	ordered := make([]*data.Post, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

// CreatePost validates and stores a post; the slug is derived from the title.
func (s *BlogService) CreatePost(ctx context.Context, in PostInput) (*data.Post, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	slug := Slugify(in.Title)
	if slug == "" {
		return nil, validation.Errors{"title": "must contain letters or digits"}
	}
	post := &data.Post{
		Title:     in.Title,
		Excerpt:   in.Excerpt,
		ImageName: in.ImageName,
		Slug:      slug,
		Content:   in.Content,
		AuthorID:  in.AuthorID,
	}
	if err := s.posts.Create(ctx, post, in.TagIDs); err != nil {
		return nil, err
	}
	return post, nil
}

// CreateAuthor validates and stores an author.
func (s *BlogService) CreateAuthor(ctx context.Context, in AuthorInput) (*data.Author, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	author := &data.Author{FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}
	if err := s.posts.CreateAuthor(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// CreateTag validates and stores a tag.
func (s *BlogService) CreateTag(ctx context.Context, in TagInput) (*data.Tag, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	tag := &data.Tag{Caption: in.Caption}
	if err := s.posts.CreateTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// PostCount returns the number of stored posts.
func (s *BlogService) PostCount(ctx context.Context) (int, error) {
	return s.posts.Count(ctx)
}
