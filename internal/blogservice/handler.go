package blogservice

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/sushihentaime/blogsite/internal/common"
)

func NewBlogService(db *sql.DB) *BlogService {
	return &BlogService{m: newBlogModel(db), now: time.Now}
}

// CreatePost stores a new post by authorID, dated today.
func (s *BlogService) CreatePost(ctx context.Context, authorID int, in PostInput) (*Post, error) {
	in = cleanInput(in)

	v := common.NewValidator()
	validatePostInput(v, in)
	validateInt(v, authorID, "author_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	p := &Post{
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Date:     s.now().Format(DateLayout),
		Body:     in.Body,
		ImgURL:   in.ImgURL,
		AuthorID: authorID,
	}

	if err := s.m.insertPost(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// GetPost returns a post by its ID.
func (s *BlogService) GetPost(ctx context.Context, id int) (*Post, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, ErrRecordNotFound
	}

	return s.m.getPostByID(ctx, id)
}

// GetPosts returns all posts, newest first.
func (s *BlogService) GetPosts(ctx context.Context) ([]Post, error) {
	return s.m.getPosts(ctx)
}

// GetPostsByAuthor returns every post written by authorID. An author without posts gets an empty slice.
func (s *BlogService) GetPostsByAuthor(ctx context.Context, authorID int) ([]Post, error) {
	v := common.NewValidator()
	validateInt(v, authorID, "author_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getPostsByAuthor(ctx, authorID)
}

// UpdatePost replaces title, subtitle, image URL and body of an existing post.
func (s *BlogService) UpdatePost(ctx context.Context, id int, in PostInput) (*Post, error) {
	in = cleanInput(in)

	v := common.NewValidator()
	validatePostInput(v, in)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if id < 1 {
		return nil, ErrRecordNotFound
	}

	p := &Post{
		ID:       id,
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Body:     in.Body,
		ImgURL:   in.ImgURL,
	}

	if err := s.m.updatePost(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// DeletePost removes a post and its comments.
func (s *BlogService) DeletePost(ctx context.Context, id int) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	return s.m.deletePost(ctx, id)
}

// AddComment stores a comment by authorID under postID. ErrRecordNotFound is returned when the post does not exist.
func (s *BlogService) AddComment(ctx context.Context, postID, authorID int, text string) (*Comment, error) {
	text = strings.TrimSpace(text)

	v := common.NewValidator()
	validateComment(v, text)
	validateInt(v, authorID, "author_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if postID < 1 {
		return nil, ErrRecordNotFound
	}

	c := &Comment{
		Text:     text,
		AuthorID: authorID,
		PostID:   postID,
	}

	if err := s.m.insertComment(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// GetComments returns the comments under postID, oldest first.
func (s *BlogService) GetComments(ctx context.Context, postID int) ([]Comment, error) {
	if postID < 1 {
		return nil, ErrRecordNotFound
	}

	return s.m.getCommentsByPost(ctx, postID)
}

// cleanInput trims the single line fields and sanitizes the body.
func cleanInput(in PostInput) PostInput {
	return PostInput{
		Title:    strings.TrimSpace(in.Title),
		Subtitle: strings.TrimSpace(in.Subtitle),
		ImgURL:   strings.TrimSpace(in.ImgURL),
		Body:     sanitizeBody(in.Body),
	}
}
