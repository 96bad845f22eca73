package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/blogsite/internal/common"
)

var (
	ErrRecordNotFound = common.ErrRecordNotFound
	ErrUserForeignKey = errors.New("author_id does not exist")
	ErrDuplicateTitle = errors.New("duplicate title")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

func (m *BlogModel) insertPost(ctx context.Context, p *Post) error {
	query := `
		INSERT INTO blog_posts (title, subtitle, date, body, img_url, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	args := []any{p.Title, p.Subtitle, p.Date, p.Body, p.ImgURL, p.AuthorID}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		switch {
		case common.UniqueViolation(err, "blog_posts_title_key"):
			return ErrDuplicateTitle
		case common.ForeignKeyViolation(err, "blog_posts_author_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// getPostByID joins the users table to get the author's name.
func (m *BlogModel) getPostByID(ctx context.Context, id int) (*Post, error) {
	query := `
		SELECT p.id, p.title, p.subtitle, p.date, p.body, p.img_url, p.author_id, p.created_at, u.name
		FROM blog_posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.id = $1`

	var p Post
	err := m.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.ImgURL, &p.AuthorID, &p.CreatedAt, &p.AuthorName)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &p, nil
}

// getPosts returns every post, newest first.
func (m *BlogModel) getPosts(ctx context.Context) ([]Post, error) {
	query := `
		SELECT p.id, p.title, p.subtitle, p.date, p.body, p.img_url, p.author_id, p.created_at, u.name
		FROM blog_posts p
		JOIN users u ON p.author_id = u.id
		ORDER BY p.created_at DESC, p.id DESC`

	return m.queryPosts(ctx, query)
}

func (m *BlogModel) getPostsByAuthor(ctx context.Context, authorID int) ([]Post, error) {
	query := `
		SELECT p.id, p.title, p.subtitle, p.date, p.body, p.img_url, p.author_id, p.created_at, u.name
		FROM blog_posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC, p.id DESC`

	return m.queryPosts(ctx, query, authorID)
}

func (m *BlogModel) queryPosts(ctx context.Context, query string, args ...any) ([]Post, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var p Post
		err := rows.Scan(&p.ID, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.ImgURL, &p.AuthorID, &p.CreatedAt, &p.AuthorName)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// updatePost replaces the editable fields. The author and publication date are left alone.
func (m *BlogModel) updatePost(ctx context.Context, p *Post) error {
	query := `
		UPDATE blog_posts
		SET title = $1, subtitle = $2, body = $3, img_url = $4
		WHERE id = $5
		RETURNING date, author_id, created_at`

	err := m.db.QueryRowContext(ctx, query, p.Title, p.Subtitle, p.Body, p.ImgURL, p.ID).Scan(&p.Date, &p.AuthorID, &p.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return ErrRecordNotFound
		case common.UniqueViolation(err, "blog_posts_title_key"):
			return ErrDuplicateTitle
		default:
			return err
		}
	}

	return nil
}

// deletePost removes the post together with its comments in one transaction.
func (m *BlogModel) deletePost(ctx context.Context, id int) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, "DELETE FROM comments WHERE post_id = $1", id)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM blog_posts WHERE id = $1", id)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	if rows != 1 {
		_ = tx.Rollback()
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return tx.Commit()
}

func (m *BlogModel) insertComment(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (text, author_id, post_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := m.db.QueryRowContext(ctx, query, c.Text, c.AuthorID, c.PostID).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "comments_post_id_fkey"):
			return ErrRecordNotFound
		case common.ForeignKeyViolation(err, "comments_author_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// getCommentsByPost returns the comments of one post, oldest first, with the author's name and email.
func (m *BlogModel) getCommentsByPost(ctx context.Context, postID int) ([]Comment, error) {
	query := `
		SELECT c.id, c.text, c.author_id, c.post_id, c.created_at, u.name, u.email
		FROM comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created_at, c.id`

	rows, err := m.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		err := rows.Scan(&c.ID, &c.Text, &c.AuthorID, &c.PostID, &c.CreatedAt, &c.AuthorName, &c.AuthorEmail)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
