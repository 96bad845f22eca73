package blogservice

import (
	"database/sql"
	"time"
)

// DateLayout is the publication date format, e.g. "August 24, 2024".
const DateLayout = "January 02, 2006"

type Post struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	// Date is fixed when the post is created and never edited.
	Date       string    `json:"date"`
	Body       string    `json:"body"`
	ImgURL     string    `json:"img_url"`
	AuthorID   int       `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type Comment struct {
	ID          int       `json:"id"`
	Text        string    `json:"text"`
	AuthorID    int       `json:"author_id"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"-"`
	PostID      int       `json:"post_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// PostInput holds the editable fields of a post.
type PostInput struct {
	Title    string
	Subtitle string
	ImgURL   string
	Body     string
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m   *BlogModel
	now func() time.Time
}
