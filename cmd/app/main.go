package main

import (
	"context"
	"flag"
	"html/template"
	"log/slog"
	"os"

	"github.com/sushihentaime/blogsite/internal/blogservice"
	"github.com/sushihentaime/blogsite/internal/common"
	"github.com/sushihentaime/blogsite/internal/mailservice"
	"github.com/sushihentaime/blogsite/internal/session"
	"github.com/sushihentaime/blogsite/internal/userservice"
)

type userService interface {
	RegisterUser(ctx context.Context, name, email, password string) (*userservice.User, *userservice.Session, error)
	LoginUser(ctx context.Context, email, password string) (*userservice.User, *userservice.Session, error)
	LogoutUser(ctx context.Context, token string) error
	GetUserBySession(ctx context.Context, token string) (*userservice.User, error)
	GetUserByID(ctx context.Context, id int) (*userservice.User, error)
}

type blogService interface {
	CreatePost(ctx context.Context, authorID int, in blogservice.PostInput) (*blogservice.Post, error)
	GetPost(ctx context.Context, id int) (*blogservice.Post, error)
	GetPosts(ctx context.Context) ([]blogservice.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID int) ([]blogservice.Post, error)
	UpdatePost(ctx context.Context, id int, in blogservice.PostInput) (*blogservice.Post, error)
	DeletePost(ctx context.Context, id int) error
	AddComment(ctx context.Context, postID, authorID int, text string) (*blogservice.Comment, error)
	GetComments(ctx context.Context, postID int) ([]blogservice.Comment, error)
}

type mailService interface {
	Enabled() bool
	SendContactMessage(ctx context.Context, msg mailservice.ContactMessage) (string, error)
}

type application struct {
	config      *Config
	logger      *slog.Logger
	templates   *template.Template
	sessions    *session.Codec
	userService userService
	blogService blogService
	mailService mailService
}

func main() {
	envFile := flag.String("env", ".env", "path to an optional env file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(*envFile)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := common.NewDB(cfg.dsn(), cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBMaxIdleTime)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	err = common.Migrate(db)
	if err != nil {
		logger.Error("failed to migrate the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	templates, err := newTemplates()
	if err != nil {
		logger.Error("failed to parse templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sessions, err := session.NewCodec(cfg.SecretKey, cfg.production())
	if err != nil {
		logger.Error("failed to create the session codec", slog.String("error", err.Error()))
		os.Exit(1)
	}

	mail := mailservice.NewMailService(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.ContactRecipient, logger)
	if !mail.Enabled() {
		logger.Warn("contact mail is not configured, the contact form is disabled")
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		templates:   templates,
		sessions:    sessions,
		userService: userservice.NewUserService(db),
		blogService: blogservice.NewBlogService(db),
		mailService: mail,
	}

	err = app.serve()
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
