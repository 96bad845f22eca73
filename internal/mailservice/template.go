package mailservice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/sushihentaime/blogsite/internal/common"
)

//go:embed templates/*
var templateFS embed.FS

// Template parses e-mail templates from the embedded filesystem and keeps each parsed template for reuse.
type Template struct {
	cache *common.Cache
}

func NewTemplate() *Template {
	return &Template{cache: common.NewCache(0, 0)}
}

func (tp *Template) lookup(name string) (*template.Template, error) {
	key := common.CacheKeyMailTemplate(name)
	if t, ok := tp.cache.Get(key); ok {
		return t.(*template.Template), nil
	}

	t, err := template.New("email").ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("could not parse template: %w", err)
	}

	tp.cache.Set(key, t)

	return t, nil
}

// ParseTemplate renders the subject, plainBody and htmlBody blocks of the named template with data.
func (tp *Template) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	t, err := tp.lookup(name)
	if err != nil {
		return nil, nil, nil, err
	}

	subject := new(bytes.Buffer)
	err = t.ExecuteTemplate(subject, "subject", data)
	if err != nil {
		return nil, nil, nil, err
	}

	plainBody := new(bytes.Buffer)
	err = t.ExecuteTemplate(plainBody, "plainBody", data)
	if err != nil {
		return nil, nil, nil, err
	}

	htmlBody := new(bytes.Buffer)
	err = t.ExecuteTemplate(htmlBody, "htmlBody", data)
	if err != nil {
		return nil, nil, nil, err
	}

	return subject, plainBody, htmlBody, nil
}
