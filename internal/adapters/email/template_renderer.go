package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"text/template"

	"campusevents/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// templateRenderer implements domain.EmailTemplateRenderer. Each named template is a set of three
// embedded files: <name>_subject.txt, <name>.txt and <name>.html.
type templateRenderer struct {
	text *template.Template
	html *htmltemplate.Template
}

// NewTemplateRenderer parses the embedded templates once. It panics if they do not parse,
// which can only happen with a broken build.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{
		text: template.Must(template.New("").Option("missingkey=error").ParseFS(templateFS, "templates/*.txt")),
		html: htmltemplate.Must(htmltemplate.New("").ParseFS(templateFS, "templates/*.html")),
	}
}

// Render executes the named template (e.g. "notification") with data.
func (r *templateRenderer) Render(name string, data any) (subject, htmlBody, textBody string, err error) {
	if subject, err = r.execText(name+"_subject.txt", data); err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	if textBody, err = r.execText(name+".txt", data); err != nil {
		return "", "", "", fmt.Errorf("render text: %w", err)
	}
	t := r.html.Lookup(name + ".html")
	if t == nil {
		return "", "", "", fmt.Errorf("render html: template %q not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render html: %w", err)
	}
	return strings.TrimSpace(subject), buf.String(), textBody, nil
}

func (r *templateRenderer) execText(file string, data any) (string, error) {
	t := r.text.Lookup(file)
	if t == nil {
		return "", fmt.Errorf("template %q not found", file)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
