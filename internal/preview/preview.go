// Package preview renders a résumé snapshot into one of the two fixed layouts.
// Rendering is a pure function of its inputs: no clock, no randomness, no
// state kept between calls.
package preview

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"resume-builder/internal/model"

	"golang.org/x/net/publicsuffix"
)

//go:embed templates/*.html templates/*.css
var files embed.FS

var templates = template.Must(template.New("preview").Funcs(template.FuncMap{
	"bullets":   Bullets,
	"firstLine": FirstLine,
	"photoSrc":  photoSrc,
	"linkLabel": LinkLabel,
}).ParseFS(files, "templates/*.html"))

var stylesheet = mustRead("templates/style.css")

func mustRead(name string) string {
	b, err := files.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(b)
}

type view struct {
	Resume *model.ResumeData
	Labels Labels
}

// Render produces the preview fragment for data under tpl. A nil data renders
// the placeholder prompt.
func Render(data *model.ResumeData, tpl model.Template, labels Labels) (template.HTML, error) {
	name := "placeholder.html"
	if data != nil {
		switch tpl {
		case model.TemplateClassic, "":
			name = "classic.html"
		case model.TemplateModern:
			name = "modern.html"
		default:
			return "", fmt.Errorf("preview: unknown template %q", tpl)
		}
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, view{Resume: data, Labels: labels}); err != nil {
		return "", fmt.Errorf("preview: execute %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

type document struct {
	Title string
	Lang  string
	Style template.CSS
	Body  template.HTML
}

// Document wraps a rendered preview into a standalone HTML page carrying the
// stylesheet and print rules, ready to be handed to a PDF renderer.
func Document(body template.HTML, title, lang string) (string, error) {
	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, "document.html", document{
		Title: title,
		Lang:  lang,
		Style: template.CSS(stylesheet),
		Body:  body,
	})
	if err != nil {
		return "", fmt.Errorf("preview: execute document: %w", err)
	}
	return buf.String(), nil
}

// Stylesheet returns the CSS shared by the preview and the print document.
func Stylesheet() template.CSS { return template.CSS(stylesheet) }

// Bullets splits newline-separated text into its non-empty lines.
func Bullets(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// FirstLine returns the first line of text, used as the modern subtitle.
func FirstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(line)
}

// LinkLabel shortens a profile URL to registrable domain plus path, e.g.
// "https://www.linkedin.com/in/ana/" -> "linkedin.com/in/ana".
func LinkLabel(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	if etld, err := publicsuffix.EffectiveTLDPlusOne(u.Hostname()); err == nil {
		host = etld
	}
	return host + strings.TrimSuffix(u.EscapedPath(), "/")
}

func photoSrc(p *model.Photo) template.URL {
	if p == nil || len(p.Data) == 0 || !strings.HasPrefix(p.ContentType, "image/") {
		return ""
	}
	return template.URL("data:" + p.ContentType + ";base64," + base64.StdEncoding.EncodeToString(p.Data))
}
