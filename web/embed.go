// Package web provides embedded HTML templates.
package web

import (
	"embed"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// htmlPolicy sanitizes rendered catalog markdown.
var htmlPolicy = bluemonday.UGCPolicy()

func init() {
	// goldmark marks fenced blocks with language-* classes.
	htmlPolicy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code")
}

//go:embed templates/*
var content embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"safe": func(s string) template.HTML {
		return template.HTML(htmlPolicy.Sanitize(s))
	},
	"short": func(id string) string {
		if len(id) > 8 {
			return id[:8]
		}
		return id
	},
	"datetime": func(t time.Time) string {
		return t.Local().Format("2006-01-02 15:04")
	},
	"join": strings.Join,
}).ParseFS(content,
	"templates/layouts/*.html",
	"templates/pages/*.html",
	"templates/partials/*.html",
))

// RenderPage renders a full page with the base layout.
func RenderPage(w io.Writer, name string, data map[string]interface{}) error {
	if data == nil {
		data = make(map[string]interface{})
	}
	data["Page"] = name

	tmpl, err := templates.Clone()
	if err != nil {
		return err
	}
	return tmpl.ExecuteTemplate(w, "base.html", data)
}
