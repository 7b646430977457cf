package template

import (
	"io/fs"
	"net/http"

	stdtemplate "html/template"

	humanize "github.com/dustin/go-humanize"
	"github.com/gosimple/slug"
)

type Template struct {
	templates *stdtemplate.Template
}

// NewTemplate parses every view under static/views in fsys.
func NewTemplate(fsys fs.FS) *Template {
	funcMap := stdtemplate.FuncMap{
		"humantime": humanize.Time,
		"humannumber": func(n int) string {
			return humanize.Comma(int64(n))
		},
		"slug": slug.Make,
	}
	return &Template{
		templates: stdtemplate.Must(stdtemplate.New("stdtmpl").Funcs(funcMap).ParseFS(fsys, "static/views/*.html")),
	}
}

func (t *Template) Render(w http.ResponseWriter, status int, name string, data interface{}) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return t.templates.ExecuteTemplate(w, name, data)
}
