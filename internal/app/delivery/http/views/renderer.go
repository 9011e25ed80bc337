package views

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"personas-web/internal/pkg/constvars"
	"personas-web/internal/pkg/dto/responses"
	"personas-web/internal/pkg/exceptions"

	"github.com/Masterminds/sprig/v3"
)

const (
	pageTemplate = "index.html"
	pageTitle    = "Personas"

	// Seconds before a page rendered while the list was loading reloads
	// itself.
	loadingRefreshSeconds = 2
)

//go:embed templates/*.html
var templatesFS embed.FS

type pageData struct {
	Title          string
	Absent         string
	LoadingMessage string
	RefreshSeconds int
	Page           *responses.PersonaPage
}

type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	templates, err := template.New(pageTemplate).
		Funcs(sprig.HtmlFuncMap()).
		ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, exceptions.ErrRenderTemplate(err, pageTemplate)
	}
	return &Renderer{templates: templates}, nil
}

// RenderPage writes the whole page or nothing at all.
func (r *Renderer) RenderPage(w io.Writer, page *responses.PersonaPage) error {
	data := pageData{
		Title:          pageTitle,
		Absent:         constvars.DisplayAbsent,
		LoadingMessage: constvars.ListLoadingMessage,
		RefreshSeconds: loadingRefreshSeconds,
		Page:           page,
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, pageTemplate, data); err != nil {
		return exceptions.ErrRenderTemplate(err, pageTemplate)
	}
	_, err := buf.WriteTo(w)
	return err
}
