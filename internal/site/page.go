package site

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/radiooperator-site/internal/domain"
)

// SearchAction is the external search endpoint the search form submits to.
const SearchAction = "https://duckduckgo.com/"

//go:embed templates/*.tmpl
var templates embed.FS

// PageData is the view model for the homepage template.
type PageData struct {
	Menu         Menu
	Sentinel     string
	SearchAction string
	Year         int

	NavigationID       string
	BottomNavigationID string
	ClockID            string
	ColorPickerID      string
}

// navView feeds one navigation dropdown; the page renders the same menu twice.
type navView struct {
	ID   string
	Menu Menu
}

func newNavView(id string, menu Menu) navView {
	return navView{ID: id, Menu: menu}
}

// Renderer renders the homepage.
type Renderer struct {
	tmpl  *template.Template
	menu  Menu
	clock clockwork.Clock
}

// NewRenderer parses the embedded homepage template. A nil clock uses the real clock.
func NewRenderer(menu Menu, clock clockwork.Clock) (*Renderer, error) {
	if err := menu.Validate(); err != nil {
		return nil, err
	}
	tmpl, err := template.New("index.html.tmpl").
		Funcs(template.FuncMap{"nav": newNavView}).
		ParseFS(templates, "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse homepage template: %w", err)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Renderer{tmpl: tmpl, menu: menu, clock: clock}, nil
}

// Render writes the homepage to w.
func (r *Renderer) Render(w io.Writer) error {
	data := PageData{
		Menu:         r.menu,
		Sentinel:     r.menu.Sentinel(),
		SearchAction: SearchAction,
		Year:         r.clock.Now().Year(),

		NavigationID:       domain.NavigationID,
		BottomNavigationID: domain.BottomNavigationID,
		ClockID:            domain.ClockID,
		ColorPickerID:      domain.ColorPickerID,
	}
	if err := r.tmpl.ExecuteTemplate(w, "index.html.tmpl", data); err != nil {
		return fmt.Errorf("render homepage: %w", err)
	}
	return nil
}
