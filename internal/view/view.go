// Package view turns a card lookup outcome into HTML. Computing the State is
// separate from rendering it, so the markup is a pure function of the State.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"

	"github.com/alovak/namecard/card/models"
	"github.com/alovak/namecard/internal/vcard"
)

//go:embed templates/*.html
var templateFS embed.FS

// ContentType is the content type of rendered pages.
const ContentType = "text/html; charset=utf-8"

// Kind tells which panel a State renders.
type Kind int

const (
	KindNotFound Kind = iota
	KindError
	KindFound
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindError:
		return "error"
	case KindFound:
		return "found"
	default:
		return "unknown"
	}
}

// State is the outcome of one lookup. Only the fields matching Kind are set.
type State struct {
	Kind    Kind
	Status  int
	Message string
	Handle  string
	Card    *models.Card
}

// NotFound is the state for a successful lookup that matched no card.
func NotFound() State {
	return State{Kind: KindNotFound, Status: http.StatusNotFound}
}

// Error is the state for a failed lookup. The message is shown to the visitor
// as is, so it must not carry raw store errors.
func Error(status int, message string) State {
	return State{Kind: KindError, Status: status, Message: message}
}

// Found is the state for a card matched by handle.
func Found(handle string, card *models.Card) State {
	return State{Kind: KindFound, Status: http.StatusOK, Handle: handle, Card: card}
}

type pageData struct {
	Title   string
	Error   bool
	Message string
	Card    *cardData
}

type cardData struct {
	Name        string
	Subtitle    string
	Tags        []tag
	ContactHref template.URL
	Filename    string
	EmailHref   template.URL
}

type tag struct {
	Label string
	Value string
	Href  template.URL
}

// Renderer renders States with the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the full page for s to w.
func (r *Renderer) Render(w io.Writer, s State) error {
	if err := r.tmpl.ExecuteTemplate(w, "layout", newPageData(s)); err != nil {
		return fmt.Errorf("rendering %s page: %w", s.Kind, err)
	}
	return nil
}

func newPageData(s State) pageData {
	switch s.Kind {
	case KindFound:
		if s.Card == nil {
			return pageData{Title: "Name card"}
		}
		title := models.Text(s.Card.Name)
		if title == "" {
			title = "Name card"
		}
		return pageData{Title: title, Card: newCardData(s.Handle, s.Card)}
	case KindError:
		return pageData{Title: "Error", Error: true, Message: s.Message}
	default:
		return pageData{Title: "Name card not found"}
	}
}

func newCardData(handle string, c *models.Card) *cardData {
	d := &cardData{
		Name:        models.Text(c.Name),
		Subtitle:    c.Subtitle(),
		ContactHref: ContactPath(handle),
		Filename:    vcard.Filename(c.Name),
	}
	if c.Department != nil {
		d.Tags = append(d.Tags, tag{Label: "Department", Value: *c.Department})
	}
	if c.Email != nil {
		d.EmailHref = mailto(*c.Email)
		d.Tags = append(d.Tags, tag{Label: "Email", Value: *c.Email, Href: d.EmailHref})
	}
	if c.PhoneNumber != nil {
		d.Tags = append(d.Tags, tag{Label: "Phone", Value: *c.PhoneNumber, Href: template.URL("tel:" + url.PathEscape(*c.PhoneNumber))})
	}
	if c.CompanyAddress != nil {
		d.Tags = append(d.Tags, tag{Label: "Address", Value: *c.CompanyAddress})
	}
	return d
}

// ContactPath is the download route of the vCard for handle.
func ContactPath(handle string) template.URL {
	return template.URL("/" + url.PathEscape(handle) + "/contact.vcf")
}

func mailto(email string) template.URL {
	return template.URL("mailto:" + url.PathEscape(email))
}
