// Package site renders the public portfolio page from the content API.
package site

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/juju/errors"
	"github.com/rs/zerolog"

	"github.com/PaulBabatuyi/portfolio-cms/internal/client"
	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

//go:embed templates/page.html
var templateFS embed.FS

// maxContactBytes bounds a contact form post.
const maxContactBytes = 64 << 10

// Contact outcomes carried in the redirect after a form post.
const (
	contactSent    = "sent"
	contactInvalid = "invalid"
	contactFailed  = "failed"
)

var contactErrors = map[string]string{
	contactInvalid: "Please fill in your name, a valid email and a message.",
	contactFailed:  "Your message could not be sent. Please try again later.",
}

// Gateway is the part of the API client the site reads and writes through.
type Gateway interface {
	GetSettings(ctx context.Context) data.SiteSettings
	GetProjects(ctx context.Context) []data.Project
	SendMessage(ctx context.Context, in data.NewMessage) error
}

var _ Gateway = (*client.Client)(nil)

// Renderer serves the public page.
type Renderer struct {
	gw   Gateway
	page *template.Template
	log  zerolog.Logger
}

// NewRenderer parses the embedded page template.
func NewRenderer(gw Gateway, log zerolog.Logger) (*Renderer, error) {
	page, err := template.ParseFS(templateFS, "templates/page.html")
	if err != nil {
		return nil, errors.Annotate(err, "parsing page template")
	}
	return &Renderer{gw: gw, page: page, log: log}, nil
}

// Routes mounts the page and the contact form handler.
func (r *Renderer) Routes(router chi.Router) {
	router.Get("/", r.Index)
	router.Post("/contact", r.Contact)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// Index renders the page, filtered by the category query parameter.
func (r *Renderer) Index(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	q := req.URL.Query()

	var cs ContactState
	switch outcome := q.Get("contact"); outcome {
	case contactSent:
		cs.Sent = true
	case contactInvalid, contactFailed:
		cs.Error = contactErrors[outcome]
	}

	settings := r.gw.GetSettings(ctx)
	projects := r.gw.GetProjects(ctx)
	page := BuildPage(settings, projects, q.Get("category"), cs)

	var buf bytes.Buffer
	if err := r.page.Execute(&buf, page); err != nil {
		r.log.Error().Err(err).Msg("render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// Contact forwards the form to the API and redirects back to the contact
// section with the outcome.
func (r *Renderer) Contact(w http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(w, req.Body, maxContactBytes)
	if err := req.ParseForm(); err != nil {
		r.redirectContact(w, req, contactInvalid)
		return
	}
	msg := data.NewMessage{
		Name:    req.PostForm.Get("name"),
		Email:   req.PostForm.Get("email"),
		Message: req.PostForm.Get("message"),
	}.Normalize()
	if err := data.Validate(msg); err != nil {
		r.redirectContact(w, req, contactInvalid)
		return
	}
	if err := r.gw.SendMessage(req.Context(), msg); err != nil {
		r.log.Warn().Err(err).Msg("forward contact message")
		outcome := contactFailed
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
			outcome = contactInvalid
		}
		r.redirectContact(w, req, outcome)
		return
	}
	r.redirectContact(w, req, contactSent)
}

func (r *Renderer) redirectContact(w http.ResponseWriter, req *http.Request, outcome string) {
	http.Redirect(w, req, "/?contact="+outcome+"#contact", http.StatusSeeOther)
}
