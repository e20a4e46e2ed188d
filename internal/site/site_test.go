package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/PaulBabatuyi/portfolio-cms/internal/client"
	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

type fakeGateway struct {
	settings data.SiteSettings
	projects []data.Project
	sent     []data.NewMessage
	sendErr  error
}

func (f *fakeGateway) GetSettings(context.Context) data.SiteSettings { return f.settings }
func (f *fakeGateway) GetProjects(context.Context) []data.Project    { return f.projects }
func (f *fakeGateway) SendMessage(_ context.Context, in data.NewMessage) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, in)
	return nil
}

func newTestSite(t *testing.T, gw *fakeGateway) http.Handler {
	t.Helper()
	r, err := NewRenderer(gw, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	router := chi.NewRouter()
	r.Routes(router)
	return router
}

func sampleProjects() []data.Project {
	return []data.Project{
		{ID: "p3", Title: "Newest Logo", Category: data.CategoryLogoDesign, ImageURL: "data:image/jpeg;base64,AAAA", ObjectPosition: data.PositionTopLeft},
		{ID: "p2", Title: "Brand Book", Category: data.CategoryBranding, ImageURL: "https://cdn.example.com/b.jpg"},
		{ID: "p1", Title: "Old Logo", Category: data.CategoryLogoDesign, ImageURL: "javascript:alert(1)"},
	}
}

func TestFilterProjects(t *testing.T) {
	projects := sampleProjects()
	if got := FilterProjects(projects, FilterAll); len(got) != 3 {
		t.Fatalf("All should keep everything, got %d", len(got))
	}
	logos := FilterProjects(projects, string(data.CategoryLogoDesign))
	if len(logos) != 2 || logos[0].ID != "p3" || logos[1].ID != "p1" {
		t.Fatalf("filter should keep order, got %+v", logos)
	}
	if got := FilterProjects(projects, string(data.CategoryPackaging)); len(got) != 0 {
		t.Fatalf("expected no packaging projects, got %d", len(got))
	}
	if ParseFilter("Sculpture") != FilterAll || ParseFilter("") != FilterAll {
		t.Fatal("unknown filter should fall back to All")
	}
	if ParseFilter("UI/UX") != "UI/UX" {
		t.Fatal("known category should be kept")
	}
}

func TestServiceCategory(t *testing.T) {
	tests := []struct {
		svc  data.Service
		want data.Category
		ok   bool
	}{
		{data.Service{ID: "s3", Title: "Anything"}, data.CategoryBranding, true},
		{data.Service{ID: "s1", Title: "Logo Design"}, data.CategoryLogoDesign, true},
		{data.Service{ID: "s6", Title: "Packaging Mockups"}, data.CategoryPackaging, true},
		{data.Service{ID: "x1", Title: "Packaging"}, data.CategoryPackaging, true},
		{data.Service{ID: "x2", Title: "Brand Identity Systems"}, data.CategoryBranding, true},
		{data.Service{ID: "x3", Title: "Social Media Kits"}, data.CategorySocialMedia, true},
		{data.Service{ID: "x4", Title: "Motion Graphics"}, "", false},
		{data.Service{ID: "x5"}, "", false},
	}
	for _, tt := range tests {
		got, ok := ServiceCategory(tt.svc)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ServiceCategory(%+v) = %q, %v; want %q, %v", tt.svc, got, ok, tt.want, tt.ok)
		}
	}

	for _, s := range data.DefaultSettings().Services {
		if _, ok := ServiceCategory(s); !ok {
			t.Errorf("default service %s should map to a category", s.ID)
		}
	}

	tiles := serviceTiles([]data.Service{{ID: "x4", Title: "Motion Graphics"}})
	if tiles[0].Href != FilterHref(FilterAll) {
		t.Fatalf("unmatched service should link to All, got %s", tiles[0].Href)
	}
}

func TestSplitHeading(t *testing.T) {
	h := SplitHeading("Send Me a Message.")
	if h.Lead != "Send Me a" || h.Accent != "Message." {
		t.Fatalf("got %+v", h)
	}
	if h := SplitHeading("Hello"); h.Lead != "" || h.Accent != "Hello" {
		t.Fatalf("single word: %+v", h)
	}
}

func TestTiles(t *testing.T) {
	page := BuildPage(data.DefaultSettings(), sampleProjects(), "", ContactState{})
	if len(page.Tiles) != 3 {
		t.Fatalf("expected 3 tiles, got %d", len(page.Tiles))
	}
	logo := page.Tiles[0]
	if logo.Ratio.W != 1 || logo.Ratio.H != 1 {
		t.Fatalf("logo tiles are square, got %+v", logo.Ratio)
	}
	if !strings.Contains(string(logo.Style), "object-position: top left") {
		t.Fatalf("style missing focal point: %s", logo.Style)
	}
	if !strings.Contains(string(page.Tiles[1].Style), "object-position: center") {
		t.Fatalf("empty position should default to center: %s", page.Tiles[1].Style)
	}
	if page.Tiles[2].Image != "" {
		t.Fatalf("script URL should be dropped, got %q", page.Tiles[2].Image)
	}
}

func TestIndexRendersSections(t *testing.T) {
	gw := &fakeGateway{settings: data.DefaultSettings(), projects: sampleProjects()}
	h := newTestSite(t, gw)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`id="works"`, `id="contact"`, "Available for projects",
		`<span class="accent">Message.</span>`,
		"mailto:hello@example.com",
		"Newest Logo", "Brand Book",
		`src="data:image/jpeg;base64,AAAA"`,
		`/?category=Branding#works`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, "javascript:") {
		t.Error("unsafe URL rendered")
	}
}

func TestIndexFilter(t *testing.T) {
	gw := &fakeGateway{settings: data.DefaultSettings(), projects: sampleProjects()}
	h := newTestSite(t, gw)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?category=Branding", nil))
	body := rec.Body.String()
	if !strings.Contains(body, "Brand Book") || strings.Contains(body, "Newest Logo") {
		t.Fatal("category filter not applied")
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?category=Packaging", nil))
	if !strings.Contains(rec.Body.String(), "No projects in this category yet.") {
		t.Fatal("empty category should say so")
	}
}

func postContact(h http.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestContactForm(t *testing.T) {
	gw := &fakeGateway{settings: data.DefaultSettings()}
	h := newTestSite(t, gw)

	rec := postContact(h, url.Values{"name": {"Ann"}, "email": {"ann@x.com"}, "message": {"Hi there"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/?contact=sent#contact" {
		t.Fatalf("location %q", loc)
	}
	if len(gw.sent) != 1 || gw.sent[0].Email != "ann@x.com" {
		t.Fatalf("message not forwarded: %+v", gw.sent)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?contact=sent", nil))
	if !strings.Contains(rec.Body.String(), "get back to you shortly") {
		t.Fatal("success notice missing")
	}

	rec = postContact(h, url.Values{"name": {"Ann"}, "email": {"nope"}, "message": {"Hi"}})
	if loc := rec.Header().Get("Location"); loc != "/?contact=invalid#contact" {
		t.Fatalf("invalid form location %q", loc)
	}
	if len(gw.sent) != 1 {
		t.Fatal("invalid form should not be forwarded")
	}

	rec = postContact(h, url.Values{"name": {"   "}, "email": {"ann@x.com"}, "message": {"\r\n "}})
	if loc := rec.Header().Get("Location"); loc != "/?contact=invalid#contact" {
		t.Fatalf("blank form location %q", loc)
	}
	if len(gw.sent) != 1 {
		t.Fatal("blank form should not be forwarded")
	}

	gw.sendErr = client.ErrNetwork
	rec = postContact(h, url.Values{"name": {"Ann"}, "email": {"ann@x.com"}, "message": {"Hi"}})
	if loc := rec.Header().Get("Location"); loc != "/?contact=failed#contact" {
		t.Fatalf("failed send location %q", loc)
	}
}
