package site

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
	"github.com/PaulBabatuyi/portfolio-cms/internal/imaging"
)

// FilterAll shows every project.
const FilterAll = "All"

// GallerySection is the anchor of the gallery section.
const GallerySection = "works"

// ParseFilter returns the category named by q, or FilterAll when q is
// empty or unknown.
func ParseFilter(q string) string {
	q = strings.TrimSpace(q)
	if data.Category(q).Valid() {
		return q
	}
	return FilterAll
}

// FilterProjects keeps the projects in category f, preserving order.
func FilterProjects(projects []data.Project, f string) []data.Project {
	if f == "" || f == FilterAll {
		return projects
	}
	out := make([]data.Project, 0, len(projects))
	for _, p := range projects {
		if string(p.Category) == f {
			out = append(out, p)
		}
	}
	return out
}

// FilterHref links to the gallery filtered by f.
func FilterHref(f string) string {
	if f == "" || f == FilterAll {
		return "/#" + GallerySection
	}
	return "/?category=" + url.QueryEscape(f) + "#" + GallerySection
}

// FilterTab is one button above the gallery.
type FilterTab struct {
	Label  string
	Href   string
	Active bool
}

func filterTabs(active string) []FilterTab {
	tabs := []FilterTab{{Label: "All projects", Href: FilterHref(FilterAll), Active: active == FilterAll}}
	for _, c := range data.Categories {
		tabs = append(tabs, FilterTab{Label: string(c), Href: FilterHref(string(c)), Active: active == string(c)})
	}
	return tabs
}

// Tile is one gallery entry ready for rendering.
type Tile struct {
	ID          string
	Title       string
	Description string
	Category    data.Category
	Image       template.URL
	Ratio       imaging.Ratio
	// Style sizes the tile and places the image focal point.
	Style template.CSS
}

func newTile(p data.Project) Tile {
	r := imaging.AspectFor(p.Category)
	pos := p.ObjectPosition.OrDefault()
	if !pos.Valid() {
		pos = data.PositionCenter
	}
	return Tile{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Image:       imageURL(p.ImageURL),
		Ratio:       r,
		Style:       template.CSS(fmt.Sprintf("aspect-ratio: %d / %d; object-position: %s;", r.W, r.H, pos)),
	}
}

// imageURL admits inline image data and http(s) or root-relative URLs.
// Anything else renders as no image.
func imageURL(raw string) template.URL {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return ""
	case strings.HasPrefix(raw, "data:image/"):
		return template.URL(raw)
	case strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//"):
		return template.URL(raw)
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return template.URL(raw)
}
