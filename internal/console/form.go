package console

import (
	"strings"

	"github.com/juju/errors"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
	"github.com/PaulBabatuyi/portfolio-cms/internal/imaging"
)

// ParseCategory matches s against the fixed categories, ignoring case.
func ParseCategory(s string) (data.Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range data.Categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", errors.NotValidf("category %q (want one of %s)", s, joinCategories())
}

func joinCategories() string {
	names := make([]string, len(data.Categories))
	for i, c := range data.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// ParsePosition accepts the nine anchors written with spaces, hyphens or
// underscores, in either order ("left-top" is "top left"). "center center"
// is center.
func ParsePosition(s string) (data.Position, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", " ", "_", " ").Replace(norm)
	words := strings.Fields(norm)

	var vertical, horizontal string
	for _, w := range words {
		switch w {
		case "top", "bottom":
			vertical = w
		case "left", "right":
			horizontal = w
		case "center", "middle":
		default:
			return "", errors.NotValidf("position %q", s)
		}
	}
	if len(words) == 0 || len(words) > 2 {
		return "", errors.NotValidf("position %q", s)
	}
	if vertical == "" {
		vertical = "center"
	}
	if horizontal == "" {
		horizontal = "center"
	}
	p := data.Position(vertical + " " + horizontal)
	if p == "center center" {
		p = data.PositionCenter
	}
	if !p.Valid() {
		return "", errors.NotValidf("position %q", s)
	}
	return p, nil
}

// ProjectForm is the project editor's input. ImageFile, when set, is
// downscaled and inlined; otherwise ImageURL is sent as given.
type ProjectForm struct {
	Title       string
	Description string
	Category    string
	Position    string
	ImageFile   string
	ImageURL    string
}

// NewProject builds a create payload.
func (f ProjectForm) NewProject() (data.NewProject, error) {
	var out data.NewProject
	out.Title = strings.TrimSpace(f.Title)
	out.Description = strings.TrimSpace(f.Description)

	c, err := ParseCategory(f.Category)
	if err != nil {
		return out, err
	}
	out.Category = c

	if f.Position != "" {
		if out.ObjectPosition, err = ParsePosition(f.Position); err != nil {
			return out, err
		}
	}
	if out.ImageURL, err = f.image(); err != nil {
		return out, err
	}
	return out, data.Validate(out)
}

// Patch builds an edit payload holding only the fields changed reports.
// Field names are title, description, category, position, image and
// image-url.
func (f ProjectForm) Patch(changed func(field string) bool) (data.ProjectPatch, error) {
	var p data.ProjectPatch
	if changed("title") {
		v := strings.TrimSpace(f.Title)
		p.Title = &v
	}
	if changed("description") {
		v := strings.TrimSpace(f.Description)
		p.Description = &v
	}
	if changed("category") {
		c, err := ParseCategory(f.Category)
		if err != nil {
			return p, err
		}
		p.Category = &c
	}
	if changed("position") {
		pos, err := ParsePosition(f.Position)
		if err != nil {
			return p, err
		}
		p.ObjectPosition = &pos
	}
	if changed("image") || changed("image-url") {
		img, err := f.image()
		if err != nil {
			return p, err
		}
		p.ImageURL = &img
	}
	return p, data.Validate(p)
}

func (f ProjectForm) image() (string, error) {
	if f.ImageFile != "" {
		uri, err := imaging.PrepareFile(f.ImageFile, imaging.ProjectMaxSide)
		return uri, errors.Annotatef(err, "preparing %s", f.ImageFile)
	}
	return strings.TrimSpace(f.ImageURL), nil
}

// AboutImage downscales a profile photo for the aboutImageUrl setting.
func AboutImage(path string) (string, error) {
	uri, err := imaging.PrepareFile(path, imaging.AboutMaxSide)
	return uri, errors.Annotatef(err, "preparing %s", path)
}
