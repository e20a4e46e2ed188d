package site

import (
	"html/template"
	"strings"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

// Heading is a section title whose last word is set in the accent colour.
type Heading struct {
	Lead   string
	Accent string
}

// SplitHeading separates the last word of s. A single word is all accent.
func SplitHeading(s string) Heading {
	s = strings.TrimSpace(s)
	i := strings.LastIndexAny(s, " \t\n")
	if i < 0 {
		return Heading{Accent: s}
	}
	return Heading{Lead: strings.TrimSpace(s[:i]), Accent: s[i+1:]}
}

// SocialLink is one footer profile link.
type SocialLink struct {
	Label string
	Href  string
}

// ContactState is the outcome of the last contact form post.
type ContactState struct {
	Sent  bool
	Error string
}

// ContactSuccess is shown after a message is accepted.
const ContactSuccess = "Message received! I'll get back to you shortly."

// Page is everything the public page template renders.
type Page struct {
	Settings     data.SiteSettings
	AboutHeading Heading
	AboutImage   template.URL
	Contact      Heading
	MailtoHref   template.URL
	Services     []ServiceTile
	Filter       string
	Filters      []FilterTab
	Tiles        []Tile
	Social       []SocialLink
	ContactState ContactState
	SuccessText  string
}

// BuildPage composes the page from merged settings and the project list.
// Projects are expected newest first and keep that order.
func BuildPage(s data.SiteSettings, projects []data.Project, filter string, cs ContactState) Page {
	filter = ParseFilter(filter)
	shown := FilterProjects(projects, filter)
	tiles := make([]Tile, 0, len(shown))
	for _, p := range shown {
		tiles = append(tiles, newTile(p))
	}

	var social []SocialLink
	if sl := s.SocialLinks; sl != nil {
		for _, l := range []SocialLink{
			{"Instagram", sl.Instagram},
			{"X", sl.X},
			{"Discord", sl.Discord},
			{"LinkedIn", sl.LinkedIn},
		} {
			if l.Href == "" {
				l.Href = data.PlaceholderLink
			}
			social = append(social, l)
		}
	}

	var mailto template.URL
	if s.ContactEmail != "" {
		mailto = template.URL("mailto:" + s.ContactEmail)
	}

	return Page{
		Settings:     s,
		AboutHeading: SplitHeading(s.AboutHeading),
		AboutImage:   imageURL(s.AboutImageURL),
		Contact:      SplitHeading(s.ContactHeading),
		MailtoHref:   mailto,
		Services:     serviceTiles(s.Services),
		Filter:       filter,
		Filters:      filterTabs(filter),
		Tiles:        tiles,
		Social:       social,
		ContactState: cs,
		SuccessText:  ContactSuccess,
	}
}
