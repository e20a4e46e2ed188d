package data

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/juju/errors"
)

// SocialLinks holds the footer/contact social profile URLs.
type SocialLinks struct {
	Instagram string `json:"instagram" bson:"instagram"`
	X         string `json:"x" bson:"x"`
	Discord   string `json:"discord" bson:"discord"`
	LinkedIn  string `json:"linkedin" bson:"linkedin"`
}

// Stat is one headline figure in the stats strip.
type Stat struct {
	Label string `json:"label" bson:"label"`
	Value string `json:"value" bson:"value"`
}

// Service is one offered service tile.
type Service struct {
	ID          string `json:"id" bson:"id"`
	Number      string `json:"number" bson:"number"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
}

// SiteSettings is the singleton document holding all editable site copy.
// Unset fields are omitted so a partially written document round-trips
// without picking up zero values.
type SiteSettings struct {
	DesignerName     string       `json:"designerName,omitempty" bson:"designerName,omitempty"`
	HeroHeading      string       `json:"heroHeading,omitempty" bson:"heroHeading,omitempty"`
	HeroSubtext      string       `json:"heroSubtext,omitempty" bson:"heroSubtext,omitempty"`
	HeroViewWorkText string       `json:"heroViewWorkText,omitempty" bson:"heroViewWorkText,omitempty"`
	HeroContactText  string       `json:"heroContactText,omitempty" bson:"heroContactText,omitempty"`
	AboutHeading     string       `json:"aboutHeading,omitempty" bson:"aboutHeading,omitempty"`
	AboutText        string       `json:"aboutText,omitempty" bson:"aboutText,omitempty"`
	AboutImageURL    string       `json:"aboutImageUrl,omitempty" bson:"aboutImageUrl,omitempty"`
	ContactHeading   string       `json:"contactHeading,omitempty" bson:"contactHeading,omitempty"`
	ContactSubtext   string       `json:"contactSubtext,omitempty" bson:"contactSubtext,omitempty"`
	ContactEmail     string       `json:"contactEmail,omitempty" bson:"contactEmail,omitempty" validate:"omitempty,email"`
	Skills           []string     `json:"skills,omitempty" bson:"skills,omitempty"`
	Services         []Service    `json:"services,omitempty" bson:"services,omitempty"`
	Stats            []Stat       `json:"stats,omitempty" bson:"stats,omitempty"`
	SocialLinks      *SocialLinks `json:"socialLinks,omitempty" bson:"socialLinks,omitempty"`
	FooterText       string       `json:"footerText,omitempty" bson:"footerText,omitempty"`
	FooterCopyright  string       `json:"footerCopyright,omitempty" bson:"footerCopyright,omitempty"`
}

// SettingsFields lists the document's field names as they appear on the
// wire and in the document store.
var SettingsFields = []string{
	"designerName", "heroHeading", "heroSubtext", "heroViewWorkText", "heroContactText",
	"aboutHeading", "aboutText", "aboutImageUrl",
	"contactHeading", "contactSubtext", "contactEmail",
	"skills", "services", "stats", "socialLinks",
	"footerText", "footerCopyright",
}

// PlaceholderLink is shown for social links that were never configured.
const PlaceholderLink = "#"

// DefaultSettings returns the copy shown before an admin has saved anything.
func DefaultSettings() SiteSettings {
	return SiteSettings{
		DesignerName:     "Designer Name",
		HeroHeading:      "Graphic Design Portfolio",
		HeroSubtext:      "Crafting visual stories through strategic branding, minimalist aesthetic, and premium design principles.",
		HeroViewWorkText: "View My Work",
		HeroContactText:  "Get In Touch",
		AboutHeading:     "I turn ideas into impactful visual realities.",
		AboutText:        "I'm a creative and motivated graphic designer with a strong passion for visual storytelling and brand design. I thrive on exploring new challenges and opportunities that push the boundaries of my creativity.",
		ContactHeading:   "Send Me a Message.",
		ContactSubtext:   "Got a vision? Let's make it real. I'm currently available for freelance work and full-time opportunities.",
		ContactEmail:     "hello@example.com",
		Skills:           []string{"Thumbnail Design", "Logo Design", "Branding", "UI/UX Design", "Social Media", "Illustration"},
		SocialLinks: &SocialLinks{
			Instagram: PlaceholderLink,
			X:         PlaceholderLink,
			Discord:   PlaceholderLink,
			LinkedIn:  PlaceholderLink,
		},
		FooterText:      "Thanks For Scrolling!",
		FooterCopyright: "© 2024 Designer Name. All Rights Reserved.",
		Stats: []Stat{
			{Label: "Project Completed", Value: "150+"},
			{Label: "Happy Clients", Value: "98%"},
			{Label: "Years Experience", Value: "04+"},
			{Label: "Design Awards", Value: "12"},
		},
		Services: []Service{
			{ID: "s1", Number: "01", Title: "Thumbnail Design", Description: "Creating high-CTR visuals for YouTube and social media content."},
			{ID: "s2", Number: "02", Title: "Logo Design", Description: "Crafting unique visual identifiers that capture brand essence."},
			{ID: "s3", Number: "03", Title: "Branding Design", Description: "Comprehensive visual systems and brand guidelines."},
			{ID: "s4", Number: "04", Title: "Social Media", Description: "Engaging content optimized for modern social platforms."},
			{ID: "s5", Number: "05", Title: "Packaging Design", Description: "Tactile, functional, and beautiful product wrapping."},
			{ID: "s6", Number: "06", Title: "UI/UX Design", Description: "Intuitive digital experiences focused on user delight."},
		},
	}
}

// WithDefaults merges stored over DefaultSettings field by field. Non-empty
// strings and non-nil slices from stored win; social links merge per link.
func WithDefaults(stored *SiteSettings) SiteSettings {
	out := DefaultSettings()
	if stored == nil {
		return out
	}
	str := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	str(&out.DesignerName, stored.DesignerName)
	str(&out.HeroHeading, stored.HeroHeading)
	str(&out.HeroSubtext, stored.HeroSubtext)
	str(&out.HeroViewWorkText, stored.HeroViewWorkText)
	str(&out.HeroContactText, stored.HeroContactText)
	str(&out.AboutHeading, stored.AboutHeading)
	str(&out.AboutText, stored.AboutText)
	str(&out.AboutImageURL, stored.AboutImageURL)
	str(&out.ContactHeading, stored.ContactHeading)
	str(&out.ContactSubtext, stored.ContactSubtext)
	str(&out.ContactEmail, stored.ContactEmail)
	str(&out.FooterText, stored.FooterText)
	str(&out.FooterCopyright, stored.FooterCopyright)
	if stored.Skills != nil {
		out.Skills = stored.Skills
	}
	if stored.Services != nil {
		out.Services = stored.Services
	}
	if stored.Stats != nil {
		out.Stats = stored.Stats
	}
	if sl := stored.SocialLinks; sl != nil {
		str(&out.SocialLinks.Instagram, sl.Instagram)
		str(&out.SocialLinks.X, sl.X)
		str(&out.SocialLinks.Discord, sl.Discord)
		str(&out.SocialLinks.LinkedIn, sl.LinkedIn)
	}
	return out
}

// Values returns every field keyed by its wire name, zero values included.
func (s SiteSettings) Values() map[string]any {
	return map[string]any{
		"designerName":     s.DesignerName,
		"heroHeading":      s.HeroHeading,
		"heroSubtext":      s.HeroSubtext,
		"heroViewWorkText": s.HeroViewWorkText,
		"heroContactText":  s.HeroContactText,
		"aboutHeading":     s.AboutHeading,
		"aboutText":        s.AboutText,
		"aboutImageUrl":    s.AboutImageURL,
		"contactHeading":   s.ContactHeading,
		"contactSubtext":   s.ContactSubtext,
		"contactEmail":     s.ContactEmail,
		"skills":           s.Skills,
		"services":         s.Services,
		"stats":            s.Stats,
		"socialLinks":      s.SocialLinks,
		"footerText":       s.FooterText,
		"footerCopyright":  s.FooterCopyright,
	}
}

// SettingsUpdate is a merge write: only Fields are written, taking their
// values from Values. Fields not named keep their stored value.
type SettingsUpdate struct {
	Values SiteSettings
	Fields []string
}

// Set returns the fields to write keyed by wire name.
func (u SettingsUpdate) Set() map[string]any {
	all := u.Values.Values()
	set := make(map[string]any, len(u.Fields))
	for _, f := range u.Fields {
		set[f] = all[f]
	}
	return set
}

// ParseSettingsUpdate decodes a PUT /settings body. Unknown top-level keys
// are ignored. Services missing an id or number get one assigned.
func ParseSettingsUpdate(body []byte) (SettingsUpdate, error) {
	var present map[string]json.RawMessage
	if err := json.Unmarshal(body, &present); err != nil {
		return SettingsUpdate{}, errors.NewNotValid(nil, "settings body must be a JSON object")
	}
	var u SettingsUpdate
	if err := json.Unmarshal(body, &u.Values); err != nil {
		return SettingsUpdate{}, errors.NotValidf("settings field types")
	}
	for _, f := range SettingsFields {
		if _, ok := present[f]; ok {
			u.Fields = append(u.Fields, f)
		}
	}
	for i := range u.Values.Services {
		svc := &u.Values.Services[i]
		if svc.ID == "" {
			svc.ID = uuid.NewString()
		}
		if svc.Number == "" {
			svc.Number = fmt.Sprintf("%02d", i+1)
		}
	}
	if err := Validate(u.Values); err != nil {
		return SettingsUpdate{}, err
	}
	return u, nil
}

// Apply returns s with the update's fields overwritten.
func (s SiteSettings) Apply(u SettingsUpdate) SiteSettings {
	out := s
	for _, f := range u.Fields {
		v := u.Values
		switch f {
		case "designerName":
			out.DesignerName = v.DesignerName
		case "heroHeading":
			out.HeroHeading = v.HeroHeading
		case "heroSubtext":
			out.HeroSubtext = v.HeroSubtext
		case "heroViewWorkText":
			out.HeroViewWorkText = v.HeroViewWorkText
		case "heroContactText":
			out.HeroContactText = v.HeroContactText
		case "aboutHeading":
			out.AboutHeading = v.AboutHeading
		case "aboutText":
			out.AboutText = v.AboutText
		case "aboutImageUrl":
			out.AboutImageURL = v.AboutImageURL
		case "contactHeading":
			out.ContactHeading = v.ContactHeading
		case "contactSubtext":
			out.ContactSubtext = v.ContactSubtext
		case "contactEmail":
			out.ContactEmail = v.ContactEmail
		case "skills":
			out.Skills = v.Skills
		case "services":
			out.Services = v.Services
		case "stats":
			out.Stats = v.Stats
		case "socialLinks":
			out.SocialLinks = v.SocialLinks
		case "footerText":
			out.FooterText = v.FooterText
		case "footerCopyright":
			out.FooterCopyright = v.FooterCopyright
		}
	}
	return out
}
