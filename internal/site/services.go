package site

import (
	"strings"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
)

// serviceCategories maps the default service ids to gallery categories. It
// is consulted only when the title says nothing.
var serviceCategories = map[string]data.Category{
	"s1": data.CategoryThumbnail,
	"s2": data.CategoryLogoDesign,
	"s3": data.CategoryBranding,
	"s4": data.CategorySocialMedia,
	"s5": data.CategoryPackaging,
	"s6": data.CategoryUIUX,
}

// serviceKeywords is tried in order against service titles.
var serviceKeywords = []struct {
	keyword  string
	category data.Category
}{
	{"thumbnail", data.CategoryThumbnail},
	{"logo", data.CategoryLogoDesign},
	{"brand", data.CategoryBranding},
	{"social", data.CategorySocialMedia},
	{"packag", data.CategoryPackaging},
	{"ui/ux", data.CategoryUIUX},
	{"user experience", data.CategoryUIUX},
}

// ServiceCategory returns the gallery category a service tile filters to.
// An exact category title wins over title keywords, which win over the
// default id table, so a retitled service follows its new title. ok is
// false when nothing matched.
func ServiceCategory(s data.Service) (c data.Category, ok bool) {
	title := strings.ToLower(strings.TrimSpace(s.Title))
	if title != "" {
		for _, c := range data.Categories {
			if strings.ToLower(string(c)) == title {
				return c, true
			}
		}
		for _, kw := range serviceKeywords {
			if strings.Contains(title, kw.keyword) {
				return kw.category, true
			}
		}
	}
	c, ok = serviceCategories[strings.TrimSpace(s.ID)]
	return c, ok
}

// ServiceTile is a service card linking to its gallery filter.
type ServiceTile struct {
	data.Service
	Category data.Category
	Href     string
}

func serviceTiles(services []data.Service) []ServiceTile {
	out := make([]ServiceTile, 0, len(services))
	for _, s := range services {
		c, ok := ServiceCategory(s)
		href := FilterHref(FilterAll)
		if ok {
			href = FilterHref(string(c))
		}
		out = append(out, ServiceTile{Service: s, Category: c, Href: href})
	}
	return out
}
