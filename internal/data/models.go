package data

import "github.com/PaulBabatuyi/portfolio-cms/internal/normalize"

// Category is one of the fixed portfolio categories.
type Category string

const (
	CategoryThumbnail   Category = "Thumbnail"
	CategoryLogoDesign  Category = "Logo Design"
	CategoryBranding    Category = "Branding"
	CategorySocialMedia Category = "Social Media"
	CategoryPackaging   Category = "Packaging"
	CategoryUIUX        Category = "UI/UX"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryThumbnail,
	CategoryLogoDesign,
	CategoryBranding,
	CategorySocialMedia,
	CategoryPackaging,
	CategoryUIUX,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Position is a focal point anchor applied when an image is cropped for display.
type Position string

const (
	PositionTopLeft      Position = "top left"
	PositionTopCenter    Position = "top center"
	PositionTopRight     Position = "top right"
	PositionCenterLeft   Position = "center left"
	PositionCenter       Position = "center"
	PositionCenterRight  Position = "center right"
	PositionBottomLeft   Position = "bottom left"
	PositionBottomCenter Position = "bottom center"
	PositionBottomRight  Position = "bottom right"
)

// Positions lists the nine anchors row by row, top to bottom.
var Positions = []Position{
	PositionTopLeft, PositionTopCenter, PositionTopRight,
	PositionCenterLeft, PositionCenter, PositionCenterRight,
	PositionBottomLeft, PositionBottomCenter, PositionBottomRight,
}

// Valid reports whether p is one of Positions.
func (p Position) Valid() bool {
	for _, known := range Positions {
		if p == known {
			return true
		}
	}
	return false
}

// OrDefault returns p, or PositionCenter when p is empty.
func (p Position) OrDefault() Position {
	if p == "" {
		return PositionCenter
	}
	return p
}

// Project is a portfolio entry. CreatedAt is epoch milliseconds.
type Project struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       Category `json:"category"`
	ImageURL       string   `json:"imageUrl"`
	ObjectPosition Position `json:"objectPosition"`
	CreatedAt      int64    `json:"createdAt"`
}

// NewProject is the admin form payload for POST /projects.
type NewProject struct {
	Title          string   `json:"title" validate:"max=300"`
	Description    string   `json:"description" validate:"max=10000"`
	Category       Category `json:"category" validate:"required,category"`
	ImageURL       string   `json:"imageUrl" validate:"required,notblank"`
	ObjectPosition Position `json:"objectPosition" validate:"omitempty,position"`
}

// ProjectPatch is a partial update; nil fields are left untouched.
type ProjectPatch struct {
	Title          *string   `json:"title,omitempty" validate:"omitempty,max=300"`
	Description    *string   `json:"description,omitempty" validate:"omitempty,max=10000"`
	Category       *Category `json:"category,omitempty" validate:"omitempty,category"`
	ImageURL       *string   `json:"imageUrl,omitempty"`
	ObjectPosition *Position `json:"objectPosition,omitempty" validate:"omitempty,position"`
}

// Empty reports whether the patch sets nothing.
func (p ProjectPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.ImageURL == nil && p.ObjectPosition == nil
}

// Message is a contact form submission. Date is epoch milliseconds stamped by the server.
type Message struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Date    int64  `json:"date"`
}

// NewMessage is the visitor payload for POST /messages.
type NewMessage struct {
	Name    string `json:"name" validate:"required,notblank,max=200"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Message string `json:"message" validate:"required,notblank,max=10000"`
}

// Normalize returns the message in its stored form: names collapsed,
// email lower-cased, text trimmed of control characters.
func (m NewMessage) Normalize() NewMessage {
	return NewMessage{
		Name:    normalize.Name(m.Name),
		Email:   normalize.Email(m.Email),
		Message: normalize.Text(m.Message),
	}
}

// BatchDeleteResult reports the outcome of a batch delete. Missing holds ids
// that were requested but did not exist (or were malformed).
type BatchDeleteResult struct {
	Deleted int64    `json:"deleted"`
	Missing []string `json:"missing"`
}
