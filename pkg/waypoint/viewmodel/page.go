package viewmodel

import "github.com/BrandonKowalski/waypoint/pkg/waypoint/catalog"

// Titled is implemented by every screen input in this package.
type Titled interface {
	Title() string
}

// Page is the input of screens that only show a heading.
type Page struct {
	title    string
	subtitle string
}

// NewPage creates a static page.
func NewPage(title, subtitle string) *Page {
	return &Page{title: title, subtitle: subtitle}
}

func (p *Page) Title() string { return p.title }

func (p *Page) Subtitle() string { return p.subtitle }

func (p *Page) String() string {
	if p.subtitle == "" {
		return p.title
	}
	return p.title + ": " + p.subtitle
}

// ReviewsPage is the reviews screen for p.
func ReviewsPage(texts *Texts, p catalog.Product) *Page {
	return NewPage(texts.Title(MsgReviewsTitle), p.Name+" · "+texts.ReviewCount(p.ReviewCount))
}
