// Package viewmodel holds the presentation logic behind each screen: display
// strings derived from catalog data, and user actions forwarded to a delegate
// (normally the owning coordinator).
package viewmodel

import (
	"embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed locales/*.toml
var localeFS embed.FS

var localeFiles = []string{
	"locales/active.en.toml",
	"locales/active.es.toml",
}

// Message IDs for screen titles and fixed labels.
const (
	MsgHomeTitle     = "HomeTitle"
	MsgProductsTitle = "ProductsTitle"
	MsgReviewsTitle  = "ReviewsTitle"
	MsgProfileTitle  = "ProfileTitle"
	MsgSettingsTitle = "SettingsTitle"
	MsgCartTitle     = "CartTitle"
	MsgNoRatings     = "NoRatings"
	msgReviewCount   = "ReviewCount"
)

// Texts localizes labels and formats numbers for one language.
type Texts struct {
	tag       language.Tag
	localizer *i18n.Localizer
	printer   *message.Printer
}

// NewTexts loads the embedded message files and selects lang, falling back to English.
func NewTexts(lang string) (*Texts, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("viewmodel: language %q: %w", lang, err)
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, name := range localeFiles {
		if _, err := bundle.LoadMessageFileFS(localeFS, name); err != nil {
			return nil, fmt.Errorf("viewmodel: load %s: %w", name, err)
		}
	}

	return &Texts{
		tag:       tag,
		localizer: i18n.NewLocalizer(bundle, tag.String(), language.English.String()),
		printer:   message.NewPrinter(tag),
	}, nil
}

// MustTexts is NewTexts for fixed, known-good language tags.
func MustTexts(lang string) *Texts {
	t, err := NewTexts(lang)
	if err != nil {
		panic(err)
	}
	return t
}

// Language returns the tag texts are rendered in.
func (t *Texts) Language() language.Tag {
	return t.tag
}

// Title returns the localized label for id, or id itself when it is unknown.
func (t *Texts) Title(id string) string {
	s, err := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return id
	}
	return s
}

// Price formats a dollar amount, e.g. "$1,099.00".
func (t *Texts) Price(v float64) string {
	return "$" + t.printer.Sprintf("%.2f", v)
}

// ReviewCount formats a pluralized count, e.g. "1,250 reviews".
func (t *Texts) ReviewCount(n int) string {
	s, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    msgReviewCount,
		PluralCount:  n,
		TemplateData: map[string]any{"Count": t.printer.Sprintf("%d", n)},
	})
	if err != nil {
		return t.printer.Sprintf("%d", n)
	}
	return s
}

// Rating formats a star rating, e.g. "4.8 ★".
func (t *Texts) Rating(r float64) string {
	return t.printer.Sprintf("%.1f ★", r)
}
