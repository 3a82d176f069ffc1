// Package i18n resolves the operator's language and hands out message
// printers backed by the embedded catalogs.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/templatedesk/internal/platform/i18n/catalog"
)

var supportedTags = []language.Tag{
	language.MustParse(catalog.BaseLocale),
	language.MustParse("pt-BR"),
}

var tagMatcher = language.NewMatcher(supportedTags)

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Default returns the default language tag.
func Default() language.Tag {
	return supportedTags[0]
}

// ResolveTag matches a preference such as "pt", "pt-BR" or an
// Accept-Language value against the supported tags.
func ResolveTag(preference string) language.Tag {
	preference = strings.TrimSpace(preference)
	if preference == "" {
		return Default()
	}
	tags, _, err := language.ParseAcceptLanguage(preference)
	if err != nil || len(tags) == 0 {
		return Default()
	}
	_, index, confidence := tagMatcher.Match(tags...)
	if confidence == language.No {
		return Default()
	}
	return supportedTags[index]
}

// Printer returns a message printer for the supplied tag. The embedded
// catalogs are registered before the first printer is created.
func Printer(tag language.Tag) *message.Printer {
	_ = catalog.Default()
	return message.NewPrinter(tag)
}
