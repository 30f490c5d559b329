// Package i18n defines the languages the todo service can render.
package i18n

import (
	"strings"

	// Registers catalog messages with x/text/message on import.
	_ "github.com/louisbranch/todos/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
)

var (
	englishUS    = language.MustParse("en-US")
	portugueseBR = language.MustParse("pt-BR")

	supported = []language.Tag{englishUS, portugueseBR}
	matcher   = language.NewMatcher(supported)
)

// SupportedTags returns the supported language tags, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// DefaultTag returns the fallback language.
func DefaultTag() language.Tag {
	return englishUS
}

// ParseTag parses value and reports whether it names a supported language.
// Regional variants collapse onto the supported tag with the same base.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag(), false
	}
	for _, candidate := range supported {
		if candidate == tag {
			return candidate, true
		}
	}
	base, _ := tag.Base()
	for _, candidate := range supported {
		if candidateBase, _ := candidate.Base(); candidateBase == base {
			return candidate, true
		}
	}
	return DefaultTag(), false
}

// MatchTags picks the best supported language for a preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supported[index]
}
