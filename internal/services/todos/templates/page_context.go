package templates

import todoi18n "github.com/louisbranch/todos/internal/services/todos/platform/i18n"

// LanguageOption represents a supported language link in the page header.
type LanguageOption = todoi18n.LanguageOption

// Notice is a rendered flash message.
type Notice struct {
	Kind    string
	Message string
}

// PageContext provides shared layout context for todo pages.
type PageContext struct {
	Lang      string
	Loc       Localizer
	Languages []LanguageOption
	Notice    *Notice
}
