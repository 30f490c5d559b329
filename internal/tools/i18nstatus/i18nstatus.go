// Package i18nstatus reports translation coverage of the message catalogs.
package i18nstatus

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	i18ncatalog "github.com/louisbranch/todos/internal/platform/i18n/catalog"
)

// Report is the coverage of every locale against the base locale.
type Report struct {
	BaseLocale string         `json:"base_locale"`
	Locales    []LocaleStatus `json:"locales"`
}

// LocaleStatus is the coverage of one locale.
type LocaleStatus struct {
	Locale      string            `json:"locale"`
	BaseKeys    int               `json:"base_keys"`
	Translated  int               `json:"translated"`
	Completion  float64           `json:"completion"`
	Namespaces  []NamespaceStatus `json:"namespaces"`
	MissingKeys []string          `json:"missing_keys"`
}

// NamespaceStatus is the coverage of one namespace within a locale.
type NamespaceStatus struct {
	Namespace  string  `json:"namespace"`
	BaseKeys   int     `json:"base_keys"`
	Translated int     `json:"translated"`
	Completion float64 `json:"completion"`
}

// Build compares every locale in bundle with baseLocale.
func Build(bundle *i18ncatalog.Bundle, baseLocale string) (Report, error) {
	if !bundle.HasLocale(baseLocale) {
		return Report{}, fmt.Errorf("base locale %q is missing from catalogs", baseLocale)
	}
	baseMessages := bundle.LocaleMessages(baseLocale)
	baseNamespaces := bundle.Namespaces(baseLocale)

	rep := Report{BaseLocale: baseLocale}
	for _, locale := range bundle.Locales() {
		missing := missingKeys(baseMessages, bundle.LocaleMessages(locale))
		translated := len(baseMessages) - len(missing)

		namespaces := make([]NamespaceStatus, 0, len(baseNamespaces))
		for _, namespace := range baseNamespaces {
			baseNS := bundle.NamespaceMessages(baseLocale, namespace)
			nsTranslated := len(baseNS) - len(missingKeys(baseNS, bundle.NamespaceMessages(locale, namespace)))
			namespaces = append(namespaces, NamespaceStatus{
				Namespace:  namespace,
				BaseKeys:   len(baseNS),
				Translated: nsTranslated,
				Completion: percent(nsTranslated, len(baseNS)),
			})
		}

		rep.Locales = append(rep.Locales, LocaleStatus{
			Locale:      locale,
			BaseKeys:    len(baseMessages),
			Translated:  translated,
			Completion:  percent(translated, len(baseMessages)),
			Namespaces:  namespaces,
			MissingKeys: missing,
		})
	}
	return rep, nil
}

// WriteMarkdown renders rep as a markdown document.
func WriteMarkdown(w io.Writer, rep Report) error {
	var b strings.Builder
	b.WriteString("# I18n Status\n\n")
	fmt.Fprintf(&b, "Base locale: `%s`.\n\n", rep.BaseLocale)
	b.WriteString("| Locale | Base Keys | Translated | Completion |\n")
	b.WriteString("| --- | ---: | ---: | ---: |\n")
	for _, locale := range rep.Locales {
		fmt.Fprintf(&b, "| `%s` | %d | %d | %.1f%% |\n", locale.Locale, locale.BaseKeys, locale.Translated, locale.Completion)
	}

	for _, locale := range rep.Locales {
		fmt.Fprintf(&b, "\n## Locale: `%s`\n\n", locale.Locale)
		b.WriteString("| Namespace | Base Keys | Translated | Completion |\n")
		b.WriteString("| --- | ---: | ---: | ---: |\n")
		for _, ns := range locale.Namespaces {
			fmt.Fprintf(&b, "| `%s` | %d | %d | %.1f%% |\n", ns.Namespace, ns.BaseKeys, ns.Translated, ns.Completion)
		}
		if len(locale.MissingKeys) > 0 {
			b.WriteString("\n### Missing Keys\n\n")
			for _, key := range locale.MissingKeys {
				fmt.Fprintf(&b, "- `%s`\n", key)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func missingKeys(base, locale map[string]string) []string {
	var missing []string
	for _, key := range slices.Sorted(maps.Keys(base)) {
		if _, ok := locale[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

func percent(part, total int) float64 {
	if total == 0 {
		return 100
	}
	return float64(part) * 100 / float64(total)
}
