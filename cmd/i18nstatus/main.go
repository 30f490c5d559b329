// Package main renders translation coverage of the message catalogs.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/louisbranch/todos/internal/platform/config"
	i18ncatalog "github.com/louisbranch/todos/internal/platform/i18n/catalog"
	"github.com/louisbranch/todos/internal/tools/i18nstatus"
)

func main() {
	var baseLocale string
	var out string
	flag.StringVar(&baseLocale, "base-locale", i18ncatalog.BaseLocale, "base locale used as translation source of truth")
	flag.StringVar(&out, "out", "", "markdown output path (default: stdout)")
	flag.Parse()

	rep, err := i18nstatus.Build(i18ncatalog.Default(), baseLocale)
	if err != nil {
		config.Exitf("build i18n report: %v", err)
	}
	if out == "" {
		if err := i18nstatus.WriteMarkdown(os.Stdout, rep); err != nil {
			config.Exitf("write report: %v", err)
		}
		return
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		config.Exitf("mkdir %s: %v", filepath.Dir(out), err)
	}
	f, err := os.Create(out)
	if err != nil {
		config.Exitf("create %s: %v", out, err)
	}
	if err := i18nstatus.WriteMarkdown(f, rep); err != nil {
		_ = f.Close()
		config.Exitf("write report: %v", err)
	}
	if err := f.Close(); err != nil {
		config.Exitf("close %s: %v", out, err)
	}
	fmt.Printf("wrote %s\n", out)
}
