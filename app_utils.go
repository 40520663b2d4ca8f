package main

import (
	"fmt"
	"io"

	"github.com/gurbos/gcd/config"
	ds "github.com/gurbos/gcd/datastore"
	"github.com/gurbos/gcd/importer"
	"github.com/spf13/pflag"
)

type cmd_flags struct {
	params  map[string]string
	pages   int
	backend string
	migrate bool
}

func initCmdFlags() *cmd_flags {
	var flags cmd_flags
	pflag.StringToStringVarP(&flags.params, "param", "p", nil, "Catalog listing query parameter as key=value (repeatable)")
	pflag.IntVarP(&flags.pages, "pages", "n", 0, "Number of listing pages to import, starting at the page parameter")
	pflag.StringVarP(&flags.backend, "backend", "b", "", "Where records are written: api or postgres")
	pflag.BoolVarP(&flags.migrate, "migrate", "", false, "Apply database migrations before importing (postgres backend)")
	pflag.Parse()
	return &flags
}

// applyFlags lets command line flags win over the environment.
func applyFlags(cfg *config.Config, flags *cmd_flags) error {
	if flags.pages > 0 {
		cfg.Import.Pages = flags.pages
	}
	if flags.backend != "" {
		cfg.CMS.Backend = flags.backend
	}
	return cfg.Validate()
}

func printSummary(w io.Writer, report *importer.Report) {
	fmt.Fprintf(w, "%-12s %d\n", "created:", len(report.Created()))
	fmt.Fprintf(w, "%-12s %d\n", "skipped:", len(report.Skipped()))
	for _, kind := range ds.TaxonomyKinds {
		fmt.Fprintf(w, "%-12s %d\n", kind.Plural()+":", report.TaxonomyCreated(kind))
	}
	failures := report.Failures()
	fmt.Fprintf(w, "%-12s %d\n", "failures:", len(failures))
	for _, f := range failures {
		fmt.Fprintf(w, "  %-10s %s: %v\n", f.Stage, f.Subject, f.Err)
		for field, msgs := range f.ValidationErrors {
			for _, msg := range msgs {
				fmt.Fprintf(w, "  %-10s   %s: %s\n", "", field, msg)
			}
		}
	}
}
