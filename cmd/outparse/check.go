package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/outparse/catalog"
	"github.com/randalmurphal/outparse/convert"
	"github.com/randalmurphal/outparse/truncate"
)

// sourceRunes bounds the template column printed by check.
const sourceRunes = 60

func newCheckCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate and compile a catalog",
		Long: `Check decodes the catalog, validates its entries and binds every template
to its field types. All problems are reported together. Template warnings,
such as a placeholder name that repeats, are logged but do not fail the
check.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, path)
		},
	}

	cmd.Flags().StringVarP(&path, "catalog", "c", "", "Catalog file: .yaml, .yml, .toml or .json (required)")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func runCheck(cmd *cobra.Command, path string) error {
	set, err := catalog.LoadSet(path, nil)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, name := range set.Names() {
		plan, _ := set.Plan(name)
		var fields []string
		for _, s := range plan.Steps() {
			if s.Discard() {
				continue
			}
			typ := s.Elem.Name()
			if s.List {
				typ = convert.ListPrefix + typ
			}
			fields = append(fields, s.Name+":"+typ)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, truncate.ToLength(plan.Template().Source, sourceRunes), strings.Join(fields, " "))
	}
	fmt.Fprintf(w, "ok: %d templates\n", set.Len())
	return nil
}
