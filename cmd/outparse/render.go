package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/outparse/template"
)

func newRenderCmd() *cobra.Command {
	var tmpl string

	cmd := &cobra.Command{
		Use:   "render NAME=VALUE...",
		Short: "Fill a template with values",
		Long: `Render writes the template with each placeholder replaced by its value, the
reverse of extract. Discard placeholders render empty. Useful for producing
sample inputs for a template.`,
		Example: `  outparse render -t "x={x}, y={y}" x=512 y=123`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make(map[string]string, len(args))
			for _, arg := range args {
				name, value, ok := strings.Cut(arg, "=")
				if !ok || name == "" {
					return fmt.Errorf("invalid value %q (want NAME=VALUE)", arg)
				}
				values[name] = value
			}

			out, err := template.Compile(tmpl).Render(values)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&tmpl, "template", "t", "", "Template text (required)")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}
