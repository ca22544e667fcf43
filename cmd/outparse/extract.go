package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/outparse/catalog"
	"github.com/randalmurphal/outparse/truncate"
)

// previewRunes bounds input lines quoted in log output.
const previewRunes = 80

// extractName names the single template built from flags.
const extractName = "extract"

type extractOptions struct {
	template string
	fields   []string
	tolerant bool
	output   string
	inputs   []string
}

func newExtractCmd() *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract [INPUT...]",
		Short: "Extract values from inputs with one template",
		Long: `Extract reads each INPUT and each line of the --input files, or each stdin
line when neither is given, with the template given by --template. Input
files ending in .gz or .zst are decompressed.

Field types are declared with --field name:type, for example -f x:int or
-f tags:[]string. Placeholders without a field are read as strings.

By default the first input that does not match stops the command with an
error. With --tolerant, inputs that do not match are skipped.`,
		Example: `  outparse extract -t "x={x}, y={y}" -f x:int -f y:int "x=512, y=123"
  outparse extract -t "{ip} {_} {status}" -f ip:addr -f status:int --tolerant -i access.log.gz`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "Template text (required)")
	cmd.Flags().StringArrayVarP(&opts.fields, "field", "f", nil, "Field declaration name:type (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.inputs, "input", "i", nil, "Read lines from FILE; .gz and .zst are decompressed (repeatable)")
	cmd.Flags().BoolVar(&opts.tolerant, "tolerant", false, "Skip inputs that do not match")
	cmd.Flags().StringVarP(&opts.output, "output", "o", formatJSON, "Output format: json, yaml or text")
	_ = cmd.MarkFlagRequired("template")

	return cmd
}

// fieldsFor parses the --field flags.
func fieldsFor(declared []string) ([]catalog.Field, error) {
	fields := make([]catalog.Field, 0, len(declared))
	for _, d := range declared {
		f, err := catalog.ParseField(d)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func runExtract(cmd *cobra.Command, opts *extractOptions, args []string) error {
	fields, err := fieldsFor(opts.fields)
	if err != nil {
		return err
	}

	c := &catalog.Catalog{Templates: []catalog.Entry{{
		Name:     extractName,
		Template: opts.template,
		Fields:   fields,
	}}}
	if err := c.Validate(); err != nil {
		return err
	}
	set, err := c.Compile(nil)
	if err != nil {
		return err
	}

	out, err := newRecordWriter(cmd.OutOrStdout(), opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	var read, skipped int
	err = inputSource{args: args, files: opts.inputs, stdin: cmd.InOrStdin()}.each(func(input string) error {
		read++
		if opts.tolerant {
			r, ok := set.TryExtract(extractName, input)
			if !ok {
				skipped++
				slog.Debug("input skipped",
					slog.Int("input", read),
					slog.String("preview", truncate.ToMiddle(input, previewRunes)))
				return nil
			}
			return out.Write(r)
		}

		r, err := set.Extract(extractName, input)
		if err != nil {
			return fmt.Errorf("input %d: %w", read, err)
		}
		return out.Write(r)
	})

	slog.Debug("extract finished",
		slog.Int("inputs", read),
		slog.Int("skipped", skipped))
	return err
}
