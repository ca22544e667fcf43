package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/outparse/catalog"
)

// Output formats.
const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

// recordOutput is the serialized form of a catalog.Record.
type recordOutput struct {
	Template string         `json:"template" yaml:"template"`
	Values   map[string]any `json:"values" yaml:"values"`
}

// recordWriter prints records in one format.
type recordWriter struct {
	format string
	w      io.Writer
	yaml   *yaml.Encoder
}

func newRecordWriter(w io.Writer, format string) (*recordWriter, error) {
	rw := &recordWriter{format: format, w: w}
	switch format {
	case formatJSON, formatText:
	case formatYAML:
		rw.yaml = yaml.NewEncoder(w)
		rw.yaml.SetIndent(2)
	default:
		return nil, fmt.Errorf("unknown output format %q (want json, yaml or text)", format)
	}
	return rw, nil
}

// Write prints one record.
func (rw *recordWriter) Write(r catalog.Record) error {
	switch rw.format {
	case formatYAML:
		return rw.yaml.Encode(recordOutput{Template: r.Template, Values: r.Map()})
	case formatText:
		parts := make([]string, len(r.Fields))
		for i, name := range r.Fields {
			parts[i] = fmt.Sprintf("%s=%v", name, r.Values[i])
		}
		_, err := fmt.Fprintf(rw.w, "%s\t%s\n", r.Template, strings.Join(parts, " "))
		return err
	default:
		data, err := json.Marshal(recordOutput{Template: r.Template, Values: r.Map()})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(rw.w, "%s\n", data)
		return err
	}
}

// Close flushes buffered output.
func (rw *recordWriter) Close() error {
	if rw.yaml != nil {
		return rw.yaml.Close()
	}
	return nil
}
