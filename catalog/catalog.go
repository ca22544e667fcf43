package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies a catalog file encoding.
type Format string

// Supported formats.
const (
	YAML Format = "yaml"
	TOML Format = "toml"
	JSON Format = "json"
)

// FormatFor selects the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: unsupported file extension %q", ErrFormat, filepath.Ext(path))
	}
}

// Catalog is the decoded content of a catalog file.
type Catalog struct {
	Version   string  `yaml:"version,omitempty" toml:"version,omitempty" json:"version,omitempty" jsonschema:"description=Catalog format version"`
	Templates []Entry `yaml:"templates" toml:"templates" json:"templates" jsonschema:"description=Named extraction templates"`
}

// Entry is one named template.
type Entry struct {
	Name        string  `yaml:"name" toml:"name" json:"name" jsonschema:"minLength=1"`
	Template    string  `yaml:"template" toml:"template" json:"template" jsonschema:"description=Template text with {name} and {name:sep} placeholders"`
	Description string  `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
	Fields      []Field `yaml:"fields,omitempty" toml:"fields,omitempty" json:"fields,omitempty"`
}

// Field declares the type of one placeholder.
type Field struct {
	Name string `yaml:"name" toml:"name" json:"name"`
	Type string `yaml:"type,omitempty" toml:"type,omitempty" json:"type,omitempty"`
}

// DefaultType is the field type used when none is given.
const DefaultType = "string"

// ParseField parses the "name:type" shorthand. A bare name is a string.
func ParseField(s string) (Field, error) {
	name, typ, _ := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	typ = strings.TrimSpace(typ)
	if name == "" {
		return Field{}, fmt.Errorf("%w: field %q has no name", ErrInvalid, s)
	}
	if typ == "" {
		typ = DefaultType
	}
	return Field{Name: name, Type: typ}, nil
}

// TypeName returns the field's type, defaulting to DefaultType.
func (f Field) TypeName() string {
	if f.Type == "" {
		return DefaultType
	}
	return f.Type
}

// String returns the field in shorthand form.
func (f Field) String() string {
	return f.Name + ":" + f.TypeName()
}

// fieldMapping decodes the mapping form without recursing into Field's
// unmarshalers.
type fieldMapping Field

// UnmarshalYAML accepts either the shorthand string or a mapping.
func (f *Field) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		parsed, err := ParseField(s)
		if err != nil {
			return err
		}
		*f = parsed
		return nil
	}

	var m fieldMapping
	if err := value.Decode(&m); err != nil {
		return err
	}
	*f = Field(m)
	return nil
}

// UnmarshalJSON accepts either the shorthand string or an object.
func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseField(s)
		if err != nil {
			return err
		}
		*f = parsed
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var m fieldMapping
	if err := dec.Decode(&m); err != nil {
		return err
	}
	*f = Field(m)
	return nil
}

// UnmarshalTOML accepts either the shorthand string or an inline table.
func (f *Field) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case string:
		parsed, err := ParseField(v)
		if err != nil {
			return err
		}
		*f = parsed
		return nil
	case map[string]any:
		var field Field
		for key, val := range v {
			s, ok := val.(string)
			if !ok {
				return fmt.Errorf("field key %q must be a string", key)
			}
			switch key {
			case "name":
				field.Name = s
			case "type":
				field.Type = s
			default:
				return fmt.Errorf("unknown field key %q", key)
			}
		}
		*f = field
		return nil
	default:
		return fmt.Errorf("field must be a string or table, got %T", data)
	}
}

// Load reads and decodes the catalog at path, choosing the format by
// extension, and validates it.
func Load(path string) (*Catalog, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates catalog content.
func Parse(data []byte, format Format) (*Catalog, error) {
	c := &Catalog{}
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: yaml: %w", ErrFormat, err)
		}
	case TOML:
		if _, err := toml.Decode(string(data), c); err != nil {
			return nil, fmt.Errorf("%w: toml: %w", ErrFormat, err)
		}
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: json: %w", ErrFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrFormat, format)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that every entry has a name and template, names are
// unique, and fields are named once.
func (c *Catalog) Validate() error {
	var errs []error
	seen := make(map[string]bool, len(c.Templates))
	for i, e := range c.Templates {
		if e.Name == "" {
			errs = append(errs, fmt.Errorf("%w: template %d has no name", ErrInvalid, i))
			continue
		}
		if seen[e.Name] {
			errs = append(errs, fmt.Errorf("%w: template %q declared twice", ErrInvalid, e.Name))
		}
		seen[e.Name] = true

		if e.Template == "" {
			errs = append(errs, fmt.Errorf("%w: template %q is empty", ErrInvalid, e.Name))
		}

		fields := make(map[string]bool, len(e.Fields))
		for _, f := range e.Fields {
			if f.Name == "" {
				errs = append(errs, fmt.Errorf("%w: template %q has a field with no name", ErrInvalid, e.Name))
				continue
			}
			if fields[f.Name] {
				errs = append(errs, fmt.Errorf("%w: template %q declares field %q twice", ErrInvalid, e.Name, f.Name))
			}
			fields[f.Name] = true
		}
	}
	return errors.Join(errs...)
}

// Lookup returns the entry named name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	for _, e := range c.Templates {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}
