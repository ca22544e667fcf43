// Package catalog manages named extraction templates stored in files.
//
// A catalog file lists templates with the type of each field:
//
//	version: "1"
//	templates:
//	  - name: point
//	    template: "x={x}, y={y}"
//	    fields:
//	      - {name: x, type: int}
//	      - y:int
//
// Fields may be written as a mapping or as "name:type" shorthand; a bare
// "name" is a string. List types carry the [] prefix, as in "[]int".
// Placeholders with no declared field are read as strings, or lists of
// strings.
//
// Files are decoded by extension: .yaml and .yml with gopkg.in/yaml.v3,
// .toml with github.com/BurntSushi/toml, and .json with encoding/json.
// Unknown keys are rejected where the decoder supports it.
//
// Compile binds every entry against a convert.Registry and returns a Set.
// A Set is immutable; Watcher keeps one current while the file changes on
// disk.
package catalog
