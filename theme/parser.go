package theme

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"cssvars/style"
)

// ParseDefinition parses a YAML group definition. Mapping order is kept for
// both types and variables. Entries are keyed by their own code; when an
// entry has no code the mapping key is used instead. fallbackCode names the
// group when the document has no code.
func ParseDefinition(data []byte, fallbackCode string) (GroupDefinition, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return GroupDefinition{}, fmt.Errorf("parse definition: %w", err)
	}

	def := GroupDefinition{Code: fallbackCode}
	if len(doc.Content) == 0 {
		return def, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return GroupDefinition{}, fmt.Errorf("parse definition: line %d: expected a mapping", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "name":
			def.Name = val.Value
		case "code":
			if val.Value != "" {
				def.Code = val.Value
			}
		case "types":
			types, err := parseTypes(val)
			if err != nil {
				return GroupDefinition{}, err
			}
			def.Types = types
		}
	}

	if def.Name == "" {
		def.Name = def.Code
	}
	return def, nil
}

func parseTypes(node *yaml.Node) ([]style.TypeDefinition, error) {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse types: line %d: expected a mapping", node.Line)
	}

	types := make([]style.TypeDefinition, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]

		var entry typeEntry
		if err := val.Decode(&entry); err != nil {
			return nil, fmt.Errorf("parse type %q: %w", key.Value, err)
		}
		vars, err := parseVariables(&entry.Variables)
		if err != nil {
			return nil, fmt.Errorf("parse type %q: %w", key.Value, err)
		}

		code := entry.Code
		if code == "" {
			code = key.Value
		}
		types = append(types, style.TypeDefinition{
			Key:       key.Value,
			Name:      entry.Name,
			Code:      code,
			Variables: vars,
		})
	}
	return types, nil
}

func parseVariables(node *yaml.Node) ([]style.Variable, error) {
	if node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null") {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse variables: line %d: expected a mapping", node.Line)
	}

	vars := make([]style.Variable, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]

		var v style.Variable
		if val.Kind == yaml.ScalarNode {
			// Shorthand: "--text-color: '#000'". An unquoted #000 is a
			// comment and leaves the scalar null.
			if val.ShortTag() == "!!null" {
				return nil, fmt.Errorf("parse variable %q: line %d: missing value (quote values starting with #)", key.Value, key.Line)
			}
			v = style.Variable{Value: val.Value}
		} else if err := val.Decode(&v); err != nil {
			return nil, fmt.Errorf("parse variable %q: %w", key.Value, err)
		}
		if v.Code == "" {
			v.Code = key.Value
		}
		if v.Name == "" {
			v.Name = v.Code
		}
		vars = append(vars, v)
	}
	return vars, nil
}

// LoadDefinitions parses every .yaml/.yml file at the root of fsys, in
// file name order.
func LoadDefinitions(fsys fs.FS) ([]GroupDefinition, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read definitions directory: %w", err)
	}

	var defs []GroupDefinition
	for _, entry := range entries {
		if entry.IsDir() || !isDefinitionFile(entry.Name()) {
			continue
		}

		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read definition %s: %w", entry.Name(), err)
		}

		def, err := ParseDefinition(data, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		def.Source = entry.Name()
		defs = append(defs, def)
	}
	return defs, nil
}

// LoadSources loads definitions from each source in turn. A group defined
// again by a later source replaces the earlier one in place.
func LoadSources(sources ...fs.FS) ([]GroupDefinition, error) {
	var merged []GroupDefinition
	index := make(map[string]int)

	for _, src := range sources {
		if src == nil {
			continue
		}
		defs, err := LoadDefinitions(src)
		if err != nil {
			return nil, err
		}
		for _, def := range defs {
			if i, ok := index[def.Code]; ok {
				merged[i] = def
				continue
			}
			index[def.Code] = len(merged)
			merged = append(merged, def)
		}
	}
	return merged, nil
}

func isDefinitionFile(name string) bool {
	ext := path.Ext(name)
	return ext == ".yaml" || ext == ".yml"
}
