package theme

import (
	"gopkg.in/yaml.v3"

	"cssvars/style"
)

// GroupDefinition is the parsed form of one definition file.
type GroupDefinition struct {
	Name   string
	Code   string
	Source string
	Types  []style.TypeDefinition
}

// Build creates a fresh style group from the definition.
func (d GroupDefinition) Build() *style.StyleGroup {
	return style.NewStyleGroup(d.Name, d.Code, d.Types)
}

// typeEntry is the YAML shape of a style type. Variables stay a raw node so
// their mapping order survives decoding.
type typeEntry struct {
	Name      string    `yaml:"name"`
	Code      string    `yaml:"code"`
	Variables yaml.Node `yaml:"variables"`
}
