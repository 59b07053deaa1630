package style

import (
	"fmt"
	"slices"
	"strings"
)

// TypeDefinition describes one style type when building a group.
//
// Key is the label the definition was found under (a YAML mapping key, for
// instance). It is informational only: the type is stored under Code.
type TypeDefinition struct {
	Key       string
	Name      string
	Code      string
	Variables []Variable
}

// StyleGroup is a named set of style types rendered as one block of CSS.
type StyleGroup struct {
	Name string
	Code string

	order []string
	types map[string]*StyleType
}

// NewStyleGroup builds a group from defs in order, keying each type by its
// own Code.
func NewStyleGroup(name, code string, defs []TypeDefinition) *StyleGroup {
	g := &StyleGroup{
		Name:  name,
		Code:  code,
		types: make(map[string]*StyleType, len(defs)),
	}
	for _, def := range defs {
		g.Create(def.Name, def.Code, def.Variables)
	}
	return g
}

// GetAll returns the group's style types in insertion order.
func (g *StyleGroup) GetAll() []*StyleType {
	out := make([]*StyleType, 0, len(g.order))
	for _, code := range g.order {
		out = append(out, g.types[code])
	}
	return out
}

// Get returns the style type stored at typeCode.
func (g *StyleGroup) Get(typeCode string) (*StyleType, bool) {
	st, ok := g.types[typeCode]
	return st, ok
}

// Create stores a new style type at code, replacing any existing one.
func (g *StyleGroup) Create(name, code string, vars []Variable) *StyleType {
	if g.types == nil {
		g.types = make(map[string]*StyleType)
	}
	if _, exists := g.types[code]; !exists {
		g.order = append(g.order, code)
	}
	st := NewStyleType(name, code, vars)
	g.types[code] = st
	return st
}

// Delete removes the style type at typeCode, if any.
func (g *StyleGroup) Delete(typeCode string) {
	if _, ok := g.types[typeCode]; !ok {
		return
	}
	delete(g.types, typeCode)
	g.order = slices.DeleteFunc(g.order, func(c string) bool { return c == typeCode })
}

// Parcel wraps body in a rule selecting elements whose data-theme-<group>
// attribute equals typeCode. Neither code is escaped.
func (g *StyleGroup) Parcel(typeCode, body string) string {
	return "*[ data-theme-" + g.Code + " = '" + typeCode + "' ] {\n" + body + "\n}"
}

// TypeString renders the declarations of one style type, one per line.
func (g *StyleGroup) TypeString(typeCode string) (string, error) {
	st, ok := g.types[typeCode]
	if !ok {
		return "", fmt.Errorf("style type %q in group %q: %w", typeCode, g.Code, ErrNotFound)
	}
	return declarations(st), nil
}

// String renders every style type of the group, separated by a blank line.
func (g *StyleGroup) String() string {
	blocks := make([]string, 0, len(g.order))
	for _, st := range g.GetAll() {
		blocks = append(blocks, g.Parcel(st.Code, declarations(st)))
	}
	return strings.Join(blocks, "\n\n")
}

func declarations(st *StyleType) string {
	vars := st.GetAll()
	lines := make([]string, 0, len(vars))
	for _, v := range vars {
		lines = append(lines, v.Code+": "+v.Value+";")
	}
	return strings.Join(lines, "\n")
}
