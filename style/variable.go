package style

import (
	"fmt"
	"slices"
)

// Variable is a single CSS custom property.
type Variable struct {
	Name  string `json:"name" yaml:"name"`
	Code  string `json:"code" yaml:"code"`
	Value string `json:"value" yaml:"value"`
}

// VariableTable maps variable codes to variables, remembering insertion order.
type VariableTable struct {
	order []string
	vars  map[string]*Variable
}

// NewVariableTable builds a table from vars, keying each by its own Code.
// Later entries with a repeated code replace earlier ones.
func NewVariableTable(vars []Variable) *VariableTable {
	t := &VariableTable{vars: make(map[string]*Variable, len(vars))}
	for _, v := range vars {
		t.Create(v.Name, v.Code, v.Value)
	}
	return t
}

// GetAll returns copies of all variables in insertion order.
func (t *VariableTable) GetAll() []Variable {
	out := make([]Variable, 0, len(t.order))
	for _, code := range t.order {
		out = append(out, *t.vars[code])
	}
	return out
}

// Get returns the variable stored at code.
func (t *VariableTable) Get(code string) (Variable, bool) {
	v, ok := t.vars[code]
	if !ok {
		return Variable{}, false
	}
	return *v, true
}

// Create inserts a variable, replacing any record already stored at code.
// A replaced record keeps its position.
func (t *VariableTable) Create(name, code, value string) {
	if t.vars == nil {
		t.vars = make(map[string]*Variable)
	}
	if _, exists := t.vars[code]; !exists {
		t.order = append(t.order, code)
	}
	t.vars[code] = &Variable{Name: name, Code: code, Value: value}
}

// Delete removes the variable at code, if any.
func (t *VariableTable) Delete(code string) {
	if _, ok := t.vars[code]; !ok {
		return
	}
	delete(t.vars, code)
	t.order = slices.DeleteFunc(t.order, func(c string) bool { return c == code })
}

// Change sets the value of an existing variable. It never creates one.
func (t *VariableTable) Change(code, value string) error {
	v, ok := t.vars[code]
	if !ok {
		return fmt.Errorf("variable %q: %w", code, ErrNotFound)
	}
	v.Value = value
	return nil
}

// Len reports the number of variables.
func (t *VariableTable) Len() int {
	return len(t.order)
}
