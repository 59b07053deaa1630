package theme

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"cssvars/model"
	"cssvars/style"
)

// Manager owns the loaded style groups and serialises access to them.
type Manager struct {
	mu       sync.RWMutex
	groups   map[string]*style.StyleGroup
	order    []string
	onChange func(group string)
}

// NewManager creates a manager holding one group per definition.
func NewManager(defs []GroupDefinition) *Manager {
	m := &Manager{}
	m.load(defs)
	return m
}

func (m *Manager) load(defs []GroupDefinition) {
	m.groups = make(map[string]*style.StyleGroup, len(defs))
	m.order = m.order[:0]
	for _, def := range defs {
		if _, exists := m.groups[def.Code]; !exists {
			m.order = append(m.order, def.Code)
		}
		m.groups[def.Code] = def.Build()
	}
}

// SetOnChange registers fn to be called after any group changes. fn runs
// without the manager lock held.
func (m *Manager) SetOnChange(fn func(group string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Replace swaps every group for the given definitions and reports each
// resulting group as changed.
func (m *Manager) Replace(defs []GroupDefinition) {
	m.mu.Lock()
	m.load(defs)
	codes := append([]string(nil), m.order...)
	summary := make([]string, 0, len(codes))
	for _, code := range codes {
		types := m.groups[code].GetAll()
		typeCodes := make([]string, 0, len(types))
		for _, st := range types {
			typeCodes = append(typeCodes, st.Code)
		}
		summary = append(summary, fmt.Sprintf("%s: %d types (%s)", code, len(types), strings.Join(typeCodes, ", ")))
	}
	fn := m.onChange
	m.mu.Unlock()

	log.Printf("[theme] loaded %d style groups:", len(codes))
	for _, line := range summary {
		log.Printf("[theme]   - %s", line)
	}

	if fn != nil {
		for _, code := range codes {
			fn(code)
		}
	}
}

// ListGroups returns group codes in load order.
func (m *Manager) ListGroups() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...)
}

// HasGroup reports whether a group with code is loaded.
func (m *Manager) HasGroup(code string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.groups[code]
	return ok
}

// Snapshot returns a copy of one group.
func (m *Manager) Snapshot(code string) (model.Group, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	g, ok := m.groups[code]
	if !ok {
		return model.Group{}, groupNotFound(code)
	}
	return model.FromGroup(g), nil
}

// Snapshots returns copies of every group in load order.
func (m *Manager) Snapshots() []model.Group {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.Group, 0, len(m.order))
	for _, code := range m.order {
		out = append(out, model.FromGroup(m.groups[code]))
	}
	return out
}

// CSS renders the named groups, or every group when codes is empty,
// separated by a blank line.
func (m *Manager) CSS(codes ...string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(codes) == 0 {
		codes = m.order
	}

	blocks := make([]string, 0, len(codes))
	for _, code := range codes {
		g, ok := m.groups[code]
		if !ok {
			return "", groupNotFound(code)
		}
		if css := g.String(); css != "" {
			blocks = append(blocks, css)
		}
	}
	return strings.Join(blocks, "\n\n"), nil
}

// CreateType creates or replaces a style type in group.
func (m *Manager) CreateType(group, name, code string, vars []style.Variable) error {
	return m.mutate(group, func(g *style.StyleGroup) (bool, error) {
		g.Create(name, code, vars)
		return true, nil
	})
}

// DeleteType removes a style type from group. A missing type is a no-op and
// does not notify.
func (m *Manager) DeleteType(group, typeCode string) error {
	return m.mutate(group, func(g *style.StyleGroup) (bool, error) {
		if _, ok := g.Get(typeCode); !ok {
			return false, nil
		}
		g.Delete(typeCode)
		return true, nil
	})
}

// SetVariable creates or replaces a variable in a style type.
func (m *Manager) SetVariable(group, typeCode, name, code, value string) error {
	return m.mutateType(group, typeCode, func(st *style.StyleType) (bool, error) {
		st.Create(name, code, value)
		return true, nil
	})
}

// ChangeVariable updates the value of an existing variable.
func (m *Manager) ChangeVariable(group, typeCode, code, value string) error {
	return m.mutateType(group, typeCode, func(st *style.StyleType) (bool, error) {
		if err := st.Change(code, value); err != nil {
			return false, err
		}
		return true, nil
	})
}

// DeleteVariable removes a variable from a style type. A missing variable is
// a no-op and does not notify.
func (m *Manager) DeleteVariable(group, typeCode, code string) error {
	return m.mutateType(group, typeCode, func(st *style.StyleType) (bool, error) {
		if _, ok := st.Get(code); !ok {
			return false, nil
		}
		st.Delete(code)
		return true, nil
	})
}

func (m *Manager) mutateType(group, typeCode string, fn func(*style.StyleType) (bool, error)) error {
	return m.mutate(group, func(g *style.StyleGroup) (bool, error) {
		st, ok := g.Get(typeCode)
		if !ok {
			return false, fmt.Errorf("style type %q in group %q: %w", typeCode, group, style.ErrNotFound)
		}
		return fn(st)
	})
}

// mutate runs fn under the write lock and notifies when fn reports a change.
func (m *Manager) mutate(group string, fn func(*style.StyleGroup) (bool, error)) error {
	m.mu.Lock()
	g, ok := m.groups[group]
	if !ok {
		m.mu.Unlock()
		return groupNotFound(group)
	}
	changed, err := fn(g)
	notify := m.onChange
	m.mu.Unlock()

	if err != nil {
		return err
	}
	if changed && notify != nil {
		notify(group)
	}
	return nil
}

func groupNotFound(code string) error {
	return fmt.Errorf("style group %q: %w", code, style.ErrNotFound)
}
