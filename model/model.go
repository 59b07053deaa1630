package model

import (
	"time"

	"cssvars/style"
)

// Group is the JSON view of a style group.
type Group struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	Types []Type `json:"types"`
}

// Type is the JSON view of a style type.
type Type struct {
	Name      string           `json:"name"`
	Code      string           `json:"code"`
	Variables []style.Variable `json:"variables"`
}

// TypeRequest is the body of a style type create/replace call.
type TypeRequest struct {
	Name      string           `json:"name"`
	Variables []style.Variable `json:"variables"`
}

// VariableRequest is the body of a variable upsert or change call.
type VariableRequest struct {
	Name  string `json:"name,omitempty"`
	Value string `json:"value"`
}

// Event types sent over the websocket.
const (
	EventThemeSnapshot = "theme.snapshot"
	EventThemeChanged  = "theme.changed"
)

// ChangeEvent carries the CSS of one group to websocket subscribers, on
// connect and after every change.
type ChangeEvent struct {
	ID    string    `json:"id"`
	Type  string    `json:"type"`
	Group string    `json:"group"`
	CSS   string    `json:"css,omitempty"`
	Time  time.Time `json:"time"`
}

// FromGroup builds the JSON view of g.
func FromGroup(g *style.StyleGroup) Group {
	types := g.GetAll()
	out := Group{
		Name:  g.Name,
		Code:  g.Code,
		Types: make([]Type, 0, len(types)),
	}
	for _, st := range types {
		out.Types = append(out.Types, Type{
			Name:      st.Name,
			Code:      st.Code,
			Variables: st.GetAll(),
		})
	}
	return out
}
