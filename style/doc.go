// Package style holds CSS custom-property theme definitions in memory.
//
// A StyleGroup (for example "color") contains StyleTypes (for example
// "light" and "dark"), and each StyleType contains Variables such as
// "--text-color: #000". The group renders itself as CSS in which every
// type's declarations are scoped under a data-theme-<group> attribute
// selector:
//
//	group := style.NewStyleGroup("Color", "color", []style.TypeDefinition{
//		{Name: "Light", Code: "light", Variables: []style.Variable{
//			{Name: "Text", Code: "--text-color", Value: "#000"},
//		}},
//	})
//	css := group.String()
//
// Lookups are comma-ok and never fail. Operations that require an existing
// entry return an error wrapping ErrNotFound. Delete of a missing entry is a
// no-op. None of the types are safe for concurrent use.
package style
