package theme

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"cssvars/style"
)

const colorYAML = `
name: Color
code: color
types:
  light:
    name: Light
    code: light
    variables:
      --text-color: {name: Text color, code: --text-color, value: "#000"}
      --bg-color: {name: Background, code: --bg-color, value: "#fff"}
  dark:
    name: Dark
    variables:
      --text-color: "#fff"
`

func TestParseDefinitionKeepsOrder(t *testing.T) {
	t.Parallel()

	def, err := ParseDefinition([]byte(colorYAML), "fallback")
	require.NoError(t, err)
	require.Equal(t, "Color", def.Name)
	require.Equal(t, "color", def.Code)
	require.Equal(t, []style.TypeDefinition{
		{
			Key:  "light",
			Name: "Light",
			Code: "light",
			Variables: []style.Variable{
				{Name: "Text color", Code: "--text-color", Value: "#000"},
				{Name: "Background", Code: "--bg-color", Value: "#fff"},
			},
		},
		{
			Key:  "dark",
			Name: "Dark",
			Code: "dark",
			Variables: []style.Variable{
				{Name: "--text-color", Code: "--text-color", Value: "#fff"},
			},
		},
	}, def.Types)
}

func TestParseDefinitionInnerCodeWins(t *testing.T) {
	t.Parallel()

	def, err := ParseDefinition([]byte(`
types:
  day:
    name: Light
    code: light
    variables:
      primary: {name: Primary, code: --primary, value: blue}
`), "palette")
	require.NoError(t, err)
	require.Equal(t, "palette", def.Code)
	require.Equal(t, "palette", def.Name)

	g := def.Build()
	_, ok := g.Get("day")
	require.False(t, ok)
	st, ok := g.Get("light")
	require.True(t, ok)
	v, ok := st.Get("--primary")
	require.True(t, ok)
	require.Equal(t, "blue", v.Value)
}

func TestParseDefinitionErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "not a mapping", doc: "- a\n- b\n"},
		{name: "types list", doc: "types:\n  - light\n"},
		{name: "variables list", doc: "types:\n  light:\n    variables: [a, b]\n"},
		{name: "invalid yaml", doc: "types: {light: [\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseDefinition([]byte(tt.doc), "x")
			require.Error(t, err)
		})
	}
}

func TestParseDefinitionEmpty(t *testing.T) {
	t.Parallel()

	def, err := ParseDefinition(nil, "empty")
	require.NoError(t, err)
	require.Equal(t, "empty", def.Code)
	require.Empty(t, def.Types)
	require.Equal(t, "", def.Build().String())
}

func TestLoadSourcesOverrides(t *testing.T) {
	t.Parallel()

	base := fstest.MapFS{
		"color.yaml":   {Data: []byte(colorYAML)},
		"spacing.yml":  {Data: []byte("types:\n  compact:\n    variables:\n      --gap: 4px\n")},
		"notes.txt":    {Data: []byte("ignored")},
		"nested/x.yml": {Data: []byte("code: nested\n")},
	}
	override := fstest.MapFS{
		"color.yaml": {Data: []byte("code: color\nname: Override\n")},
	}

	defs, err := LoadSources(base, nil, override)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	require.Equal(t, "color", defs[0].Code)
	require.Equal(t, "Override", defs[0].Name)
	require.Equal(t, "spacing", defs[1].Code)
	require.Equal(t, "spacing.yml", defs[1].Source)
}

func TestLoadDefinitionsReportsFile(t *testing.T) {
	t.Parallel()

	_, err := LoadDefinitions(fstest.MapFS{
		"broken.yaml": {Data: []byte("- nope\n")},
	})
	require.ErrorContains(t, err, "broken.yaml")
}

func TestParseDefinitionRejectsNullShorthand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		line string
	}{
		{name: "unquoted hash", doc: "types:\n  light:\n    variables:\n      --c: #000\n", line: "line 4"},
		{name: "tilde", doc: "types:\n  light:\n    variables:\n      --a: red\n      --d: ~\n", line: "line 5"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseDefinition([]byte(tt.doc), "x")
			require.Error(t, err)
			require.ErrorContains(t, err, tt.line)
		})
	}

	def, err := ParseDefinition([]byte("types:\n  light:\n    variables:\n      --c: \"#000\"\n"), "x")
	require.NoError(t, err)
	require.Equal(t, "#000", def.Types[0].Variables[0].Value)
}
