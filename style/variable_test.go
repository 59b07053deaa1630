package style

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVariableTableCreateGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    Variable
	}{
		{name: "color", v: Variable{Name: "Text", Code: "--text-color", Value: "#000"}},
		{name: "empty fields", v: Variable{}},
		{name: "spaces in value", v: Variable{Name: "Font", Code: "--font", Value: "Inter, sans-serif"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tbl := NewVariableTable(nil)
			tbl.Create(tt.v.Name, tt.v.Code, tt.v.Value)

			got, ok := tbl.Get(tt.v.Code)
			require.True(t, ok)
			require.Equal(t, tt.v, got)
		})
	}
}

func TestVariableTableCreateReplaces(t *testing.T) {
	t.Parallel()

	tbl := NewVariableTable([]Variable{
		{Name: "A", Code: "--a", Value: "1"},
		{Name: "B", Code: "--b", Value: "2"},
	})
	tbl.Create("Alpha", "--a", "10")

	got, ok := tbl.Get("--a")
	require.True(t, ok)
	require.Equal(t, Variable{Name: "Alpha", Code: "--a", Value: "10"}, got)
	require.Equal(t, []Variable{
		{Name: "Alpha", Code: "--a", Value: "10"},
		{Name: "B", Code: "--b", Value: "2"},
	}, tbl.GetAll())
}

func TestVariableTableDelete(t *testing.T) {
	t.Parallel()

	tbl := NewVariableTable([]Variable{
		{Name: "A", Code: "--a", Value: "1"},
		{Name: "B", Code: "--b", Value: "2"},
	})
	tbl.Delete("--a")
	tbl.Delete("--missing")

	_, ok := tbl.Get("--a")
	require.False(t, ok)
	require.Equal(t, 1, tbl.Len())

	tbl.Create("A", "--a", "3")
	require.Equal(t, []string{"--b", "--a"}, codes(tbl.GetAll()))
}

func TestVariableTableChange(t *testing.T) {
	t.Parallel()

	tbl := NewVariableTable([]Variable{{Name: "A", Code: "--a", Value: "1"}})
	require.NoError(t, tbl.Change("--a", "2"))

	got, _ := tbl.Get("--a")
	require.Equal(t, Variable{Name: "A", Code: "--a", Value: "2"}, got)

	err := tbl.Change("--missing", "x")
	require.True(t, errors.Is(err, ErrNotFound), "got %v", err)
	_, ok := tbl.Get("--missing")
	require.False(t, ok)
}

func TestVariableTableGetReturnsCopy(t *testing.T) {
	t.Parallel()

	tbl := NewVariableTable([]Variable{{Name: "A", Code: "--a", Value: "1"}})
	got, _ := tbl.Get("--a")
	got.Value = "changed"

	again, _ := tbl.Get("--a")
	require.Equal(t, "1", again.Value)
}

func TestVariableTableZeroValue(t *testing.T) {
	t.Parallel()

	var tbl VariableTable
	require.Empty(t, tbl.GetAll())
	tbl.Create("A", "--a", "1")
	require.Equal(t, 1, tbl.Len())
}

func codes(vars []Variable) []string {
	out := make([]string, 0, len(vars))
	for _, v := range vars {
		out = append(out, v.Code)
	}
	return out
}
