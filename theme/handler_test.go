package theme

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandleTheme(t *testing.T) {
	t.Parallel()

	h := NewHandler(newTestManager(t))

	tests := []struct {
		name   string
		query  string
		status int
		body   string
	}{
		{name: "single group", query: "?group=spacing", status: http.StatusOK, body: "*[ data-theme-spacing = 'compact' ] {\n--gap: 4px;\n}"},
		{name: "list with spaces", query: "?group=spacing,%20", status: http.StatusOK, body: "*[ data-theme-spacing = 'compact' ] {\n--gap: 4px;\n}"},
		{name: "unknown group", query: "?group=nope", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			h.HandleTheme(rec, httptest.NewRequest(http.MethodGet, "/api/theme"+tt.query, nil))
			require.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				require.Equal(t, "text/css; charset=utf-8", rec.Header().Get("Content-Type"))
				require.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestHandleTypes(t *testing.T) {
	t.Parallel()

	m := newTestManager(t)
	require.NoError(t, m.CreateType("spacing", "", "extra-roomy", nil))
	h := NewHandler(m)

	rec := httptest.NewRecorder()
	h.HandleTypes(rec, httptest.NewRequest(http.MethodGet, "/api/types?group=spacing", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []TypeOption
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Equal(t, []TypeOption{
		{Code: "compact", Display: "Compact"},
		{Code: "extra-roomy", Display: "Extra Roomy"},
	}, got)

	rec = httptest.NewRecorder()
	h.HandleTypes(rec, httptest.NewRequest(http.MethodGet, "/api/types", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.HandleTypes(rec, httptest.NewRequest(http.MethodGet, "/api/types?group=nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerateTypeMenuHTML(t *testing.T) {
	t.Parallel()

	h := NewHandler(newTestManager(t))
	got := h.GenerateTypeMenuHTML("color", "dark")
	require.Equal(t,
		`<button data-theme-color="light">Light</button>`+
			`<button data-theme-color="dark" class="active">Dark</button>`,
		got)
	require.Equal(t, "", h.GenerateTypeMenuHTML("nope", ""))
}
