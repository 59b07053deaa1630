package theme

import (
	"encoding/json"
	"errors"
	"html"
	"net/http"
	"strings"

	"cssvars/style"
)

// Handler serves rendered theme CSS.
type Handler struct {
	manager *Manager
}

// NewHandler creates a new theme handler.
func NewHandler(manager *Manager) *Handler {
	return &Handler{
		manager: manager,
	}
}

// HandleTheme serves CSS for the groups named in the comma separated
// "group" query parameter, or for every group when it is absent.
func (h *Handler) HandleTheme(w http.ResponseWriter, r *http.Request) {
	var codes []string
	for _, code := range strings.Split(r.URL.Query().Get("group"), ",") {
		if code = strings.TrimSpace(code); code != "" {
			codes = append(codes, code)
		}
	}

	css, err := h.manager.CSS(codes...)
	if err != nil {
		if errors.Is(err, style.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to render theme", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write([]byte(css))
}

// TypeOption describes one selectable style type.
type TypeOption struct {
	Code    string `json:"code"`
	Display string `json:"display"`
}

// HandleTypes returns the selectable style types of a group.
func (h *Handler) HandleTypes(w http.ResponseWriter, r *http.Request) {
	groupCode := r.URL.Query().Get("group")
	if groupCode == "" {
		http.Error(w, "group parameter required", http.StatusBadRequest)
		return
	}

	options, err := h.TypeOptions(groupCode)
	if err != nil {
		http.Error(w, "group not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	if err := json.NewEncoder(w).Encode(options); err != nil {
		http.Error(w, "failed to encode types", http.StatusInternalServerError)
		return
	}
}

// TypeOptions lists the style types of a group with display names. A type
// without a name is displayed as its title-cased code.
func (h *Handler) TypeOptions(groupCode string) ([]TypeOption, error) {
	group, err := h.manager.Snapshot(groupCode)
	if err != nil {
		return nil, err
	}

	options := make([]TypeOption, 0, len(group.Types))
	for _, t := range group.Types {
		displayName := t.Name
		if displayName == "" {
			displayName = titleCase(t.Code)
		}
		options = append(options, TypeOption{Code: t.Code, Display: displayName})
	}
	return options, nil
}

// GenerateTypeMenuHTML generates one button per style type of a group. Each
// button carries the attribute the group's CSS is scoped under.
func (h *Handler) GenerateTypeMenuHTML(groupCode, currentType string) string {
	options, err := h.TypeOptions(groupCode)
	if err != nil {
		return ""
	}

	var builder strings.Builder
	for _, opt := range options {
		builder.WriteString(`<button data-theme-`)
		builder.WriteString(html.EscapeString(groupCode))
		builder.WriteString(`="`)
		builder.WriteString(html.EscapeString(opt.Code))
		builder.WriteString(`"`)
		if opt.Code == currentType {
			builder.WriteString(` class="active"`)
		}
		builder.WriteString(`>`)
		builder.WriteString(html.EscapeString(opt.Display))
		builder.WriteString(`</button>`)
	}

	return builder.String()
}

func titleCase(code string) string {
	parts := strings.Split(code, "-")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}
