package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"cssvars/model"
	"cssvars/style"
	"cssvars/theme"
)

// Server exposes the theme registry over HTTP.
type Server struct {
	manager  *theme.Manager
	hub      *Hub
	upgrader websocket.Upgrader
	now      func() time.Time
}

// NewServer creates a server and subscribes it to manager changes.
func NewServer(manager *theme.Manager) *Server {
	s := &Server{
		manager: manager,
		hub:     NewHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		now: time.Now,
	}
	manager.SetOnChange(s.BroadcastChange)
	return s
}

func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/groups", s.handleGroups)
	mux.HandleFunc("GET /api/groups/{group}", s.handleGroup)
	mux.HandleFunc("PUT /api/groups/{group}/types/{type}", s.handlePutType)
	mux.HandleFunc("DELETE /api/groups/{group}/types/{type}", s.handleDeleteType)
	mux.HandleFunc("PUT /api/groups/{group}/types/{type}/variables/{code}", s.handlePutVariable)
	mux.HandleFunc("PATCH /api/groups/{group}/types/{type}/variables/{code}", s.handlePatchVariable)
	mux.HandleFunc("DELETE /api/groups/{group}/types/{type}/variables/{code}", s.handleDeleteVariable)
	mux.HandleFunc("GET /api/export/{file}", s.handleExportCSS)
	mux.HandleFunc("GET /api/ws", s.handleWS)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"groups":      len(s.manager.ListGroups()),
		"subscribers": s.hub.Len(),
	})
}

// ---------- groups ----------

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.manager.Snapshots())
}

func (s *Server) handleGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.manager.Snapshot(r.PathValue("group"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

// ---------- types ----------

func (s *Server) handlePutType(w http.ResponseWriter, r *http.Request) {
	var req model.TypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	groupCode, typeCode := r.PathValue("group"), r.PathValue("type")
	if err := s.manager.CreateType(groupCode, req.Name, typeCode, req.Variables); err != nil {
		writeError(w, err)
		return
	}
	s.writeGroup(w, groupCode)
}

func (s *Server) handleDeleteType(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.DeleteType(r.PathValue("group"), r.PathValue("type")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------- variables ----------

func (s *Server) handlePutVariable(w http.ResponseWriter, r *http.Request) {
	var req model.VariableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	groupCode, typeCode, code := r.PathValue("group"), r.PathValue("type"), r.PathValue("code")
	name := req.Name
	if name == "" {
		name = code
	}
	if err := s.manager.SetVariable(groupCode, typeCode, name, code, req.Value); err != nil {
		writeError(w, err)
		return
	}
	s.writeGroup(w, groupCode)
}

func (s *Server) handlePatchVariable(w http.ResponseWriter, r *http.Request) {
	var req model.VariableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	groupCode := r.PathValue("group")
	if err := s.manager.ChangeVariable(groupCode, r.PathValue("type"), r.PathValue("code"), req.Value); err != nil {
		writeError(w, err)
		return
	}
	s.writeGroup(w, groupCode)
}

func (s *Server) handleDeleteVariable(w http.ResponseWriter, r *http.Request) {
	if err := s.manager.DeleteVariable(r.PathValue("group"), r.PathValue("type"), r.PathValue("code")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------- export ----------

func (s *Server) handleExportCSS(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	groupCode, ok := strings.CutSuffix(file, ".css")
	if !ok || groupCode == "" {
		http.NotFound(w, r)
		return
	}

	css, err := s.manager.CSS(groupCode)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file))
	_, _ = w.Write([]byte(css))
}

// ---------- websocket ----------

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[api] websocket upgrade: %v", err)
		return
	}
	sub := s.hub.subscribe(conn)
	defer func() {
		s.hub.unsubscribe(sub)
		_ = conn.Close()
	}()

	// New subscribers start from the current CSS of every group.
	for _, code := range s.manager.ListGroups() {
		css, err := s.manager.CSS(code)
		if err != nil {
			continue
		}
		if err := sub.send(s.event(model.EventThemeSnapshot, code, css)); err != nil {
			log.Printf("[api] websocket snapshot: %v", err)
			return
		}
	}

	// Clients only listen; reading keeps control frames flowing and notices
	// when the peer goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// BroadcastChange pushes the current CSS of a group to every subscriber.
func (s *Server) BroadcastChange(groupCode string) {
	css, err := s.manager.CSS(groupCode)
	if err != nil {
		log.Printf("[api] render %s for broadcast: %v", groupCode, err)
		return
	}
	s.hub.Broadcast(s.event(model.EventThemeChanged, groupCode, css))
}

func (s *Server) event(kind, groupCode, css string) model.ChangeEvent {
	return model.ChangeEvent{
		ID:    uuid.NewString(),
		Type:  kind,
		Group: groupCode,
		CSS:   css,
		Time:  s.now().UTC(),
	}
}

func (s *Server) writeGroup(w http.ResponseWriter, groupCode string) {
	group, err := s.manager.Snapshot(groupCode)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, style.ErrNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	log.Printf("[api] %v", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] writeJSON error: %v", err)
	}
}
