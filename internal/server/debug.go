package server

import (
	"net/http"
	"strings"

	"github.com/emlai/zenith-sub000/internal/network"
)

// DebugHandler показывает последний кадр движка без websocket.
type DebugHandler struct {
	Hub *network.Broadcaster
}

func NewDebugHandler(hub *network.Broadcaster) *DebugHandler {
	return &DebugHandler{Hub: hub}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/frame", h.handleFrame)
	mux.HandleFunc("/debug/stats", h.handleStats)
}

// /debug/frame - последний кадр как текст
func (h *DebugHandler) handleFrame(w http.ResponseWriter, r *http.Request) {
	f, ok := h.Hub.Last()
	if !ok {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(strings.Join(f.Lines, "\n") + "\n"))
}

// /debug/stats - счётчики из последнего кадра и число зрителей
func (h *DebugHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	type Stats struct {
		Turn      uint64 `json:"turn"`
		Level     int    `json:"level"`
		Areas     int    `json:"areas"`
		Creatures int    `json:"creatures"`
		Viewers   int    `json:"viewers"`
	}
	f, _ := h.Hub.Last()
	writeJSON(w, Stats{
		Turn:      f.Turn,
		Level:     f.Level,
		Areas:     f.Areas,
		Creatures: f.Creatures,
		Viewers:   h.Hub.SubscriberCount(),
	})
}
