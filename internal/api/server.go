// Package api serves a read-only view of the running world over HTTP.
package api

import (
	"encoding/json"
	"fmt"
	"image/color"
	"log/slog"
	"net/http"

	"github.com/jogru0/save-the-planet/internal/engine"
	"github.com/jogru0/save-the-planet/internal/world"
)

// Server serves the world status over HTTP.
type Server struct {
	// Status returns a consistent snapshot. It is called from HTTP handler
	// goroutines, so it must synchronize with the frame loop.
	Status func() world.Status
	Port   int
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/cards", s.handleCards)
	return mux
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, s.Handler()); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.Status()

	status := map[string]any{
		"sim_time":   engine.SimTime(st.At),
		"saved":      st.Saved.Text(6),
		"save_rate":  st.SaveRate.Text(6),
		"flyers":     st.Flyers.Text(0),
		"supporters": st.Supporting.Text(0),
		"population": st.Population.Text(0),
		"research":   st.Research.Text(2),
	}
	if st.Prompt != "" {
		status["prompt"] = st.Prompt
	}
	if st.Message != "" {
		status["message"] = st.Message
	}
	if st.HasMilestoneETA {
		status["milestones_in"] = st.MilestoneETA.String()
	}
	writeJSON(w, status)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	type cardSummary struct {
		Label string `json:"label"`
		Color string `json:"color"`
	}

	st := s.Status()
	cards := make([]cardSummary, 0, len(st.Cards))
	for _, c := range st.Cards {
		cards = append(cards, cardSummary{Label: c.MenuLabel(), Color: hexColor(c.Color())})
	}
	writeJSON(w, cards)
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
