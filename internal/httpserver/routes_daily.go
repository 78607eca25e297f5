// internal/httpserver/routes_daily.go
//
// Daily leaderboard endpoint. Results are written by the guess handler when
// a game completes; this route only reads them.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/guessru/go-server/internal/daily"
	"github.com/guessru/go-server/internal/roster"
)

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date    string         `json:"date"`
	ModeKey roster.ModeKey `json:"modeKey"`
	Top     []daily.LBRow  `json:"top"`
}

// handleLeaderboard returns the top results for a date (default today) and
// mode (default the easiest pool).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now())
	}
	key := roster.ModeKey(r.URL.Query().Get("mode"))
	if key == "" {
		key = roster.DefaultMode.Key()
	}
	if _, err := roster.ParseModeKey(key); err != nil {
		http.Error(w, `{"error":"unknown_mode"}`, http.StatusBadRequest)
		return
	}

	rows, err := s.daily.Leaderboard(r.Context(), date, key, 20)
	if err != nil {
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, ModeKey: key, Top: rows})
}
