package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/wsh32/AISnake/pkg/game"
)

var (
	Ticks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snake_ticks_total",
			Help: "Game updates applied, by mode",
		},
		[]string{"mode"},
	)
	FoodEaten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snake_food_eaten_total",
			Help: "Food items eaten, by mode",
		},
		[]string{"mode"},
	)
	MatchesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snake_matches_finished_total",
			Help: "Matches that reached a terminal state",
		},
		[]string{"mode", "winner"},
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "snake_active_sessions",
			Help: "Open websocket game sessions",
		},
	)
)

func init() {
	prometheus.MustRegister(Ticks)
	prometheus.MustRegister(FoodEaten)
	prometheus.MustRegister(MatchesFinished)
	prometheus.MustRegister(ActiveSessions)
}

// ObserveTick records one applied update. Food is counted from the growing
// flags, which are set exactly on the tick a snake eats.
func ObserveTick(s game.GameState) {
	mode := string(s.Mode)
	Ticks.WithLabelValues(mode).Inc()
	for _, p := range s.Players {
		if p.Growing {
			FoodEaten.WithLabelValues(mode).Inc()
		}
	}
	if s.GameOver {
		MatchesFinished.WithLabelValues(mode, string(s.Winner)).Inc()
	}
}
