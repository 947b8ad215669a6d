// Package metrics exposes Prometheus counters for hosted games.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jwebster45206/story-collection/pkg/narrative"
)

const (
	ResultApplied  = "applied"
	ResultRejected = "rejected"

	// UnknownActionType labels every action whose type the engine does not
	// recognize, so client input cannot mint new series.
	UnknownActionType = "unknown"
)

type Metrics struct {
	actionsTotal      *prometheus.CounterVec
	endingsTotal      *prometheus.CounterVec
	gamesCreatedTotal prometheus.Counter
}

// New registers the counters on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		actionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "story_actions_total",
				Help: "Total number of player actions by type and result.",
			},
			[]string{"type", "result"},
		),
		endingsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "story_endings_total",
				Help: "Total number of games that reached each ending.",
			},
			[]string{"story", "ending"},
		),
		gamesCreatedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "story_games_created_total",
			Help: "Total number of hosted games created.",
		}),
	}
}

func actionLabel(a narrative.Action) string {
	if !a.Type.Known() {
		return UnknownActionType
	}
	return string(a.Type)
}

func (m *Metrics) ActionApplied(a narrative.Action) {
	m.actionsTotal.WithLabelValues(actionLabel(a), ResultApplied).Inc()
}

func (m *Metrics) ActionRejected(a narrative.Action) {
	m.actionsTotal.WithLabelValues(actionLabel(a), ResultRejected).Inc()
}

func (m *Metrics) EndingReached(e narrative.Ending) {
	m.endingsTotal.WithLabelValues(e.Story.String(), e.Key).Inc()
}

func (m *Metrics) GameCreated() {
	m.gamesCreatedTotal.Inc()
}
