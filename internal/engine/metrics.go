package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AreasGenerated - сколько зон создано лениво (по уровню: surface/underground).
// Use RegisterMetrics to register this with a Prometheus registry.
var AreasGenerated = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "zenith_areas_generated_total",
		Help: "Total number of lazily generated areas",
	},
	[]string{"layer"},
)

// GenerationDuration - время генерации одной зоны.
var GenerationDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "zenith_area_generation_seconds",
		Help:    "Area generation duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
	},
)

// CreaturesUpdated - существа, прошедшие через exist.
var CreaturesUpdated = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "zenith_exist_creatures_updated_total",
		Help: "Total number of creature updates performed by the exist pass",
	},
)

// SaveBytes - суммарный размер записанных сохранений.
var SaveBytes = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "zenith_save_bytes_total",
		Help: "Total bytes written to world save files",
	},
)

// RegisterMetrics registers engine metrics with the given Prometheus registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(AreasGenerated)
	reg.MustRegister(GenerationDuration)
	reg.MustRegister(CreaturesUpdated)
	reg.MustRegister(SaveBytes)
}

func layerLabel(level int) string {
	if level < 0 {
		return "underground"
	}
	return "surface"
}

func recordAreaGenerated(level int, d time.Duration) {
	AreasGenerated.WithLabelValues(layerLabel(level)).Inc()
	GenerationDuration.Observe(d.Seconds())
}
