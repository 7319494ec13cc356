package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Lightweight per-frame CPU profiler for tick-level insights, mirrored into
// prometheus so a long session can be inspected from /metrics.

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)

	registry = prometheus.NewRegistry()

	sectionSeconds = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace:  "voxelbox",
		Name:       "section_seconds",
		Help:       "Time spent in tracked sections.",
		Objectives: map[float64]float64{0.5: 0.05, 0.99: 0.001},
	}, []string{"section"})

	meshBuildSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "voxelbox",
		Name:      "mesh_build_seconds",
		Help:      "Duration of full world mesh builds.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
	})

	meshDiscarded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "voxelbox",
		Name:      "mesh_builds_discarded_total",
		Help:      "Mesh jobs or results dropped because a newer world version superseded them.",
	})

	blockEdits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "voxelbox",
		Name:      "block_edits_total",
		Help:      "Blocks mined or placed by the player.",
	}, []string{"op"})

	worldVersion = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "voxelbox",
		Name:      "world_version",
		Help:      "Current world version counter.",
	})
)

func init() {
	registry.MustRegister(sectionSeconds, meshBuildSeconds, meshDiscarded, blockEdits, worldVersion)
}

// Registry exposes the collectors for an HTTP handler.
func Registry() *prometheus.Registry {
	return registry
}

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("subsystem.Operation")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
		sectionSeconds.WithLabelValues(name).Observe(d.Seconds())
	}
}

// ResetFrame clears current per-frame totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot returns a copy of current per-frame totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// TopN formats top N durations from the current frame totals.
// Example: "player.Update:4.2ms, meshing.Build:2.1ms"
func TopN(n int) string {
	ss := Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur != list[j].dur {
			return list[i].dur > list[j].dur
		}
		return list[i].name < list[j].name
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ms := float64(list[i].dur.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms", list[i].name, ms))
	}
	return strings.Join(parts, ", ")
}

func MeshBuilt(d time.Duration) {
	meshBuildSeconds.Observe(d.Seconds())
}

// MeshDiscarded counts a superseded mesh job or result.
func MeshDiscarded() {
	meshDiscarded.Inc()
}

func BlockMined() {
	blockEdits.WithLabelValues("mine").Inc()
}

func BlockPlaced() {
	blockEdits.WithLabelValues("place").Inc()
}

func SetWorldVersion(v uint64) {
	worldVersion.Set(float64(v))
}
