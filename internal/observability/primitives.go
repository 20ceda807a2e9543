package observability

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// family is the shared state behind the counter and gauge types: one float per
// rendered label set. Scalar metrics are families with no label names.
type family struct {
	name   string
	help   string
	kind   string
	labels []string

	mu     sync.Mutex
	series map[string]float64
}

func newFamily(name, help, kind string, labels []string) *family {
	return &family{name: name, help: help, kind: kind, labels: labels, series: map[string]float64{}}
}

func (f *family) update(values []string, fn func(float64) float64) {
	key := labelString(f.labels, values)
	f.mu.Lock()
	f.series[key] = fn(f.series[key])
	f.mu.Unlock()
}

func (f *family) write(w io.Writer) error {
	f.mu.Lock()
	keys := sortedKeys(f.series)
	vals := make([]float64, len(keys))
	for i, k := range keys {
		vals[i] = f.series[k]
	}
	f.mu.Unlock()

	bw := bufio.NewWriter(w)
	writeHeader(bw, f.name, f.help, f.kind)
	if len(f.labels) == 0 && len(keys) == 0 {
		// scalars are exposed at zero before their first update
		keys, vals = []string{""}, []float64{0}
	}
	for i, k := range keys {
		bw.WriteString(f.name + k + " " + strconv.FormatFloat(vals[i], 'f', 6, 64) + "\n")
	}
	return bw.Flush()
}

func writeHeader(bw *bufio.Writer, name, help, kind string) {
	bw.WriteString("# HELP " + name + " " + help + "\n")
	bw.WriteString("# TYPE " + name + " " + kind + "\n")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type CounterVec struct{ f *family }

func NewCounterVec(name, help string, labels []string) *CounterVec {
	return &CounterVec{f: newFamily(name, help, "counter", labels)}
}

func (c *CounterVec) Inc(values ...string) { c.Add(1, values...) }

func (c *CounterVec) Add(v float64, values ...string) {
	if c == nil || v < 0 {
		return
	}
	c.f.update(values, func(cur float64) float64 { return cur + v })
}

func (c *CounterVec) WritePrometheus(w io.Writer) error {
	if c == nil {
		return nil
	}
	return c.f.write(w)
}

type Counter struct{ f *family }

func NewCounter(name, help string) *Counter {
	return &Counter{f: newFamily(name, help, "counter", nil)}
}

func (c *Counter) Inc() { c.Add(1) }

func (c *Counter) Add(v float64) {
	if c == nil || v < 0 {
		return
	}
	c.f.update(nil, func(cur float64) float64 { return cur + v })
}

func (c *Counter) WritePrometheus(w io.Writer) error {
	if c == nil {
		return nil
	}
	return c.f.write(w)
}

type Gauge struct{ f *family }

func NewGauge(name, help string) *Gauge {
	return &Gauge{f: newFamily(name, help, "gauge", nil)}
}

func (g *Gauge) Set(v float64) {
	if g != nil {
		g.f.update(nil, func(float64) float64 { return v })
	}
}

func (g *Gauge) Inc() {
	if g != nil {
		g.f.update(nil, func(cur float64) float64 { return cur + 1 })
	}
}

func (g *Gauge) Dec() {
	if g != nil {
		g.f.update(nil, func(cur float64) float64 { return cur - 1 })
	}
}

func (g *Gauge) WritePrometheus(w io.Writer) error {
	if g == nil {
		return nil
	}
	return g.f.write(w)
}

type GaugeVec struct{ f *family }

func NewGaugeVec(name, help string, labels []string) *GaugeVec {
	return &GaugeVec{f: newFamily(name, help, "gauge", labels)}
}

func (g *GaugeVec) Set(v float64, values ...string) {
	if g != nil {
		g.f.update(values, func(float64) float64 { return v })
	}
}

func (g *GaugeVec) WritePrometheus(w io.Writer) error {
	if g == nil {
		return nil
	}
	return g.f.write(w)
}

// HistogramVec keeps cumulative bucket counts per label set. Bounds are sorted
// once at construction.
type HistogramVec struct {
	name   string
	help   string
	labels []string
	bounds []float64

	mu     sync.Mutex
	series map[string]*histSeries
}

type histSeries struct {
	counts []uint64 // one per bound, then +Inf
	sum    float64
}

var defaultBounds = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}

func NewHistogramVec(name, help string, labels []string, buckets []float64) *HistogramVec {
	if len(buckets) == 0 {
		buckets = defaultBounds
	}
	bounds := append([]float64(nil), buckets...)
	sort.Float64s(bounds)
	return &HistogramVec{name: name, help: help, labels: labels, bounds: bounds, series: map[string]*histSeries{}}
}

func (h *HistogramVec) Observe(v float64, values ...string) {
	if h == nil {
		return
	}
	key := labelString(h.labels, values)
	// first bound that holds v; every bucket from there on counts it
	first := sort.SearchFloat64s(h.bounds, v)

	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.series[key]
	if s == nil {
		s = &histSeries{counts: make([]uint64, len(h.bounds)+1)}
		h.series[key] = s
	}
	for i := first; i < len(s.counts); i++ {
		s.counts[i]++
	}
	s.sum += v
}

func (h *HistogramVec) WritePrometheus(w io.Writer) error {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	bw := bufio.NewWriter(w)
	writeHeader(bw, h.name, h.help, "histogram")
	for _, key := range sortedKeys(h.series) {
		s := h.series[key]
		for i, c := range s.counts {
			le := "+Inf"
			if i < len(h.bounds) {
				le = strconv.FormatFloat(h.bounds[i], 'g', -1, 64)
			}
			bw.WriteString(h.name + "_bucket" + withLe(key, le) + " " + strconv.FormatUint(c, 10) + "\n")
		}
		total := s.counts[len(s.counts)-1]
		bw.WriteString(h.name + "_sum" + key + " " + strconv.FormatFloat(s.sum, 'f', 6, 64) + "\n")
		bw.WriteString(h.name + "_count" + key + " " + strconv.FormatUint(total, 10) + "\n")
	}
	return bw.Flush()
}

// labelString renders {name="value",...} in label-name order. Missing values
// become "unknown".
func labelString(names, values []string) string {
	if len(names) == 0 {
		return ""
	}
	parts := make([]string, len(names))
	for i, name := range names {
		val := "unknown"
		if i < len(values) {
			val = values[i]
		}
		parts[i] = name + `="` + escapeLabel(val) + `"`
	}
	return "{" + strings.Join(parts, ",") + "}"
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func escapeLabel(v string) string { return labelEscaper.Replace(v) }

func withLe(labels, le string) string {
	pair := `le="` + escapeLabel(le) + `"`
	if inner := strings.TrimSuffix(strings.TrimPrefix(labels, "{"), "}"); inner != "" {
		return "{" + inner + "," + pair + "}"
	}
	return "{" + pair + "}"
}

func isServerErrorStatus(status string) bool {
	status = strings.TrimSpace(status)
	return len(status) == 3 && status[0] == '5'
}
