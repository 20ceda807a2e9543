package observability

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/coursecatalog-backend/internal/platform/envutil"
	"github.com/yungbote/coursecatalog-backend/internal/platform/logger"
)

// Metrics is the catalog's Prometheus registry. A nil *Metrics is valid and
// records nothing, so callers never need to check whether metrics are on.
type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge
	apiReqTotal *Counter
	apiReqError *Counter

	aggregateOps       *CounterVec
	aggregateLatency   *HistogramVec
	aggregateConflicts *CounterVec
	aggregateRetries   *CounterVec

	enrollmentTransitions *CounterVec
	wishlistMutations     *CounterVec
	quizGraded            *Counter
	quizScore             *HistogramVec
	cacheLookups          *CounterVec

	pgStats   *GaugeVec
	redisUp   *Gauge
	redisPing *Gauge
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Init returns the process-wide metrics, or nil when METRICS_ENABLED is off.
func Init(log *logger.Logger) *Metrics {
	if !envutil.Bool("METRICS_ENABLED", false, log) {
		return nil
	}
	initOnce.Do(func() {
		instance = newMetrics()
		if log != nil {
			log.Info("Observability metrics enabled")
		}
	})
	return instance
}

var (
	latencyBounds   = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}
	aggregateBounds = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}
	scoreBounds     = []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
)

func newMetrics() *Metrics {
	routeLabels := []string{"method", "route", "status"}
	opLabels := []string{"operation", "status"}
	return &Metrics{
		apiRequests: NewCounterVec("cc_api_requests_total", "Total API requests by method/route/status.", routeLabels),
		apiLatency:  NewHistogramVec("cc_api_request_duration_seconds", "API request latency in seconds by method/route/status.", routeLabels, latencyBounds),
		apiInflight: NewGauge("cc_api_inflight_requests", "In-flight API requests."),
		apiReqTotal: NewCounter("cc_api_requests_total_all", "Total API requests (all)."),
		apiReqError: NewCounter("cc_api_requests_error_total", "Total API requests with 5xx status."),

		aggregateOps:       NewCounterVec("cc_aggregate_operations_total", "Aggregate write operations by operation/status.", opLabels),
		aggregateLatency:   NewHistogramVec("cc_aggregate_operation_duration_seconds", "Aggregate write latency in seconds by operation/status.", opLabels, aggregateBounds),
		aggregateConflicts: NewCounterVec("cc_aggregate_conflicts_total", "Aggregate write conflicts by operation.", []string{"operation"}),
		aggregateRetries:   NewCounterVec("cc_aggregate_retries_total", "Aggregate write retries by operation.", []string{"operation"}),

		enrollmentTransitions: NewCounterVec("cc_enrollment_transitions_total", "Enrollment state transitions by operation/transition.", []string{"operation", "transition"}),
		wishlistMutations:     NewCounterVec("cc_wishlist_mutations_total", "Wishlist mutations by action/changed.", []string{"action", "changed"}),
		quizGraded:            NewCounter("cc_quiz_graded_total", "Quiz submissions graded."),
		quizScore:             NewHistogramVec("cc_quiz_score_percent", "Quiz score distribution in percent.", nil, scoreBounds),
		cacheLookups:          NewCounterVec("cc_listing_cache_lookups_total", "Listing cache lookups by result.", []string{"result"}),

		pgStats:   NewGaugeVec("cc_db_pool_stats", "Database pool stats.", []string{"metric"}),
		redisUp:   NewGauge("cc_redis_up", "Redis connectivity (1=up, 0=down)."),
		redisPing: NewGauge("cc_redis_ping_seconds", "Redis ping latency in seconds."),
	}
}

// StartServer serves the exposition on addr until ctx ends.
func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	addr = strings.TrimSpace(addr)
	if m == nil || addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", m.WriteHTTP)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) && log != nil {
			log.Error("metrics server failed", "error", err, "addr", addr)
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, _ *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	families := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight, m.apiReqTotal, m.apiReqError,
		m.aggregateOps, m.aggregateLatency, m.aggregateConflicts, m.aggregateRetries,
		m.enrollmentTransitions, m.wishlistMutations, m.quizGraded, m.quizScore, m.cacheLookups,
		m.pgStats, m.redisUp, m.redisPing,
	}
	for _, f := range families {
		if err := f.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func orUnknown(v string) string {
	if v = strings.TrimSpace(v); v == "" {
		return "unknown"
	}
	return v
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if status == "" {
		status = "0"
	}
	route = orUnknown(route)
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
	m.apiReqTotal.Inc()
	if isServerErrorStatus(status) {
		m.apiReqError.Inc()
	}
}

func (m *Metrics) ApiInflightInc() {
	if m != nil {
		m.apiInflight.Inc()
	}
}

func (m *Metrics) ApiInflightDec() {
	if m != nil {
		m.apiInflight.Dec()
	}
}

func (m *Metrics) ObserveAggregateOperation(operation, status string, dur time.Duration) {
	if m == nil {
		return
	}
	operation, status = orUnknown(operation), orUnknown(status)
	m.aggregateOps.Inc(operation, status)
	m.aggregateLatency.Observe(dur.Seconds(), operation, status)
}

func (m *Metrics) IncAggregateConflict(operation string) {
	if m != nil {
		m.aggregateConflicts.Inc(orUnknown(operation))
	}
}

func (m *Metrics) IncAggregateRetry(operation string) {
	if m != nil {
		m.aggregateRetries.Inc(orUnknown(operation))
	}
}

func (m *Metrics) IncEnrollmentTransition(operation, transition string) {
	if m != nil {
		m.enrollmentTransitions.Inc(orUnknown(operation), orUnknown(transition))
	}
}

func (m *Metrics) IncWishlistMutation(action string, changed bool) {
	if m != nil {
		m.wishlistMutations.Inc(orUnknown(action), strconv.FormatBool(changed))
	}
}

func (m *Metrics) ObserveQuizGrade(score int) {
	if m == nil {
		return
	}
	m.quizGraded.Inc()
	m.quizScore.Observe(float64(score))
}

func (m *Metrics) IncCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.Inc(result)
}

// every runs fn on a ticker until ctx ends. The interval comes from
// METRICS_SCRAPE_INTERVAL_SECONDS.
func every(ctx context.Context, fn func(context.Context)) {
	interval := envutil.Seconds("METRICS_SCRAPE_INTERVAL_SECONDS", 10*time.Second, nil)
	if interval <= 0 {
		interval = 10 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fn(ctx)
			}
		}
	}()
}

// StartPostgresCollector publishes database/sql pool stats for db.
func (m *Metrics) StartPostgresCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	every(ctx, func(context.Context) {
		sqlDB, err := db.DB()
		if err != nil {
			if log != nil {
				log.Warn("metrics: db stats unavailable", "error", err)
			}
			return
		}
		s := sqlDB.Stats()
		for name, v := range map[string]float64{
			"open_connections":      float64(s.OpenConnections),
			"in_use":                float64(s.InUse),
			"idle":                  float64(s.Idle),
			"wait_count":            float64(s.WaitCount),
			"wait_duration_seconds": s.WaitDuration.Seconds(),
			"max_open_connections":  float64(s.MaxOpenConnections),
		} {
			m.pgStats.Set(v, name)
		}
	})
}

// StartRedisCollector pings addr on each tick with its own client.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, addr string) {
	addr = strings.TrimSpace(addr)
	if m == nil || addr == "" {
		return
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	context.AfterFunc(ctx, func() { _ = rdb.Close() })
	every(ctx, func(ctx context.Context) {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err != nil {
			m.redisUp.Set(0)
			if log != nil {
				log.Warn("metrics: redis ping failed", "error", err)
			}
			return
		}
		m.redisUp.Set(1)
		m.redisPing.Set(time.Since(start).Seconds())
	})
}
