package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/courses", "200", time.Millisecond)
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.ObserveAggregateOperation("enroll", "success", time.Millisecond)
	m.IncAggregateConflict("enroll")
	m.IncAggregateRetry("enroll")
	m.IncEnrollmentTransition("enroll", "created")
	m.IncWishlistMutation("add", true)
	m.ObserveQuizGrade(67)
	m.IncCacheLookup(true)
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
}

func TestMetrics_WritePrometheusExposesCatalogSeries(t *testing.T) {
	m := newMetrics()
	m.ObserveAPI("GET", "/api/courses", "500", 20*time.Millisecond)
	m.IncEnrollmentTransition("enroll", "reactivated")
	m.IncWishlistMutation("remove", false)
	m.ObserveQuizGrade(100)
	m.IncCacheLookup(false)

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`cc_api_requests_total{method="GET",route="/api/courses",status="500"} 1.000000`,
		`cc_api_requests_error_total 1.000000`,
		`cc_enrollment_transitions_total{operation="enroll",transition="reactivated"} 1.000000`,
		`cc_wishlist_mutations_total{action="remove",changed="false"} 1.000000`,
		`cc_quiz_score_percent_bucket{le="100"} 1`,
		`cc_listing_cache_lookups_total{result="miss"} 1.000000`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected exposition to contain %q\n%s", want, out)
		}
	}
}

func TestLabelString_EscapesAndFillsMissing(t *testing.T) {
	got := labelString([]string{"a", "b"}, []string{`x"y`})
	if got != `{a="x\"y",b="unknown"}` {
		t.Fatalf("unexpected label string: %s", got)
	}
}
