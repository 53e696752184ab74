package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)
	route := "/api/blogs/{id}"

	metrics.Started()
	metrics.Observe(route, "GET", 200, 250*time.Millisecond)
	metrics.Started()
	metrics.Observe(route, "GET", 404, 10*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total", map[string]string{"route": route, "status": "200"}); err != nil {
		t.Fatalf("fetch 200: %v", err)
	} else if got != 1 {
		t.Fatalf("expected 200 count=1, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "http_requests_total", map[string]string{"route": route, "status": "404"}); err != nil {
		t.Fatalf("fetch 404: %v", err)
	} else if got != 1 {
		t.Fatalf("expected 404 count=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds", map[string]string{"route": route, "method": "GET"}); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0.25 {
		t.Fatalf("expected duration sum > 0.25, got %f", got)
	}

	inflight := findMetricFamily(mfs, "http_requests_in_flight")
	if inflight == nil || inflight.GetMetric()[0].GetGauge().GetValue() != 0 {
		t.Fatalf("expected in-flight gauge back at zero")
	}
}

func TestHTTPMetricsUnmatchedRouteAndNilSafety(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)
	metrics.Started()
	metrics.Observe("", "POST", 404, time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if _, err := fetchCounterValue(mfs, "http_requests_total", map[string]string{"route": "unmatched"}); err != nil {
		t.Fatalf("expected unmatched label: %v", err)
	}

	var nilMetrics *HTTPMetrics
	nilMetrics.Started()
	nilMetrics.Observe("/x", "GET", 200, time.Millisecond)
	NewHTTPMetrics(nil).Observe("/x", "GET", 200, time.Millisecond)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok && v == pair.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
