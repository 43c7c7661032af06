// Package metrics computes the named sprint metrics, cross-sprint
// comparisons, and linear trend fits.
package metrics

import "fmt"

// UnsupportedMetricError reports a metric name the calculator does not
// recognize.
type UnsupportedMetricError struct {
	Name string
}

func (e *UnsupportedMetricError) Error() string {
	return fmt.Sprintf("unsupported metric %q", e.Name)
}

// MetricError reports a metric request whose parameters force an
// undefined computation with no zero-policy, such as capacity
// utilization against a zero declared capacity.
type MetricError struct {
	Metric string
	Reason string
}

func (e *MetricError) Error() string {
	return fmt.Sprintf("metric %s: %s", e.Metric, e.Reason)
}
