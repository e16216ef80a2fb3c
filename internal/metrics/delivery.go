// Package metrics exposes prometheus collectors for notification delivery.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Delivery records what happens to incoming notifications. A nil *Delivery
// or one built without a registerer is a no-op.
type Delivery struct {
	received  *prometheus.CounterVec
	decisions *prometheus.CounterVec
	failures  *prometheus.CounterVec
	badge     prometheus.Gauge
	duration  prometheus.Histogram
}

// NewDelivery registers the delivery metrics on reg.
func NewDelivery(reg prometheus.Registerer) *Delivery {
	if reg == nil {
		return &Delivery{}
	}
	received := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alonix_notifications_received_total",
		Help: "Notifications received, by category.",
	}, []string{"category"})
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alonix_delivery_decisions_total",
		Help: "Delivery gate decisions, by reason.",
	}, []string{"reason"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "alonix_platform_failures_total",
		Help: "Failed platform calls, by operation.",
	}, []string{"op"})
	badge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "alonix_badge_count",
		Help: "Current app icon badge count.",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "alonix_receive_duration_seconds",
		Help:    "Time spent handling one incoming notification.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(received, decisions, failures, badge, duration)
	return &Delivery{
		received:  received,
		decisions: decisions,
		failures:  failures,
		badge:     badge,
		duration:  duration,
	}
}

// IncReceived counts a received notification.
func (d *Delivery) IncReceived(category string) {
	if d == nil || d.received == nil {
		return
	}
	d.received.WithLabelValues(normalizeLabel(category)).Inc()
}

// IncDecision counts a gate decision.
func (d *Delivery) IncDecision(reason string) {
	if d == nil || d.decisions == nil {
		return
	}
	d.decisions.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncPlatformFailure counts a failed platform call.
func (d *Delivery) IncPlatformFailure(op string) {
	if d == nil || d.failures == nil {
		return
	}
	d.failures.WithLabelValues(normalizeLabel(op)).Inc()
}

// SetBadge reports the badge count.
func (d *Delivery) SetBadge(count int) {
	if d == nil || d.badge == nil {
		return
	}
	d.badge.Set(float64(count))
}

// ObserveReceive records how long one receive took.
func (d *Delivery) ObserveReceive(elapsed time.Duration) {
	if d == nil || d.duration == nil {
		return
	}
	d.duration.Observe(elapsed.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
