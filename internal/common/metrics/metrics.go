// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotificationsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_submitted_total",
			Help: "Total number of notifications accepted for delivery",
		},
		[]string{"category"},
	)

	NotificationsSuppressed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_suppressed_total",
			Help: "Total number of submissions refused by policy",
		},
		[]string{"category", "reason"},
	)

	NotificationsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_dispatched_total",
			Help: "Total number of notifications pushed by the dispatcher",
		},
		[]string{"category"},
	)

	DispatchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_dispatch_failures_total",
			Help: "Total number of per-item push failures during drain",
		},
		[]string{"category"},
	)

	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notification_queue_depth",
			Help: "Current number of notifications awaiting dispatch",
		},
	)

	SchedulerTicks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduler_ticks_total",
			Help: "Total number of scheduler tick evaluations",
		},
	)

	CampaignDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "campaign_duration_seconds",
			Help: "Duration of campaign trigger execution in seconds",
		},
		[]string{"campaign"},
	)
)
