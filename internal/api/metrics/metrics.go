// Package metrics defines the custom Prometheus metrics of the inventory
// admin. Request metrics come from echoprometheus; these cover the
// inventory-specific actions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vending"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of admin login attempts, by result.",
	},
	[]string{"result"},
)

// ReportsSavedTotal counts daily snapshots written.
// Label:
//   - trigger: "manual" (POST /save-report) or "scheduled" (cron)
var ReportsSavedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_saved_total",
		Help:      "Total number of daily totals snapshots saved.",
	},
	[]string{"trigger"},
)

// ReportSaveDuration measures the aggregate, upsert and reset sequence.
var ReportSaveDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "report_save_duration_seconds",
		Help:      "Duration of saving a daily snapshot including the fleet reset.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ExportsTotal counts generated report downloads.
// Labels:
//   - format: "txt" or "pdf"
//   - mode: "single" or "all"
var ExportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_exports_total",
		Help:      "Total number of report files generated.",
	},
	[]string{"format", "mode"},
)

// MachineTogglesTotal counts selection flips.
// Label:
//   - selected: the new value, "true" or "false"
var MachineTogglesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "machine_toggles_total",
		Help:      "Total number of machine selection toggles, by resulting state.",
	},
	[]string{"selected"},
)
