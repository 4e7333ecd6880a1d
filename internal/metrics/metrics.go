package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ProviderRequests *prometheus.CounterVec
	RequestSeconds   *prometheus.HistogramVec
	PlacesChecked    prometheus.Counter
	ReportEntries    *prometheus.CounterVec
	LastRunTimestamp *prometheus.GaugeVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		ProviderRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "agora_provider_requests_total",
			Help: "Total number of requests sent to the mapping provider.",
		}, []string{"endpoint", "status"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "agora_provider_request_duration_seconds",
			Help:    "Duration of requests to the mapping provider.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		PlacesChecked: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "agora_places_checked_total",
			Help: "Total number of ranked places whose details were fetched.",
		}),
		ReportEntries: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "agora_report_entries_total",
			Help: "Total number of entries written to reports.",
		}, []string{"kind"}),
		LastRunTimestamp: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "agora_last_report_timestamp_seconds",
			Help: "Unix time of the last written report.",
		}, []string{"kind"}),
	}
}

// WriteTextfile dumps the gatherer in the text exposition format for the node exporter textfile collector.
// An empty path disables the dump.
func WriteTextfile(path string, gatherer prometheus.Gatherer) error {
	if path == "" {
		return nil
	}

	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}

	return nil
}
