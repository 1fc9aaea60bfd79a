package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"bcbp_trmnl/internal/models"
)

var (
	// Scan metrics
	scansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bcbp_trmnl_scans_total",
			Help: "Total number of scanned payloads",
		},
		[]string{"result"}, // result: accepted, rejected
	)

	decodeErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bcbp_trmnl_decode_errors_total",
			Help: "Total number of payloads that failed to decode, by error code",
		},
		[]string{"code"},
	)

	legsDecoded = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bcbp_trmnl_legs_per_pass",
			Help:    "Number of legs encoded in accepted boarding passes",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9},
		},
	)

	// Storage metrics
	batchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bcbp_trmnl_batches_total",
			Help: "Total number of batches written to the database",
		},
		[]string{"status"}, // status: ok, error
	)

	batchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bcbp_trmnl_batch_size",
			Help:    "Number of scans per database batch",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	prunedRowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bcbp_trmnl_pruned_rows_total",
			Help: "Total number of passes and rejected scans removed by retention",
		},
	)

	// Scanner connection metrics
	scannerConnected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "bcbp_trmnl_scanner_connected",
			Help: "Whether the scanner hub connection is up (1) or down (0)",
		},
	)

	scannerReconnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bcbp_trmnl_scanner_reconnects_total",
			Help: "Total number of failed scanner hub connection attempts",
		},
	)
)

// ObserveScan records the decode outcome of one payload.
func ObserveScan(msg *models.ScanMessage) {
	if msg.Valid() {
		scansTotal.WithLabelValues("accepted").Inc()
		legsDecoded.Observe(float64(msg.Pass.NumLegs()))
		return
	}
	scansTotal.WithLabelValues("rejected").Inc()
	decodeErrorsTotal.WithLabelValues(msg.ErrorCode()).Inc()
}

// ObserveBatch records one database batch write.
func ObserveBatch(size int, err error) {
	if err != nil {
		batchesTotal.WithLabelValues("error").Inc()
		return
	}
	batchesTotal.WithLabelValues("ok").Inc()
	batchSize.Observe(float64(size))
}

func AddPrunedRows(n int64) {
	prunedRowsTotal.Add(float64(n))
}

func SetScannerConnected(up bool) {
	if up {
		scannerConnected.Set(1)
		return
	}
	scannerConnected.Set(0)
}

func IncScannerReconnects() {
	scannerReconnectsTotal.Inc()
}
