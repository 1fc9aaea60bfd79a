package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"bcbp_trmnl/internal/models"
)

func TestObserveScan(t *testing.T) {
	accepted := testutil.ToFloat64(scansTotal.WithLabelValues("accepted"))
	rejected := testutil.ToFloat64(scansTotal.WithLabelValues("rejected"))
	badFormat := testutil.ToFloat64(decodeErrorsTotal.WithLabelValues("unsupported_format"))

	ObserveScan(models.NewScanMessage("M1DESMARAIS/LUC       EABC123 YULFRAAC 0834 326J001A0025 100", "test", time.Now()))
	ObserveScan(models.NewScanMessage("XX", "test", time.Now()))

	assert.Equal(t, accepted+1, testutil.ToFloat64(scansTotal.WithLabelValues("accepted")))
	assert.Equal(t, rejected+1, testutil.ToFloat64(scansTotal.WithLabelValues("rejected")))
	assert.Equal(t, badFormat+1, testutil.ToFloat64(decodeErrorsTotal.WithLabelValues("unsupported_format")))
}

func TestObserveBatch(t *testing.T) {
	ok := testutil.ToFloat64(batchesTotal.WithLabelValues("ok"))
	failed := testutil.ToFloat64(batchesTotal.WithLabelValues("error"))

	ObserveBatch(10, nil)
	ObserveBatch(10, errors.New("disk full"))

	assert.Equal(t, ok+1, testutil.ToFloat64(batchesTotal.WithLabelValues("ok")))
	assert.Equal(t, failed+1, testutil.ToFloat64(batchesTotal.WithLabelValues("error")))
}

func TestScannerGauges(t *testing.T) {
	SetScannerConnected(true)
	assert.Equal(t, float64(1), testutil.ToFloat64(scannerConnected))
	SetScannerConnected(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(scannerConnected))

	before := testutil.ToFloat64(prunedRowsTotal)
	AddPrunedRows(3)
	assert.Equal(t, before+3, testutil.ToFloat64(prunedRowsTotal))
}
