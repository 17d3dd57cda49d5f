package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsServiceSnapshotAggregatesDBQueries(t *testing.T) {
	svc := NewMetricsService()

	svc.ObserveDBQuery("grades.list", 10*time.Millisecond)
	svc.ObserveDBQuery("tasks.list", 30*time.Millisecond)

	snap := svc.Snapshot()
	assert.Equal(t, uint64(2), snap.DBQueryCount)
	assert.InDelta(t, 20.0, snap.AverageDBQueryDurationMs, 0.01)
}

func TestMetricsServiceNilReceiverIsSafe(t *testing.T) {
	var svc *MetricsService

	svc.ObserveDBQuery("grades.list", time.Millisecond)
	svc.ObserveHTTPRequest("GET", "/grades", 200, time.Millisecond)
	svc.RecordCacheOperation(true, time.Millisecond)

	assert.Equal(t, uint64(0), svc.Snapshot().RequestsTotal)
}
