package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryIsSingleton(t *testing.T) {
	assert.Same(t, Registry(), Registry())
}

func TestRecordsCounter(t *testing.T) {
	before := testutil.ToFloat64(AttendanceRecordsTotal.WithLabelValues("team", "insert"))
	AttendanceRecordsTotal.WithLabelValues("team", "insert").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(AttendanceRecordsTotal.WithLabelValues("team", "insert")))
}

func TestRegistryGathers(t *testing.T) {
	SyncRunsTotal.WithLabelValues("success").Inc()
	families, err := Registry().Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["competition_attendance_sync_runs_total"])
}
