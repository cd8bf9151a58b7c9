// Copyright 2026 NetApp, Inc. All Rights Reserved.

package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	r.ObserveOperation("identity", ResultExecuted)
	r.ObserveOperation("identity", ResultExecuted)
	r.ObserveOperation("rematerialize", ResultSimulated)
	r.ObservePhase("replication", 3*time.Second, true)
	r.ObservePoll("transient_error")
	r.SetResources("shares_created", 4)
	r.SetSuccess(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.operationsTotal.WithLabelValues("identity", ResultExecuted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.operationsTotal.WithLabelValues("rematerialize", ResultSimulated)))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.phaseDurationSeconds.WithLabelValues("replication", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.pollsTotal.WithLabelValues("transient_error")))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.runSummary.WithLabelValues("shares_created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runSuccess))

	r.SetSuccess(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(r.runSuccess))
}

func TestRecordersAreIndependent(t *testing.T) {
	first := NewRecorder()
	second := NewRecorder()

	first.ObserveOperation("identity", ResultExecuted)
	assert.Equal(t, 0.0, testutil.ToFloat64(second.operationsTotal.WithLabelValues("identity", ResultExecuted)))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.SetResources("relationships_broken", 2)

	path := filepath.Join(t.TempDir(), "svmcutover.prom")
	require.NoError(t, r.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `svmcutover_run_resources{resource="relationships_broken"} 2`)
	assert.Contains(t, string(content), "svmcutover_build_info")
}
