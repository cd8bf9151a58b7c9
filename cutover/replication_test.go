// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cutover

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netapp/svm-cutover/ontap/api"
	"github.com/netapp/svm-cutover/utils/errors"
)

func plannedRelationships(t *testing.T, target *fakeCluster, destinations ...string) []ReplicationRelationship {
	t.Helper()
	relationships, err := ResolveReplications(context.Background(), target, destinations)
	require.NoError(t, err)
	return relationships
}

func TestFinalizeReplications_SkippedAndBroken(t *testing.T) {
	_, target := newTestClusters()
	run := newTestRun(t, nil, target, testOptions())

	results, err := run.FinalizeReplications(context.Background(),
		plannedRelationships(t, target, "svm_dst:vol2", "svm_dst:vol1"))

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, StateSkipped, results[0].State)
	assert.Equal(t, StateBroken, results[1].State)
	assert.Equal(t, []FinalizerState{
		StateActive, StateFinalSyncing, StateQuiescing, StateQuiesced, StateBreaking, StateBroken,
	}, results[1].Transitions)

	assert.Equal(t, api.RelationshipBrokenOff, target.relationship("svm_dst:vol1").Status)
	assert.NotContains(t, target.calls, "UpdateReplication svm_dst:vol2")
	assert.NotContains(t, target.calls, "BreakReplication svm_dst:vol2")
}

func TestFinalizeReplications_NotFoundIsSkipped(t *testing.T) {
	_, target := newTestClusters()
	run := newTestRun(t, nil, target, testOptions())

	results, err := run.FinalizeReplications(context.Background(),
		[]ReplicationRelationship{{DestinationLocation: "svm_dst:gone", VolumeName: "gone"}})

	require.NoError(t, err)
	assert.Equal(t, StateSkipped, results[0].State)
	assert.Zero(t, target.mutations)
}

func TestFinalizeReplications_AlreadyQuiesced(t *testing.T) {
	_, target := newTestClusters()
	target.relationship("svm_dst:vol1").Status = api.RelationshipQuiesced
	run := newTestRun(t, nil, target, testOptions())

	results, err := run.FinalizeReplications(context.Background(), plannedRelationships(t, target, "svm_dst:vol1"))

	require.NoError(t, err)
	assert.Equal(t, []FinalizerState{StateActive, StateQuiesced, StateBreaking, StateBroken}, results[0].Transitions)
	assert.Equal(t, []string{"BreakReplication svm_dst:vol1"}, mutatingCalls(target))
}

func TestFinalizeReplications_PollsUntilTransferEnds(t *testing.T) {
	_, target := newTestClusters()
	destination := "svm_dst:vol1"
	planned := plannedRelationships(t, target, destination)
	target.statusQueue[destination] = []api.RelationshipStatus{
		api.RelationshipIdle, // finalizer's first read
		api.RelationshipTransferring,
		api.RelationshipTransferring,
		api.RelationshipIdle,
		api.RelationshipQuiescing,
	}
	run := newTestRun(t, nil, target, testOptions())

	results, err := run.FinalizeReplications(context.Background(), planned)

	require.NoError(t, err)
	assert.Equal(t, StateBroken, results[0].State)
	assert.Equal(t, []string{
		"UpdateReplication " + destination,
		"QuiesceReplication " + destination,
		"BreakReplication " + destination,
	}, mutatingCalls(target))
}

func TestFinalizeReplications_PollFailureIsWarning(t *testing.T) {
	_, target := newTestClusters()
	destination := "svm_dst:vol1"
	planned := plannedRelationships(t, target, destination)
	target.statusQueue[destination] = []api.RelationshipStatus{api.RelationshipIdle, api.RelationshipTransferring}
	run := newTestRun(t, nil, target, testOptions())

	// Every read after the first poll fails with a transport fault.
	reads := 0
	wrapped := &failingReads{fakeCluster: target, after: 2, reads: &reads,
		err: errors.TransientRemoteError("connection reset")}
	run.Target = wrapped

	results, err := run.FinalizeReplications(context.Background(), planned)

	require.NoError(t, err, "the break is still attempted")
	assert.Equal(t, StateBroken, results[0].State)
	assert.NotEmpty(t, results[0].Warnings)
}

func TestFinalizeReplications_BreakFailure(t *testing.T) {
	tests := []struct {
		name          string
		force         bool
		expectResults int
	}{
		{name: "fatal without force", force: false, expectResults: 1},
		{name: "continues with force", force: true, expectResults: 2},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, target := newTestClusters()
			target.relationships = append(target.relationships, &api.Relationship{
				DestinationPath: "svm_dst:vol3", Status: api.RelationshipIdle,
			})
			target.failures["BreakReplication svm_dst:vol1"] = errors.New("relationship is busy")

			options := testOptions()
			options.Force = test.force
			run := newTestRun(t, nil, target, options)

			results, err := run.FinalizeReplications(context.Background(),
				plannedRelationships(t, target, "svm_dst:vol1", "svm_dst:vol3"))

			require.Error(t, err)
			assert.True(t, errors.IsMutationError(err))
			assert.Contains(t, err.Error(), "[replication] svm_dst:vol1")
			assert.Len(t, results, test.expectResults)
			assert.Equal(t, StateBreaking, results[0].State)
		})
	}
}

func TestFinalizeReplications_RecordsAutoMount(t *testing.T) {
	_, target := newTestClusters()
	target.autoMountOnBreak = true
	run := newTestRun(t, nil, target, testOptions())

	results, err := run.FinalizeReplications(context.Background(), plannedRelationships(t, target, "svm_dst:vol1"))

	require.NoError(t, err)
	assert.True(t, results[0].AutoMounted)
	assert.Equal(t, "/vol1", results[0].JunctionPath)
}

func TestFinalizeReplications_Simulate(t *testing.T) {
	_, target := newTestClusters()
	options := testOptions()
	options.Simulate = true
	run := newTestRun(t, nil, target, options)

	results, err := run.FinalizeReplications(context.Background(), plannedRelationships(t, target, "svm_dst:vol1"))

	require.NoError(t, err)
	assert.Equal(t, StateBroken, results[0].State)
	assert.Zero(t, target.mutations)
	assert.Len(t, run.Actions(), 3)
	assert.Equal(t, api.RelationshipIdle, target.relationship("svm_dst:vol1").Status)
}

// failingReads fails every GetReplication after the first few.
type failingReads struct {
	*fakeCluster
	after int
	reads *int
	err   error
}

func (f *failingReads) GetReplication(ctx context.Context, destination string) (*api.Relationship, error) {
	*f.reads++
	if *f.reads > f.after {
		return nil, f.err
	}
	return f.fakeCluster.GetReplication(ctx, destination)
}

func mutatingCalls(f *fakeCluster) []string {
	var calls []string
	for _, call := range f.calls {
		if strings.HasPrefix(call, "Get") || strings.HasPrefix(call, "List") {
			continue
		}
		calls = append(calls, call)
	}
	return calls
}
