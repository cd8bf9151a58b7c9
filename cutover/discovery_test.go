// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cutover

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netapp/svm-cutover/ontap/api"
	"github.com/netapp/svm-cutover/snapshot"
	"github.com/netapp/svm-cutover/utils/errors"
)

func TestDiscoverInterfaces(t *testing.T) {
	source, target := newTestClusters()
	ctx := context.Background()

	matched, err := DiscoverInterfaces(ctx, source, testSourceSVM, NewInterfaceMatcher(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"lif1", "lif2"}, interfaceNames(matched))

	matched, err = DiscoverInterfaces(ctx, target, testTargetSVM, NewInterfaceMatcher(false))
	require.NoError(t, err)
	assert.Equal(t, []string{"lif1_dr", "lif2_dr"}, interfaceNames(matched), "target interfaces may be down")
}

func TestDiscoverInterfaces_SortedByName(t *testing.T) {
	source := newFakeCluster()
	source.interfaces = []*api.Interface{
		{Name: "lif_b", Role: "data", Protocols: []string{"cifs"}, Enabled: true},
		{Name: "lif_a", Role: "data", Protocols: []string{"cifs"}, Enabled: true},
	}

	matched, err := DiscoverInterfaces(context.Background(), source, testSourceSVM, NewInterfaceMatcher(true))

	require.NoError(t, err)
	assert.Equal(t, []string{"lif_a", "lif_b"}, interfaceNames(matched))
}

func TestDiscoverInterfaces_NoneMatched(t *testing.T) {
	for _, protocol := range []string{"CIFS", "cifs", "data_cifs"} {
		t.Run(protocol, func(t *testing.T) {
			source := newFakeCluster()
			source.interfaces = []*api.Interface{
				{Name: "lif1", Role: "data", Protocols: []string{protocol}, Enabled: false},
				{Name: "nfs1", Role: "data", Protocols: []string{"nfs"}, Enabled: true},
			}

			_, err := DiscoverInterfaces(context.Background(), source, testSourceSVM, NewInterfaceMatcher(true))

			require.Error(t, err)
			assert.True(t, errors.IsPreconditionError(err))
			assert.Contains(t, err.Error(), "lif1 (protocols: "+protocol+", role: data, status: down)")
			assert.Contains(t, err.Error(), "nfs1 (protocols: nfs, role: data, status: up)")
		})
	}
}

func TestDiscoverInterfaces_Empty(t *testing.T) {
	_, err := DiscoverInterfaces(context.Background(), newFakeCluster(), testSourceSVM, NewInterfaceMatcher(true))

	assert.True(t, errors.IsPreconditionError(err))
	assert.Contains(t, err.Error(), "(none)")
}

func TestResolveInterfaces(t *testing.T) {
	source, _ := newTestClusters()

	resolved, err := ResolveInterfaces(context.Background(), source, testSourceSVM, []string{"lif2", "lif1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"lif2", "lif1"}, interfaceNames(resolved))

	_, err = ResolveInterfaces(context.Background(), source, testSourceSVM, []string{"lif1", "lif9"})
	assert.True(t, errors.IsPreconditionError(err))
	assert.Contains(t, err.Error(), "interface lif9 not found")
}

func TestDiscoverReplications(t *testing.T) {
	_, target := newTestClusters()

	relationships, err := DiscoverReplications(context.Background(), target, testTargetSVM)

	require.NoError(t, err)
	assert.Equal(t, []ReplicationRelationship{{
		SourceLocation:      "svm_src:vol1",
		DestinationLocation: "svm_dst:vol1",
		VolumeName:          "vol1",
		Status:              api.RelationshipIdle,
	}}, relationships)

	again, err := DiscoverReplications(context.Background(), target, testTargetSVM)
	require.NoError(t, err)
	assert.Equal(t, relationships, again, "discovery is repeatable until a break happens")
}

func TestDiscoverReplications_NoneIsWarning(t *testing.T) {
	_, target := newTestClusters()

	relationships, err := DiscoverReplications(context.Background(), target, "svm_unrelated")

	assert.NoError(t, err)
	assert.Empty(t, relationships)
}

func TestDiscoverReplications_ListFailure(t *testing.T) {
	_, target := newTestClusters()
	target.failures["ListReplications"] = errors.TransientRemoteError("timeout")

	_, err := DiscoverReplications(context.Background(), target, testTargetSVM)

	assert.True(t, errors.IsPreconditionError(err))
}

func TestResolveReplications(t *testing.T) {
	_, target := newTestClusters()

	relationships, err := ResolveReplications(context.Background(), target, []string{"svm_dst:vol1", "svm_dst:gone"})

	require.NoError(t, err)
	require.Len(t, relationships, 2)
	assert.Equal(t, "vol1", relationships[0].VolumeName)
	assert.Equal(t, ReplicationRelationship{
		DestinationLocation: "svm_dst:gone",
		VolumeName:          "gone",
		Status:              api.RelationshipUnknown,
	}, relationships[1])
}

func TestPairInterfaces(t *testing.T) {
	source := []api.Interface{
		{Name: "lif1", Address: "10.0.0.21", Netmask: "255.255.255.0"},
		{Name: "lif2", Address: "10.0.0.22", Netmask: "255.255.0.0"},
	}
	target := []api.Interface{{Name: "lif1_dr"}, {Name: "lif2_dr"}}

	pairs, err := PairInterfaces(source, target)

	require.NoError(t, err)
	assert.Equal(t, []InterfacePair{
		{SourceInterface: "lif1", TargetInterface: "lif1_dr", SourceAddress: "10.0.0.21", SourceNetmask: "255.255.255.0"},
		{SourceInterface: "lif2", TargetInterface: "lif2_dr", SourceAddress: "10.0.0.22", SourceNetmask: "255.255.0.0"},
	}, pairs)
}

func TestPairInterfaces_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		source  []api.Interface
		target  []api.Interface
		message string
	}{
		{
			name:    "count mismatch",
			source:  []api.Interface{{Name: "lif1", Address: "10.0.0.21"}, {Name: "lif2", Address: "10.0.0.22"}},
			target:  []api.Interface{{Name: "lif1_dr"}},
			message: "interface count mismatch: 2 source interfaces",
		},
		{
			name:    "no address",
			source:  []api.Interface{{Name: "lif1"}},
			target:  []api.Interface{{Name: "lif1_dr"}},
			message: "source interface lif1 has no address",
		},
		{
			name:    "target twice",
			source:  []api.Interface{{Name: "lif1", Address: "10.0.0.21"}, {Name: "lif2", Address: "10.0.0.22"}},
			target:  []api.Interface{{Name: "lif1_dr"}, {Name: "lif1_dr"}},
			message: "target interface lif1_dr is listed twice",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := PairInterfaces(test.source, test.target)
			assert.True(t, errors.IsPreconditionError(err))
			assert.Contains(t, err.Error(), test.message)
		})
	}
}

func TestCrossCheckVolumes(t *testing.T) {
	relationships := []ReplicationRelationship{{VolumeName: "vol1"}, {VolumeName: "vol2"}, {VolumeName: "apps"}}
	snap := &snapshot.Snapshot{Volumes: []string{"vol2", "vol1", "vol3"}, HasVolumes: true}

	check := CrossCheckVolumes(context.Background(), relationships, snap)

	require.NotNil(t, check)
	assert.Equal(t, []string{"vol1", "vol2"}, check.InBoth)
	assert.Equal(t, []string{"apps"}, check.OnlyReplication)
	assert.Equal(t, []string{"vol3"}, check.OnlySnapshot)
}

func TestCrossCheckVolumes_NoVolumeList(t *testing.T) {
	relationships := []ReplicationRelationship{{VolumeName: "vol1"}}

	assert.Nil(t, CrossCheckVolumes(context.Background(), relationships, nil))
	assert.Nil(t, CrossCheckVolumes(context.Background(), relationships, &snapshot.Snapshot{}))
}
