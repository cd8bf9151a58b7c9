// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cutover

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mockapi "github.com/netapp/svm-cutover/mocks/mock_ontap/mock_api"
	"github.com/netapp/svm-cutover/ontap/api"
	"github.com/netapp/svm-cutover/utils/errors"
)

var testPair = InterfacePair{
	SourceInterface: "lif1",
	TargetInterface: "lif1_dr",
	SourceAddress:   "10.0.0.21",
	SourceNetmask:   "255.255.255.0",
}

func TestMigrateIdentities(t *testing.T) {
	source, target := newTestClusters()
	run := newTestRun(t, source, target, testOptions())

	migrated, err := run.MigrateIdentities(context.Background(), []InterfacePair{
		testPair,
		{SourceInterface: "lif2", TargetInterface: "lif2_dr", SourceAddress: "10.0.0.22", SourceNetmask: "255.255.255.0"},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, migrated)

	for _, name := range []string{"lif1", "lif2"} {
		assert.False(t, source.iface(name).Enabled, "source %s should be down", name)
	}
	assert.Equal(t, "10.0.0.21", target.iface("lif1_dr").Address)
	assert.Equal(t, "10.0.0.22", target.iface("lif2_dr").Address)
	assert.True(t, target.iface("lif1_dr").Enabled)
	assert.True(t, target.iface("lif2_dr").Enabled)

	assert.Equal(t, []string{
		"SetInterface lif1_dr",
		"SetInterfaceAddress lif1_dr",
		"SetInterface lif1_dr",
		"SetInterface lif2_dr",
		"SetInterfaceAddress lif2_dr",
		"SetInterface lif2_dr",
	}, mutatingCalls(target))
}

func TestMigrateIdentities_SourceAlreadyDown(t *testing.T) {
	source, target := newTestClusters()
	source.iface("lif1").Enabled = false
	run := newTestRun(t, source, target, testOptions())

	migrated, err := run.MigrateIdentities(context.Background(), []InterfacePair{testPair})

	require.NoError(t, err)
	assert.Equal(t, 1, migrated)
	assert.Zero(t, source.mutations)
}

func TestMigrateIdentities_ContinuesAfterFailedPair(t *testing.T) {
	source, target := newTestClusters()
	target.failures["SetInterface lif1_dr"] = errors.New("interface is locked")
	run := newTestRun(t, source, target, testOptions())

	migrated, err := run.MigrateIdentities(context.Background(), []InterfacePair{
		testPair,
		{SourceInterface: "lif2", TargetInterface: "lif2_dr", SourceAddress: "10.0.0.22", SourceNetmask: "255.255.255.0"},
	})

	assert.True(t, errors.IsMutationError(err))
	assert.Contains(t, err.Error(), "[identity] interface svm_dst/lif1_dr")
	assert.Equal(t, 1, migrated)
	assert.Equal(t, "10.0.0.22", target.iface("lif2_dr").Address)
}

func TestMigrateIdentities_Simulate(t *testing.T) {
	source, target := newTestClusters()
	options := testOptions()
	options.Simulate = true
	run := newTestRun(t, source, target, options)

	migrated, err := run.MigrateIdentities(context.Background(), []InterfacePair{testPair})

	require.NoError(t, err)
	assert.Zero(t, migrated)
	assert.Zero(t, source.mutations+target.mutations)
	assert.Len(t, run.Actions(), 4)
	for _, action := range run.Actions() {
		assert.True(t, action.Simulated)
		assert.Equal(t, PhaseIdentity.String(), action.Phase)
	}
}

func TestMigrateIdentity_AddressFailureReenablesTarget(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	source := mockapi.NewMockClusterClient(mockCtrl)
	target := mockapi.NewMockClusterClient(mockCtrl)
	ctx := context.Background()

	down := api.InterfaceModify{Enabled: api.ToBoolPointer(false)}
	up := api.InterfaceModify{Enabled: api.ToBoolPointer(true)}
	address := api.InterfaceModify{Address: testPair.SourceAddress, Netmask: testPair.SourceNetmask}

	gomock.InOrder(
		source.EXPECT().GetInterface(ctx, testSourceSVM, "lif1").Return(&api.Interface{Name: "lif1", Enabled: true}, nil),
		source.EXPECT().SetInterface(ctx, testSourceSVM, "lif1", down).Return(nil),
		source.EXPECT().GetInterface(ctx, testSourceSVM, "lif1").Return(&api.Interface{Name: "lif1"}, nil),
		target.EXPECT().SetInterface(ctx, testTargetSVM, "lif1_dr", down).Return(nil),
		target.EXPECT().GetInterface(ctx, testTargetSVM, "lif1_dr").Return(&api.Interface{Name: "lif1_dr"}, nil),
		target.EXPECT().SetInterface(ctx, testTargetSVM, "lif1_dr", address).Return(errors.New("address in use")),
		target.EXPECT().SetInterface(gomock.Any(), testTargetSVM, "lif1_dr", up).Return(nil),
	)

	run := newTestRun(t, source, target, testOptions())
	err := run.migrateIdentity(ctx, testPair)

	require.Error(t, err)
	assert.True(t, errors.IsMutationError(err))
	assert.Contains(t, err.Error(), "address change failed; address in use")

	actions := run.Actions()
	require.Len(t, actions, 4)
	assert.Equal(t, "enable target interface lif1_dr", actions[3].Description)
}

func TestMigrateIdentity_UnconfirmedEnable(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	source := mockapi.NewMockClusterClient(mockCtrl)
	target := mockapi.NewMockClusterClient(mockCtrl)
	ctx := context.Background()

	source.EXPECT().GetInterface(ctx, testSourceSVM, "lif1").Return(&api.Interface{Name: "lif1"}, nil)
	target.EXPECT().SetInterface(gomock.Any(), testTargetSVM, "lif1_dr", gomock.Any()).Return(nil).Times(3)
	target.EXPECT().GetInterface(gomock.Any(), testTargetSVM, "lif1_dr").Return(
		&api.Interface{Name: "lif1_dr", Address: testPair.SourceAddress}, nil).AnyTimes()

	run := newTestRun(t, source, target, testOptions())
	err := run.migrateIdentity(ctx, testPair)

	assert.True(t, errors.IsMutationError(err))
	assert.Contains(t, err.Error(), "interface did not come up")
}

func TestMigrateIdentity_RecoveryOutlivesCancelledRun(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	source := mockapi.NewMockClusterClient(mockCtrl)
	target := mockapi.NewMockClusterClient(mockCtrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	down := api.InterfaceModify{Enabled: api.ToBoolPointer(false)}
	up := api.InterfaceModify{Enabled: api.ToBoolPointer(true)}
	address := api.InterfaceModify{Address: testPair.SourceAddress, Netmask: testPair.SourceNetmask}
	var enableCtxErr error

	gomock.InOrder(
		source.EXPECT().GetInterface(ctx, testSourceSVM, "lif1").Return(&api.Interface{Name: "lif1"}, nil),
		target.EXPECT().SetInterface(ctx, testTargetSVM, "lif1_dr", down).DoAndReturn(
			func(context.Context, string, string, api.InterfaceModify) error {
				cancel()
				return nil
			}),
		target.EXPECT().SetInterface(ctx, testTargetSVM, "lif1_dr", address).DoAndReturn(
			func(c context.Context, _, _ string, _ api.InterfaceModify) error {
				return c.Err()
			}),
		target.EXPECT().SetInterface(gomock.Any(), testTargetSVM, "lif1_dr", up).DoAndReturn(
			func(c context.Context, _, _ string, _ api.InterfaceModify) error {
				enableCtxErr = c.Err()
				return enableCtxErr
			}),
	)

	run := newTestRun(t, source, target, testOptions())
	err := run.migrateIdentity(ctx, testPair)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "address change failed")
	assert.NoError(t, enableCtxErr, "the enable call should run on a live context")

	actions := run.Actions()
	require.Len(t, actions, 3)
	assert.Equal(t, "enable target interface lif1_dr", actions[2].Description)
	assert.Empty(t, actions[2].Error)
}
