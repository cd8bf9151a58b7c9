// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cutover

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/netapp/svm-cutover/config"
	"github.com/netapp/svm-cutover/ontap/api"
	"github.com/netapp/svm-cutover/ontap/api/azgo"
	"github.com/netapp/svm-cutover/snapshot"
	"github.com/netapp/svm-cutover/utils/errors"
)

// fakeCluster is an in-memory cluster. It counts every mutating call and fails the calls named in
// failures, keyed by "<Method> <resource>".
type fakeCluster struct {
	interfaces    []*api.Interface
	relationships []*api.Relationship
	shares        map[string]*api.Share
	volumes       map[string]*api.Volume
	sessions      []api.ClientSession
	service       *api.CifsService
	features      bool

	// statusQueue holds statuses GetReplication reports before the stored one, per destination.
	statusQueue      map[string][]api.RelationshipStatus
	autoMountOnBreak bool
	failures         map[string]error
	// onMutate runs after a mutating call is recorded.
	onMutate func(call string)

	mutations    int
	calls        []string
	legacy       []azgo.ZAPIRequest
	disconnected bool
}

var _ api.ClusterClient = (*fakeCluster)(nil)

func newFakeCluster() *fakeCluster {
	return &fakeCluster{
		shares:      make(map[string]*api.Share),
		volumes:     make(map[string]*api.Volume),
		statusQueue: make(map[string][]api.RelationshipStatus),
		failures:    make(map[string]error),
		features:    true,
	}
}

func (f *fakeCluster) mutate(call string) error {
	f.mutations++
	f.calls = append(f.calls, call)
	if f.onMutate != nil {
		f.onMutate(call)
	}
	return f.failures[call]
}

func (f *fakeCluster) read(call string) error {
	f.calls = append(f.calls, call)
	return f.failures[call]
}

func (f *fakeCluster) iface(name string) *api.Interface {
	for _, iface := range f.interfaces {
		if iface.Name == name {
			return iface
		}
	}
	return nil
}

func (f *fakeCluster) relationship(destination string) *api.Relationship {
	for _, relationship := range f.relationships {
		if relationship.DestinationPath == destination {
			return relationship
		}
	}
	return nil
}

func (f *fakeCluster) ListInterfaces(_ context.Context, _ string) ([]api.Interface, error) {
	if err := f.read("ListInterfaces"); err != nil {
		return nil, err
	}
	interfaces := make([]api.Interface, 0, len(f.interfaces))
	for _, iface := range f.interfaces {
		interfaces = append(interfaces, *iface)
	}
	return interfaces, nil
}

func (f *fakeCluster) GetInterface(_ context.Context, _, name string) (*api.Interface, error) {
	if err := f.read("GetInterface " + name); err != nil {
		return nil, err
	}
	iface := f.iface(name)
	if iface == nil {
		return nil, errors.NotFoundError("interface %s not found", name)
	}
	copied := *iface
	return &copied, nil
}

func (f *fakeCluster) SetInterface(ctx context.Context, _, name string, modify api.InterfaceModify) error {
	call := "SetInterface " + name
	if modify.Address != "" {
		call = "SetInterfaceAddress " + name
	}
	if err := ctx.Err(); err != nil {
		f.calls = append(f.calls, call)
		return err
	}
	if err := f.mutate(call); err != nil {
		return err
	}
	iface := f.iface(name)
	if iface == nil {
		return errors.NotFoundError("interface %s not found", name)
	}
	if modify.Enabled != nil {
		iface.Enabled = *modify.Enabled
	}
	if modify.Address != "" {
		iface.Address = modify.Address
	}
	if modify.Netmask != "" {
		iface.Netmask = modify.Netmask
	}
	return nil
}

func (f *fakeCluster) ListReplications(_ context.Context) ([]api.Relationship, error) {
	if err := f.read("ListReplications"); err != nil {
		return nil, err
	}
	relationships := make([]api.Relationship, 0, len(f.relationships))
	for _, relationship := range f.relationships {
		relationships = append(relationships, *relationship)
	}
	return relationships, nil
}

func (f *fakeCluster) GetReplication(_ context.Context, destination string) (*api.Relationship, error) {
	if err := f.read("GetReplication " + destination); err != nil {
		return nil, err
	}
	relationship := f.relationship(destination)
	if relationship == nil {
		return nil, errors.NotFoundError("relationship %s not found", destination)
	}
	copied := *relationship
	if queue := f.statusQueue[destination]; len(queue) > 0 {
		copied.Status = queue[0]
		f.statusQueue[destination] = queue[1:]
	}
	return &copied, nil
}

func (f *fakeCluster) setReplicationStatus(call, destination string, status api.RelationshipStatus) error {
	if err := f.mutate(call + " " + destination); err != nil {
		return err
	}
	relationship := f.relationship(destination)
	if relationship == nil {
		return errors.NotFoundError("relationship %s not found", destination)
	}
	relationship.Status = status
	return nil
}

func (f *fakeCluster) UpdateReplication(_ context.Context, destination string) error {
	return f.setReplicationStatus("UpdateReplication", destination, api.RelationshipIdle)
}

func (f *fakeCluster) QuiesceReplication(_ context.Context, destination string) error {
	return f.setReplicationStatus("QuiesceReplication", destination, api.RelationshipQuiesced)
}

func (f *fakeCluster) BreakReplication(_ context.Context, destination string) error {
	if err := f.setReplicationStatus("BreakReplication", destination, api.RelationshipBrokenOff); err != nil {
		return err
	}
	if f.autoMountOnBreak {
		_, name, _ := strings.Cut(destination, ":")
		if volume, ok := f.volumes[name]; ok {
			volume.JunctionPath = "/" + name
		}
	}
	return nil
}

func (f *fakeCluster) ListShares(_ context.Context, _ string) ([]api.Share, error) {
	if err := f.read("ListShares"); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(f.shares))
	for name := range f.shares {
		names = append(names, name)
	}
	sort.Strings(names)

	shares := make([]api.Share, 0, len(names))
	for _, name := range names {
		shares = append(shares, *f.shares[name])
	}
	return shares, nil
}

func (f *fakeCluster) GetShare(_ context.Context, _, name string) (*api.Share, error) {
	if err := f.read("GetShare " + name); err != nil {
		return nil, err
	}
	share, ok := f.shares[name]
	if !ok {
		return nil, errors.NotFoundError("share %s not found", name)
	}
	copied := *share
	copied.Acls = append([]api.ShareAcl(nil), share.Acls...)
	return &copied, nil
}

func (f *fakeCluster) CreateShare(_ context.Context, _ string, share api.Share) error {
	if err := f.mutate("CreateShare " + share.Name); err != nil {
		return err
	}
	if _, ok := f.shares[share.Name]; ok {
		return errors.AlreadyExistsError("share %s already exists", share.Name)
	}
	share.Acls = []api.ShareAcl{{
		Principal:     config.DefaultEveryonePrincipal,
		PrincipalType: config.PrincipalTypeWindows,
		Permission:    "full_control",
	}}
	f.shares[share.Name] = &share
	return nil
}

func (f *fakeCluster) AddShareAcl(_ context.Context, _, name string, acl api.ShareAcl) error {
	if err := f.mutate("AddShareAcl " + name + "/" + acl.Principal); err != nil {
		return err
	}
	share, ok := f.shares[name]
	if !ok {
		return errors.NotFoundError("share %s not found", name)
	}
	for _, existing := range share.Acls {
		if existing.Principal == acl.Principal && existing.PrincipalType == acl.PrincipalType {
			return errors.AlreadyExistsError("acl %s on %s already exists", acl.Principal, name)
		}
	}
	share.Acls = append(share.Acls, acl)
	return nil
}

func (f *fakeCluster) RemoveShareAcl(_ context.Context, _, name, principal, principalType string) error {
	if err := f.mutate("RemoveShareAcl " + name + "/" + principal); err != nil {
		return err
	}
	share, ok := f.shares[name]
	if !ok {
		return errors.NotFoundError("share %s not found", name)
	}
	for i, existing := range share.Acls {
		if existing.Principal == principal && existing.PrincipalType == principalType {
			share.Acls = append(share.Acls[:i], share.Acls[i+1:]...)
			return nil
		}
	}
	return errors.NotFoundError("acl %s on %s not found", principal, name)
}

func (f *fakeCluster) InvokeLegacyCommand(_ context.Context, _ string, request azgo.ZAPIRequest) (*azgo.Result, error) {
	name := ""
	if modify, ok := request.(*azgo.CifsShareModifyRequest); ok {
		name = modify.ShareName()
	}
	if err := f.mutate("InvokeLegacyCommand " + name); err != nil {
		return nil, err
	}
	f.legacy = append(f.legacy, request)
	return &azgo.Result{ResultStatusAttr: "passed"}, nil
}

func (f *fakeCluster) ListSessions(_ context.Context, _ string) ([]api.ClientSession, error) {
	if err := f.read("ListSessions"); err != nil {
		return nil, err
	}
	return f.sessions, nil
}

func (f *fakeCluster) GetVolume(_ context.Context, _, name string) (*api.Volume, error) {
	if err := f.read("GetVolume " + name); err != nil {
		return nil, err
	}
	volume, ok := f.volumes[name]
	if !ok {
		return nil, errors.NotFoundError("volume %s not found", name)
	}
	copied := *volume
	return &copied, nil
}

func (f *fakeCluster) MountVolume(_ context.Context, _, name, junctionPath string) error {
	if err := f.mutate("MountVolume " + name); err != nil {
		return err
	}
	volume, ok := f.volumes[name]
	if !ok {
		return errors.NotFoundError("volume %s not found", name)
	}
	volume.JunctionPath = junctionPath
	return nil
}

func (f *fakeCluster) GetCifsService(_ context.Context, svm string) (*api.CifsService, error) {
	if err := f.read("GetCifsService"); err != nil {
		return nil, err
	}
	if f.service == nil {
		return nil, errors.NotFoundError("no CIFS service on SVM %s", svm)
	}
	copied := *f.service
	return &copied, nil
}

func (f *fakeCluster) SetCifsServiceEnabled(_ context.Context, _ string, enabled bool) error {
	if err := f.mutate(fmt.Sprintf("SetCifsServiceEnabled %t", enabled)); err != nil {
		return err
	}
	f.service.Enabled = enabled
	return nil
}

func (f *fakeCluster) SupportsFeature(_ context.Context, _ api.Feature) bool {
	return f.features
}

func (f *fakeCluster) Disconnect(_ context.Context) {
	f.disconnected = true
}

const (
	testSourceSVM = "svm_src"
	testTargetSVM = "svm_dst"
)

// newTestClusters returns a source and target with two CIFS interface pairs, one idle and one broken-off
// relationship, and an unmounted replica volume.
func newTestClusters() (source, target *fakeCluster) {
	source = newFakeCluster()
	source.interfaces = []*api.Interface{
		{Name: "lif1", SVM: testSourceSVM, Address: "10.0.0.21", Netmask: "255.255.255.0", Enabled: true,
			Role: "data", Protocols: []string{"cifs"}},
		{Name: "lif2", SVM: testSourceSVM, Address: "10.0.0.22", Netmask: "255.255.255.0", Enabled: true,
			Role: "data", Protocols: []string{"cifs"}},
		{Name: "mgmt", SVM: testSourceSVM, Address: "10.0.0.10", Netmask: "255.255.255.0", Enabled: true,
			Role: "mgmt", Protocols: []string{"none"}},
	}
	source.service = &api.CifsService{Name: "CIFS_SRC", SVM: testSourceSVM, Enabled: true}

	target = newFakeCluster()
	target.interfaces = []*api.Interface{
		{Name: "lif1_dr", SVM: testTargetSVM, Address: "192.168.0.21", Netmask: "255.255.255.0",
			Role: "data", Protocols: []string{"data_cifs"}},
		{Name: "lif2_dr", SVM: testTargetSVM, Address: "192.168.0.22", Netmask: "255.255.255.0",
			Role: "data", Protocols: []string{"data_cifs"}},
	}
	target.relationships = []*api.Relationship{
		{SourcePath: testSourceSVM + ":vol1", DestinationPath: testTargetSVM + ":vol1", Status: api.RelationshipIdle},
		{SourcePath: testSourceSVM + ":vol2", DestinationPath: testTargetSVM + ":vol2",
			Status: api.RelationshipBrokenOff},
		{SourcePath: "svm_other:vol9", DestinationPath: "svm_elsewhere:vol9", Status: api.RelationshipIdle},
	}
	target.volumes["vol1"] = &api.Volume{Name: "vol1", SVM: testTargetSVM}
	target.volumes["vol2"] = &api.Volume{Name: "vol2", SVM: testTargetSVM, JunctionPath: "/vol2"}
	target.service = &api.CifsService{Name: "CIFS_DST", SVM: testTargetSVM, Enabled: true}

	return source, target
}

func newTestSnapshot() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Shares: []snapshot.ExportedShare{
			{ShareName: "data", Path: "/vol1/data", Comment: "team data",
				PropertySet: []string{"oplocks", "browsable", "change-notify"}},
			{ShareName: "home_%w", Path: "/home/%w", PropertySet: []string{"browsable"}},
			{ShareName: "c$", Path: "/"},
		},
		Acls: []snapshot.ExportedAcl{
			{ShareName: "data", Principal: `CORP\engineering`, PermissionLevel: "change"},
			{ShareName: "home_%w", Principal: `CORP\users`, PrincipalType: "windows", PermissionLevel: "full_control"},
			{ShareName: "retired", Principal: `CORP\users`, PermissionLevel: "read"},
		},
		Volumes:    []string{"vol1", "vol3"},
		HasVolumes: true,
	}
}

func testOptions() Options {
	return Options{
		PollInterval: time.Millisecond,
		SettleDelay:  time.Millisecond,
		RetryBudget:  config.DefaultRetryBudget,
	}
}

func newTestRun(t *testing.T, source, target api.ClusterClient, options Options) *Run {
	t.Helper()
	return &Run{
		Source:    source,
		Target:    target,
		SourceSVM: testSourceSVM,
		TargetSVM: testTargetSVM,
		Options:   options,
	}
}
