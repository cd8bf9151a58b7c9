// Copyright 2026 NetApp, Inc. All Rights Reserved.

package api

//go:generate mockgen -destination=../../mocks/mock_ontap/mock_api/mock_cluster.go github.com/netapp/svm-cutover/ontap/api ClusterClient

import (
	"context"
	"strings"

	"github.com/netapp/svm-cutover/ontap/api/azgo"
)

// ClusterClient is an authenticated session against one storage cluster. Get* calls return a
// NotFoundError when the resource does not exist, Create/Add calls an AlreadyExistsError when it does.
type ClusterClient interface {
	ListInterfaces(ctx context.Context, svm string) ([]Interface, error)
	GetInterface(ctx context.Context, svm, name string) (*Interface, error)
	SetInterface(ctx context.Context, svm, name string, modify InterfaceModify) error

	ListReplications(ctx context.Context) ([]Relationship, error)
	GetReplication(ctx context.Context, destination string) (*Relationship, error)
	UpdateReplication(ctx context.Context, destination string) error
	QuiesceReplication(ctx context.Context, destination string) error
	BreakReplication(ctx context.Context, destination string) error

	ListShares(ctx context.Context, svm string) ([]Share, error)
	GetShare(ctx context.Context, svm, name string) (*Share, error)
	CreateShare(ctx context.Context, svm string, share Share) error
	AddShareAcl(ctx context.Context, svm, share string, acl ShareAcl) error
	RemoveShareAcl(ctx context.Context, svm, share, principal, principalType string) error
	InvokeLegacyCommand(ctx context.Context, svm string, request azgo.ZAPIRequest) (*azgo.Result, error)

	ListSessions(ctx context.Context, svm string) ([]ClientSession, error)

	GetVolume(ctx context.Context, svm, name string) (*Volume, error)
	MountVolume(ctx context.Context, svm, name, junctionPath string) error

	GetCifsService(ctx context.Context, svm string) (*CifsService, error)
	SetCifsServiceEnabled(ctx context.Context, svm string, enabled bool) error

	SupportsFeature(ctx context.Context, feature Feature) bool
	Disconnect(ctx context.Context)
}

// Interface is a logical network interface bound to an SVM.
type Interface struct {
	Name      string   `json:"name"`
	UUID      string   `json:"uuid"`
	SVM       string   `json:"svm"`
	Address   string   `json:"address"`
	Netmask   string   `json:"netmask"`
	Enabled   bool     `json:"enabled"`
	OperState string   `json:"operState,omitempty"`
	Role      string   `json:"role,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	Protocols []string `json:"protocols,omitempty"`
	HomeNode  string   `json:"homeNode,omitempty"`
}

// InterfaceModify carries the fields to change on an interface. Nil or empty fields are left alone.
type InterfaceModify struct {
	Enabled *bool
	Address string
	Netmask string
}

func (m InterfaceModify) IsEmpty() bool {
	return m.Enabled == nil && m.Address == "" && m.Netmask == ""
}

type RelationshipStatus string

const (
	RelationshipIdle         RelationshipStatus = "idle"
	RelationshipTransferring RelationshipStatus = "transferring"
	RelationshipQuiescing    RelationshipStatus = "quiescing"
	RelationshipQuiesced     RelationshipStatus = "quiesced"
	RelationshipBrokenOff    RelationshipStatus = "broken-off"
	RelationshipUnknown      RelationshipStatus = "unknown"
)

// ParseRelationshipStatus accepts the status spellings of both management surfaces.
func ParseRelationshipStatus(s string) RelationshipStatus {
	switch strings.ToLower(strings.ReplaceAll(s, "_", "-")) {
	case "idle":
		return RelationshipIdle
	case "transferring", "finalizing", "preparing":
		return RelationshipTransferring
	case "quiescing":
		return RelationshipQuiescing
	case "quiesced", "paused":
		return RelationshipQuiesced
	case "broken-off":
		return RelationshipBrokenOff
	default:
		return RelationshipUnknown
	}
}

// RelationshipStatusFromREST folds the REST relationship state and transfer state into one status.
func RelationshipStatusFromREST(state, transferState string) RelationshipStatus {
	state = strings.ToLower(state)
	transferState = strings.ToLower(transferState)

	if state == "broken_off" {
		return RelationshipBrokenOff
	}

	switch transferState {
	case "transferring", "preparing", "finalizing", "queued":
		if state == "paused" {
			return RelationshipQuiescing
		}
		return RelationshipTransferring
	}

	switch state {
	case "paused":
		return RelationshipQuiesced
	case "snapmirrored", "in_sync", "uninitialized", "out_of_sync", "synchronizing":
		return RelationshipIdle
	}
	return RelationshipUnknown
}

// Relationship is an asynchronous replication link, identified by its destination path "svm:volume".
type Relationship struct {
	UUID            string             `json:"uuid"`
	SourcePath      string             `json:"sourcePath"`
	DestinationPath string             `json:"destinationPath"`
	Status          RelationshipStatus `json:"status"`
	MirrorState     string             `json:"mirrorState,omitempty"`
	Healthy         bool               `json:"healthy"`
	TransferBytes   uint64             `json:"transferBytes,omitempty"`
}

// DestinationSVM returns the SVM component of the destination path.
func (r Relationship) DestinationSVM() string {
	svm, _, _ := strings.Cut(r.DestinationPath, ":")
	return svm
}

// DestinationVolume returns the volume component of the destination path.
func (r Relationship) DestinationVolume() string {
	_, volume, _ := strings.Cut(r.DestinationPath, ":")
	return volume
}

// Share is a CIFS share as the primary surface reports and creates it.
type Share struct {
	Name              string     `json:"name"`
	Path              string     `json:"path"`
	Comment           string     `json:"comment,omitempty"`
	FileUmask         *int       `json:"fileUmask,omitempty"`
	DirUmask          *int       `json:"dirUmask,omitempty"`
	OfflineFilesMode  string     `json:"offlineFiles,omitempty"`
	AttributeCacheTTL *int       `json:"attributeCacheTtl,omitempty"`
	HomeDirectory     bool       `json:"homeDirectory,omitempty"`
	Acls              []ShareAcl `json:"acls,omitempty"`
}

// ShareAcl is one access control entry of a share.
type ShareAcl struct {
	Principal     string `json:"principal"`
	PrincipalType string `json:"principalType"`
	Permission    string `json:"permission"`
}

type Volume struct {
	Name         string `json:"name"`
	UUID         string `json:"uuid"`
	SVM          string `json:"svm"`
	JunctionPath string `json:"junctionPath,omitempty"`
}

func (v Volume) IsMounted() bool {
	return v.JunctionPath != ""
}

// ClientSession is an open client connection to the file service of an SVM.
type ClientSession struct {
	Identifier    string `json:"identifier"`
	User          string `json:"user,omitempty"`
	ClientAddress string `json:"clientAddress,omitempty"`
	Protocol      string `json:"protocol,omitempty"`
}

type CifsService struct {
	Name    string `json:"name"`
	SVM     string `json:"svm"`
	Enabled bool   `json:"enabled"`
}
