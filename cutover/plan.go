// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cutover

import (
	"fmt"

	"github.com/brunoga/deep"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/netapp/svm-cutover/ontap/api"
	"github.com/netapp/svm-cutover/snapshot"
)

// InterfacePair moves the address of one source interface onto one target interface.
type InterfacePair struct {
	SourceInterface string `json:"sourceInterface"`
	TargetInterface string `json:"targetInterface"`
	SourceAddress   string `json:"sourceAddress"`
	SourceNetmask   string `json:"sourceNetmask"`
}

// ReplicationRelationship is a relationship whose destination lives on the target SVM.
type ReplicationRelationship struct {
	SourceLocation      string                 `json:"sourceLocation"`
	DestinationLocation string                 `json:"destinationLocation"`
	VolumeName          string                 `json:"volumeName"`
	Status              api.RelationshipStatus `json:"status"`
}

// CutoverPlan is built once per run by discovery and validation and is read-only afterwards.
type CutoverPlan struct {
	SourceSVM                  string                    `json:"sourceSVM"`
	TargetSVM                  string                    `json:"targetSVM"`
	InterfacePairs             []InterfacePair           `json:"interfacePairs"`
	Relationships              []ReplicationRelationship `json:"relationships"`
	Shares                     []snapshot.ExportedShare  `json:"shares"`
	Acls                       []snapshot.ExportedAcl    `json:"acls"`
	Simulate                   bool                      `json:"simulate"`
	ForceDespiteActiveSessions bool                      `json:"forceDespiteActiveSessions"`

	VolumeCheck *VolumeCrossCheck `json:"volumeCheck,omitempty" hash:"ignore"`
}

// newPlan copies the snapshot so later changes to the caller's data cannot reach the plan.
func newPlan(
	sourceSVM, targetSVM string, pairs []InterfacePair, relationships []ReplicationRelationship,
	snap *snapshot.Snapshot, options Options,
) (*CutoverPlan, error) {
	plan := &CutoverPlan{
		SourceSVM:                  sourceSVM,
		TargetSVM:                  targetSVM,
		InterfacePairs:             pairs,
		Relationships:              relationships,
		Simulate:                   options.Simulate,
		ForceDespiteActiveSessions: options.Force,
	}

	if snap != nil {
		copied, err := deep.Copy(*snap)
		if err != nil {
			return nil, fmt.Errorf("could not copy configuration snapshot; %v", err)
		}
		plan.Shares = copied.Shares
		plan.Acls = copied.Acls
	}

	return plan, nil
}

// Fingerprint identifies the plan contents, so reruns against the same state can be correlated in logs.
func (p *CutoverPlan) Fingerprint() (string, error) {
	hash, err := hashstructure.Hash(p, hashstructure.FormatV2, nil)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", hash), nil
}
