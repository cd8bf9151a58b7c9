// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cutover

import (
	"context"
	"sort"

	log "github.com/sirupsen/logrus"

	. "github.com/netapp/svm-cutover/logging"
	"github.com/netapp/svm-cutover/ontap/api"
	"github.com/netapp/svm-cutover/snapshot"
	"github.com/netapp/svm-cutover/utils/errors"
)

// VolumeCrossCheck compares replicated volumes with the volumes recorded in the snapshot.
type VolumeCrossCheck struct {
	InBoth          []string `json:"inBoth"`
	OnlyReplication []string `json:"onlyReplication"`
	OnlySnapshot    []string `json:"onlySnapshot"`
}

// PairInterfaces enforces the 1:1 mapping and pairs source and target interfaces by position.
func PairInterfaces(source, target []api.Interface) ([]InterfacePair, error) {
	if len(source) != len(target) {
		return nil, errors.PreconditionError(
			"interface count mismatch: %d source interfaces (%v), %d target interfaces (%v)",
			len(source), interfaceNameList(source), len(target), interfaceNameList(target))
	}

	seen := make(map[string]bool, len(target))
	pairs := make([]InterfacePair, 0, len(source))
	for i := range source {
		if source[i].Address == "" {
			return nil, errors.PreconditionError("source interface %s has no address", source[i].Name)
		}
		if seen[target[i].Name] {
			return nil, errors.PreconditionError("target interface %s is listed twice", target[i].Name)
		}
		seen[target[i].Name] = true

		pairs = append(pairs, InterfacePair{
			SourceInterface: source[i].Name,
			TargetInterface: target[i].Name,
			SourceAddress:   source[i].Address,
			SourceNetmask:   source[i].Netmask,
		})
	}
	return pairs, nil
}

// CrossCheckVolumes logs which replicated volumes the snapshot knows about and which it does not. A
// mismatch is reported, never enforced. Without a recorded volume list it returns nil.
func CrossCheckVolumes(
	ctx context.Context, relationships []ReplicationRelationship, snap *snapshot.Snapshot,
) *VolumeCrossCheck {
	if snap == nil || !snap.HasVolumes {
		Logc(ctx).Debug("No volume list in the snapshot; skipping the volume cross-check.")
		return nil
	}

	replicated := make(map[string]bool, len(relationships))
	for _, relationship := range relationships {
		replicated[relationship.VolumeName] = true
	}
	recorded := make(map[string]bool, len(snap.Volumes))
	for _, volume := range snap.Volumes {
		recorded[volume] = true
	}

	check := &VolumeCrossCheck{InBoth: []string{}, OnlyReplication: []string{}, OnlySnapshot: []string{}}
	for volume := range replicated {
		if recorded[volume] {
			check.InBoth = append(check.InBoth, volume)
		} else {
			check.OnlyReplication = append(check.OnlyReplication, volume)
		}
	}
	for volume := range recorded {
		if !replicated[volume] {
			check.OnlySnapshot = append(check.OnlySnapshot, volume)
		}
	}
	sort.Strings(check.InBoth)
	sort.Strings(check.OnlyReplication)
	sort.Strings(check.OnlySnapshot)

	entry := Logc(ctx).WithFields(log.Fields{
		"inBoth":          check.InBoth,
		"onlyReplication": check.OnlyReplication,
		"onlySnapshot":    check.OnlySnapshot,
	})
	if len(check.OnlyReplication) > 0 || len(check.OnlySnapshot) > 0 {
		entry.Warn("Replicated volumes and snapshot volumes differ.")
	} else {
		entry.Info("Replicated volumes match the snapshot.")
	}

	return check
}
