// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cutover

import (
	"context"
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	. "github.com/netapp/svm-cutover/logging"
	"github.com/netapp/svm-cutover/ontap/api"
	"github.com/netapp/svm-cutover/utils/errors"
)

// DiscoverInterfaces returns the CIFS data interfaces of an SVM. Finding none is a precondition failure
// whose message lists every interface that was looked at.
func DiscoverInterfaces(
	ctx context.Context, client api.ClusterClient, svm string, matcher InterfaceMatcher,
) ([]api.Interface, error) {
	interfaces, err := client.ListInterfaces(ctx, svm)
	if err != nil {
		return nil, errors.WrapWithPreconditionError(err, "could not list interfaces of SVM %s", svm)
	}

	matched, rule := matcher.Match(interfaces)
	if len(matched) == 0 {
		return nil, errors.PreconditionError("no CIFS data interfaces found on SVM %s; interfaces: %s",
			svm, describeInterfaces(interfaces))
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	Logc(ctx).WithFields(log.Fields{
		"svm":        svm,
		"rule":       rule,
		"interfaces": strings.Join(interfaceNameList(matched), ","),
	}).Info("Discovered CIFS data interfaces.")

	return matched, nil
}

// ResolveInterfaces looks up explicitly named interfaces, keeping their order.
func ResolveInterfaces(ctx context.Context, client api.ClusterClient, svm string, names []string) ([]api.Interface, error) {
	interfaces := make([]api.Interface, 0, len(names))
	for _, name := range names {
		iface, err := client.GetInterface(ctx, svm, name)
		if err != nil {
			if errors.IsNotFoundError(err) {
				return nil, errors.PreconditionError("interface %s not found on SVM %s", name, svm)
			}
			return nil, errors.WrapWithPreconditionError(err, "could not read interface %s of SVM %s", name, svm)
		}
		interfaces = append(interfaces, *iface)
	}
	return interfaces, nil
}

func describeInterfaces(interfaces []api.Interface) string {
	if len(interfaces) == 0 {
		return "(none)"
	}

	descriptions := make([]string, 0, len(interfaces))
	for _, iface := range interfaces {
		role := iface.Role
		if len(iface.Roles) > 0 {
			role = fmt.Sprintf("%s [%s]", role, strings.Join(iface.Roles, ","))
		}
		status := "down"
		if iface.Enabled {
			status = "up"
		}
		descriptions = append(descriptions, fmt.Sprintf("%s (protocols: %s, role: %s, status: %s)",
			iface.Name, strings.Join(iface.Protocols, ","), role, status))
	}
	return strings.Join(descriptions, "; ")
}

func interfaceNameList(interfaces []api.Interface) []string {
	names := make([]string, 0, len(interfaces))
	for _, iface := range interfaces {
		names = append(names, iface.Name)
	}
	return names
}

// DiscoverReplications returns every relationship whose destination is a volume of targetSVM and that is
// not broken off. Finding none is only a warning.
func DiscoverReplications(
	ctx context.Context, client api.ClusterClient, targetSVM string,
) ([]ReplicationRelationship, error) {
	relationships, err := client.ListReplications(ctx)
	if err != nil {
		return nil, errors.WrapWithPreconditionError(err, "could not list replication relationships")
	}

	prefix := targetSVM + ":"
	var selected []ReplicationRelationship
	for _, relationship := range relationships {
		if !strings.HasPrefix(relationship.DestinationPath, prefix) {
			continue
		}
		if relationship.Status == api.RelationshipBrokenOff {
			Logc(ctx).WithField("destination", relationship.DestinationPath).Debug(
				"Ignoring relationship that is already broken off.")
			continue
		}
		selected = append(selected, toPlanRelationship(relationship))
	}

	sort.Slice(selected, func(i, j int) bool {
		return selected[i].DestinationLocation < selected[j].DestinationLocation
	})

	if len(selected) == 0 {
		Logc(ctx).WithField("svm", targetSVM).Warn(
			"No replication relationships found for the target SVM; replication steps will be skipped.")
	} else {
		Logc(ctx).WithFields(log.Fields{
			"svm":           targetSVM,
			"relationships": len(selected),
		}).Info("Discovered replication relationships.")
	}

	return selected, nil
}

// ResolveReplications looks up explicitly named destinations. A destination that does not exist is kept
// so the finalizer reports it as skipped.
func ResolveReplications(
	ctx context.Context, client api.ClusterClient, destinations []string,
) ([]ReplicationRelationship, error) {
	relationships := make([]ReplicationRelationship, 0, len(destinations))
	for _, destination := range destinations {
		relationship, err := client.GetReplication(ctx, destination)
		if err != nil {
			if !errors.IsNotFoundError(err) {
				return nil, errors.WrapWithPreconditionError(err, "could not read replication relationship %s",
					destination)
			}
			Logc(ctx).WithField("destination", destination).Warn("Replication relationship not found.")
			_, volume, _ := strings.Cut(destination, ":")
			relationships = append(relationships, ReplicationRelationship{
				DestinationLocation: destination,
				VolumeName:          volume,
				Status:              api.RelationshipUnknown,
			})
			continue
		}
		relationships = append(relationships, toPlanRelationship(*relationship))
	}
	return relationships, nil
}

func toPlanRelationship(relationship api.Relationship) ReplicationRelationship {
	return ReplicationRelationship{
		SourceLocation:      relationship.SourcePath,
		DestinationLocation: relationship.DestinationPath,
		VolumeName:          relationship.DestinationVolume(),
		Status:              relationship.Status,
	}
}
