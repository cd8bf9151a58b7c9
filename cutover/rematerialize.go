// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cutover

import (
	"context"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/netapp/svm-cutover/config"
	. "github.com/netapp/svm-cutover/logging"
	"github.com/netapp/svm-cutover/ontap/api"
	"github.com/netapp/svm-cutover/snapshot"
	"github.com/netapp/svm-cutover/utils/errors"
)

// RematerializeResult counts what was recreated on the target.
type RematerializeResult struct {
	Mounted       []string `json:"mounted,omitempty"`
	Created       []string `json:"created,omitempty"`
	SharesCreated int      `json:"sharesCreated"`
	SharesSkipped []string `json:"sharesSkipped,omitempty"`
	AclsApplied   int      `json:"aclsApplied"`
}

// RequiredJunctions returns the volumes that must be mounted for the non-dynamic shares, sorted.
func RequiredJunctions(shares []snapshot.ExportedShare) []string {
	seen := make(map[string]bool)
	var volumes []string
	for _, share := range shares {
		volume := share.VolumeName()
		if volume == "" || seen[volume] {
			continue
		}
		seen[volume] = true
		volumes = append(volumes, volume)
	}
	sort.Strings(volumes)
	return volumes
}

// Rematerialize mounts the volumes the shares need, recreates the shares, and then applies the ACLs.
// Failures of individual resources are collected; the other resources are still processed.
func (r *Run) Rematerialize(
	ctx context.Context, shares []snapshot.ExportedShare, acls []snapshot.ExportedAcl,
	relationships []RelationshipResult,
) (RematerializeResult, error) {
	var result RematerializeResult

	mounted, mountErr := r.MountVolumes(ctx, RequiredJunctions(shares), relationships)
	result.Mounted = mounted

	created, present, skipped, shareErr := r.RecreateShares(ctx, shares)
	result.Created = created
	result.SharesSkipped = skipped
	if !r.Options.Simulate {
		result.SharesCreated = len(created)
	}

	applied, aclErr := r.ApplyAcls(ctx, acls, present)
	result.AclsApplied = applied

	return result, errors.Join(mountErr, shareErr, aclErr)
}

// MountVolumes mounts each volume at /<name> unless it already has a junction path. Volumes that were
// mounted by breaking their relationship are not read again.
func (r *Run) MountVolumes(
	ctx context.Context, volumes []string, relationships []RelationshipResult,
) ([]string, error) {
	autoMounted := make(map[string]string)
	for _, relationship := range relationships {
		if relationship.AutoMounted {
			autoMounted[relationship.Volume] = relationship.JunctionPath
		}
	}

	var mounted []string
	var errs error
	for _, name := range volumes {
		fields := log.Fields{"volume": name}

		if junctionPath, ok := autoMounted[name]; ok {
			Logc(ctx).WithFields(fields).WithField("junctionPath", junctionPath).Info(
				"Volume was mounted by the break.")
			continue
		}

		volume, err := r.Target.GetVolume(ctx, r.TargetSVM, name)
		if err != nil {
			errs = errors.Join(errs, errors.WrapWithMutationError(err, PhaseRematerialize.String(),
				"volume "+name, "could not read volume"))
			continue
		}
		if volume.IsMounted() {
			Logc(ctx).WithFields(fields).WithField("junctionPath", volume.JunctionPath).Info(
				"Volume is already mounted.")
			continue
		}

		junctionPath := "/" + name
		err = r.mutate(ctx, PhaseRematerialize, "volume "+name, "mount volume "+name+" at "+junctionPath,
			func() error {
				return r.Target.MountVolume(ctx, r.TargetSVM, name, junctionPath)
			})
		if err != nil {
			errs = errors.Join(errs, errors.WrapWithMutationError(err, PhaseRematerialize.String(),
				"volume "+name, "mount failed"))
			continue
		}
		mounted = append(mounted, name)
	}

	return mounted, errs
}

// RecreateShares creates the captured shares on the target. It returns the names created, the names of
// all shares now present on the target, and the names skipped because they already existed.
func (r *Run) RecreateShares(
	ctx context.Context, shares []snapshot.ExportedShare,
) ([]string, map[string]bool, []string, error) {
	present := make(map[string]bool)
	var created, skipped []string
	var errs error

	for _, exported := range shares {
		name := exported.ShareName
		resource := "share " + name

		if config.IsAdministrativeShare(name) {
			Logc(ctx).WithField("share", name).Debug("Skipping administrative share.")
			continue
		}

		if _, err := r.Target.GetShare(ctx, r.TargetSVM, name); err == nil {
			Logc(ctx).WithField("share", name).Warn("Share already exists on the target; skipping.")
			present[name] = true
			skipped = append(skipped, name)
			continue
		} else if !errors.IsNotFoundError(err) {
			errs = errors.Join(errs, errors.WrapWithMutationError(err, PhaseRematerialize.String(), resource,
				"could not read share"))
			continue
		}

		translation := TranslateShare(ctx, exported)

		err := r.mutate(ctx, PhaseRematerialize, resource, "create share "+name+" at "+exported.Path,
			func() error {
				return r.Target.CreateShare(ctx, r.TargetSVM, translation.Share)
			})
		if err != nil {
			if errors.IsAlreadyExistsError(err) {
				Logc(ctx).WithField("share", name).Warn("Share already exists on the target; skipping.")
				present[name] = true
				skipped = append(skipped, name)
				continue
			}
			errs = errors.Join(errs, errors.WrapWithMutationError(err, PhaseRematerialize.String(), resource,
				"create failed"))
			continue
		}
		present[name] = true
		created = append(created, name)

		r.applyLegacyProperties(ctx, translation)
		r.removeDefaultAcl(ctx, name)
	}

	return created, present, skipped, errs
}

// applyLegacyProperties is best effort; a failure leaves the share with its primary fields only.
func (r *Run) applyLegacyProperties(ctx context.Context, translation ShareTranslation) {
	request := r.legacyModifyRequest(ctx, translation)
	if request.IsEmpty() {
		return
	}

	name := translation.Share.Name
	description := "apply properties [" + strings.Join(request.ShareProperties(), ",") + "] to share " + name
	err := r.mutate(ctx, PhaseRematerialize, "share "+name, description, func() error {
		_, err := r.Target.InvokeLegacyCommand(ctx, r.TargetSVM, request)
		return err
	})
	if err != nil {
		Logc(ctx).WithField("share", name).WithError(err).Warn("Could not apply share properties.")
	}
}

// removeDefaultAcl drops the access entry a new share gets by default. It is best effort.
func (r *Run) removeDefaultAcl(ctx context.Context, name string) {
	if !r.Options.Simulate {
		share, err := r.Target.GetShare(ctx, r.TargetSVM, name)
		if err != nil {
			Logc(ctx).WithField("share", name).WithError(err).Warn("Could not read the new share's ACL.")
			return
		}
		if !hasDefaultAcl(share) {
			return
		}
	}

	err := r.mutate(ctx, PhaseRematerialize, "share "+name,
		"remove default "+config.DefaultEveryonePrincipal+" ACL from share "+name, func() error {
			return r.Target.RemoveShareAcl(ctx, r.TargetSVM, name, config.DefaultEveryonePrincipal,
				config.PrincipalTypeWindows)
		})
	if err != nil && !errors.IsNotFoundError(err) {
		Logc(ctx).WithField("share", name).WithError(err).Warn("Could not remove the default ACL.")
	}
}

func hasDefaultAcl(share *api.Share) bool {
	for _, acl := range share.Acls {
		if strings.EqualFold(acl.Principal, config.DefaultEveryonePrincipal) {
			return true
		}
	}
	return false
}

// ApplyAcls adds every captured ACL entry whose share is present on the target, including shares that
// existed before the run. Entries the target already has are skipped.
func (r *Run) ApplyAcls(ctx context.Context, acls []snapshot.ExportedAcl, present map[string]bool) (int, error) {
	if present == nil {
		present = make(map[string]bool)
	}
	absent := make(map[string]bool)
	var errs error
	applied := 0

	for _, exported := range acls {
		share := exported.ShareName
		fields := log.Fields{"share": share, "principal": exported.Principal}

		if !present[share] && !absent[share] {
			if _, err := r.Target.GetShare(ctx, r.TargetSVM, share); err == nil {
				present[share] = true
			} else if errors.IsNotFoundError(err) {
				absent[share] = true
			} else {
				errs = errors.Join(errs, errors.WrapWithMutationError(err, PhaseRematerialize.String(),
					"share "+share, "could not read share"))
				continue
			}
		}
		if absent[share] {
			Logc(ctx).WithFields(fields).Warn("Share is not on the target; skipping its ACL.")
			continue
		}

		acl := api.ShareAcl{
			Principal:     exported.Principal,
			PrincipalType: exported.PrincipalType,
			Permission:    exported.PermissionLevel,
		}
		if acl.PrincipalType == "" {
			acl.PrincipalType = config.PrincipalTypeWindows
		}

		resource := "acl " + share + "/" + exported.Principal
		err := r.mutate(ctx, PhaseRematerialize, resource,
			"grant "+acl.Permission+" on share "+share+" to "+acl.Principal, func() error {
				return r.Target.AddShareAcl(ctx, r.TargetSVM, share, acl)
			})
		if err != nil {
			if errors.IsAlreadyExistsError(err) {
				Logc(ctx).WithFields(fields).Info("ACL entry already present.")
				continue
			}
			errs = errors.Join(errs, errors.WrapWithMutationError(err, PhaseRematerialize.String(), resource,
				"could not apply ACL"))
			continue
		}
		if !r.Options.Simulate {
			applied++
		}
	}

	return applied, errs
}
