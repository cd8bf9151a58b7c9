// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cutover

import (
	"context"
	"fmt"

	"github.com/avast/retry-go/v4"
	log "github.com/sirupsen/logrus"

	"github.com/netapp/svm-cutover/config"
	. "github.com/netapp/svm-cutover/logging"
	"github.com/netapp/svm-cutover/ontap/api"
	"github.com/netapp/svm-cutover/utils/errors"
)

// MigrateIdentities moves the address of every source interface onto its paired target interface. A
// failed pair does not stop the others.
func (r *Run) MigrateIdentities(ctx context.Context, pairs []InterfacePair) (int, error) {
	var errs error
	migrated := 0

	for _, pair := range pairs {
		if err := r.migrateIdentity(ctx, pair); err != nil {
			if ctx.Err() != nil {
				return migrated, errors.Join(errs, err)
			}
			errs = errors.Join(errs, err)
			continue
		}
		if !r.Options.Simulate {
			migrated++
		}
	}

	return migrated, errs
}

// migrateIdentity takes the source interface down, then the target, moves the address, and brings the
// target back up. Once the target is down it is always brought back up, even when the address change fails.
func (r *Run) migrateIdentity(ctx context.Context, pair InterfacePair) error {
	source, target := pair.SourceInterface, pair.TargetInterface
	sourceResource, targetResource := "interface "+r.SourceSVM+"/"+source, "interface "+r.TargetSVM+"/"+target
	fields := log.Fields{
		"source":  source,
		"target":  target,
		"address": pair.SourceAddress,
		"netmask": pair.SourceNetmask,
	}
	Logc(ctx).WithFields(fields).Info("Migrating interface identity.")

	current, err := r.Source.GetInterface(ctx, r.SourceSVM, source)
	if err != nil {
		return errors.WrapWithMutationError(err, PhaseIdentity.String(), sourceResource, "could not read interface")
	}

	if current.Enabled {
		err = r.mutate(ctx, PhaseIdentity, sourceResource, "disable source interface "+source, func() error {
			return r.Source.SetInterface(ctx, r.SourceSVM, source, api.InterfaceModify{Enabled: api.ToBoolPointer(false)})
		})
		if err != nil {
			return errors.WrapWithMutationError(err, PhaseIdentity.String(), sourceResource, "disable failed")
		}
		r.disabledSources = append(r.disabledSources, source)
		r.confirm(ctx, r.Source, r.SourceSVM, source, "down", func(iface *api.Interface) bool {
			return !iface.Enabled
		})
	} else {
		Logc(ctx).WithFields(fields).Info("Source interface is already down.")
	}

	err = r.mutate(ctx, PhaseIdentity, targetResource, "disable target interface "+target, func() error {
		return r.Target.SetInterface(ctx, r.TargetSVM, target, api.InterfaceModify{Enabled: api.ToBoolPointer(false)})
	})
	if err != nil {
		return errors.WrapWithMutationError(err, PhaseIdentity.String(), targetResource, "disable failed")
	}
	r.confirm(ctx, r.Target, r.TargetSVM, target, "down", func(iface *api.Interface) bool {
		return !iface.Enabled
	})

	description := fmt.Sprintf("set address of target interface %s to %s/%s", target, pair.SourceAddress,
		pair.SourceNetmask)
	addressErr := r.mutate(ctx, PhaseIdentity, targetResource, description, func() error {
		return r.Target.SetInterface(ctx, r.TargetSVM, target, api.InterfaceModify{
			Address: pair.SourceAddress,
			Netmask: pair.SourceNetmask,
		})
	})
	if addressErr != nil {
		Logc(ctx).WithFields(fields).WithError(addressErr).Error(
			"Could not move the address; bringing the target interface back up.")
		upCtx, cancel := recoveryContext(ctx)
		defer cancel()
		if err = r.enableTarget(upCtx, target, targetResource); err != nil {
			Logc(ctx).WithFields(fields).WithError(err).Error("Could not bring the target interface back up.")
		}
		return errors.WrapWithMutationError(addressErr, PhaseIdentity.String(), targetResource,
			"address change failed")
	}
	r.addressedTargets = append(r.addressedTargets, target)
	r.confirm(ctx, r.Target, r.TargetSVM, target, "addressed "+pair.SourceAddress, func(iface *api.Interface) bool {
		return iface.Address == pair.SourceAddress
	})

	upCtx, cancel := recoveryContext(ctx)
	defer cancel()
	if err = r.enableTarget(upCtx, target, targetResource); err != nil {
		return errors.WrapWithMutationError(err, PhaseIdentity.String(), targetResource, "enable failed")
	}
	if !r.confirm(upCtx, r.Target, r.TargetSVM, target, "up", func(iface *api.Interface) bool {
		return iface.Enabled
	}) {
		return errors.MutationError(PhaseIdentity.String(), targetResource, "interface did not come up")
	}

	Logc(ctx).WithFields(fields).Info("Interface identity migrated.")
	return nil
}

// recoveryContext keeps the values of ctx but not its cancellation, so a target interface that was taken
// down is brought back up even after the run deadline has passed.
func recoveryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), config.InterfaceRecoveryTimeout)
}

func (r *Run) enableTarget(ctx context.Context, target, resource string) error {
	return r.mutate(ctx, PhaseIdentity, resource, "enable target interface "+target, func() error {
		return r.Target.SetInterface(ctx, r.TargetSVM, target, api.InterfaceModify{Enabled: api.ToBoolPointer(true)})
	})
}

// confirm re-reads an interface after the settle delay until check accepts it. An unconfirmed state is
// logged and reported as false; the caller decides whether that matters.
func (r *Run) confirm(
	ctx context.Context, client api.ClusterClient, svm, name, state string, check func(*api.Interface) bool,
) bool {
	if r.Options.Simulate {
		return true
	}

	fields := log.Fields{"svm": svm, "interface": name, "state": state}
	if err := r.settle(ctx); err != nil {
		return false
	}

	err := retry.Do(func() error {
		iface, err := client.GetInterface(ctx, svm, name)
		if err != nil {
			return err
		}
		if !check(iface) {
			return fmt.Errorf("interface %s is not %s yet", name, state)
		}
		return nil
	},
		retry.Context(ctx),
		retry.Attempts(config.InterfaceConfirmAttempts),
		retry.Delay(r.Options.SettleDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.IsNotFoundError(err)
		}),
		retry.OnRetry(func(attempt uint, err error) {
			Logc(ctx).WithFields(fields).WithField("attempt", attempt+1).WithError(err).Debug(
				"Interface state not confirmed yet.")
		}),
	)
	if err != nil {
		Logc(ctx).WithFields(fields).WithError(err).Warn("Could not confirm interface state.")
		return false
	}

	Logc(ctx).WithFields(fields).Debug("Interface state confirmed.")
	return true
}
