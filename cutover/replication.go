// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cutover

import (
	"context"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	. "github.com/netapp/svm-cutover/logging"
	"github.com/netapp/svm-cutover/ontap/api"
	"github.com/netapp/svm-cutover/utils/errors"
)

// FinalizerState is the progress of one relationship through update, quiesce and break.
type FinalizerState string

const (
	StateActive       FinalizerState = "Active"
	StateFinalSyncing FinalizerState = "FinalSyncing"
	StateQuiescing    FinalizerState = "Quiescing"
	StateQuiesced     FinalizerState = "Quiesced"
	StateBreaking     FinalizerState = "Breaking"
	StateBroken       FinalizerState = "Broken"
	StateSkipped      FinalizerState = "Skipped"
)

// RelationshipResult records what the finalizer did with one relationship.
type RelationshipResult struct {
	Destination  string           `json:"destination"`
	Volume       string           `json:"volume"`
	State        FinalizerState   `json:"state"`
	Transitions  []FinalizerState `json:"transitions"`
	AutoMounted  bool             `json:"autoMounted,omitempty"`
	JunctionPath string           `json:"junctionPath,omitempty"`
	Warnings     []string         `json:"warnings,omitempty"`
}

func (r *RelationshipResult) transition(ctx context.Context, state FinalizerState) {
	r.State = state
	r.Transitions = append(r.Transitions, state)
	Logc(ctx).WithFields(log.Fields{"destination": r.Destination, "state": state}).Debug("Relationship state.")
}

func (r *RelationshipResult) warn(ctx context.Context, err error, message string) {
	r.Warnings = append(r.Warnings, message+": "+err.Error())
	Logc(ctx).WithField("destination", r.Destination).WithError(err).Warn(message + ".")
}

// FinalizeReplications takes every relationship through a final update, quiesce and break, one at a time.
// A failed break ends the phase unless the run is forced, in which case the failure is collected and the
// next relationship is processed.
func (r *Run) FinalizeReplications(
	ctx context.Context, relationships []ReplicationRelationship,
) ([]RelationshipResult, error) {
	results := make([]RelationshipResult, 0, len(relationships))
	var errs error

	for _, relationship := range relationships {
		result, err := r.finalize(ctx, relationship)
		results = append(results, result)
		if err == nil {
			continue
		}
		if ctx.Err() != nil || !r.Options.Force {
			return results, err
		}
		Logc(ctx).WithField("destination", relationship.DestinationLocation).WithError(err).Error(
			"Could not break relationship; continuing because the run is forced.")
		errs = errors.Join(errs, err)
	}

	return results, errs
}

func (r *Run) finalize(ctx context.Context, planned ReplicationRelationship) (RelationshipResult, error) {
	destination := planned.DestinationLocation
	result := RelationshipResult{Destination: destination, Volume: planned.VolumeName}
	result.transition(ctx, StateActive)

	current, err := r.Target.GetReplication(ctx, destination)
	if err != nil {
		if errors.IsNotFoundError(err) {
			result.transition(ctx, StateSkipped)
			Logc(ctx).WithField("destination", destination).Warn("Relationship not found; skipping.")
			return result, nil
		}
		return result, errors.WrapWithMutationError(err, PhaseReplication.String(), destination,
			"could not read relationship")
	}

	if current.Status == api.RelationshipBrokenOff {
		result.transition(ctx, StateSkipped)
		Logc(ctx).WithField("destination", destination).Warn("Relationship is already broken off; skipping.")
		return result, nil
	}

	if current.Status != api.RelationshipQuiesced {
		result.transition(ctx, StateFinalSyncing)
		err = r.mutate(ctx, PhaseReplication, destination, "start final transfer on "+destination, func() error {
			return r.Target.UpdateReplication(ctx, destination)
		})
		if err != nil {
			result.warn(ctx, err, "Final transfer could not be started")
		} else if err = r.waitWhile(ctx, destination, api.RelationshipTransferring); err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.warn(ctx, err, "Could not confirm the end of the final transfer")
		}

		result.transition(ctx, StateQuiescing)
		err = r.mutate(ctx, PhaseReplication, destination, "quiesce "+destination, func() error {
			return r.Target.QuiesceReplication(ctx, destination)
		})
		if err != nil {
			result.warn(ctx, err, "Quiesce failed")
		} else if err = r.waitWhile(ctx, destination, api.RelationshipQuiescing); err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.warn(ctx, err, "Could not confirm the relationship is quiesced")
		}
	}
	result.transition(ctx, StateQuiesced)

	result.transition(ctx, StateBreaking)
	err = r.mutate(ctx, PhaseReplication, destination, "break "+destination, func() error {
		return r.Target.BreakReplication(ctx, destination)
	})
	if err != nil {
		return result, errors.WrapWithMutationError(err, PhaseReplication.String(), destination, "break failed")
	}
	result.transition(ctx, StateBroken)

	if !r.Options.Simulate {
		r.recordMount(ctx, &result)
	}
	return result, nil
}

// waitWhile polls the relationship until its status is no longer status.
func (r *Run) waitWhile(ctx context.Context, destination string, status api.RelationshipStatus) error {
	if r.Options.Simulate {
		return nil
	}

	get := func(ctx context.Context) (*api.Relationship, error) {
		relationship, err := r.Target.GetReplication(ctx, destination)
		if r.Metrics != nil {
			if err != nil {
				r.Metrics.ObservePoll("error")
			} else {
				r.Metrics.ObservePoll("ok")
			}
		}
		return relationship, err
	}
	done := func(relationship *api.Relationship) bool {
		return relationship.Status != status
	}
	pending := func(relationship *api.Relationship) {
		Logc(ctx).WithFields(log.Fields{
			"destination": destination,
			"status":      relationship.Status,
			"transferred": humanize.IBytes(relationship.TransferBytes),
		}).Info("Waiting for relationship.")
	}

	_, err := Poll(ctx, destination, get, done, r.Options.PollInterval, r.Options.RetryBudget, pending)
	return err
}

// recordMount notes whether breaking the relationship mounted the volume. Some clusters do, some do not.
func (r *Run) recordMount(ctx context.Context, result *RelationshipResult) {
	volume, err := r.Target.GetVolume(ctx, r.TargetSVM, result.Volume)
	if err != nil {
		result.warn(ctx, err, "Could not read the volume after the break")
		return
	}

	result.AutoMounted = volume.IsMounted()
	result.JunctionPath = volume.JunctionPath
	Logc(ctx).WithFields(log.Fields{
		"volume":       result.Volume,
		"autoMounted":  result.AutoMounted,
		"junctionPath": result.JunctionPath,
	}).Info("Relationship broken.")
}
