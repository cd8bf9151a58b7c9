// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cutover

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/netapp/svm-cutover/config"
	. "github.com/netapp/svm-cutover/logging"
	"github.com/netapp/svm-cutover/metrics"
	"github.com/netapp/svm-cutover/ontap/api"
	"github.com/netapp/svm-cutover/snapshot"
	"github.com/netapp/svm-cutover/utils/errors"
)

// ConnectFunc opens a session to one cluster.
type ConnectFunc func(ctx context.Context, cluster config.ClusterConfig) (api.ClusterClient, error)

// Request is everything a run needs besides the cluster sessions.
type Request struct {
	Source           config.ClusterConfig
	Target           config.ClusterConfig
	SourceInterfaces []string
	TargetInterfaces []string
	Relationships    []string
	Snapshot         *snapshot.Snapshot
	Options          Options
}

// Orchestrator runs the cutover phases in their fixed order.
type Orchestrator struct {
	Connect ConnectFunc
	Gate    ConfirmGate
	Metrics *metrics.Recorder
}

// execution is the state of one Orchestrator.Run call.
type execution struct {
	request Request
	run     *Run
	plan    *CutoverPlan
	summary *Summary

	sourceService *api.CifsService
	relationships []RelationshipResult
	createdShares []string
}

type phaseStep struct {
	phase Phase
	run   func(ctx context.Context) error
}

// Run performs a complete cutover. Phases run strictly in order and the first failing phase ends the run.
// Both cluster sessions are released before Run returns. The summary is always returned; the error is
// non-nil when any phase failed.
func (o *Orchestrator) Run(ctx context.Context, request Request) (*Summary, error) {
	if request.Options.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, request.Options.RunTimeout)
		defer cancel()
	}
	ctx = WithSimulate(ctx, request.Options.Simulate)

	e := &execution{
		request: request,
		summary: &Summary{RunID: RunID(ctx), Simulate: request.Options.Simulate},
	}
	defer e.disconnect(ctx)

	steps := []phaseStep{
		{PhaseDiscover, func(ctx context.Context) error { return e.discover(ctx, o) }},
		{PhaseSessionCheck, e.checkSessions},
		{PhaseSourceService, e.disableSourceService},
		{PhaseReplication, e.finalizeReplications},
		{PhaseRematerialize, e.rematerialize},
		{PhaseIdentity, e.migrateIdentities},
		{PhaseVerify, e.verify},
	}

	Logc(ctx).WithFields(log.Fields{
		"source":   request.Source.String(),
		"target":   request.Target.String(),
		"simulate": request.Options.Simulate,
		"force":    request.Options.Force,
	}).Info("Starting cutover.")

	start := time.Now()
	for _, step := range steps {
		phaseCtx := WithPhase(ctx, step.phase)
		Logc(phaseCtx).Info("Phase started.")

		phaseStart := time.Now()
		err := step.run(phaseCtx)
		if o.Metrics != nil {
			o.Metrics.ObservePhase(step.phase.String(), time.Since(phaseStart), err == nil)
		}

		if err != nil {
			Logc(phaseCtx).WithError(err).Error("Phase failed.")
			e.summary.fail(step.phase, err)
			break
		}
		Logc(phaseCtx).WithField("duration", time.Since(phaseStart).Round(time.Millisecond)).Info("Phase completed.")
		e.summary.CompletedPhases = append(e.summary.CompletedPhases, step.phase.String())
	}

	if e.run != nil {
		e.summary.Actions = e.run.Actions()
	}
	e.summary.Duration = time.Since(start).Round(time.Millisecond).String()
	if e.summary.RollbackRequired {
		e.summary.RollbackSteps = rollbackSteps(e)
	}
	o.record(e.summary)

	fields := log.Fields{
		"interfacePairsMigrated": e.summary.InterfacePairsMigrated,
		"relationshipsBroken":    e.summary.RelationshipsBroken,
		"sharesCreated":          e.summary.SharesCreated,
		"aclsApplied":            e.summary.AclsApplied,
		"actions":                len(e.summary.Actions),
		"fingerprint":            e.summary.PlanFingerprint,
	}
	if err := e.summary.Err(); err != nil {
		Logc(ctx).WithFields(fields).WithField("errors", len(e.summary.Errors)).Error("Cutover finished with errors.")
		return e.summary, err
	}
	Logc(ctx).WithFields(fields).Info("Cutover finished.")
	return e.summary, nil
}

// Discover connects to both clusters and builds the plan without changing anything.
func (o *Orchestrator) Discover(ctx context.Context, request Request) (*CutoverPlan, error) {
	e := &execution{request: request, summary: &Summary{RunID: RunID(ctx), Simulate: true}}
	defer e.disconnect(ctx)

	if err := e.discover(WithPhase(ctx, PhaseDiscover), o); err != nil {
		return nil, err
	}
	return e.plan, nil
}

func (o *Orchestrator) record(summary *Summary) {
	if o.Metrics == nil {
		return
	}
	o.Metrics.SetResources("interface_pairs", summary.InterfacePairsMigrated)
	o.Metrics.SetResources("relationships", summary.RelationshipsBroken)
	o.Metrics.SetResources("shares", summary.SharesCreated)
	o.Metrics.SetResources("acls", summary.AclsApplied)
	o.Metrics.SetSuccess(summary.Err() == nil)
}

func (e *execution) disconnect(ctx context.Context) {
	if e.run == nil {
		return
	}
	if e.run.Source != nil {
		e.run.Source.Disconnect(ctx)
	}
	if e.run.Target != nil {
		e.run.Target.Disconnect(ctx)
	}
}

// discover connects, finds the interfaces and relationships, and validates them into the plan. Nothing
// is changed on either cluster.
func (e *execution) discover(ctx context.Context, o *Orchestrator) error {
	request := e.request
	e.run = &Run{
		SourceSVM: request.Source.SVM,
		TargetSVM: request.Target.SVM,
		Options:   request.Options,
		Gate:      o.Gate,
		Metrics:   o.Metrics,
	}

	source, err := o.Connect(ctx, request.Source)
	if err != nil {
		return errors.WrapWithPreconditionError(err, "could not connect to source cluster %s",
			request.Source.ManagementLIF)
	}
	e.run.Source = source

	target, err := o.Connect(ctx, request.Target)
	if err != nil {
		return errors.WrapWithPreconditionError(err, "could not connect to target cluster %s",
			request.Target.ManagementLIF)
	}
	e.run.Target = target

	e.sourceService, err = source.GetCifsService(ctx, request.Source.SVM)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.PreconditionError("SVM %s has no CIFS service", request.Source.SVM)
		}
		return errors.WrapWithPreconditionError(err, "could not read the CIFS service of SVM %s", request.Source.SVM)
	}

	var sourceInterfaces, targetInterfaces []api.Interface
	if len(request.SourceInterfaces) > 0 {
		sourceInterfaces, err = ResolveInterfaces(ctx, source, request.Source.SVM, request.SourceInterfaces)
	} else {
		sourceInterfaces, err = DiscoverInterfaces(ctx, source, request.Source.SVM, NewInterfaceMatcher(true))
	}
	if err != nil {
		return err
	}
	if len(request.TargetInterfaces) > 0 {
		targetInterfaces, err = ResolveInterfaces(ctx, target, request.Target.SVM, request.TargetInterfaces)
	} else {
		targetInterfaces, err = DiscoverInterfaces(ctx, target, request.Target.SVM, NewInterfaceMatcher(false))
	}
	if err != nil {
		return err
	}

	pairs, err := PairInterfaces(sourceInterfaces, targetInterfaces)
	if err != nil {
		return err
	}

	var relationships []ReplicationRelationship
	if len(request.Relationships) > 0 {
		relationships, err = ResolveReplications(ctx, target, request.Relationships)
	} else {
		relationships, err = DiscoverReplications(ctx, target, request.Target.SVM)
	}
	if err != nil {
		return err
	}

	snap := request.Snapshot
	if snap == nil {
		snap = &snapshot.Snapshot{}
	}

	e.plan, err = newPlan(request.Source.SVM, request.Target.SVM, pairs, relationships, snap, request.Options)
	if err != nil {
		return errors.WrapWithPreconditionError(err, "could not build the cutover plan")
	}
	e.plan.VolumeCheck = CrossCheckVolumes(ctx, relationships, snap)

	fingerprint, err := e.plan.Fingerprint()
	if err != nil {
		Logc(ctx).WithError(err).Warn("Could not fingerprint the plan.")
	}
	e.summary.PlanFingerprint = fingerprint
	e.summary.VolumeCheck = e.plan.VolumeCheck

	Logc(ctx).WithFields(log.Fields{
		"interfacePairs": len(e.plan.InterfacePairs),
		"relationships":  len(e.plan.Relationships),
		"shares":         len(e.plan.Shares),
		"acls":           len(e.plan.Acls),
		"fingerprint":    fingerprint,
	}).Info("Cutover plan ready.")

	return nil
}

func (e *execution) checkSessions(ctx context.Context) error {
	return e.run.CheckSessions(ctx)
}

func (e *execution) disableSourceService(ctx context.Context) error {
	svm := e.run.SourceSVM
	if !e.sourceService.Enabled {
		Logc(ctx).WithField("svm", svm).Info("Source CIFS service is already disabled.")
		return nil
	}

	resource := "cifs service " + svm
	err := e.run.mutate(ctx, PhaseSourceService, resource, "disable CIFS service on source SVM "+svm, func() error {
		return e.run.Source.SetCifsServiceEnabled(ctx, svm, false)
	})
	if err != nil {
		return errors.WrapWithMutationError(err, PhaseSourceService.String(), resource, "disable failed")
	}
	return nil
}

func (e *execution) finalizeReplications(ctx context.Context) error {
	if len(e.plan.Relationships) == 0 {
		Logc(ctx).Warn("No replication relationships to finalize.")
		return nil
	}

	results, err := e.run.FinalizeReplications(ctx, e.plan.Relationships)
	e.relationships = results
	e.summary.Relationships = results
	if !e.run.Options.Simulate {
		for _, result := range results {
			if result.State == StateBroken {
				e.summary.RelationshipsBroken++
			}
		}
	}

	if err != nil && e.run.Options.Force && ctx.Err() == nil {
		e.summary.addError(PhaseReplication, err)
		return nil
	}
	return err
}

func (e *execution) rematerialize(ctx context.Context) error {
	result, err := e.run.Rematerialize(ctx, e.plan.Shares, e.plan.Acls, e.relationships)
	e.summary.SharesCreated = result.SharesCreated
	e.summary.AclsApplied = result.AclsApplied
	e.summary.SharesSkipped = result.SharesSkipped
	e.createdShares = result.Created
	return err
}

func (e *execution) migrateIdentities(ctx context.Context) error {
	migrated, err := e.run.MigrateIdentities(ctx, e.plan.InterfacePairs)
	e.summary.InterfacePairsMigrated = migrated
	return err
}

func (e *execution) verify(ctx context.Context) error {
	svm := e.run.TargetSVM
	service, err := e.run.Target.GetCifsService(ctx, svm)
	if err != nil {
		return errors.WrapWithMutationError(err, PhaseVerify.String(), "cifs service "+svm,
			"could not read the target CIFS service")
	}
	if !service.Enabled {
		return errors.MutationError(PhaseVerify.String(), "cifs service "+svm,
			"target CIFS service is administratively down")
	}

	Logc(ctx).WithField("svm", svm).Info("Target CIFS service is up.")
	return nil
}
