// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cutover

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	. "github.com/netapp/svm-cutover/logging"
	"github.com/netapp/svm-cutover/metrics"
	"github.com/netapp/svm-cutover/ontap/api"
)

// Phases of a cutover, in the only order they may run.
const (
	PhaseDiscover      Phase = "discover"
	PhaseSessionCheck  Phase = "session-check"
	PhaseSourceService Phase = "source-service"
	PhaseReplication   Phase = "replication"
	PhaseRematerialize Phase = "rematerialize"
	PhaseIdentity      Phase = "identity"
	PhaseVerify        Phase = "verify"
)

// Options are the run-wide switches and timings.
type Options struct {
	Simulate     bool
	Force        bool
	PollInterval time.Duration
	SettleDelay  time.Duration
	RetryBudget  int
	RunTimeout   time.Duration
}

// Action is one mutating call of a run, either executed or only simulated.
type Action struct {
	Phase       string `json:"phase"`
	Resource    string `json:"resource"`
	Description string `json:"description"`
	Simulated   bool   `json:"simulated,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Run carries the state of one cutover: both cluster sessions, the options, and the actions taken so far.
// It is passed to every step instead of any package-level state.
type Run struct {
	Source    api.ClusterClient
	Target    api.ClusterClient
	SourceSVM string
	TargetSVM string
	Options   Options
	Gate      ConfirmGate
	Metrics   *metrics.Recorder

	actions          []Action
	disabledSources  []string
	addressedTargets []string
}

// mutate performs one change against a cluster. In simulate mode the change is only logged and recorded.
func (r *Run) mutate(ctx context.Context, phase Phase, resource, description string, fn func() error) error {
	action := Action{
		Phase:       phase.String(),
		Resource:    resource,
		Description: description,
		Simulated:   r.Options.Simulate,
	}
	fields := log.Fields{"resource": resource, "action": description}

	if r.Options.Simulate {
		Logc(ctx).WithFields(fields).Infof("Would %s.", description)
		r.actions = append(r.actions, action)
		r.observe(phase, metrics.ResultSimulated)
		return nil
	}

	Logc(ctx).WithFields(fields).Info("Executing action.")
	err := fn()
	if err != nil {
		action.Error = err.Error()
		r.observe(phase, metrics.ResultFailed)
		Logc(ctx).WithFields(fields).WithError(err).Error("Action failed.")
	} else {
		r.observe(phase, metrics.ResultExecuted)
	}
	r.actions = append(r.actions, action)

	return err
}

func (r *Run) observe(phase Phase, result string) {
	if r.Metrics != nil {
		r.Metrics.ObserveOperation(phase.String(), result)
	}
}

// Actions returns the actions recorded so far, in order.
func (r *Run) Actions() []Action {
	actions := make([]Action, len(r.actions))
	copy(actions, r.actions)
	return actions
}

// settle waits for the settle delay or until the context ends.
func (r *Run) settle(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timer := time.NewTimer(r.Options.SettleDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
