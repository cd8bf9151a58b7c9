// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cutover

import (
	"fmt"
	"strings"

	. "github.com/netapp/svm-cutover/logging"
	"github.com/netapp/svm-cutover/utils/errors"
)

// Summary is the outcome of one run.
type Summary struct {
	RunID                  string               `json:"runID"`
	Simulate               bool                 `json:"simulate"`
	PlanFingerprint        string               `json:"planFingerprint,omitempty"`
	InterfacePairsMigrated int                  `json:"interfacePairsMigrated"`
	RelationshipsBroken    int                  `json:"relationshipsBroken"`
	SharesCreated          int                  `json:"sharesCreated"`
	AclsApplied            int                  `json:"aclsApplied"`
	Errors                 []string             `json:"errors"`
	CompletedPhases        []string             `json:"completedPhases"`
	FailedPhase            string               `json:"failedPhase,omitempty"`
	SharesSkipped          []string             `json:"sharesSkipped,omitempty"`
	Relationships          []RelationshipResult `json:"relationships,omitempty"`
	VolumeCheck            *VolumeCrossCheck    `json:"volumeCheck,omitempty"`
	Actions                []Action             `json:"actions"`
	Duration               string               `json:"duration,omitempty"`
	RollbackRequired       bool                 `json:"rollbackRequired"`
	RollbackSteps          []string             `json:"rollbackSteps,omitempty"`

	errs []error
}

// phasesNeedingRollback are the phases after the source service has been stopped.
var phasesNeedingRollback = map[Phase]bool{
	PhaseReplication:   true,
	PhaseRematerialize: true,
	PhaseIdentity:      true,
	PhaseVerify:        true,
}

// Err returns the errors of the run combined, or nil.
func (s *Summary) Err() error {
	return errors.Join(s.errs...)
}

func (s *Summary) fail(phase Phase, err error) {
	s.FailedPhase = phase.String()
	s.addError(phase, err)
}

// addError records every error of err with its phase. Mutation errors already name their phase.
func (s *Summary) addError(phase Phase, err error) {
	for _, single := range errors.Errors(err) {
		s.errs = append(s.errs, single)
		if errors.IsMutationError(single) {
			s.Errors = append(s.Errors, single.Error())
		} else {
			s.Errors = append(s.Errors, fmt.Sprintf("[%s] %s", phase, single.Error()))
		}
	}
	if phasesNeedingRollback[phase] && !s.Simulate {
		s.RollbackRequired = true
	}
}

// rollbackSteps lists the manual steps that return service to the source. Nothing is rolled back
// automatically.
func rollbackSteps(e *execution) []string {
	var steps []string
	var broken []string
	for _, relationship := range e.relationships {
		if relationship.State == StateBroken {
			broken = append(broken, relationship.Destination)
		}
	}

	if e.run != nil && len(e.run.addressedTargets) > 0 {
		steps = append(steps, fmt.Sprintf("Take down the target interfaces that now carry source addresses "+
			"on SVM %s and restore their previous addresses: %s.", e.run.TargetSVM,
			strings.Join(e.run.addressedTargets, ", ")))
	}
	if e.run != nil && len(e.run.disabledSources) > 0 {
		steps = append(steps, fmt.Sprintf("Bring the source interfaces back up on SVM %s: %s.", e.run.SourceSVM,
			strings.Join(e.run.disabledSources, ", ")))
	}
	if len(e.createdShares) > 0 {
		steps = append(steps, fmt.Sprintf("Remove the shares created on target SVM %s: %s.", e.request.Target.SVM,
			strings.Join(e.createdShares, ", ")))
	}
	if len(broken) > 0 {
		steps = append(steps, fmt.Sprintf("Resynchronize the broken relationships from the source so the "+
			"target volumes become replicas again: %s.", strings.Join(broken, ", ")))
	}
	steps = append(steps, fmt.Sprintf("Re-enable the CIFS service on source SVM %s.", e.request.Source.SVM))

	return steps
}
