// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cutover

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"

	. "github.com/netapp/svm-cutover/logging"
	"github.com/netapp/svm-cutover/utils/errors"
)

// ConfirmGate asks an operator whether to continue.
type ConfirmGate interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// NewConfirmGate returns a prompt on the terminal when in is one, and a gate that always declines otherwise.
func NewConfirmGate(in *os.File, out io.Writer) ConfirmGate {
	if in != nil && (isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd())) {
		return &PromptGate{In: in, Out: out}
	}
	return DeclineGate{}
}

// PromptGate asks on Out and reads a yes/no answer from In.
type PromptGate struct {
	In  io.Reader
	Out io.Writer
}

// Confirm prints prompt and waits for one answer line. If ctx ends first the pending read of In is
// abandoned and its goroutine stays blocked until In yields a line or closes, so a PromptGate is asked at
// most once per process.
func (g *PromptGate) Confirm(ctx context.Context, prompt string) (bool, error) {
	if _, err := fmt.Fprintf(g.Out, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}

	answers := make(chan string, 1)
	failures := make(chan error, 1)
	go func() {
		line, err := bufio.NewReader(g.In).ReadString('\n')
		if err != nil && line == "" {
			failures <- err
			return
		}
		answers <- line
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-failures:
		if err == io.EOF {
			return false, nil
		}
		return false, err
	case answer := <-answers:
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}

// DeclineGate is used where nobody can answer; it fails closed.
type DeclineGate struct{}

func (DeclineGate) Confirm(context.Context, string) (bool, error) {
	return false, nil
}

// CheckSessions looks for open client sessions on the source SVM before its service is stopped. Open
// sessions need the operator's consent unless the run is forced or simulated.
func (r *Run) CheckSessions(ctx context.Context) error {
	sessions, err := r.Source.ListSessions(ctx, r.SourceSVM)
	if err != nil {
		return errors.WrapWithPreconditionError(err, "could not list client sessions of SVM %s", r.SourceSVM)
	}

	if len(sessions) == 0 {
		Logc(ctx).WithField("svm", r.SourceSVM).Info("No active client sessions.")
		return nil
	}

	for _, session := range sessions {
		Logc(ctx).WithFields(log.Fields{
			"session":  session.Identifier,
			"user":     session.User,
			"client":   session.ClientAddress,
			"protocol": session.Protocol,
		}).Warn("Active client session.")
	}

	switch {
	case r.Options.Simulate:
		Logc(ctx).WithField("sessions", len(sessions)).Info(
			"Would ask for confirmation before dropping active sessions.")
		return nil
	case r.Options.Force:
		Logc(ctx).WithField("sessions", len(sessions)).Warn("Forced; active sessions will be dropped.")
		return nil
	}

	gate := r.Gate
	if gate == nil {
		gate = DeclineGate{}
	}

	prompt := fmt.Sprintf("%d active client sessions on SVM %s will be dropped. Continue?", len(sessions),
		r.SourceSVM)
	confirmed, err := gate.Confirm(ctx, prompt)
	if err != nil {
		return errors.WrapWithPreconditionError(err, "could not confirm dropping active sessions")
	}
	if !confirmed {
		return errors.CancelledError("%d active client sessions on SVM %s and the cutover was not confirmed; "+
			"rerun with --force to drop them", len(sessions), r.SourceSVM)
	}

	Logc(ctx).Info("Operator confirmed dropping active sessions.")
	return nil
}
