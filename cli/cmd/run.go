// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/netapp/svm-cutover/config"
	"github.com/netapp/svm-cutover/cutover"
	. "github.com/netapp/svm-cutover/logging"
	"github.com/netapp/svm-cutover/metrics"
	"github.com/netapp/svm-cutover/snapshot"
	"github.com/netapp/svm-cutover/utils/errors"
)

func init() {
	RootCmd.AddCommand(runCmd)
	addPlanFlags(runCmd.Flags())
	runCmd.Flags().BoolVar(&simulate, "simulate", false, "Log every change instead of making it")
	runCmd.Flags().BoolVar(&simulate, "dry-run", false, "Alias for --simulate")
	runCmd.Flags().BoolVar(&force, "force", false,
		"Drop active client sessions without asking and continue past failed relationship breaks")
	runCmd.Flags().BoolVar(&nonInteractive, "non-interactive", false,
		"Never prompt; active client sessions fail the run unless --force is given")
	runCmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "",
		"Write run metrics to this file for the node exporter textfile collector")
}

// addPlanFlags adds the flags shared by every command that builds a plan.
func addPlanFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&configPath, "config", "c", "", "Run configuration file (YAML or JSON)")
	flags.StringVar(&snapshotDir, "snapshot-dir", "", "Directory holding the captured share, ACL and volume documents")
	flags.DurationVar(&pollInterval, "poll-interval", 0, "Replication status poll interval")
	flags.DurationVar(&settleDelay, "settle-delay", 0, "Delay before an interface change is confirmed")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Cut the CIFS identity of a storage VM over to its replication target",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := newRunContext(cmd.Context(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		cfg, err := loadRunConfig(cmd.Flags())
		if err != nil {
			return err
		}
		request, err := buildRequest(ctx, cfg)
		if err != nil {
			return err
		}

		recorder := metrics.NewRecorder()
		orchestrator := &cutover.Orchestrator{
			Connect: connectCluster,
			Gate:    confirmGate(cmd.ErrOrStderr()),
			Metrics: recorder,
		}

		summary, runErr := orchestrator.Run(ctx, request)
		if summary != nil {
			if err = writeSummary(cmd.OutOrStdout(), summary); err != nil {
				Logc(ctx).WithError(err).Error("Could not write the run summary.")
			}
			if summary.RollbackRequired {
				writeRollbackSteps(cmd.ErrOrStderr(), summary.RollbackSteps)
			}
		}

		if metricsTextfile != "" {
			if err = recorder.WriteTextfile(metricsTextfile); err != nil {
				Logc(ctx).WithField("path", metricsTextfile).WithError(err).Error("Could not write metrics.")
			}
		}

		return runErr
	},
}

// loadRunConfig reads the configuration file and lets explicitly set flags override it.
func loadRunConfig(flags *pflag.FlagSet) (*config.RunConfig, error) {
	if configPath == "" {
		return nil, errors.PreconditionError("a run configuration is required (--config)")
	}

	cfg, err := config.Load(fs, configPath)
	if err != nil {
		return nil, err
	}

	if flags.Changed("snapshot-dir") {
		cfg.SnapshotDir = snapshotDir
	}
	if flags.Changed("poll-interval") {
		cfg.PollInterval = pollInterval.String()
	}
	if flags.Changed("settle-delay") {
		cfg.SettleDelay = settleDelay.String()
	}
	if flags.Changed("simulate") || flags.Changed("dry-run") {
		cfg.Simulate = simulate
	}
	if flags.Changed("force") {
		cfg.Force = force
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildRequest(ctx context.Context, cfg *config.RunConfig) (cutover.Request, error) {
	timing, err := cfg.Timing()
	if err != nil {
		return cutover.Request{}, errors.WrapWithPreconditionError(err, "invalid timing")
	}

	snap, err := snapshot.Load(ctx, fs, cfg.SnapshotDir)
	if err != nil {
		return cutover.Request{}, err
	}

	return cutover.Request{
		Source:           cfg.Source,
		Target:           cfg.Target,
		SourceInterfaces: cfg.SourceInterfaces,
		TargetInterfaces: cfg.TargetInterfaces,
		Relationships:    cfg.Relationships,
		Snapshot:         snap,
		Options: cutover.Options{
			Simulate:     cfg.Simulate,
			Force:        cfg.Force,
			PollInterval: timing.PollInterval,
			SettleDelay:  timing.SettleDelay,
			RetryBudget:  timing.RetryBudget,
			RunTimeout:   timing.RunTimeout,
		},
	}, nil
}

func confirmGate(out io.Writer) cutover.ConfirmGate {
	if nonInteractive {
		return cutover.DeclineGate{}
	}
	return cutover.NewConfirmGate(os.Stdin, out)
}

func writeRollbackSteps(out io.Writer, steps []string) {
	fmt.Fprintln(out, "\nThe cutover recorded errors after the source service was disabled. Nothing was rolled back.")
	fmt.Fprintln(out, "To return service to the source:")
	for i, step := range steps {
		fmt.Fprintf(out, "  %d. %s\n", i+1, step)
	}
}
