// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cmd

import (
	"context"
	"io"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/netapp/svm-cutover/config"
	"github.com/netapp/svm-cutover/cutover"
	"github.com/netapp/svm-cutover/logging"
	"github.com/netapp/svm-cutover/ontap/api"
	"github.com/netapp/svm-cutover/utils/errors"
)

const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"

	ExitCodeSuccess      = 0
	ExitCodeFailure      = 1
	ExitCodePrecondition = 2
	ExitCodeCancelled    = 3
)

var (
	ExitCode int

	Debug        bool
	OutputFormat string
	LogLevel     string
	LogFormat    string

	configPath      string
	snapshotDir     string
	simulate        bool
	force           bool
	nonInteractive  bool
	pollInterval    time.Duration
	settleDelay     time.Duration
	metricsTextfile string

	// fs is where configuration and snapshot documents are read from.
	fs = afero.NewOsFs()

	// connectCluster opens a session against one cluster.
	connectCluster cutover.ConnectFunc = func(ctx context.Context, cluster config.ClusterConfig) (api.ClusterClient, error) {
		client, err := api.Connect(ctx, api.NewClientConfig(cluster))
		if err != nil {
			return nil, err
		}
		return client, nil
	}
)

var RootCmd = &cobra.Command{
	SilenceUsage: true,
	Use:          config.ToolName,
	Short:        "A CLI tool for SVM CIFS cutover",
	Long: `A CLI tool that moves the CIFS identity of a storage VM to its replication target: it stops the
source CIFS service, finalizes and breaks replication, recreates shares and ACLs on the target, and moves
the data interface addresses.`,
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&Debug, "debug", "d", false, "Debug output")
	RootCmd.PersistentFlags().StringVarP(&OutputFormat, "output", "o", FormatTable,
		"Output format. One of table|json|yaml")
	RootCmd.PersistentFlags().StringVar(&LogLevel, "log-level", config.DefaultLogLevel,
		"Log level. One of debug|info|warn|error")
	RootCmd.PersistentFlags().StringVar(&LogFormat, "log-format", config.DefaultLogFormat,
		"Log format. One of text|json")
}

// newRunContext builds the context of one command invocation, carrying its own logger.
func newRunContext(parent context.Context, logOut io.Writer) (context.Context, error) {
	logger, err := logging.NewLogger(logOut, Debug, LogLevel, LogFormat)
	if err != nil {
		return nil, errors.WrapWithPreconditionError(err, "invalid logging options")
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx := logging.GenerateRunContext(parent, "", logging.ContextSourceCLI)
	return logging.WithLogger(ctx, logger), nil
}

func SetExitCodeFromError(err error) {
	ExitCode = GetExitCodeFromError(err)
}

func GetExitCodeFromError(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.IsCancelledError(err):
		return ExitCodeCancelled
	case errors.IsPreconditionError(err):
		return ExitCodePrecondition
	default:
		return ExitCodeFailure
	}
}
