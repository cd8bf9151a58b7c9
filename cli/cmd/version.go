// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cmd

import (
	"io"
	"runtime"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/netapp/svm-cutover/config"
)

// VersionResponse describes the build of the tool.
type VersionResponse struct {
	Version   string `json:"version"`
	BuildType string `json:"buildType"`
	BuildHash string `json:"buildHash"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

func init() {
	RootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of " + config.ToolName,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeVersion(cmd.OutOrStdout(), getVersion())
	},
}

func getVersion() *VersionResponse {
	return &VersionResponse{
		Version:   config.Version(),
		BuildType: config.BuildType,
		BuildHash: config.BuildHash,
		BuildTime: config.BuildTime,
		GoVersion: runtime.Version(),
	}
}

func writeVersion(out io.Writer, version *VersionResponse) error {
	switch OutputFormat {
	case FormatJSON:
		return WriteJSON(out, version)
	case FormatYAML:
		return WriteYAML(out, version)
	default:
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Version", "Go Version"})
		table.Append([]string{version.Version, version.GoVersion})
		table.Render()
		return nil
	}
}
