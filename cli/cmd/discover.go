// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/netapp/svm-cutover/cutover"
)

func init() {
	RootCmd.AddCommand(discoverCmd)
	addPlanFlags(discoverCmd.Flags())
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Show the cutover plan without changing anything",
	Long: `Connect to both clusters, discover the CIFS interfaces and replication relationships, validate them,
and print the resulting plan. Nothing is changed on either cluster.`,
	Args: cobra.NoArgs,
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

		orchestrator := &cutover.Orchestrator{Connect: connectCluster}
		plan, err := orchestrator.Discover(ctx, request)
		if err != nil {
			return err
		}

		return writePlan(cmd.OutOrStdout(), plan)
	},
}
