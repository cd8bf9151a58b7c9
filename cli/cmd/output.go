// Copyright 2026 NetApp, Inc. All Rights Reserved.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/olekukonko/tablewriter"

	"github.com/netapp/svm-cutover/cutover"
)

func WriteJSON(out io.Writer, value any) error {
	jsonBytes, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(jsonBytes))
	return err
}

func WriteYAML(out io.Writer, value any) error {
	yamlBytes, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, string(yamlBytes))
	return err
}

func writeSummary(out io.Writer, summary *cutover.Summary) error {
	switch OutputFormat {
	case FormatJSON:
		return WriteJSON(out, summary)
	case FormatYAML:
		return WriteYAML(out, summary)
	default:
		writeSummaryTable(out, summary)
		return nil
	}
}

func writeSummaryTable(out io.Writer, summary *cutover.Summary) {
	mode := "executed"
	if summary.Simulate {
		mode = "simulated"
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Run", "Mode", "Interfaces", "Relationships", "Shares", "ACLs", "Errors"})
	table.Append([]string{
		summary.RunID,
		mode,
		strconv.Itoa(summary.InterfacePairsMigrated),
		strconv.Itoa(summary.RelationshipsBroken),
		strconv.Itoa(summary.SharesCreated),
		strconv.Itoa(summary.AclsApplied),
		strconv.Itoa(len(summary.Errors)),
	})
	table.Render()

	if len(summary.Actions) > 0 {
		actions := tablewriter.NewWriter(out)
		actions.SetHeader([]string{"Phase", "Action", "Result"})
		actions.SetAutoWrapText(false)
		for _, action := range summary.Actions {
			result := "done"
			switch {
			case action.Error != "":
				result = "failed"
			case action.Simulated:
				result = "would do"
			}
			actions.Append([]string{action.Phase, action.Description, result})
		}
		actions.Render()
	}

	for _, message := range summary.Errors {
		fmt.Fprintf(out, "Error: %s\n", message)
	}
}

func writePlan(out io.Writer, plan *cutover.CutoverPlan) error {
	switch OutputFormat {
	case FormatJSON:
		return WriteJSON(out, plan)
	case FormatYAML:
		return WriteYAML(out, plan)
	default:
		writePlanTable(out, plan)
		return nil
	}
}

func writePlanTable(out io.Writer, plan *cutover.CutoverPlan) {
	interfaces := tablewriter.NewWriter(out)
	interfaces.SetHeader([]string{"Source Interface", "Target Interface", "Address", "Netmask"})
	for _, pair := range plan.InterfacePairs {
		interfaces.Append([]string{pair.SourceInterface, pair.TargetInterface, pair.SourceAddress, pair.SourceNetmask})
	}
	interfaces.Render()

	relationships := tablewriter.NewWriter(out)
	relationships.SetHeader([]string{"Source", "Destination", "Volume", "Status"})
	for _, relationship := range plan.Relationships {
		relationships.Append([]string{
			relationship.SourceLocation,
			relationship.DestinationLocation,
			relationship.VolumeName,
			string(relationship.Status),
		})
	}
	relationships.Render()

	fmt.Fprintf(out, "Shares: %d, ACL entries: %d\n", len(plan.Shares), len(plan.Acls))

	if check := plan.VolumeCheck; check != nil {
		fmt.Fprintf(out, "Volumes in replication and snapshot: %s\n", joinOrNone(check.InBoth))
		fmt.Fprintf(out, "Volumes only in replication: %s\n", joinOrNone(check.OnlyReplication))
		fmt.Fprintf(out, "Volumes only in snapshot: %s\n", joinOrNone(check.OnlySnapshot))
	}
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
