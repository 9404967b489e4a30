package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/netweave/netweave/pkg/audit"
	"github.com/netweave/netweave/pkg/cli"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "View audit logs",
	Long: `View the audit log of pipeline runs.

Every pipeline stage (render, apply, validate, rollback) is logged with
timestamp, user, device, template, success/failure, and duration.

Examples:
  netweave audit list --device r1
  netweave audit list --stage apply --failures
  netweave audit list --last 24h`,
}

var (
	auditDevice   string
	auditUser     string
	auditStage    string
	auditLast     string
	auditLimit    int
	auditFailures bool
)

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit events",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := audit.Filter{
			Device:      auditDevice,
			User:        auditUser,
			Stage:       audit.Stage(auditStage),
			Limit:       auditLimit,
			FailureOnly: auditFailures,
		}

		if auditLast != "" {
			duration, err := time.ParseDuration(auditLast)
			if err != nil {
				return fmt.Errorf("invalid duration: %s", auditLast)
			}
			filter.StartTime = time.Now().Add(-duration)
		}

		events, err := audit.Query(filter)
		if err != nil {
			return fmt.Errorf("querying audit log: %w", err)
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(events)
		}
		if len(events) == 0 {
			fmt.Println("No audit events found")
			return nil
		}

		table := cli.NewTable("TIMESTAMP", "USER", "DEVICE", "STAGE", "TEMPLATE", "STATUS")
		for _, event := range events {
			status := green("ok")
			if !event.Success {
				status = red("failed")
			}
			if event.DryRun {
				status = yellow("dry-run")
			}
			table.Row(
				event.Timestamp.Format("2006-01-02 15:04:05"),
				event.User,
				event.Device,
				string(event.Stage),
				event.Template,
				status,
			)
		}
		table.Flush()
		return nil
	},
}

func init() {
	auditListCmd.Flags().StringVar(&auditDevice, "device", "", "Filter by device")
	auditListCmd.Flags().StringVar(&auditUser, "user", "", "Filter by user")
	auditListCmd.Flags().StringVar(&auditStage, "stage", "", "Filter by stage (render|apply|validate|rollback)")
	auditListCmd.Flags().StringVar(&auditLast, "last", "", "Show events from last duration (e.g. 24h)")
	auditListCmd.Flags().IntVar(&auditLimit, "limit", 100, "Maximum events to show")
	auditListCmd.Flags().BoolVar(&auditFailures, "failures", false, "Show only failed stages")

	auditCmd.AddCommand(auditListCmd)
}
