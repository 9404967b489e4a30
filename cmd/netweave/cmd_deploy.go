package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netweave/netweave/pkg/state"
)

var deployNoRollback bool

var deployCmd = &cobra.Command{
	Use:   "deploy <template>",
	Short: "Full cycle: render, apply, validate (auto-rollback on failure)",
	Long: `Run the complete configuration cycle against one device: render the
payload, apply it, then validate the observed device state against the
expectation derived from the intent.

If validation finds a mismatch, the reverse payload is applied
automatically (disable with --no-rollback) and the command fails with the
validation differences. A change still pending after the retry budget is
left in place, not rolled back: re-run 'validate' once the device has
converged, or 'rollback' explicitly. This is the CI entrypoint: a zero
exit means the device is configured and verified.

Without -x this is a dry-run showing the payload and the derived checks.

Examples:
  netweave -d r1 deploy ospf            # Preview payload + checks
  netweave -d r1 deploy ospf -x         # Execute the full cycle
  netweave -d r1 deploy ospf -x --no-rollback`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := lookupDevice(executeMode)
		if err != nil {
			return err
		}
		p, err := buildPipeline(dev, args[0])
		if err != nil {
			return err
		}

		if !executeMode {
			payload, err := p.Render()
			if err != nil {
				return err
			}
			fmt.Printf("Payload for %s:\n\n%s\n", bold(dev.Name), payload)

			exp, err := state.Derive(p.Doc)
			if err != nil {
				return err
			}
			fmt.Println("Post-apply checks:")
			for _, c := range exp.Checks {
				fmt.Printf("  %s == %s\n", c.Path, c.Equals)
			}
			printDryRunNotice()
			return nil
		}

		fmt.Printf("Deploying %s to %s\n", bold(args[0]), bold(dev.Name))
		result, err := p.Deploy(context.Background(), !deployNoRollback)
		if result != nil && result.Report != nil {
			fmt.Print(result.Report.Summary())
		}
		if err != nil {
			if result != nil {
				fmt.Printf("Run finished in state: %s\n", red(string(result.Run.State)))
			}
			return err
		}

		fmt.Println(green("Deploy complete: applied and validated."))
		return nil
	},
}

func init() {
	deployCmd.Flags().BoolVar(&deployNoRollback, "no-rollback", false, "Keep the change in place when validation fails")
}
