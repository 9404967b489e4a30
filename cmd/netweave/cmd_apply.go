package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netweave/netweave/pkg/pipeline"
)

var applyCmd = &cobra.Command{
	Use:   "apply <template>",
	Short: "Apply a rendered payload to the device",
	Long: `Render the named template and push the payload to the device.

Without -x this is a dry-run: the payload is rendered and shown, nothing
reaches the device. With -x the change is applied through the device's
change discipline (candidate + lock + commit for NETCONF, config push +
write memory for CLI). The protocol layer makes the change all-or-nothing;
a rejected payload leaves the device untouched and the rejection carries
the device's own diagnostic.

Examples:
  netweave -d r1 apply ospf          # Preview
  netweave -d r1 apply ospf -x       # Execute`,
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

		payload, err := p.Render()
		if err != nil {
			return err
		}
		fmt.Printf("Payload for %s:\n\n%s\n", bold(dev.Name), payload)

		if !executeMode {
			printDryRunNotice()
			return nil
		}

		run := pipeline.NewRun(dev.Name, args[0])
		if err := p.Apply(context.Background(), run, payload); err != nil {
			return err
		}
		fmt.Println(green("Configuration applied."))
		return nil
	},
}
