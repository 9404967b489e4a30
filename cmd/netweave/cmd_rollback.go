package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback <template>",
	Short: "Apply the reverse payload for a template",
	Long: `Render the rollback counterpart of the named template ('<name>_rollback')
and apply it to the device.

Rollback is idempotent: if the device reports the configuration is already
absent, the rollback counts as success. Rolling back twice is safe.

Without -x this is a dry-run showing the reverse payload.

Examples:
  netweave -d r1 rollback ospf        # Preview the reverse payload
  netweave -d r1 rollback ospf -x     # Execute`,
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

		payload, err := p.Renderer.RenderRollback(args[0], p.Doc.Data)
		if err != nil {
			return err
		}
		fmt.Printf("Rollback payload for %s:\n\n%s\n", bold(dev.Name), payload)

		if !executeMode {
			printDryRunNotice()
			return nil
		}

		if err := p.Rollback(context.Background(), nil); err != nil {
			return err
		}
		fmt.Println(green("Rollback applied."))
		return nil
	},
}
