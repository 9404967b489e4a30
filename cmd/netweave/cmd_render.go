package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renderRollback bool

var renderCmd = &cobra.Command{
	Use:   "render <template>",
	Short: "Render a payload from intent (local, touches no device)",
	Long: `Render intent data against a named template and print the payload.

The payload is what 'apply' would push: NETCONF XML for netconf devices,
IOS configuration lines for cli devices. Rendering is pure: the same
intent and template always produce the same payload, and a template
reference to a field the intent does not provide is an error, never an
empty substitution.

Examples:
  netweave -d r1 -f intents/r1.yaml render ospf
  netweave -d r1 render ospf --rollback     # The reverse payload`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := lookupDevice(false)
		if err != nil {
			return err
		}
		p, err := buildPipeline(dev, args[0])
		if err != nil {
			return err
		}

		var payload string
		if renderRollback {
			payload, err = p.Renderer.RenderRollback(args[0], p.Doc.Data)
		} else {
			payload, err = p.Render()
		}
		if err != nil {
			return err
		}

		fmt.Println(payload)
		return nil
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderRollback, "rollback", false, "Render the rollback payload instead")
}
