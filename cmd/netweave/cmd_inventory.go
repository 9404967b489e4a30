package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netweave/netweave/pkg/cli"
	"github.com/netweave/netweave/pkg/inventory"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "List managed devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := inventory.Load(inventoryPath)
		if err != nil {
			return err
		}

		if jsonOutput {
			// passwords stay out of structured output
			type entry struct {
				Name      string `json:"name"`
				Host      string `json:"host"`
				Port      int    `json:"port"`
				Platform  string `json:"platform,omitempty"`
				Transport string `json:"transport"`
			}
			entries := make([]entry, 0, len(inv.Devices))
			for _, d := range inv.Devices {
				entries = append(entries, entry{d.Name, d.Host, d.Port, d.Platform, d.Transport})
			}
			return json.NewEncoder(os.Stdout).Encode(entries)
		}

		table := cli.NewTable("NAME", "HOST", "PORT", "PLATFORM", "TRANSPORT")
		for _, d := range inv.Devices {
			table.Row(d.Name, d.Host, fmt.Sprintf("%d", d.Port), d.Platform, d.Transport)
		}
		table.Flush()
		return nil
	},
}
