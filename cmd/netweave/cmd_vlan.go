package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/netweave/netweave/pkg/cli"
	"github.com/netweave/netweave/pkg/device"
	"github.com/netweave/netweave/pkg/inventory"
)

var vlanCmd = &cobra.Command{
	Use:   "vlan",
	Short: "Inspect VLAN state on a cli-transport device",
	Long: `Inspect VLAN state via parsed IOS show commands.

These commands require a device with transport 'cli' in the inventory;
they run show commands over SSH and parse the output.

Examples:
  netweave -d sw1 vlan list
  netweave -d sw1 vlan ports Fa0/1`,
}

var vlanListCmd = &cobra.Command{
	Use:   "list",
	Short: "List VLANs (parsed 'show vlan brief')",
	RunE: func(cmd *cobra.Command, args []string) error {
		drv, err := connectCLIDevice()
		if err != nil {
			return err
		}
		defer drv.Close()

		resp, err := drv.Get("show vlan brief")
		if err != nil {
			return err
		}
		vlans := device.ParseVLANBrief(resp.Raw)

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(vlans)
		}
		if len(vlans) == 0 {
			fmt.Println("No VLANs found")
			return nil
		}

		table := cli.NewTable("VLAN", "NAME", "STATUS", "PORTS")
		for _, v := range vlans {
			table.Row(v.ID, v.Name, v.Status, strings.Join(v.Ports, ", "))
		}
		table.Flush()
		return nil
	},
}

var vlanPortsCmd = &cobra.Command{
	Use:   "ports <interface>",
	Short: "Show VLAN assignment of an interface (parsed switchport output)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		drv, err := connectCLIDevice()
		if err != nil {
			return err
		}
		defer drv.Close()

		resp, err := drv.Get(fmt.Sprintf("show interfaces %s switchport", args[0]))
		if err != nil {
			return err
		}
		info := device.ParseSwitchport(resp.Raw)

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(info)
		}

		fmt.Printf("Interface:           %s\n", args[0])
		fmt.Printf("Access Mode VLAN:    %s\n", info.AccessVLAN)
		fmt.Printf("Administrative Mode: %s\n", info.AdminMode)
		fmt.Printf("Operational Mode:    %s\n", info.OperMode)
		return nil
	},
}

// connectCLIDevice opens a session to the -d device, requiring cli transport.
func connectCLIDevice() (device.Driver, error) {
	dev, err := lookupDevice(true)
	if err != nil {
		return nil, err
	}
	if dev.Transport != inventory.TransportCLI {
		return nil, fmt.Errorf("vlan commands need transport 'cli', device '%s' uses '%s'", dev.Name, dev.Transport)
	}
	return device.Connect(context.Background(), device.ParamsFor(dev))
}

func init() {
	vlanCmd.AddCommand(vlanListCmd)
	vlanCmd.AddCommand(vlanPortsCmd)
}
