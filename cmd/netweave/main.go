// Netweave - intent-driven network configuration tool
//
// Netweave drives the configuration-change cycle against managed network
// devices:
//
//	render    merge intent data into a payload template (local, read-only)
//	apply     push the payload to a device (dry-run by default, -x to execute)
//	validate  compare observed device state against expected values
//	rollback  apply the reverse payload (idempotent)
//	deploy    the full render -> apply -> validate cycle in one command
//
// Intent and inventory are YAML files; payloads are NETCONF XML or IOS CLI
// lines depending on the device transport. Every stage is audit-logged.
//
// Examples:
//
//	netweave -d r1 render ospf                  # Preview the payload
//	netweave -d r1 apply ospf -x                # Push it
//	netweave -d r1 validate                     # Check device state
//	netweave -d r1 deploy ospf -x               # Full cycle, auto-rollback
//	netweave -d sw1 vlan list                   # Parsed 'show vlan brief'
package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/netweave/netweave/pkg/audit"
	"github.com/netweave/netweave/pkg/cli"
	"github.com/netweave/netweave/pkg/device"
	"github.com/netweave/netweave/pkg/intent"
	"github.com/netweave/netweave/pkg/inventory"
	"github.com/netweave/netweave/pkg/pipeline"
	"github.com/netweave/netweave/pkg/render"
	"github.com/netweave/netweave/pkg/util"
	"github.com/netweave/netweave/pkg/version"
)

var (
	// Context flags
	deviceName    string // -d, --device
	intentPath    string // -f, --intent
	templateDir   string // -t, --templates
	inventoryPath string // --inventory
	auditLogPath  string // --audit-log

	// Option flags
	executeMode bool // -x, local to write commands
	verbose     bool
	jsonOutput  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "netweave",
	Short:             "Intent-driven network configuration tool",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Netweave renders configuration intent into device payloads, applies them,
validates the resulting device state, and rolls back when asked.

Write commands preview changes by default — use -x to execute.

  netweave -d <device> <verb> [template] [-x]`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if isHelpOrVersion(cmd) {
			return nil
		}

		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}

		auditLogger, err := audit.NewFileLogger(auditLogPath, audit.RotationConfig{
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxBackups: 10,
		})
		if err != nil {
			util.Warnf("Could not initialize audit logging: %v", err)
		} else {
			audit.SetDefaultLogger(auditLogger)
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&deviceName, "device", "d", "", "Device name from the inventory")
	rootCmd.PersistentFlags().StringVarP(&intentPath, "intent", "f", "intent.yaml", "Intent document (YAML)")
	rootCmd.PersistentFlags().StringVarP(&templateDir, "templates", "t", "templates", "Template directory")
	rootCmd.PersistentFlags().StringVar(&inventoryPath, "inventory", "inventory.yaml", "Device inventory (YAML)")
	rootCmd.PersistentFlags().StringVar(&auditLogPath, "audit-log", "netweave-audit.log", "Audit log path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "JSON output")

	// -x on commands that touch a device
	for _, cmd := range []*cobra.Command{applyCmd, rollbackCmd, deployCmd} {
		cmd.Flags().BoolVarP(&executeMode, "execute", "x", false, "Execute changes (default is dry-run)")
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: "pipeline", Title: "Configuration Pipeline:"},
		&cobra.Group{ID: "device", Title: "Device Operations:"},
		&cobra.Group{ID: "meta", Title: "Configuration & Meta:"},
	)

	for _, cmd := range []*cobra.Command{renderCmd, applyCmd, validateCmd, rollbackCmd, deployCmd} {
		cmd.GroupID = "pipeline"
		rootCmd.AddCommand(cmd)
	}
	vlanCmd.GroupID = "device"
	rootCmd.AddCommand(vlanCmd)
	for _, cmd := range []*cobra.Command{inventoryCmd, auditCmd, versionCmd} {
		cmd.GroupID = "meta"
		rootCmd.AddCommand(cmd)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("netweave %s\n", version.Info())
	},
}

// lookupDevice resolves -d against the inventory. With promptPass set, a
// device entry without a stored password triggers an interactive prompt.
func lookupDevice(promptPass bool) (*inventory.Device, error) {
	if deviceName == "" {
		return nil, fmt.Errorf("device required: use -d <device> flag")
	}

	inv, err := inventory.Load(inventoryPath)
	if err != nil {
		return nil, err
	}
	dev, err := inv.Get(deviceName)
	if err != nil {
		return nil, err
	}

	if promptPass && dev.Password == "" {
		fmt.Fprintf(os.Stderr, "Password for %s@%s: ", dev.Username, dev.Host)
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("reading password: %w", err)
		}
		dev.Password = string(raw)
	}
	return dev, nil
}

// buildPipeline loads and validates the intent document and assembles the
// pipeline for one device.
func buildPipeline(dev *inventory.Device, template string) (*pipeline.Pipeline, error) {
	doc, err := intent.Load(intentPath)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if doc.Intent.Device != "" && doc.Intent.Device != dev.Name {
		util.Warnf("intent is for device '%s' but targeting '%s'", doc.Intent.Device, dev.Name)
	}

	return &pipeline.Pipeline{
		Doc:      doc,
		Renderer: render.NewRenderer(templateDir),
		Template: template,
		Connect:  device.Connect,
		Params:   device.ParamsFor(dev),
		User:     currentUser(),
		DryRun:   !executeMode,
	}, nil
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}

func printDryRunNotice() {
	fmt.Println("\n" + yellow("DRY-RUN: No changes applied. Use -x to execute."))
}

func isHelpOrVersion(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version":
			return true
		}
	}
	return false
}

// Color helpers — delegate to pkg/cli
func green(s string) string  { return cli.Green(s) }
func yellow(s string) string { return cli.Yellow(s) }
func red(s string) string    { return cli.Red(s) }
func bold(s string) string   { return cli.Bold(s) }
