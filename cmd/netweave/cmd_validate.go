package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/netweave/netweave/pkg/state"
)

var (
	validateExpect   string
	validateAttempts int
	validateBackoff  time.Duration
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate device state against expected values",
	Long: `Retrieve device state and compare it against expected values.

By default the expectation is derived from the intent document, so what is
checked always corresponds to what 'apply' pushed. A pre-authored
expectation file can be supplied with --expect instead.

A check whose element is present with the wrong value is a mismatch and
fails immediately. A check whose element is absent is pending (the device
may still be converging) and is retried under the backoff policy before
being reported.

Examples:
  netweave -d r1 validate
  netweave -d r1 validate --expect expected/r1.yaml
  netweave -d r1 validate --attempts 5 --backoff 5s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dev, err := lookupDevice(true)
		if err != nil {
			return err
		}
		p, err := buildPipeline(dev, "")
		if err != nil {
			return err
		}
		p.Retry = state.RetryPolicy{Attempts: validateAttempts, Backoff: validateBackoff}

		var exp *state.Expectation
		if validateExpect != "" {
			exp, err = state.LoadExpectation(validateExpect)
			if err != nil {
				return err
			}
		}

		report, verr := p.ValidateState(context.Background(), nil, exp)
		if report == nil {
			return verr
		}

		if jsonOutput {
			if err := json.NewEncoder(os.Stdout).Encode(report); err != nil {
				return err
			}
		} else {
			fmt.Print(report.Summary())
		}

		if verr != nil {
			return verr
		}
		fmt.Println(green("Validation passed."))
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateExpect, "expect", "", "Expected-state file (default: derived from intent)")
	validateCmd.Flags().IntVar(&validateAttempts, "attempts", state.DefaultRetryPolicy.Attempts, "Validation passes before giving up")
	validateCmd.Flags().DurationVar(&validateBackoff, "backoff", state.DefaultRetryPolicy.Backoff, "Initial wait between passes (doubles each retry)")
}
