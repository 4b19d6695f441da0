package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tailored-agentic-units/assistant-state/derived"
)

func newReplayCmd(a *app) *cobra.Command {
	var keepGoing bool

	cmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "Apply a YAML action script and print app state on every change",
		Long: `Replays the steps of a YAML script against a fresh bundle. The derived
app state is written as one JSON object per line: once for the initial state
and again after every change.

Example script:

  steps:
    - action: set_runtime
      runtime: {name: LocalRuntime, capabilities: {supports_streaming: true}}
    - action: set_connected
      value: true
    - action: add_message
      ref: question
      role: user
      content: What is a diamond dependency?
    - action: set_selected_message
      value: "@question"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read script: %w", err)
			}

			script, err := ParseScript(data)
			if err != nil {
				return err
			}

			bundle, err := a.newBundle()
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			var encodeErr error
			unsubscribe := bundle.Derived.AppState.Subscribe(func(s derived.AppState) {
				if err := enc.Encode(s); err != nil && encodeErr == nil {
					encodeErr = err
				}
			})
			defer unsubscribe()

			runner := NewRunner(bundle.Actions)
			for i, step := range script.Steps {
				if err := runner.Apply(step); err != nil {
					err = fmt.Errorf("step %d (%s): %w", i+1, step.Action, err)
					if !keepGoing {
						return err
					}
					fmt.Fprintln(cmd.ErrOrStderr(), err)
				}
			}
			return encodeErr
		},
	}

	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Report failing steps and continue")
	return cmd
}
