package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/storex"
	"github.com/comalice/storex/internal/scenario"
	"github.com/comalice/storex/tally"
)

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in tally demonstration",
		Long: `Run the built-in tally demonstration.

Prints the initial state, subscribes a listener that prints every new state,
dispatches ADD, ADD, SUBTRACT and RESET, then unsubscribes. The output is
always plain text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(rootOpts, cmd)
		},
	}
}

func runDemo(opts *RootOptions, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	store := tally.New(storex.WithLogger[int, storex.Action](newLogger(opts, cmd.ErrOrStderr())))

	sub := store.Subscribe(func(state int) {
		fmt.Fprintln(out, "State updated:", state)
	})
	defer sub.Unsubscribe()

	fmt.Fprintln(out, "Initial state:", store.GetState())

	for _, action := range scenario.Default().Dispatchable() {
		if err := store.Dispatch(action); err != nil {
			return fmt.Errorf("dispatch %s: %w", action.Type, err)
		}
	}
	return nil
}
