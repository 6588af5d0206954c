package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/comalice/storex"
	"github.com/comalice/storex/internal/metrics"
	"github.com/comalice/storex/internal/scenario"
	"github.com/comalice/storex/internal/sink"
	"github.com/comalice/storex/tally"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Scenario string
	Initial  int
	RunID    string
	Metrics  bool

	// Clock stamps transitions. If nil, defaults to time.Now.
	Clock func() time.Time
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return newRunCommand(&RunOptions{RootOptions: rootOpts})
}

func newRunCommand(opts *RunOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [ACTION...]",
		Short: "Dispatch actions and print the transcript",
		Long: `Dispatch actions against a fresh tally store and print every transition.

Actions come from the command line, or from a YAML/TOML scenario file, or
default to the demonstration sequence ADD ADD SUBTRACT RESET. Names of known
actions are case-insensitive.

Example:
  tally run add add subtract
  tally run --scenario ./count.yaml --format json
  tally run --initial 10 reset --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("initial") {
				return runActions(opts, args, &opts.Initial, cmd)
			}
			return runActions(opts, args, nil, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Scenario, "scenario", "", "scenario file (.yaml, .yml or .toml)")
	cmd.Flags().IntVar(&opts.Initial, "initial", tally.Initial, "initial state, overrides the scenario")
	cmd.Flags().StringVar(&opts.RunID, "run-id", "", "run identifier (default: random UUID)")
	cmd.Flags().BoolVar(&opts.Metrics, "metrics", false, "append Prometheus metrics (text format only)")

	return cmd
}

func runActions(opts *RunOptions, args []string, initial *int, cmd *cobra.Command) error {
	if opts.Metrics && opts.Format != sink.FormatText {
		return errors.New("--metrics requires --format text")
	}

	sc, err := loadScenario(opts, args, initial)
	if err != nil {
		return err
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	transcript := sink.NewTranscript[int, storex.Action](runID, sc.Initial, storex.ActionType)
	storeOpts := []storex.Option[int, storex.Action]{
		storex.WithLogger[int, storex.Action](newLogger(opts.RootOptions, cmd.ErrOrStderr())),
		storex.WithPublisher[int, storex.Action](transcript),
		storex.WithClock[int, storex.Action](opts.Clock),
	}

	var mp *metrics.Publisher[int, storex.Action]
	if opts.Metrics {
		mp, err = metrics.New[int, storex.Action](storex.ActionType, func(n int) float64 { return float64(n) },
			metrics.WithConstLabels(map[string]string{"scenario": sc.Name}),
		)
		if err != nil {
			return err
		}
		storeOpts = append(storeOpts, storex.WithPublisher[int, storex.Action](mp))
	}

	store := storex.New(tally.Reduce, sc.Initial, storeOpts...)
	for _, action := range sc.Dispatchable() {
		if err := store.Dispatch(action); err != nil {
			return fmt.Errorf("dispatch %s: %w", action.Type, err)
		}
	}

	out := cmd.OutOrStdout()
	if err := transcript.Render(out, opts.Format); err != nil {
		return err
	}
	if mp != nil {
		fmt.Fprintln(out, "# metrics")
		if err := mp.WriteText(out); err != nil {
			return err
		}
	}
	return nil
}

// loadScenario resolves the scenario from flags and arguments. Positional
// actions replace the scenario's actions; initial, when set, replaces its
// initial state.
func loadScenario(opts *RunOptions, args []string, initial *int) (*scenario.Scenario, error) {
	sc := scenario.Default()
	if opts.Scenario != "" {
		loaded, err := scenario.Load(opts.Scenario)
		if err != nil {
			return nil, err
		}
		sc = loaded
	} else if len(args) > 0 {
		sc.Name = "cli"
	}

	if len(args) > 0 {
		sc.Actions = args
	}
	if initial != nil {
		sc.Initial = *initial
	}

	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("validate scenario: %w", err)
	}
	return sc, nil
}
