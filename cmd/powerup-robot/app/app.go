package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/team6458/powerup/cmd/powerup-robot/app/options"
	"github.com/team6458/powerup/internal/robot"
	"github.com/team6458/powerup/pkg/log"
)

// NewRobotCommand builds the powerup-robot root command.
func NewRobotCommand() *cobra.Command {
	opts := options.NewRobotOptions()

	cmd := &cobra.Command{
		Use:   "powerup-robot",
		Short: "Autonomous decision and motion core for the Power Up robot",
		Long: `powerup-robot runs the match control loop: it reads the plate
assignment from the field, selects and executes the autonomous delivery
routine, serves telemetry, then idles in teleop until interrupted.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(); err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			return run(opts)
		},
	}
	opts.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(newRoutinesCommand())
	cmd.AddCommand(newTestCommand(opts))

	return cmd
}

func run(opts *options.RobotOptions) error {
	log.Init(opts.Log)
	defer log.Sync()

	cfg, err := opts.Config()
	if err != nil {
		return err
	}
	r, err := cfg.NewRobot()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return r.Run(ctx)
}

// newRoutinesCommand lists the debug command catalog.
func newRoutinesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "routines",
		Short: "List the available debug routines",
		RunE: func(cmd *cobra.Command, args []string) error {
			table := uitable.New()
			table.MaxColWidth = 70
			table.AddRow("NAME", "DESCRIPTION")
			for _, name := range robot.DebugCommandNames() {
				table.AddRow(name, robot.DebugCommandDescription(name))
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), table)
			return err
		},
	}
}

// newTestCommand runs a single debug routine against the simulator and exits
// when it completes.
func newTestCommand(opts *options.RobotOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "test NAME",
		Short: "Run one debug routine from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Complete(); err != nil {
				return err
			}
			if err := opts.Validate(); err != nil {
				return err
			}

			log.Init(opts.Log)
			defer log.Sync()

			cfg, err := opts.Config()
			if err != nil {
				return err
			}
			r, err := cfg.NewRobot()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := r.Start(ctx); err != nil {
				return err
			}
			return r.RunTest(ctx, args[0])
		},
	}
}
