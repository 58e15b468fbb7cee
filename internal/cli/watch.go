package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch <code>",
		Short: "Follow a room, re-printing it whenever it changes",
		Long: `Poll the room on a fixed cadence and print its state whenever the
revision moves. Stops when the room is deleted.

Press Ctrl+C to stop watching.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchRoom(args[0], interval)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 2500*time.Millisecond, "Poll interval")

	return cmd
}

func watchRoom(code string, interval time.Duration) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	out := NewOutput(cfg.Output)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastRevision := int64(-1)

	for {
		var result Room
		err := client.Get(fmt.Sprintf("/api/v1/rooms/%s", code), &result)
		switch {
		case err != nil:
			// The room may have closed; report and stop
			out.PrintMessage(fmt.Sprintf("watch stopped: %s", err))
			return nil
		case result.Revision != lastRevision:
			lastRevision = result.Revision
			out.Print(result)
			fmt.Println()
		}

		select {
		case <-sigCh:
			return nil
		case <-ticker.C:
		}
	}
}
