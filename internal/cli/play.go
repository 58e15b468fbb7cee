package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Game action commands",
	}

	cmd.AddCommand(newPlayTakeCmd())
	cmd.AddCommand(newPlayReserveCmd())
	cmd.AddCommand(newPlayBuyCmd())
	cmd.AddCommand(newPlayPassCmd())
	cmd.AddCommand(newPlayStepCmd())

	return cmd
}

func postAction(code string, req map[string]any) error {
	req["player_id"] = cfg.PlayerID

	var result ActionResult
	if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/actions", code), req, &result); err != nil {
		return err
	}

	out := NewOutput(cfg.Output)
	out.Print(result)
	return nil
}

func newPlayTakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take <code> <color>...",
		Short: "Take gems from the bank",
		Long: `Take gems from the bank: three distinct colors, or two of one
color when its pile holds at least four.

Colors: black, white, red, blue, green`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postAction(args[0], map[string]any{
				"kind": "take_gems",
				"gems": args[1:],
			})
		},
	}
}

func newPlayReserveCmd() *cobra.Command {
	var deckLevel int

	cmd := &cobra.Command{
		Use:   "reserve <code> [card-id]",
		Short: "Reserve a card",
		Long: `Reserve a face-up card by id, or draw blind from a deck with
--deck. Reserving grants a gold token while the bank has one.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"kind": "reserve"}
			if len(args) > 1 {
				req["card_id"] = args[1]
			}
			if deckLevel > 0 {
				req["deck_level"] = deckLevel
			}
			return postAction(args[0], req)
		},
	}

	cmd.Flags().IntVar(&deckLevel, "deck", 0, "Reserve blind from this deck level (1-3)")

	return cmd
}

func newPlayBuyCmd() *cobra.Command {
	var fromReserve bool

	cmd := &cobra.Command{
		Use:   "buy <code> <card-id>",
		Short: "Buy a card from the market or your reserve",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postAction(args[0], map[string]any{
				"kind":         "buy",
				"card_id":      args[1],
				"from_reserve": fromReserve,
			})
		},
	}

	cmd.Flags().BoolVar(&fromReserve, "from-reserve", false, "Buy from your reserved cards")

	return cmd
}

func newPlayPassCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pass <code>",
		Short: "Pass the turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postAction(args[0], map[string]any{"kind": "pass"})
		},
	}
}

func newPlayStepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "step <code>",
		Short: "Let AI seats play until a human turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result AIStepResult
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/ai-step", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
