package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room management commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomGetCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomLeaveCmd())
	cmd.AddCommand(newRoomStrategyCmd())
	cmd.AddCommand(newRoomKickCmd())
	cmd.AddCommand(newRoomStartCmd())
	cmd.AddCommand(newRoomAbortCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var (
		name            string
		targetScore     int
		defaultStrategy string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new room",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"player_id": cfg.PlayerID,
				"name":      name,
			}
			if targetScore > 0 {
				req["target_score"] = targetScore
			}
			if defaultStrategy != "" {
				req["default_strategy"] = defaultStrategy
			}

			var result JoinResult
			if err := client.Post("/api/v1/rooms", req, &result); err != nil {
				return err
			}

			// Keep the minted id so later commands act as this player
			if cfg.PlayerID == "" && result.PlayerID != "" {
				if err := cfg.SavePlayerID(result.PlayerID); err != nil {
					return err
				}
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().IntVar(&targetScore, "target-score", 0, "Points needed to win (default: server default)")
	cmd.Flags().StringVar(&defaultStrategy, "strategy", "", "Default AI strategy for open seats")

	return cmd
}

func newRoomGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Get room details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Room
			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomJoinCmd() *cobra.Command {
	var (
		name string
		seat int
	)

	cmd := &cobra.Command{
		Use:   "join <code>",
		Short: "Join a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"player_id": cfg.PlayerID,
				"name":      name,
			}
			if seat >= 0 {
				req["seat"] = seat
			}

			var result JoinResult
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/join", args[0]), req, &result); err != nil {
				return err
			}

			if cfg.PlayerID == "" && result.PlayerID != "" {
				if err := cfg.SavePlayerID(result.PlayerID); err != nil {
					return err
				}
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().IntVar(&seat, "seat", -1, "Preferred seat index")

	return cmd
}

func newRoomLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <code>",
		Short: "Leave a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"player_id": cfg.PlayerID}
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/leave", args[0]), req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Left room %s", args[0]))
			return nil
		},
	}
}

func newRoomStrategyCmd() *cobra.Command {
	var seat int

	cmd := &cobra.Command{
		Use:   "strategy <code> <strategy>",
		Short: "Set an AI strategy (host only)",
		Long: `Set the AI strategy for one seat with --seat, or the lobby default
for all open seats when --seat is omitted.

Strategies: aggressive, defensive, balanced, random, gemini, gemma`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"player_id": cfg.PlayerID,
				"strategy":  args[1],
			}

			path := fmt.Sprintf("/api/v1/rooms/%s/strategy", args[0])
			if seat >= 0 {
				path = fmt.Sprintf("/api/v1/rooms/%s/seats/%d/strategy", args[0], seat)
			}

			var result Room
			if err := client.Patch(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&seat, "seat", -1, "Seat index (default: lobby default strategy)")

	return cmd
}

func newRoomKickCmd() *cobra.Command {
	var seat int

	cmd := &cobra.Command{
		Use:   "kick <code>",
		Short: "Vacate a seat (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"player_id": cfg.PlayerID,
				"seat":      seat,
			}

			var result Room
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/kick", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&seat, "seat", 0, "Seat index (required)")
	_ = cmd.MarkFlagRequired("seat")

	return cmd
}

func newRoomStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <code>",
		Short: "Start the game (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"player_id": cfg.PlayerID}

			var result Room
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/start", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomAbortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abort <code>",
		Short: "Abort the game back to the lobby (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"player_id": cfg.PlayerID}

			var result Room
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/abort", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
