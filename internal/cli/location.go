package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

func newLocationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "location",
		Short: "Player location commands",
	}

	cmd.AddCommand(newLocationGetCmd())
	cmd.AddCommand(newLocationSetCmd())
	cmd.AddCommand(newLocationListCmd())

	return cmd
}

func newLocationGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show where a player is",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Location

			if err := client.Get(cmd.Context(), accountPath(args[0])+"/location", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newLocationSetCmd() *cobra.Command {
	var from, to, origin string

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Move a player (requires a server token)",
		Long: `Move a player from one location to another.

The move only happens if the player is currently at --from; otherwise the
player's actual location is reported and nothing changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"oldLocation": from, "newLocation": to}
			if origin != "" {
				req["origin"] = origin
			}
			var result Location

			err := client.Put(cmd.Context(), accountPath(args[0])+"/location", req, &result)
			var statusErr *StatusError
			if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusConflict && statusErr.API == nil {
				var current Location
				if jsonErr := json.Unmarshal(statusErr.Body, &current); jsonErr == nil {
					return fmt.Errorf("player is at %q, not %q", current.Location, from)
				}
			}
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Expected current location (required)")
	cmd.Flags().StringVar(&to, "to", "", "New location (required)")
	cmd.Flags().StringVar(&origin, "origin", "", "Room that initiated the move")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newLocationListCmd() *cobra.Command {
	var player, site string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List player locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if player != "" {
				q.Set("playerId", player)
			}
			if site != "" {
				q.Set("siteId", site)
			}
			path := "/locations"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}
			result := Locations{}

			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", "", "Only this player")
	cmd.Flags().StringVar(&site, "site", "", "Only players at this location")

	return cmd
}
