package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func accountPath(id string) string {
	return "/accounts/" + url.PathEscape(id)
}

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Player account commands",
	}

	cmd.AddCommand(newAccountListCmd())
	cmd.AddCommand(newAccountGetCmd())
	cmd.AddCommand(newAccountCreateCmd())
	cmd.AddCommand(newAccountUpdateCmd())
	cmd.AddCommand(newAccountDeleteCmd())

	return cmd
}

func newAccountListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := PlayerList{}

			if err := client.Get(cmd.Context(), "/accounts", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newAccountGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Get(cmd.Context(), accountPath(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newAccountCreateCmd() *cobra.Command {
	var name, color, email string

	cmd := &cobra.Command{
		Use:   "create <id>",
		Short: "Create a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			req := map[string]string{
				"_id":           args[0],
				"name":          name,
				"favoriteColor": color,
			}
			if email != "" {
				req["email"] = email
			}
			var result Player

			if err := client.Post(cmd.Context(), "/accounts", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&color, "color", "", "Favorite color")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAccountUpdateCmd() *cobra.Command {
	var name, color, rev string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a player's name or color",
		Long: `Update a player. Only the flags given are sent.

Client tokens may change the name and color; server tokens change nothing.
The email changes only through "credentials email".
With --rev the update fails if the record has changed since that revision.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"_id": args[0]}
			flags := cmd.Flags()
			if flags.Changed("name") {
				req["name"] = name
			}
			if flags.Changed("color") {
				req["favoriteColor"] = color
			}
			if rev != "" {
				req["_rev"] = rev
			}
			var result Player

			if err := client.Put(cmd.Context(), accountPath(args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&color, "color", "", "Favorite color")
	cmd.Flags().StringVar(&rev, "rev", "", "Expected current revision")

	return cmd
}

func newAccountDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), accountPath(args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Deleted player %s", args[0]))
			return nil
		},
	}
}
