package cli

import (
	"github.com/spf13/cobra"
)

func newCredentialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Player credential commands",
	}

	cmd.AddCommand(newCredentialsGetCmd())
	cmd.AddCommand(newCredentialsRotateCmd())
	cmd.AddCommand(newCredentialsEmailCmd())

	return cmd
}

func newCredentialsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a player's shared secret and email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Credentials

			if err := client.Get(cmd.Context(), accountPath(args[0])+"/credentials", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newCredentialsRotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate <id>",
		Short: "Generate a new shared secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Put(cmd.Context(), accountPath(args[0])+"/credentials/sharedSecret", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newCredentialsEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "email <id>",
		Short: "Store the email claim of the current token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Put(cmd.Context(), accountPath(args[0])+"/credentials/email", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}
