package cli

import (
	"github.com/spf13/cobra"
)

func newSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Name and color suggestions",
	}

	cmd.AddCommand(newSuggestListCmd("names", "Suggest player names", "/name"))
	cmd.AddCommand(newSuggestListCmd("colors", "Suggest favorite colors", "/color"))

	return cmd
}

func newSuggestListCmd(use, short, path string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Suggestions

			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}
