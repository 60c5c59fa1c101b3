package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Long:  "Check server health. Exits non-zero when the server reports its storage DOWN.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult

			err := client.Get(cmd.Context(), "/health", &result)
			var statusErr *StatusError
			if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusServiceUnavailable {
				if jsonErr := json.Unmarshal(statusErr.Body, &result); jsonErr != nil {
					return err
				}
				err = nil
			}
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			if result.Status != "UP" {
				return fmt.Errorf("server is %s", result.Status)
			}
			return nil
		},
	}
}
