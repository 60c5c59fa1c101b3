package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gameontext/gameon-player/internal/dependencies/clock"
	"github.com/gameontext/gameon-player/internal/model"
	"github.com/gameontext/gameon-player/internal/services/auth"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Identity token commands",
	}

	cmd.AddCommand(newTokenMintCmd())

	return cmd
}

func newTokenMintCmd() *cobra.Command {
	var keyFile, sub, aud, email string
	var ttl time.Duration
	var save bool

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint a token for local development",
		Long: `Sign an identity token with a local RSA private key.

The server accepts it if it was started with the matching public key.
With --save the token is written to the token file and used by later commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch model.Audience(aud) {
			case model.AudienceClient, model.AudienceServer:
			default:
				return fmt.Errorf("--aud must be client or server")
			}

			key, err := auth.LoadPrivateKey(keyFile)
			if err != nil {
				return err
			}

			signer := auth.NewSigner(key, clock.New())
			token, err := signer.Sign(auth.Claims{
				Subject:  model.PlayerID(sub),
				Audience: model.Audience(aud),
				Email:    email,
			}, ttl)
			if err != nil {
				return err
			}

			if save {
				if err := cfg.SaveToken(token); err != nil {
					return fmt.Errorf("failed to save token: %w", err)
				}
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(TokenResult{Token: token})
			return nil
		},
	}

	cmd.Flags().StringVar(&keyFile, "key-file", "", "RSA private key PEM file (required)")
	cmd.Flags().StringVar(&sub, "sub", "", "Subject player id (required)")
	cmd.Flags().StringVar(&aud, "aud", string(model.AudienceClient), "Audience: client or server")
	cmd.Flags().StringVar(&email, "email", "", "Email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	cmd.Flags().BoolVar(&save, "save", false, "Save the token to the token file")
	_ = cmd.MarkFlagRequired("key-file")
	_ = cmd.MarkFlagRequired("sub")

	return cmd
}
