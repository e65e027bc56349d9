// tokengen issues a bearer token for the write endpoints using the jwt section
// of the service config.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"astrology_backend/internal/platform/config"
	jwtmw "astrology_backend/internal/platform/jwt"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tokengen <subject>",
		Short:         "Issue a JWT for an API client",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cfg *config.Config
				err error
			)
			configFile, _ := cmd.Flags().GetString("config")
			if configFile != "" {
				cfg, err = config.LoadFromFile(configFile)
			} else {
				cfg, err = config.Load()
			}
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if ttl, _ := cmd.Flags().GetDuration("ttl"); ttl > 0 {
				cfg.JWT.TTL = ttl
			}
			gen, err := jwtmw.NewGenerator(cfg.JWT)
			if err != nil {
				return err
			}
			scopes, _ := cmd.Flags().GetStringSlice("scope")
			token, err := gen.GenerateToken(args[0], scopes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().String("config", "", "config file path (default: ./config/config.yaml)")
	cmd.Flags().Duration("ttl", 0, "token lifetime override, e.g. 720h")
	cmd.Flags().StringSlice("scope", nil, "scopes to embed, comma separated")
	return cmd
}
