package main

import (
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/NethermindEth/ethrpc/upgrader"
	"github.com/spf13/cobra"
)

const (
	upgraderDelay    = 5 * time.Minute
	githubAPIUrl     = "https://api.github.com/repos/NethermindEth/ethrpc/releases/latest"
	latestReleaseURL = "https://github.com/NethermindEth/ethrpc/releases/latest"
)

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the client version.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), Version); err != nil {
				return err
			}

			check, err := cmd.Flags().GetBool(checkF)
			if err != nil || !check {
				return err
			}

			semversion, err := semver.NewVersion(Version)
			if err != nil {
				return fmt.Errorf("parse version %q: %w", Version, err)
			}

			ug := upgrader.NewUpgrader(semversion, githubAPIUrl, latestReleaseURL, upgraderDelay, log)
			latest, newer, err := ug.Check(cmd.Context())
			if err != nil {
				return err
			}
			if newer {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "A new release %s is available at %s\n", latest.Version, latestReleaseURL)
			} else {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "Up to date.")
			}
			return err
		},
	}
	cmd.Flags().Bool(checkF, false, checkFlagUsage)
	return cmd
}
