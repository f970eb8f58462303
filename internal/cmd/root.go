// Package cmd implements the CLI (Command Line Interface) of the application.
//
// report - Build the ranked match report of a player
// check-key - Check that the configured Riot API key is accepted
// version - Print the build version
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// BuildVersion is set at link time with -ldflags "-X ranked-report/internal/cmd.BuildVersion=..."
var BuildVersion = ""

type rootOptions struct {
	cfgFile string
}

// newRootCmd represents the base command when called without any subcommands.
func newRootCmd() *cobra.Command {
	if BuildVersion == "" {
		BuildVersion = "master"
	}

	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "ranked-report",
		Short:        "Ranked match history reports from the Riot API",
		Long:         `Resolves a Riot ID, fetches the player's recent ranked matches and reports their per-match stats.`,
		Version:      BuildVersion,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./report.yml or $HOME/report.yml)")

	root.AddCommand(reportCmd(opts))
	root.AddCommand(checkKeyCmd(opts))
	root.AddCommand(versionCmd())

	return root
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	if errExecute := newRootCmd().ExecuteContext(context.Background()); errExecute != nil {
		os.Exit(1)
	}
}
