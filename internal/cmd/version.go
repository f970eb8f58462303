package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ranked-report %s (%s %s/%s)\n", BuildVersion, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
