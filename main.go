// LazyVault is a terminal UI for browsing a vault export through its
// filter sections: organizations, item types, folders, collections and trash.
// It provides a lazygit-inspired interface for narrowing down vault items.
//
// Usage:
//
//	lazyvault [--config path] [--export path] [--state path]
//
// Configuration is loaded from ~/.lazyvault/config.yaml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marjoballabani/lazyvault/pkg/app"
)

// Build information, set via ldflags during compilation:
//
//	go build -ldflags "-X main.version=1.0.0 -X main.commit=$(git rev-parse HEAD)"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var opts app.Options

var rootCmd = &cobra.Command{
	Use:           "lazyvault",
	Short:         "Browse a vault export from the terminal",
	Long:          "lazyvault shows the organizations, item types, folders and collections of a vault export and lets you filter items by any of them.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.NewApp(&app.BuildInfo{
			Version: version,
			Commit:  commit,
			Date:    date,
		}, opts)
		if err != nil {
			return err
		}
		defer application.Close()

		return application.Run(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lazyvault %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("lazyvault {{.Version}}\n")

	rootCmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default ~/.lazyvault/config.yaml)")
	rootCmd.Flags().StringVarP(&opts.ExportPath, "export", "e", "", "vault export JSON file")
	rootCmd.Flags().StringVar(&opts.StatePath, "state", "", "state database for collapsed nodes")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
