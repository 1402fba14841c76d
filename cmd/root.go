package cmd

import (
	"fmt"
	"os"

	"github.com/Shahfarzane/CursorFocus/config"
	"github.com/Shahfarzane/CursorFocus/constants/lipgloss"
	"github.com/Shahfarzane/CursorFocus/providers"
	"github.com/Shahfarzane/CursorFocus/providers/contracts"
	"github.com/spf13/cobra"
)

const appVersion = "1.0.0"

// RootDependencies holds everything the subcommands share: the resolved
// configuration, the working directory, and the summary provider.
type RootDependencies struct {
	Cwd      string
	Config   *config.Config
	Provider contracts.SummaryProvider
}

var rootCmd = &cobra.Command{
	Use:   "cursorfocus",
	Short: "Keep a live, AI-enriched structural overview of your projects.",
	Long: `CursorFocus watches project directories and maintains two generated files at
each project root: Focus.md, a structural overview with the directory tree and
per-file function listings, and .cursorrules, editor settings derived from the
detected project type. Projects are rescanned on a fixed interval and the
files are rewritten only when their content actually changed.`,
	Run: func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Println("cursorfocus version " + appVersion)
			return
		}
		_ = cmd.Help()
	},
}

// handleRootCommand resolves the shared dependencies for a subcommand run.
// Startup failures here are fatal by design.
func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		os.Exit(1)
	}

	cfg := config.LoadConfigs(rootCmd, cwd)

	return &RootDependencies{
		Cwd:      cwd,
		Config:   cfg,
		Provider: providers.BuildSummaryProvider(cfg.Summary),
	}
}

func init() {
	config.InitFlags(rootCmd)
}

// Execute runs the root command. It is the only entry point main calls.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
