package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Shahfarzane/CursorFocus/config"
	"github.com/Shahfarzane/CursorFocus/constants/lipgloss"
	"github.com/Shahfarzane/CursorFocus/monitor"
	"github.com/Shahfarzane/CursorFocus/scanner"
	"github.com/spf13/cobra"
)

var watchFlag bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Monitor the configured projects and keep their generated files current.",
	Long: `The 'run' subcommand starts one monitor per configured project. Each monitor
rescans its project on the configured interval and rewrites Focus.md and
.cursorrules whenever the project structure changed. Without a projects file
the current directory is monitored. Runs until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		handleRunCommand(rootDependencies)
	},
}

func init() {
	runCmd.Flags().BoolVar(&watchFlag, "watch", false, "Also react to file system events between polls instead of waiting out the full interval.")
	rootCmd.AddCommand(runCmd)
}

func handleRunCommand(rootDependencies *RootDependencies) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	projects := rootDependencies.Config.Projects
	if len(projects) == 0 {
		projects = []config.ProjectConfig{{
			Name:           scanner.ProjectNameFromPath(rootDependencies.Cwd),
			ProjectPath:    rootDependencies.Cwd,
			UpdateInterval: rootDependencies.Config.UpdateInterval,
			MaxDepth:       rootDependencies.Config.MaxDepth,
		}}
	}

	var valid []config.ProjectConfig
	for _, p := range projects {
		if _, err := os.Stat(p.ProjectPath); err != nil {
			fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("⚠️ Not found: %s", p.ProjectPath)))
			continue
		}
		valid = append(valid, p)
	}

	if len(valid) == 0 {
		fmt.Println(lipgloss.Red.Render("❌ No projects to monitor"))
		os.Exit(1)
	}

	var wg sync.WaitGroup
	for _, p := range valid {
		fmt.Println(lipgloss.BlueSky.Render("👀 " + p.Name))

		m := monitor.New(p, rootDependencies.Config, rootDependencies.Provider, watchFlag)
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Run(ctx)
		}()
	}

	fmt.Println(lipgloss.BoxStyle.Render(fmt.Sprintf("📝 Monitoring %d projects (Ctrl+C to stop)", len(valid))))

	wg.Wait()
}
