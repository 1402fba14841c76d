package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/Shahfarzane/CursorFocus/config"
	"github.com/Shahfarzane/CursorFocus/constants/lipgloss"
	"github.com/Shahfarzane/CursorFocus/renderer"
	"github.com/Shahfarzane/CursorFocus/scanner"
	"github.com/Shahfarzane/CursorFocus/scanner/models"
	"github.com/Shahfarzane/CursorFocus/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	scanAll     bool
	scanPreview bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [directory]",
	Short: "Discover projects under a directory and pick which ones to monitor.",
	Long: `The 'scan' subcommand walks a directory looking for project roots (package.json,
setup.py, manifest.json and friends), lets you pick the ones to monitor, and
persists the selection to ` + config.ProjectsFileName + ` for the 'run' subcommand.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		handleScanCommand(rootDependencies, args)
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanAll, "non-interactive", false, "Select every discovered project without prompting.")
	scanCmd.Flags().BoolVar(&scanPreview, "preview", false, "Print a highlighted Focus.md preview of the first selected project.")
	rootCmd.AddCommand(scanCmd)
}

func handleScanCommand(rootDependencies *RootDependencies, args []string) {
	scanRoot := rootDependencies.Cwd
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("❌ Invalid path: %v", err)))
			return
		}
		scanRoot = abs
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithRemoveWhenDone(true)
	spinnerScan, _ := spinner.Start(fmt.Sprintf("Scanning %s...", scanRoot))

	found := scanner.ScanForProjects(scanRoot, rootDependencies.Config.MaxDepth, rootDependencies.Config.Ignore.Directories)
	spinnerScan.Stop()

	if len(found) == 0 {
		fmt.Println(lipgloss.Yellow.Render("❌ No projects found"))
		return
	}

	selected := selectProjects(found)
	if len(selected) == 0 {
		fmt.Println(lipgloss.Yellow.Render("Nothing selected"))
		return
	}

	merged := rootDependencies.Config.Projects
	added := 0
	for _, info := range selected {
		if hasProject(merged, info.Path) {
			continue
		}
		merged = append(merged, config.ProjectConfig{
			Name:           info.Name,
			ProjectPath:    info.Path,
			UpdateInterval: rootDependencies.Config.UpdateInterval,
			MaxDepth:       rootDependencies.Config.MaxDepth,
		})
		added++
	}

	if err := config.SaveProjects(rootDependencies.Cwd, merged); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("❌ %v", err)))
		return
	}
	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✅ Added %d projects (%d total)", added, len(merged))))

	if scanPreview {
		previewProject(rootDependencies, selected[0])
	}
}

// selectProjects presents the discovered projects and returns the chosen
// subset, preserving discovery order.
func selectProjects(found []models.ProjectInfo) []models.ProjectInfo {
	if scanAll {
		return found
	}

	labels := make([]string, len(found))
	byLabel := make(map[string]models.ProjectInfo, len(found))
	for i, info := range found {
		label := fmt.Sprintf("%s (%s) - %s", info.Name, renderer.TypeLabel(info.Type), info.Path)
		labels[i] = label
		byLabel[label] = info
	}

	picked, err := pterm.DefaultInteractiveMultiselect.
		WithOptions(labels).
		WithDefaultText("Select projects to monitor").
		Show()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("❌ %v", err)))
		return nil
	}

	var selected []models.ProjectInfo
	for _, label := range labels {
		for _, p := range picked {
			if p == label {
				selected = append(selected, byLabel[label])
				break
			}
		}
	}
	return selected
}

func hasProject(projects []config.ProjectConfig, path string) bool {
	for _, p := range projects {
		if p.ProjectPath == path {
			return true
		}
	}
	return false
}

// previewProject runs a single scan of one project and prints the Focus.md
// it would generate, without touching the file system.
func previewProject(rootDependencies *RootDependencies, info models.ProjectInfo) {
	s := scanner.NewScanner(info.Path, rootDependencies.Config.MaxDepth, rootDependencies.Config.Ignore, rootDependencies.Config.FileLength)
	snap, err := s.Scan()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("❌ Preview failed: %v", err)))
		return
	}

	fmt.Println()
	utils.RenderMarkdownPreview(renderer.RenderFocus(snap, ""), "dracula")
}
