package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Shahfarzane/CursorFocus/config"
	"github.com/Shahfarzane/CursorFocus/constants/lipgloss"
	"github.com/Shahfarzane/CursorFocus/utils"
	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage the persisted list of monitored projects.",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured projects.",
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		handleProjectsListCommand(rootDependencies)
	},
}

var projectsRemoveCmd = &cobra.Command{
	Use:   "remove <name|index|all>...",
	Short: "Remove projects by name or index, or 'all' to clear the list.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		handleProjectsRemoveCommand(rootDependencies, args)
	},
}

func init() {
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsRemoveCmd)
	rootCmd.AddCommand(projectsCmd)
}

func handleProjectsListCommand(rootDependencies *RootDependencies) {
	projects := rootDependencies.Config.Projects
	if len(projects) == 0 {
		fmt.Println(lipgloss.Yellow.Render("📁 No projects configured."))
		return
	}

	fmt.Println(lipgloss.BlueSky.Render("📁 Configured projects:"))
	for i, p := range projects {
		fmt.Printf("\n  %d. %s\n", i+1, p.Name)
		fmt.Printf("     Path: %s\n", p.ProjectPath)
		fmt.Printf("     Update interval: %s\n", p.UpdateInterval)
		fmt.Printf("     Max depth: %d levels\n", p.MaxDepth)
	}
}

func handleProjectsRemoveCommand(rootDependencies *RootDependencies, targets []string) {
	projects := rootDependencies.Config.Projects
	if len(projects) == 0 {
		fmt.Println(lipgloss.Yellow.Render("⚠️ No projects configured."))
		return
	}

	for _, target := range targets {
		if strings.EqualFold(target, "all") {
			confirmed, err := utils.ConfirmPrompt("Remove all projects?", bufio.NewReader(os.Stdin))
			if err != nil {
				fmt.Println(lipgloss.Red.Render(fmt.Sprintf("❌ %v", err)))
				return
			}
			if !confirmed {
				return
			}
			if err := config.SaveProjects(rootDependencies.Cwd, nil); err != nil {
				fmt.Println(lipgloss.Red.Render(fmt.Sprintf("❌ %v", err)))
				return
			}
			fmt.Println(lipgloss.Green.Render("✅ All projects removed"))
			return
		}
	}

	var remaining []config.ProjectConfig
	var removed []string
	for i, p := range projects {
		if matchesTarget(p, i, targets) {
			removed = append(removed, p.Name)
			continue
		}
		remaining = append(remaining, p)
	}

	if len(removed) == 0 {
		fmt.Println(lipgloss.Yellow.Render("⚠️ No matching projects found."))
		return
	}

	if err := config.SaveProjects(rootDependencies.Cwd, remaining); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("❌ %v", err)))
		return
	}
	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✅ Removed projects: %s", strings.Join(removed, ", "))))
}

// matchesTarget reports whether a project is named by one of the removal
// targets, either by 1-based index or case-insensitive name.
func matchesTarget(p config.ProjectConfig, index int, targets []string) bool {
	for _, target := range targets {
		if idx, err := strconv.Atoi(target); err == nil {
			if idx == index+1 {
				return true
			}
			continue
		}
		if strings.EqualFold(p.Name, target) {
			return true
		}
	}
	return false
}
