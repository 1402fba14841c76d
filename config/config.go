package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Shahfarzane/CursorFocus/constants/lipgloss"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config represents the structure of the configuration file.
type Config struct {
	UpdateInterval time.Duration   `mapstructure:"update_interval"`
	MaxDepth       int             `mapstructure:"max_depth"`
	Ignore         IgnoreConfig    `mapstructure:"ignore"`
	FileLength     FileLength      `mapstructure:"file_length"`
	Summary        SummaryConfig   `mapstructure:"summary"`
	Projects       []ProjectConfig `mapstructure:"projects"`
}

// IgnoreConfig holds the walker's ignore policy. These are data tables,
// overridable from the config file, not logic baked into the walker.
type IgnoreConfig struct {
	Directories      []string `mapstructure:"directories"`
	Files            []string `mapstructure:"files"`
	BinaryExtensions []string `mapstructure:"binary_extensions"`
}

// FileLength holds the per-extension soft line limits and the severity
// multipliers applied on top of them.
type FileLength struct {
	Standards  map[string]int `mapstructure:"standards"`
	Thresholds Thresholds     `mapstructure:"thresholds"`
}

type Thresholds struct {
	Warning  float64 `mapstructure:"warning"`
	Critical float64 `mapstructure:"critical"`
	Severe   float64 `mapstructure:"severe"`
}

// SummaryConfig configures the optional remote summary provider.
type SummaryConfig struct {
	Provider    string        `mapstructure:"provider"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	ApiKey      string        `mapstructure:"api_key"`
	Temperature *float32      `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// ProjectConfig is one monitored project entry.
type ProjectConfig struct {
	Name           string        `mapstructure:"name"`
	ProjectPath    string        `mapstructure:"project_path"`
	UpdateInterval time.Duration `mapstructure:"update_interval"`
	MaxDepth       int           `mapstructure:"max_depth"`
}

// DefaultConfig values. The ignore and file-length tables follow the
// defaults CursorFocus has always shipped with.
var DefaultConfig = Config{
	UpdateInterval: 60 * time.Second,
	MaxDepth:       3,
	Ignore: IgnoreConfig{
		Directories: []string{
			"__pycache__",
			"node_modules",
			"venv",
			".git",
			".svn",
			".idea",
			".vscode",
			".cache",
			"dist",
			"build",
			"out",
			"bin",
			"obj",
			"CursorFocus",
		},
		Files: []string{
			".DS_Store",
			"*.pyc",
			"*.pyo",
			"*.log",
			"*.bak",
		},
		BinaryExtensions: []string{
			".png", ".jpg", ".jpeg", ".gif", ".ico", ".pdf",
			".exe", ".dll", ".bin", ".mp3", ".mp4", ".wav",
			".avi", ".mov", ".zip", ".tar", ".gz",
		},
	},
	FileLength: FileLength{
		Standards: map[string]int{
			".js":     300,
			".jsx":    250,
			".ts":     300,
			".tsx":    250,
			".py":     400,
			".go":     400,
			".css":    400,
			".scss":   400,
			".less":   400,
			".sass":   400,
			".html":   300,
			".vue":    250,
			".svelte": 250,
			".json":   100,
			".yaml":   100,
			".yml":    100,
			".toml":   100,
			".md":     500,
			".rst":    500,
			".php":    400,
			"default": 300,
		},
		Thresholds: Thresholds{
			Warning:  1.0,
			Critical: 1.5,
			Severe:   2.0,
		},
	},
	Summary: SummaryConfig{
		Provider: "gemini",
		Model:    "gemini-2.0-flash-exp",
		Timeout:  30 * time.Second,
	},
}

// cfgFile holds the path to the configuration file (set via CLI).
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment
// variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	// Pick up a .env next to the project before binding env vars, so the
	// summary credential can live there.
	_ = godotenv.Load(filepath.Join(cwd, ".env"))

	setDefaults()

	viper.AutomaticEnv()
	bindEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	} else {
		viper.SetConfigName("cursorfocus-config")
		viper.AddConfigPath(cwd)

		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			viper.SetConfigType("json")
			if err := viper.ReadInConfig(); err != nil {
				fmt.Println(lipgloss.Yellow.Render("No configuration file found, using defaults"))
			}
		}
	}

	bindFlags(rootCmd)

	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	// A secondary env spelling the original tooling used.
	if config.Summary.ApiKey == "" {
		config.Summary.ApiKey = os.Getenv("GEMINI_API_KEY")
	}

	if len(config.Projects) == 0 {
		config.Projects = loadProjectsFile(cwd, config)
	}

	return config
}

// setDefaults sets all default configuration values.
func setDefaults() {
	viper.SetDefault("update_interval", DefaultConfig.UpdateInterval)
	viper.SetDefault("max_depth", DefaultConfig.MaxDepth)
	viper.SetDefault("ignore.directories", DefaultConfig.Ignore.Directories)
	viper.SetDefault("ignore.files", DefaultConfig.Ignore.Files)
	viper.SetDefault("ignore.binary_extensions", DefaultConfig.Ignore.BinaryExtensions)
	viper.SetDefault("file_length.standards", DefaultConfig.FileLength.Standards)
	viper.SetDefault("file_length.thresholds.warning", DefaultConfig.FileLength.Thresholds.Warning)
	viper.SetDefault("file_length.thresholds.critical", DefaultConfig.FileLength.Thresholds.Critical)
	viper.SetDefault("file_length.thresholds.severe", DefaultConfig.FileLength.Thresholds.Severe)
	viper.SetDefault("summary.provider", DefaultConfig.Summary.Provider)
	viper.SetDefault("summary.base_url", DefaultConfig.Summary.BaseURL)
	viper.SetDefault("summary.model", DefaultConfig.Summary.Model)
	viper.SetDefault("summary.api_key", DefaultConfig.Summary.ApiKey)
	viper.SetDefault("summary.timeout", DefaultConfig.Summary.Timeout)
}

// bindEnv explicitly binds environment variables to configuration keys.
func bindEnv() {
	_ = viper.BindEnv("update_interval", "UPDATE_INTERVAL")
	_ = viper.BindEnv("max_depth", "MAX_DEPTH")
	_ = viper.BindEnv("summary.provider", "PROVIDER")
	_ = viper.BindEnv("summary.base_url", "BASE_URL")
	_ = viper.BindEnv("summary.model", "MODEL")
	_ = viper.BindEnv("summary.api_key", "API_KEY")
	_ = viper.BindEnv("summary.temperature", "TEMPERATURE")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("update_interval", rootCmd.PersistentFlags().Lookup("interval"))
	_ = viper.BindPFlag("max_depth", rootCmd.PersistentFlags().Lookup("depth"))
	_ = viper.BindPFlag("summary.provider", rootCmd.PersistentFlags().Lookup("provider"))
	_ = viper.BindPFlag("summary.base_url", rootCmd.PersistentFlags().Lookup("base_url"))
	_ = viper.BindPFlag("summary.model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("summary.api_key", rootCmd.PersistentFlags().Lookup("api_key"))
	_ = viper.BindPFlag("summary.temperature", rootCmd.PersistentFlags().Lookup("temperature"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	rootCmd.PersistentFlags().Duration("interval", DefaultConfig.UpdateInterval, "Interval between scan cycles (e.g. '60s', '5m').")
	rootCmd.PersistentFlags().Int("depth", DefaultConfig.MaxDepth, "Maximum directory depth for scans.")

	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")

	// Summary provider configuration
	rootCmd.PersistentFlags().String("provider", DefaultConfig.Summary.Provider, "The name of the summary provider (e.g., 'gemini', 'openai').")
	rootCmd.PersistentFlags().String("base_url", DefaultConfig.Summary.BaseURL, "The base URL of the summary provider endpoint.")
	rootCmd.PersistentFlags().String("model", DefaultConfig.Summary.Model, "The name of the model used for project summaries.")
	rootCmd.PersistentFlags().String("api_key", DefaultConfig.Summary.ApiKey, "The API key used to authenticate with the summary provider.")
	rootCmd.PersistentFlags().Float32("temperature", 0, "Adjusts the summary model's creativity (0-1).")
}

// ProjectsFileName is the persisted multi-project selection, shared between
// the setup wizard and the run command.
const ProjectsFileName = "cursorfocus.json"

// projectEntry is the on-disk shape of a project. The interval is stored in
// whole seconds, the format the original config.json used.
type projectEntry struct {
	Name           string `json:"name"`
	ProjectPath    string `json:"project_path"`
	UpdateInterval int    `json:"update_interval"`
	MaxDepth       int    `json:"max_depth"`
}

type projectsFile struct {
	Projects []projectEntry `json:"projects"`
}

// loadProjectsFile reads the persisted project list, if one exists, filling
// per-project defaults from the global config.
func loadProjectsFile(cwd string, cfg *Config) []ProjectConfig {
	data, err := os.ReadFile(filepath.Join(cwd, ProjectsFileName))
	if err != nil {
		return nil
	}

	var pf projectsFile
	if err := json.Unmarshal(data, &pf); err != nil {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Ignoring malformed %s: %v", ProjectsFileName, err)))
		return nil
	}

	projects := make([]ProjectConfig, 0, len(pf.Projects))
	for _, e := range pf.Projects {
		p := ProjectConfig{
			Name:           e.Name,
			ProjectPath:    e.ProjectPath,
			UpdateInterval: time.Duration(e.UpdateInterval) * time.Second,
			MaxDepth:       e.MaxDepth,
		}
		if p.UpdateInterval <= 0 {
			p.UpdateInterval = cfg.UpdateInterval
		}
		if p.MaxDepth <= 0 {
			p.MaxDepth = cfg.MaxDepth
		}
		projects = append(projects, p)
	}

	return projects
}

// SaveProjects persists the project list next to the working directory.
func SaveProjects(cwd string, projects []ProjectConfig) error {
	pf := projectsFile{Projects: make([]projectEntry, 0, len(projects))}
	for _, p := range projects {
		pf.Projects = append(pf.Projects, projectEntry{
			Name:           p.Name,
			ProjectPath:    p.ProjectPath,
			UpdateInterval: int(p.UpdateInterval / time.Second),
			MaxDepth:       p.MaxDepth,
		})
	}

	data, err := json.MarshalIndent(pf, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode projects file: %w", err)
	}

	path := filepath.Join(cwd, ProjectsFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// LengthLimitFor resolves the soft line limit for a file extension.
func (fl FileLength) LengthLimitFor(ext string) int {
	ext = strings.ToLower(ext)
	if limit, ok := fl.Standards[ext]; ok {
		return limit
	}
	if limit, ok := fl.Standards["default"]; ok {
		return limit
	}
	return 300
}
