package renderer

import (
	"encoding/json"
	"fmt"

	"github.com/Shahfarzane/CursorFocus/scanner/models"
)

// RulesFileName is the generated editor settings artifact.
const RulesFileName = ".cursorrules"

// behaviorRules is the ai_behavior block of a .cursorrules file.
type behaviorRules struct {
	CodeGeneration struct {
		Style struct {
			Prefer []string `json:"prefer"`
			Avoid  []string `json:"avoid"`
		} `json:"style"`
		ErrorHandling struct {
			Prefer []string `json:"prefer"`
			Avoid  []string `json:"avoid"`
		} `json:"error_handling"`
	} `json:"code_generation"`
}

// defaultBehavior builds the fallback ai_behavior block for a project type.
// Used whenever no provider-generated rules are available.
func defaultBehavior(t models.ProjectType) behaviorRules {
	var rules behaviorRules

	switch t {
	case models.ProjectTypePython:
		rules.CodeGeneration.Style.Prefer = []string{
			"PEP 8 naming and formatting",
			"type hints on public functions",
			"docstrings for modules and classes",
		}
		rules.CodeGeneration.Style.Avoid = []string{
			"wildcard imports",
			"mutable default arguments",
		}
		rules.CodeGeneration.ErrorHandling.Prefer = []string{"specific exception types", "context managers for resources"}
		rules.CodeGeneration.ErrorHandling.Avoid = []string{"bare except clauses"}
	case models.ProjectTypeReact:
		rules.CodeGeneration.Style.Prefer = []string{
			"functional components with hooks",
			"PropTypes or TypeScript for component contracts",
			"co-located component styles",
		}
		rules.CodeGeneration.Style.Avoid = []string{
			"class components for new code",
			"inline anonymous handlers in deep trees",
		}
		rules.CodeGeneration.ErrorHandling.Prefer = []string{"error boundaries for UI failures"}
		rules.CodeGeneration.ErrorHandling.Avoid = []string{"swallowing promise rejections"}
	case models.ProjectTypeNode, models.ProjectTypeChromeExtension:
		rules.CodeGeneration.Style.Prefer = []string{
			"const/let over var",
			"async/await over raw promise chains",
			"small single-purpose modules",
		}
		rules.CodeGeneration.Style.Avoid = []string{"callback pyramids", "implicit globals"}
		rules.CodeGeneration.ErrorHandling.Prefer = []string{"centralized error middleware", "typed error objects"}
		rules.CodeGeneration.ErrorHandling.Avoid = []string{"unhandled promise rejections"}
	case models.ProjectTypePHP, models.ProjectTypeLaravel, models.ProjectTypeWordPress:
		rules.CodeGeneration.Style.Prefer = []string{
			"PSR-12 formatting",
			"dependency injection over statics",
		}
		rules.CodeGeneration.Style.Avoid = []string{"mixing HTML and business logic"}
		rules.CodeGeneration.ErrorHandling.Prefer = []string{"typed exceptions"}
		rules.CodeGeneration.ErrorHandling.Avoid = []string{"error suppression with @"}
	default:
		rules.CodeGeneration.Style.Prefer = []string{
			"match the existing code style of the project",
			"small, focused functions",
		}
		rules.CodeGeneration.Style.Avoid = []string{"introducing new conventions without need"}
		rules.CodeGeneration.ErrorHandling.Prefer = []string{"explicit error propagation"}
		rules.CodeGeneration.ErrorHandling.Avoid = []string{"silently ignoring failures"}
	}

	return rules
}

// rulesDocument is the full .cursorrules payload.
type rulesDocument struct {
	Version     string          `json:"version"`
	LastUpdated string          `json:"last_updated"`
	Project     rulesProject    `json:"project"`
	AIBehavior  json.RawMessage `json:"ai_behavior"`
}

type rulesProject struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Language    string `json:"language,omitempty"`
	Framework   string `json:"framework,omitempty"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description"`
}

// RenderRules renders the .cursorrules settings file for a snapshot.
// aiRules carries provider-generated behavior rules and may be nil; invalid
// provider JSON degrades to the per-type fallback table rather than failing.
func RenderRules(snap *models.Snapshot, aiRules json.RawMessage) (string, error) {
	behavior := aiRules
	if len(behavior) == 0 || !json.Valid(behavior) {
		fallback, err := json.Marshal(defaultBehavior(snap.Project.Type))
		if err != nil {
			return "", fmt.Errorf("failed to encode default behavior rules: %w", err)
		}
		behavior = fallback
	}

	description := snap.Project.Description
	if description == "" {
		description = genericOverview
	}

	doc := rulesDocument{
		Version:     "1.0",
		LastUpdated: snap.GeneratedAt.Format(timestampLayout),
		Project: rulesProject{
			Name:        snap.Project.Name,
			Type:        string(snap.Project.Type),
			Language:    snap.Project.Language,
			Framework:   snap.Project.Framework,
			Version:     snap.Project.Version,
			Description: description,
		},
		AIBehavior: behavior,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", RulesFileName, err)
	}

	return string(data) + "\n", nil
}
