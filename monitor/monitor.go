package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Shahfarzane/CursorFocus/config"
	"github.com/Shahfarzane/CursorFocus/constants/lipgloss"
	"github.com/Shahfarzane/CursorFocus/providers/contracts"
	providermodels "github.com/Shahfarzane/CursorFocus/providers/models"
	"github.com/Shahfarzane/CursorFocus/renderer"
	"github.com/Shahfarzane/CursorFocus/scanner"
	"github.com/Shahfarzane/CursorFocus/scanner/models"
	"github.com/zeebo/xxh3"
)

// Monitor runs the scan pipeline for one project on a fixed interval. A
// cycle always runs to completion once started; cancellation is observed
// only between cycles and inside the bounded summary call. The last
// rendered-content hashes live here, owned by the loop, so an unchanged
// project never rewrites its artifacts.
type Monitor struct {
	project        config.ProjectConfig
	scanner        *scanner.Scanner
	provider       contracts.SummaryProvider
	summaryTimeout time.Duration
	ignoreCfg      config.IgnoreConfig
	watch          bool

	lastFocusHash uint64
	lastRulesHash uint64
}

// New initializes a Monitor for one configured project.
func New(project config.ProjectConfig, cfg *config.Config, provider contracts.SummaryProvider, watch bool) *Monitor {
	interval := project.UpdateInterval
	if interval <= 0 {
		interval = cfg.UpdateInterval
	}
	project.UpdateInterval = interval

	return &Monitor{
		project:        project,
		scanner:        scanner.NewScanner(project.ProjectPath, project.MaxDepth, cfg.Ignore, cfg.FileLength),
		provider:       provider,
		summaryTimeout: cfg.Summary.Timeout,
		ignoreCfg:      cfg.Ignore,
		watch:          watch,
	}
}

// Run executes scan cycles until ctx is cancelled. Pipeline failures are
// logged and retried on the next tick; they never stop the loop.
func (m *Monitor) Run(ctx context.Context) {
	var changes <-chan []Change
	if m.watch {
		watcher, err := NewFileWatcher(m.project.ProjectPath, scanner.NewIgnoreMatcher(m.project.ProjectPath, m.ignoreCfg))
		if err != nil {
			log.Printf("Warning: %s: file watching unavailable, polling only: %v", m.project.Name, err)
		} else {
			defer watcher.Close()
			go watcher.Start()
			changes = watcher.Changes()
		}
	}

	for {
		if err := m.RunCycle(ctx); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("❌ %s: %v", m.project.Name, err)))
		}

		timer := time.NewTimer(m.project.UpdateInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		case batch := <-changes:
			timer.Stop()
			log.Printf("%s: %d changed paths, rescanning early", m.project.Name, len(batch))
		}
	}
}

// RunCycle executes one full pipeline pass: scan, summarize, render, and
// write both artifacts when their content changed.
func (m *Monitor) RunCycle(ctx context.Context) error {
	snap, err := m.scanner.Scan()
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	summary, rules := m.summarize(ctx, snap)

	focus := renderer.RenderFocus(snap, summary)
	focusWritten, err := m.writeIfChanged(filepath.Join(m.project.ProjectPath, renderer.FocusFileName), focus, &m.lastFocusHash)
	if err != nil {
		log.Printf("Warning: %s: %v", m.project.Name, err)
	}

	rulesContent, err := renderer.RenderRules(snap, rules)
	if err != nil {
		return err
	}
	rulesWritten, err := m.writeIfChanged(filepath.Join(m.project.ProjectPath, renderer.RulesFileName), rulesContent, &m.lastRulesHash)
	if err != nil {
		log.Printf("Warning: %s: %v", m.project.Name, err)
	}

	if focusWritten || rulesWritten {
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✓ %s (%s)", m.project.Name, snap.GeneratedAt.Format("15:04"))))
	}

	return nil
}

// writeIfChanged writes content only when its stable hash differs from the
// previous cycle. The hash excludes the embedded timestamp lines, so a
// cycle that changes nothing but the clock writes nothing. On write failure
// the stored hash is left untouched and the next cycle retries.
func (m *Monitor) writeIfChanged(path, content string, lastHash *uint64) (bool, error) {
	hash := xxh3.HashString(stripVolatile(content))
	if hash == *lastHash {
		return false, nil
	}

	if err := renderer.WriteFileAtomic(path, []byte(content)); err != nil {
		return false, err
	}

	*lastHash = hash
	return true, nil
}

// stripVolatile removes the timestamp lines from rendered content before
// hashing, so change detection sees only structural differences.
func stripVolatile(content string) string {
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, "*Last updated:") {
			continue
		}
		if strings.Contains(line, `"last_updated":`) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// summarize asks the configured provider for overview prose and behavior
// rules, bounded by the summary timeout. Every failure degrades to empty
// results; the pipeline never aborts on the provider's account.
func (m *Monitor) summarize(ctx context.Context, snap *models.Snapshot) (string, json.RawMessage) {
	if !m.provider.Enabled() {
		return "", nil
	}

	req := buildSummaryRequest(snap)

	callCtx, cancel := context.WithTimeout(ctx, m.summaryTimeout)
	defer cancel()

	summary, err := m.provider.Summarize(callCtx, req)
	if err != nil {
		log.Printf("Warning: %s: summary unavailable: %v", m.project.Name, err)
		summary = ""
	}

	rules, err := m.provider.GenerateRules(callCtx, req)
	if err != nil {
		log.Printf("Warning: %s: generated rules unavailable: %v", m.project.Name, err)
		rules = nil
	}

	return summary, rules
}

// highlightCount bounds the notable-files list sent to the provider.
const highlightCount = 5

// buildSummaryRequest reduces a snapshot to the metadata the provider sees.
func buildSummaryRequest(snap *models.Snapshot) providermodels.SummaryRequest {
	files := make([]*models.FileEntry, len(snap.Files))
	copy(files, snap.Files)
	sort.SliceStable(files, func(i, j int) bool {
		return len(files[i].Functions) > len(files[j].Functions)
	})

	var highlights []string
	for _, f := range files {
		if len(highlights) == highlightCount || len(f.Functions) == 0 {
			break
		}
		highlights = append(highlights, fmt.Sprintf("%s (%d functions)", f.RelativePath, len(f.Functions)))
	}

	return providermodels.SummaryRequest{
		ProjectName:   snap.Project.Name,
		ProjectType:   renderer.TypeLabel(snap.Project.Type),
		Language:      snap.Project.Language,
		Framework:     snap.Project.Framework,
		FileCount:     len(snap.Files),
		FunctionCount: snap.FunctionCount(),
		Tree:          renderer.RenderTree(snap.Root),
		Highlights:    highlights,
	}
}
