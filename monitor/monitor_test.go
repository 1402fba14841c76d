package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Shahfarzane/CursorFocus/config"
	providermodels "github.com/Shahfarzane/CursorFocus/providers/models"
	"github.com/Shahfarzane/CursorFocus/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider is a canned summary provider for pipeline tests.
type stubProvider struct {
	enabled    bool
	summary    string
	rules      json.RawMessage
	err        error
	calls      int
	lastPrompt providermodels.SummaryRequest
}

func (s *stubProvider) Summarize(_ context.Context, req providermodels.SummaryRequest) (string, error) {
	s.calls++
	s.lastPrompt = req
	return s.summary, s.err
}

func (s *stubProvider) GenerateRules(_ context.Context, req providermodels.SummaryRequest) (json.RawMessage, error) {
	return s.rules, s.err
}

func (s *stubProvider) Enabled() bool { return s.enabled }

func testProject(t *testing.T) (config.ProjectConfig, *config.Config) {
	t.Helper()
	root := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, "setup.py"), []byte("from setuptools import setup\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.py"), []byte("def main():\n    pass\n"), 0644))

	cfg := defaultTestConfig()
	project := config.ProjectConfig{
		Name:           "Demo",
		ProjectPath:    root,
		UpdateInterval: time.Second,
		MaxDepth:       3,
	}
	return project, cfg
}

// defaultTestConfig clones the shipped defaults for isolated test runs.
func defaultTestConfig() *config.Config {
	cfg := config.DefaultConfig
	return &cfg
}

// Test one full pipeline pass producing both artifacts
func TestMonitor_RunCycle(t *testing.T) {
	project, cfg := testProject(t)
	provider := &stubProvider{enabled: true, summary: "A sample Python service."}

	m := New(project, cfg, provider, false)
	require.NoError(t, m.RunCycle(context.Background()))

	focus, err := os.ReadFile(filepath.Join(project.ProjectPath, renderer.FocusFileName))
	require.NoError(t, err)
	assert.Contains(t, string(focus), "# Project Focus:")
	assert.Contains(t, string(focus), "A sample Python service.")
	assert.Contains(t, string(focus), "app.py")

	rules, err := os.ReadFile(filepath.Join(project.ProjectPath, renderer.RulesFileName))
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rules, &doc))
	assert.Contains(t, doc, "ai_behavior")

	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, "Demo", provider.lastPrompt.ProjectName)
	assert.Equal(t, "Python Project", provider.lastPrompt.ProjectType)
}

// An unchanged project must not rewrite its artifacts on the next cycle.
func TestMonitor_IdempotentWrites(t *testing.T) {
	project, cfg := testProject(t)
	provider := &stubProvider{enabled: false}

	m := New(project, cfg, provider, false)
	require.NoError(t, m.RunCycle(context.Background()))

	focusPath := filepath.Join(project.ProjectPath, renderer.FocusFileName)
	before, err := os.Stat(focusPath)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, m.RunCycle(context.Background()))

	after, err := os.Stat(focusPath)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime(), "unchanged content must not be rewritten")
}

// A content change triggers a rewrite on the following cycle.
func TestMonitor_RewritesOnChange(t *testing.T) {
	project, cfg := testProject(t)
	m := New(project, cfg, &stubProvider{}, false)
	require.NoError(t, m.RunCycle(context.Background()))

	focusPath := filepath.Join(project.ProjectPath, renderer.FocusFileName)
	before, err := os.ReadFile(focusPath)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(project.ProjectPath, "extra.py"), []byte("def extra():\n    pass\n"), 0644))
	require.NoError(t, m.RunCycle(context.Background()))

	after, err := os.ReadFile(focusPath)
	require.NoError(t, err)
	assert.NotEqual(t, string(before), string(after))
	assert.Contains(t, string(after), "extra.py")
}

// Provider failures degrade to the generic overview, never abort the cycle.
func TestMonitor_SummaryFailureDegrades(t *testing.T) {
	project, cfg := testProject(t)
	provider := &stubProvider{enabled: true, err: errors.New("upstream unavailable")}

	m := New(project, cfg, provider, false)
	require.NoError(t, m.RunCycle(context.Background()))

	focus, err := os.ReadFile(filepath.Join(project.ProjectPath, renderer.FocusFileName))
	require.NoError(t, err)
	assert.Contains(t, string(focus), "automated analysis and documentation generation")
}

func TestMonitor_MissingProjectPath(t *testing.T) {
	project, cfg := testProject(t)
	project.ProjectPath = filepath.Join(project.ProjectPath, "gone")

	m := New(project, cfg, &stubProvider{}, false)
	err := m.RunCycle(context.Background())
	assert.Error(t, err)
}

// Timestamp-only differences hash identically; structural edits do not.
func TestStripVolatile(t *testing.T) {
	a := "# Doc\nbody\n---\n*Last updated: March 09, 2025 at 02:30 PM*\n"
	b := "# Doc\nbody\n---\n*Last updated: March 10, 2025 at 09:00 AM*\n"
	assert.Equal(t, stripVolatile(a), stripVolatile(b))

	c := "# Doc\nchanged body\n---\n*Last updated: March 09, 2025 at 02:30 PM*\n"
	assert.NotEqual(t, stripVolatile(a), stripVolatile(c))

	rulesA := "{\n  \"version\": \"1.0\",\n  \"last_updated\": \"March 09, 2025 at 02:30 PM\"\n}\n"
	rulesB := "{\n  \"version\": \"1.0\",\n  \"last_updated\": \"March 10, 2025 at 09:00 AM\"\n}\n"
	assert.Equal(t, stripVolatile(rulesA), stripVolatile(rulesB))
}

// Run stops promptly on context cancellation.
func TestMonitor_RunStopsOnCancel(t *testing.T) {
	project, cfg := testProject(t)
	project.UpdateInterval = 50 * time.Millisecond

	m := New(project, cfg, &stubProvider{}, false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
