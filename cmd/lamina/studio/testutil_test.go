// Test utilities for the studio package: a scripted image service and
// model builders.
package studio

import (
	"context"
	"sync"
	"testing"

	"lamina/cmd/lamina/ui"
	"lamina/internal/form"
	"lamina/internal/gallery"
	"lamina/internal/workflow"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// MOCK IMAGE SERVICE
// =============================================================================

// MockImageService returns canned results and counts calls.
type MockImageService struct {
	mu sync.Mutex

	TextResult []byte
	TextErr    error
	EditResult []byte
	EditErr    error
	Directive  string

	textCalls      int
	editCalls      int
	directiveCalls int
}

func (s *MockImageService) GenerateFromText(context.Context, string, string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.textCalls++
	return s.TextResult, s.TextErr
}

func (s *MockImageService) EditWithDirective(context.Context, []byte, string, string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editCalls++
	return s.EditResult, s.EditErr
}

func (s *MockImageService) GenerateImprovementDirective(context.Context, form.Fields) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.directiveCalls++
	return s.Directive, nil
}

// Calls returns (text, edit, directive) call counts.
func (s *MockImageService) Calls() (int, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.textCalls, s.editCalls, s.directiveCalls
}

var testJPEG = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

// =============================================================================
// MODEL BUILDERS
// =============================================================================

// TestModelOption configures NewTestModel.
type TestModelOption func(*Options)

// WithService swaps the image service.
func WithService(svc workflow.ImageService) TestModelOption {
	return func(o *Options) {
		o.Orchestrator = workflow.New(svc, gallery.New(gallery.NewMemoryBackend(), ""))
	}
}

// WithOutputDir sets the download directory.
func WithOutputDir(dir string) TestModelOption {
	return func(o *Options) { o.OutputDir = dir }
}

// NewTestModel creates a model with safe defaults and an in-memory gallery.
func NewTestModel(opts ...TestModelOption) Model {
	o := Options{
		Orchestrator: workflow.New(&MockImageService{TextResult: testJPEG, EditResult: testJPEG, Directive: "d"},
			gallery.New(gallery.NewMemoryBackend(), "")),
		Fields:   form.Defaults(),
		Styles:   ui.NewStyles(ui.DarkPalette()),
		StartDir: ".",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return New(context.Background(), o)
}

// send runs msg through Update and returns the resulting model and cmd.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	result, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return result, cmd
}

// runCmd executes cmd and feeds every resulting message back into Update.
// Batches are flattened; only workflow results are delivered.
func runCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case generateDoneMsg, improveDoneMsg, exportDoneMsg, formReloadedMsg:
			m, _ = send(t, m, msg)
		}
	}
	return m
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
