package studio

import (
	"context"
	"path/filepath"
	"time"

	"lamina/internal/form"
	"lamina/internal/gallery"
	"lamina/internal/workflow"

	tea "github.com/charmbracelet/bubbletea"
)

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// generateCmd runs the remote half of a generation off the Update loop.
func generateCmd(ctx context.Context, timeout time.Duration, orch *workflow.Orchestrator, ticket workflow.Ticket, fields form.Fields, asset *form.TemplateAsset) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(ctx, timeout)
		defer cancel()
		a, err := orch.Generate(ctx, fields, asset)
		return generateDoneMsg{ticket: ticket, artifact: a, err: err}
	}
}

// improveCmd runs the directive and edit calls, in that order.
func improveCmd(ctx context.Context, timeout time.Duration, orch *workflow.Orchestrator, ticket workflow.Ticket, fields form.Fields, source *workflow.Artifact) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout(ctx, timeout)
		defer cancel()
		a, err := orch.Improve(ctx, fields, source)
		return improveDoneMsg{ticket: ticket, artifact: a, err: err}
	}
}

func exportCmd(data []byte, dir, name string, resize bool) tea.Cmd {
	path := filepath.Join(dir, name)
	return func() tea.Msg {
		err := gallery.Export(data, path, gallery.ExportOptions{Resize: resize})
		return exportDoneMsg{path: path, err: err}
	}
}

func waitForFormReload(ch <-chan FormReload) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return formReloadedMsg(r)
	}
}
